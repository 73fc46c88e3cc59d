package ui

import "github.com/fatih/color"

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow)
)

// OK renders a passing check result.
func OK(s string) string { return okColor.Sprint(s) }

// Fail renders a failing check result.
func Fail(s string) string { return failColor.Sprint(s) }

// Warn renders a result that needs attention but is not a failure.
func Warn(s string) string { return warnColor.Sprint(s) }
