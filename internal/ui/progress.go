package ui

import (
	"fmt"
	"io"
)

// Progress reports the steps of a sequential workflow as "[n/total] label".
type Progress struct {
	out   io.Writer
	total int
	n     int
}

// NewProgress creates a progress reporter for total steps.
func NewProgress(out io.Writer, total int) *Progress {
	return &Progress{out: out, total: total}
}

// Step runs fn as the next step. The step is reported once fn succeeds;
// on failure the error is returned unchanged and the step marked failed.
func (p *Progress) Step(label string, fn func() error) error {
	p.n++
	if err := fn(); err != nil {
		_, _ = fmt.Fprintf(p.out, "[%d/%d] %s: failed\n", p.n, p.total, label)
		return err
	}
	_, _ = fmt.Fprintf(p.out, "[%d/%d] %s\n", p.n, p.total, label)
	return nil
}

// Log prints an informational line between steps.
func (p *Progress) Log(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}
