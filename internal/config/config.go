// Package config turns command-line flags, CARGO_ADD_DYNAMIC_* environment
// variables and an optional add-dynamic.toml file into Options.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override flag defaults.
const EnvPrefix = "CARGO_ADD_DYNAMIC"

// FileName is the optional config file name, without extension.
const FileName = "add-dynamic"

// Options is one invocation's configuration.
type Options struct {
	Crate             string
	Name              string
	LibDir            string
	Package           string
	Rename            string
	Path              string
	Features          []string
	Optional          bool
	Offline           bool
	NoDefaultFeatures bool
	Verbose           bool
	CargoBin          string
	// Dir is the directory the command acts in; relative paths are resolved against it.
	Dir string
}

// DependencyKey is the name the target package uses for the shim dependency.
func (o *Options) DependencyKey() string {
	if o.Rename != "" {
		return o.Rename
	}
	return o.Crate
}

// NewViper binds flags, environment and config file lookups. searchPaths
// are directories checked for add-dynamic.toml.
func NewViper(flags *pflag.FlagSet, searchPaths ...string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}

	v.SetConfigName(FileName)
	v.SetConfigType("toml")
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}
	if len(searchPaths) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}
	return v, nil
}

// FromViper builds Options for crate. dir is the directory the command runs in.
func FromViper(v *viper.Viper, crate, dir string) (*Options, error) {
	o := &Options{
		Crate:             strings.TrimSpace(crate),
		Name:              v.GetString("name"),
		LibDir:            v.GetString("lib-dir"),
		Package:           v.GetString("package"),
		Rename:            v.GetString("rename"),
		Path:              v.GetString("path"),
		Features:          splitFeatures(v.GetStringSlice("features")),
		Optional:          v.GetBool("optional"),
		Offline:           v.GetBool("offline"),
		NoDefaultFeatures: v.GetBool("no-default-features"),
		Verbose:           v.GetBool("verbose"),
		CargoBin:          v.GetString("cargo"),
		Dir:               dir,
	}
	if err := o.complete(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Options) complete() error {
	if o.Crate == "" {
		return errors.New("a dependency name is required")
	}
	if o.Name == "" {
		o.Name = o.Crate + "-dynamic"
	}
	if o.LibDir == "" {
		o.LibDir = o.Name
	}
	if o.Path != "" && !filepath.IsAbs(o.Path) {
		o.Path = filepath.Join(o.Dir, o.Path)
	}
	return o.Validate()
}

// Validate checks option combinations.
func (o *Options) Validate() error {
	if o.Crate == "" {
		return errors.New("a dependency name is required")
	}
	if strings.ContainsAny(o.Crate, " \t") {
		return fmt.Errorf("invalid dependency name %q", o.Crate)
	}
	if strings.TrimSpace(o.Name) == "" {
		return errors.New("--name must not be empty")
	}
	if filepath.IsAbs(o.LibDir) {
		return fmt.Errorf("--lib-dir must be relative to the current directory: %s", o.LibDir)
	}
	if filepath.Clean(o.LibDir) == "." {
		return errors.New("--lib-dir must name a new directory")
	}
	return nil
}

// splitFeatures accepts features separated by commas or spaces, in one or
// several flag values.
func splitFeatures(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, strings.FieldsFunc(v, func(r rune) bool {
			return r == ',' || r == ' '
		})...)
	}
	return out
}
