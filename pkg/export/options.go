package export

import (
	"io"
	"strings"

	"github.com/agentstation/storefront/pkg/errors"
)

// Format is an export encoding.
type Format int

// Format constants.
const (
	FormatJSON Format = iota
	FormatYAML
)

// IsValid checks if the format is valid.
func (f Format) IsValid() bool {
	switch f {
	case FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	return f.String()
}

// ParseFormat parses "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatJSON, errors.NewValidationError("format", s, "must be json or yaml")
	}
}

// Options is the configuration for an export.
type Options struct {
	dir    string
	writer io.Writer
	format Format
}

// Dir returns the directory exported files are written to.
func (o *Options) Dir() string {
	return o.dir
}

// Writer returns the writer exports go to instead of a file, if any.
func (o *Options) Writer() io.Writer {
	return o.writer
}

// Format returns the export format.
func (o *Options) Format() Format {
	return o.format
}

// Defaults returns the default export options: JSON into the working directory.
func Defaults() *Options {
	return &Options{
		dir:    ".",
		format: FormatJSON,
	}
}

// Apply applies the given options.
func (o *Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(o)
	}
	return *o
}

// Option is a function that configures export options.
type Option func(*Options)

// WithFormat for custom output format.
func WithFormat(f Format) Option {
	return func(o *Options) {
		o.format = f
	}
}

// WithDir for the download directory.
func WithDir(dir string) Option {
	return func(o *Options) {
		if dir != "" {
			o.dir = dir
		}
	}
}

// WithWriter sends the export to w instead of a file.
func WithWriter(w io.Writer) Option {
	return func(o *Options) {
		o.writer = w
	}
}
