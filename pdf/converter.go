// Package pdf renders exported HTML pages to PDF through a prioritized
// chain of backends: an embedded playwright browser, a system
// chromium-family browser, then the weasyprint CLI.
package pdf

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoConverters indicates that no rendering backend is installed.
var ErrNoConverters = errors.New("no backend available")

// Converter renders an HTML file to a PDF file.
type Converter interface {
	// Name returns the name of the converter
	Name() string

	// IsAvailable checks if the converter is available on the system
	IsAvailable() bool

	// Convert renders htmlPath to pdfPath
	Convert(ctx context.Context, htmlPath, pdfPath string, options *Options) error
}

// Options holds page options for PDF rendering. CLI backends expose fewer
// controls than the embedded browser and ignore what they cannot honor.
type Options struct {
	// Paper format (A4, Letter, ...)
	Format string

	// Render CSS backgrounds
	PrintBackground bool

	// Landscape orientation
	Landscape bool

	// Uniform page margin, e.g. "10mm" (backend default if empty)
	Margin string
}

// DefaultOptions returns default rendering options.
func DefaultOptions() *Options {
	return &Options{
		Format:          "A4",
		PrintBackground: true,
	}
}

// ConverterError represents an error from a converter
type ConverterError struct {
	Converter string
	Operation string
	Err       error
}

func (e *ConverterError) Error() string {
	return fmt.Sprintf("%s converter %s failed: %v", e.Converter, e.Operation, e.Err)
}

func (e *ConverterError) Unwrap() error {
	return e.Err
}

// NewConverterError creates a new converter error
func NewConverterError(converter, operation string, err error) error {
	return &ConverterError{
		Converter: converter,
		Operation: operation,
		Err:       err,
	}
}
