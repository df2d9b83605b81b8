package pdf

import (
	"context"
	"fmt"
	"os/exec"
)

// WeasyprintConverter renders through the weasyprint CLI.
type WeasyprintConverter struct{}

// NewWeasyprintConverter creates a new weasyprint converter
func NewWeasyprintConverter() *WeasyprintConverter {
	return &WeasyprintConverter{}
}

// Name returns the name of this converter
func (c *WeasyprintConverter) Name() string {
	return "weasyprint"
}

// IsAvailable checks if weasyprint is available in PATH
func (c *WeasyprintConverter) IsAvailable() bool {
	_, err := exec.LookPath("weasyprint")
	return err == nil
}

// Convert renders an HTML file to PDF. weasyprint takes page setup from the
// document's own CSS, so options are ignored.
func (c *WeasyprintConverter) Convert(ctx context.Context, htmlPath, pdfPath string, _ *Options) error {
	if !c.IsAvailable() {
		return NewConverterError(c.Name(), "convert", fmt.Errorf("weasyprint not found in PATH"))
	}

	cmd := exec.CommandContext(ctx, "weasyprint", htmlPath, pdfPath)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return NewConverterError(c.Name(), "convert", fmt.Errorf("command failed: %w, output: %s", err, string(output)))
	}

	return nil
}
