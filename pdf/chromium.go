package pdf

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
)

// chromeCandidates are the headless-capable browser binaries probed in
// order; the first one found on PATH is used.
var chromeCandidates = []string{
	"chromium",
	"chromium-browser",
	"google-chrome",
	"google-chrome-stable",
	"chrome",
	"msedge",
	"microsoft-edge",
	"microsoft-edge-dev",
	"microsoft-edge-beta",
	"brave",
	"brave-browser",
}

// ChromiumConverter renders through a system-installed chromium-family
// browser in headless mode.
type ChromiumConverter struct {
	binary string
}

// NewChromiumConverter creates a new chromium converter
func NewChromiumConverter() *ChromiumConverter {
	return &ChromiumConverter{}
}

// Name returns the name of this converter
func (c *ChromiumConverter) Name() string {
	return "chromium"
}

// IsAvailable checks if any chromium-family browser is in PATH
func (c *ChromiumConverter) IsAvailable() bool {
	return c.lookup() != ""
}

func (c *ChromiumConverter) lookup() string {
	if c.binary != "" {
		return c.binary
	}
	for _, candidate := range chromeCandidates {
		if binary, err := exec.LookPath(candidate); err == nil {
			c.binary = binary
			return binary
		}
	}
	return ""
}

// Convert renders an HTML file to PDF. The headless CLI exposes no paper
// controls, so options are ignored.
func (c *ChromiumConverter) Convert(ctx context.Context, htmlPath, pdfPath string, _ *Options) error {
	binary := c.lookup()
	if binary == "" {
		return NewConverterError(c.Name(), "convert", fmt.Errorf("no chromium-family browser found in PATH"))
	}

	absHTML, err := filepath.Abs(htmlPath)
	if err != nil {
		return NewConverterError(c.Name(), "resolve path", err)
	}
	absPDF, err := filepath.Abs(pdfPath)
	if err != nil {
		return NewConverterError(c.Name(), "resolve path", err)
	}

	cmd := exec.CommandContext(ctx, binary,
		"--headless",
		"--disable-gpu",
		"--print-to-pdf="+absPDF,
		"file://"+absHTML,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return NewConverterError(c.Name(), "convert", fmt.Errorf("command failed: %w, output: %s", err, string(output)))
	}

	return nil
}
