package pdf

import (
	"context"
	"path/filepath"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightConverter renders through an embedded headless Chromium managed
// by playwright. The browser starts lazily on first conversion and is
// reused until Close.
type PlaywrightConverter struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

// NewPlaywrightConverter creates a new playwright converter
func NewPlaywrightConverter() *PlaywrightConverter {
	return &PlaywrightConverter{}
}

// Name returns the name of this converter
func (c *PlaywrightConverter) Name() string {
	return "playwright"
}

// IsAvailable always reports true; playwright downloads its own browser on
// first use.
func (c *PlaywrightConverter) IsAvailable() bool {
	return true
}

// Convert renders an HTML file to PDF
func (c *PlaywrightConverter) Convert(ctx context.Context, htmlPath, pdfPath string, options *Options) error {
	if options == nil {
		options = DefaultOptions()
	}

	if err := playwright.Install(&playwright.RunOptions{
		Browsers: []string{"chromium"},
	}); err != nil {
		return NewConverterError(c.Name(), "install browsers", err)
	}

	// Initialize browser if not already done
	if c.browser == nil {
		pw, err := playwright.Run()
		if err != nil {
			return NewConverterError(c.Name(), "start playwright", err)
		}
		c.pw = pw

		browser, err := c.pw.Chromium.Launch()
		if err != nil {
			return NewConverterError(c.Name(), "launch browser", err)
		}
		c.browser = browser
	}

	page, err := c.browser.NewPage()
	if err != nil {
		return NewConverterError(c.Name(), "create page", err)
	}
	defer page.Close()

	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return NewConverterError(c.Name(), "resolve path", err)
	}
	if _, err := page.Goto("file://" + abs); err != nil {
		return NewConverterError(c.Name(), "load page", err)
	}

	pdfOptions := playwright.PagePdfOptions{
		Path:            &pdfPath,
		PrintBackground: &options.PrintBackground,
		Landscape:       &options.Landscape,
	}
	if options.Format != "" {
		pdfOptions.Format = &options.Format
	}
	if options.Margin != "" {
		pdfOptions.Margin = &playwright.Margin{
			Top:    &options.Margin,
			Right:  &options.Margin,
			Bottom: &options.Margin,
			Left:   &options.Margin,
		}
	}

	if _, err := page.PDF(pdfOptions); err != nil {
		return NewConverterError(c.Name(), "generate PDF", err)
	}

	return nil
}

// Close closes the browser and playwright instance
func (c *PlaywrightConverter) Close() error {
	if c.browser != nil {
		if err := c.browser.Close(); err != nil {
			return err
		}
		c.browser = nil
	}

	if c.pw != nil {
		if err := c.pw.Stop(); err != nil {
			return err
		}
		c.pw = nil
	}

	return nil
}
