package ipynbd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleNotebook = `{
  "cells": [
    {"cell_type": "markdown", "metadata": {}, "source": ["# Analysis\n", "Some prose."]},
    {
      "cell_type": "code",
      "metadata": {
        "overlay_v1": {
          "strokes": [
            {"tool": "pen", "color": "#ff0000", "points": [[0, 0], [1, 1]], "basis": {"width": 200, "height": 100}},
            {"tool": "highlighter"}
          ]
        }
      },
      "source": "print('hi')",
      "outputs": [
        {"output_type": "stream", "name": "stdout", "text": "hi\n"},
        {
          "output_type": "display_data",
          "data": {"image/png": "iVBORw0KGgo=", "text/html": "<table></table>"},
          "metadata": {}
        }
      ]
    }
  ],
  "metadata": {
    "kernelspec": {"display_name": "Python 3", "language": "python", "name": "python3"}
  },
  "nbformat": 4,
  "nbformat_minor": 5
}`

func writeNotebook(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(sampleNotebook), 0o644))
	return path
}

func TestExport(t *testing.T) {
	path := writeNotebook(t, "analysis.ipynb")

	result, err := Export(context.Background(), path, ExportOptions{}, PDFOptions{})
	require.NoError(t, err)

	assert.Equal(t, strings.TrimSuffix(path, ".ipynb")+"_overlay.html", result.HTMLPath)
	assert.Equal(t, "analysis.ipynb", result.Title)
	assert.Equal(t, 2, result.Cells)
	assert.Equal(t, 1, result.Annotated)
	assert.Equal(t, 2, result.Strokes)
	assert.Empty(t, result.PDFPath)
	assert.Nil(t, result.PDFInfo)

	data, err := os.ReadFile(result.HTMLPath)
	require.NoError(t, err)
	page := string(data)

	assert.Contains(t, page, "<title>analysis.ipynb</title>")
	assert.Contains(t, page, "Cell 1 — markdown")
	assert.Contains(t, page, "Cell 2 — code")
	assert.Contains(t, page, "2 stroke(s)")
	assert.Contains(t, page, "width:200.00px; height:100.00px")
	assert.Contains(t, page, `d="M 0.00 0.00 L 200.00 100.00"`)
	assert.Contains(t, page, "<div class='outputs'>")
	assert.Contains(t, page, "data:image/png;base64,iVBORw0KGgo=")
}

func TestExportExplicitOptions(t *testing.T) {
	path := writeNotebook(t, "analysis.ipynb")
	htmlPath := filepath.Join(filepath.Dir(path), "custom.html")

	result, err := Export(context.Background(), path, ExportOptions{
		HTMLPath: htmlPath,
		Title:    "Weekly review",
	}, PDFOptions{})
	require.NoError(t, err)

	assert.Equal(t, htmlPath, result.HTMLPath)
	assert.Equal(t, "Weekly review", result.Title)

	data, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<title>Weekly review</title>")
}

func TestExportWidgetPolicyFile(t *testing.T) {
	path := writeNotebook(t, "analysis.ipynb")
	dir := filepath.Dir(path)

	policyPath := filepath.Join(dir, "policy.yaml")
	require.NoError(t, os.WriteFile(policyPath, []byte("widget_prefixes:\n  - text/html\n"), 0o644))

	// With text/html declared a widget prefix, the code cell's bundle
	// renders its raster form only.
	result, err := Export(context.Background(), path, ExportOptions{PolicyPath: policyPath}, PDFOptions{})
	require.NoError(t, err)

	data, err := os.ReadFile(result.HTMLPath)
	require.NoError(t, err)
	page := string(data)
	assert.Contains(t, page, "data:image/png")
	assert.NotContains(t, page, "out-html")
}

func TestExportWidgetPrefixFlag(t *testing.T) {
	path := writeNotebook(t, "analysis.ipynb")

	result, err := Export(context.Background(), path, ExportOptions{
		WidgetPrefixes: []string{"text/html"},
	}, PDFOptions{})
	require.NoError(t, err)

	data, err := os.ReadFile(result.HTMLPath)
	require.NoError(t, err)
	page := string(data)
	assert.Contains(t, page, "data:image/png")
	assert.NotContains(t, page, "out-html")
}

func TestExportErrors(t *testing.T) {
	t.Run("missing notebook", func(t *testing.T) {
		_, err := Export(context.Background(), filepath.Join(t.TempDir(), "none.ipynb"), ExportOptions{}, PDFOptions{})
		assert.Error(t, err)
	})

	t.Run("missing policy file", func(t *testing.T) {
		path := writeNotebook(t, "analysis.ipynb")
		_, err := Export(context.Background(), path, ExportOptions{PolicyPath: "/does/not/exist.yaml"}, PDFOptions{})
		assert.Error(t, err)
	})

	t.Run("unknown converter", func(t *testing.T) {
		path := writeNotebook(t, "analysis.ipynb")
		_, err := Export(context.Background(), path, ExportOptions{}, PDFOptions{Converter: "imagemagick"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown PDF converter")
	})

	t.Run("verify without pdf", func(t *testing.T) {
		path := writeNotebook(t, "analysis.ipynb")
		_, err := Export(context.Background(), path, ExportOptions{}, PDFOptions{Verify: true})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--verify requires --pdf")
	})
}

func TestExportReport(t *testing.T) {
	path := writeNotebook(t, "analysis.ipynb")
	reportPath := filepath.Join(filepath.Dir(path), "analysis_report.pdf")

	result, err := ExportReport(path, reportPath, false)
	require.NoError(t, err)

	assert.Equal(t, reportPath, result.PDFPath)
	assert.Empty(t, result.HTMLPath)
	assert.Equal(t, 2, result.Cells)
	assert.Equal(t, 1, result.Annotated)
	assert.Equal(t, 2, result.Strokes)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	require.Greater(t, len(data), 4)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestDefaultHTMLPath(t *testing.T) {
	assert.Equal(t, "analysis_overlay.html", DefaultHTMLPath("analysis.ipynb"))
	assert.Equal(t, filepath.Join("nested", "dir", "nb_overlay.html"),
		DefaultHTMLPath(filepath.Join("nested", "dir", "nb.ipynb")))
	assert.Equal(t, "notes_overlay.html", DefaultHTMLPath("notes"))
}

func TestResolvePaths(t *testing.T) {
	opts := ExportOptions{}
	assert.Equal(t, "nb_overlay.html", opts.ResolveHTMLPath("nb.ipynb"))
	assert.Equal(t, "nb.ipynb", opts.ResolveTitle(filepath.Join("some", "dir", "nb.ipynb")))

	explicit := ExportOptions{HTMLPath: "out.html", Title: "Custom"}
	assert.Equal(t, "out.html", explicit.ResolveHTMLPath("nb.ipynb"))
	assert.Equal(t, "Custom", explicit.ResolveTitle("nb.ipynb"))
}

func TestPDFOptions(t *testing.T) {
	t.Run("effective TTL", func(t *testing.T) {
		assert.Equal(t, 24*time.Hour, PDFOptions{CacheTTL: 24 * time.Hour}.GetEffectiveTTL())
		assert.Equal(t, time.Duration(0), PDFOptions{CacheTTL: 24 * time.Hour, NoCache: true}.GetEffectiveTTL())
	})

	t.Run("convert options", func(t *testing.T) {
		options := PDFOptions{}.ConvertOptions()
		assert.Equal(t, "A4", options.Format)
		assert.True(t, options.PrintBackground)

		options = PDFOptions{Format: "Letter", Landscape: true, Margin: "10mm", NoBackground: true}.ConvertOptions()
		assert.Equal(t, "Letter", options.Format)
		assert.True(t, options.Landscape)
		assert.Equal(t, "10mm", options.Margin)
		assert.False(t, options.PrintBackground)
	})

	t.Run("validate", func(t *testing.T) {
		assert.NoError(t, PDFOptions{}.Validate())
		assert.NoError(t, PDFOptions{Converter: "chromium"}.Validate())
		assert.Error(t, PDFOptions{Converter: "wkhtmltopdf"}.Validate())
		assert.Error(t, PDFOptions{Verify: true}.Validate())
		assert.NoError(t, PDFOptions{Verify: true, PDFPath: "out.pdf"}.Validate())
	})
}
