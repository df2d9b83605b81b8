package report

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// rasterTargetSize is the long-side pixel budget for overlay thumbnails.
const rasterTargetSize = 400

// Rasterize renders SVG markup to PNG bytes. The output fits
// rasterTargetSize on its long side and preserves the surface's aspect
// ratio; maroto embeds raster formats only, so vector overlays go through
// here before placement.
func Rasterize(svgMarkup string, width, height float64) ([]byte, error) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(svgMarkup), oksvg.StrictErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}

	if width <= 0 || height <= 0 {
		width, height = 100, 100
	}
	aspectRatio := width / height

	var targetWidth, targetHeight int
	if aspectRatio >= 1.0 {
		// Landscape or square: fix width, calculate height
		targetWidth = rasterTargetSize
		targetHeight = int(float64(rasterTargetSize) / aspectRatio)
	} else {
		// Portrait: fix height, calculate width
		targetHeight = rasterTargetSize
		targetWidth = int(float64(rasterTargetSize) * aspectRatio)
	}
	if targetWidth < 1 {
		targetWidth = 1
	}
	if targetHeight < 1 {
		targetHeight = 1
	}

	icon.SetTarget(0, 0, float64(targetWidth), float64(targetHeight))

	rgba := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	scanner := rasterx.NewScannerGV(targetWidth, targetHeight, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(targetWidth, targetHeight, scanner)
	icon.Draw(raster, 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}

	return buf.Bytes(), nil
}
