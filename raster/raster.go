// Package raster renders SVG sources to PNG thumbnails.
package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"svgcss/converter"
	"svgcss/model"
	"svgcss/preview"
)

const (
	DefaultSize = 128
	MaxSize     = 2048
)

var ErrInvalidSVG = errors.New("invalid svg")

// PNG renders svg centered in a size×size transparent square, preserving its
// aspect ratio. Sources the converter rejects are not rasterized.
func PNG(svg string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	if converter.Convert(svg).Kind != model.ResultValid {
		return nil, ErrInvalidSVG
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader([]byte(svg)), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSVG, err)
	}

	w, h := icon.ViewBox.W, icon.ViewBox.H
	if w <= 0 || h <= 0 {
		w, h = float64(size), float64(size)
	}
	scale := float64(size) / max(w, h)
	outW, outH := int(w*scale), int(h*scale)
	offX, offY := (size-outW)/2, (size-outH)/2
	icon.SetTarget(float64(offX), float64(offY), float64(outW), float64(outH))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Source unwraps input that is a data URI from converter.Convert, or a CSS
// declaration holding one, back to SVG markup. Anything else is returned
// unchanged.
func Source(input string) string {
	s := strings.TrimSpace(input)
	if uri, ok := preview.ExtractURL(s); ok {
		s = uri
	}
	if svg, ok := converter.Decode(s); ok {
		return svg
	}
	return input
}
