package raster

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svgcss/converter"
)

const square = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><rect width="10" height="10" fill="#ff0000"/></svg>`

func TestPNGSize(t *testing.T) {
	data, err := PNG(square, 32)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())

	r, _, _, a := img.At(16, 16).RGBA()
	assert.NotZero(t, a)
	assert.NotZero(t, r)
}

func TestPNGDefaultSize(t *testing.T) {
	data, err := PNG(square, 0)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultSize, img.Bounds().Dx())
}

func TestPNGRejectsNonSVG(t *testing.T) {
	_, err := PNG("not svg", 32)
	assert.ErrorIs(t, err, ErrInvalidSVG)

	_, err = PNG("   ", 32)
	assert.ErrorIs(t, err, ErrInvalidSVG)
}

func TestSource(t *testing.T) {
	uri := converter.Convert(square).DataURI

	assert.Equal(t, square, Source(uri))
	assert.Equal(t, square, Source(`background-image: url("`+uri+`");`))
	assert.Equal(t, square, Source(square))
	assert.Equal(t, "plain", Source("plain"))

	data, err := PNG(Source(uri), 8)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
