package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svgcss/converter"
	"svgcss/model"
)

func TestSynchronizeEmpty(t *testing.T) {
	in, out := Synchronize("", converter.Convert(""), model.DefaultOptions())
	assert.Equal(t, NoSVG, in.Placeholder)
	assert.Equal(t, NoResult, out.Placeholder)
	assert.Nil(t, out.Background)
}

func TestSynchronizeInvalid(t *testing.T) {
	in, out := Synchronize("hello", converter.Convert("hello"), model.DefaultOptions())
	assert.Equal(t, InvalidSVG, in.Placeholder)
	assert.Empty(t, in.Markup)
	assert.Equal(t, NoResult, out.Placeholder)
}

func TestSynchronizeValid(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg"><circle r="3"/></svg>`
	res := converter.Convert(src)
	opts := model.BackgroundOptions{Repeat: model.RepeatY, Position: model.LeftBottom}

	in, out := Synchronize(src, res, opts)
	assert.Equal(t, src, in.Markup)
	require.NotNil(t, out.Background)
	assert.Equal(t, res.DataURI, out.Background.Image)
	assert.Equal(t, "contain", out.Background.Size)
	assert.Equal(t, model.RepeatY, out.Background.Repeat)
	assert.Equal(t, model.LeftBottom, out.Background.Position)
}

func TestSynchronizeFollowsOptions(t *testing.T) {
	src := "<svg></svg>"
	res := converter.Convert(src)

	_, a := Synchronize(src, res, model.DefaultOptions())
	_, b := Synchronize(src, res, model.BackgroundOptions{Repeat: model.RepeatBoth, Position: model.RightTop})

	require.NotNil(t, a.Background)
	require.NotNil(t, b.Background)
	assert.Equal(t, a.Background.Image, b.Background.Image)
	assert.NotEqual(t, a.Background.Repeat, b.Background.Repeat)
	assert.NotEqual(t, a.Background.Position, b.Background.Position)
}

func TestSynchronizeMissingURI(t *testing.T) {
	_, out := Synchronize("<svg></svg>", model.CSSResult{Kind: model.ResultValid}, model.DefaultOptions())
	assert.Equal(t, NoURL, out.Placeholder)
	assert.Nil(t, out.Background)
}

func TestSynchronizeUsesDataURIDirectly(t *testing.T) {
	// A URI the CSS tokenizer could not pull back out of a declaration.
	result := model.CSSResult{Kind: model.ResultValid, DataURI: `data:image/svg+xml;base64,a")b`}
	_, out := Synchronize("<svg></svg>", result, model.DefaultOptions())
	require.NotNil(t, out.Background)
	assert.Equal(t, result.DataURI, out.Background.Image)
}

func TestExtractURL(t *testing.T) {
	cases := map[string]string{
		`background-image: url("data:image/svg+xml;base64,PHN2Zz4=");`: "data:image/svg+xml;base64,PHN2Zz4=",
		`background-image: url('data:image/svg+xml;base64,AA==');`:     "data:image/svg+xml;base64,AA==",
		`background: red url( "a.svg" ) no-repeat;`:                    "a.svg",
	}
	for in, want := range cases {
		got, ok := ExtractURL(in)
		require.True(t, ok, "input %q", in)
		assert.Equal(t, want, got)
	}
}

func TestExtractURLFailures(t *testing.T) {
	for _, in := range []string{"", "color: red;", converter.ErrorText, `background-image: url(a.svg);`} {
		_, ok := ExtractURL(in)
		assert.False(t, ok, "input %q", in)
	}
}

func TestFromCSS(t *testing.T) {
	src := "<svg></svg>"
	text := converter.Render(converter.Convert(src), model.DefaultOptions())

	in, out := FromCSS(src, text, model.DefaultOptions())
	assert.Equal(t, src, in.Markup)
	require.NotNil(t, out.Background)
	assert.Equal(t, converter.Convert(src).DataURI, out.Background.Image)

	_, out = FromCSS(src, "background-color: blue;", model.DefaultOptions())
	assert.Equal(t, NoURL, out.Placeholder)

	_, out = FromCSS("nope", converter.ErrorText, model.DefaultOptions())
	assert.Equal(t, NoResult, out.Placeholder)
}
