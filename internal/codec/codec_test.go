package codec

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/annotator/internal/shape"
)

func sampleElements() []shape.Element {
	d := shape.DefaultStyle()
	r := shape.NewRect(d)
	r.SetBounds(image.Rect(10, 20, 60, 70))
	r.SetField(shape.FieldLineColor, color.RGBA{0, 128, 255, 255})

	a := shape.NewArrow(d)
	a.SetPoints([]image.Point{{100, 100}, {40, 10}})

	sb := shape.NewSpeechBubble(d)
	sb.SetBounds(image.Rect(200, 200, 300, 240))
	sb.SetText("hi\nthere")
	sb.SetBounds(image.Rect(200, 200, 300, 260))
	sb.SetTail(image.Pt(180, 300))

	st := shape.NewStepLabel(d)
	st.SetBounds(image.Rect(5, 5, 37, 37))
	st.SetNumber(3)

	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.SetRGBA(1, 1, color.RGBA{9, 8, 7, 255})
	bm := shape.NewBitmap(src)
	bm.SetBounds(image.Rect(50, 50, 56, 54))

	return []shape.Element{r, a, sb, st, bm}
}

func TestRoundTrip(t *testing.T) {
	in := sampleElements()
	data, err := Marshal(Document{CounterStart: 4, Elements: in})
	require.NoError(t, err)
	assert.Contains(t, string(data), "kind: speechbubble")

	out, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, 4, out.CounterStart)
	require.Len(t, out.Elements, len(in))
	for i := range in {
		assert.Equal(t, in[i].ID(), out.Elements[i].ID())
		assert.Equal(t, in[i].Mode(), out.Elements[i].Mode())
		assert.Equal(t, in[i].Bounds(), out.Elements[i].Bounds(), in[i].Mode().String())
		for _, k := range in[i].FieldKeys() {
			want, _ := in[i].Field(k)
			got, _ := out.Elements[i].Field(k)
			assert.Equal(t, want, got, "%s %s", in[i].Mode(), k)
		}
		assert.Equal(t, shape.StatusIdle, out.Elements[i].Status())
	}
	assert.Equal(t, []image.Point{{100, 100}, {40, 10}}, out.Elements[1].(*shape.Line).Points())
	assert.Equal(t, image.Pt(180, 300), out.Elements[2].(*shape.SpeechBubble).Tail())
	assert.Equal(t, 3, out.Elements[3].(*shape.StepLabel).Number())
	bm := out.Elements[4].(*shape.Bitmap)
	require.NotNil(t, bm.Image())
	assert.Equal(t, color.RGBA{9, 8, 7, 255}, bm.Image().RGBAAt(1, 1))
}

func TestCropIsNotStored(t *testing.T) {
	c := shape.NewCrop()
	c.SetBounds(image.Rect(0, 0, 5, 5))
	data, err := Marshal(Document{Elements: []shape.Element{c}})
	require.NoError(t, err)
	out, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Empty(t, out.Elements)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Unmarshal([]byte("version: 99\n"))
	assert.Error(t, err)

	_, err = Unmarshal([]byte("version: 1\nelements:\n  - kind: hexagon\n"))
	assert.ErrorContains(t, err, "element 0")

	_, err = Unmarshal([]byte("version: 1\nelements:\n  - kind: rect\n    fields: {line_color: 12}\n"))
	assert.ErrorContains(t, err, "line_color")

	_, err = Unmarshal([]byte("version: 1\nelements:\n  - kind: rect\n    id: not-a-uuid\n"))
	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 128, 0, 255}, c)
	c, err = ParseColor("#01020304")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{1, 2, 3, 4}, c)
	assert.Equal(t, "#01020304", FormatColor(c))
	_, err = ParseColor("red")
	assert.Error(t, err)
}

func TestEncodeWritesNothingOnError(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, Document{Elements: []shape.Element{shape.NewBitmap(nil)}})
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}
