package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/ratemycafe/internal/httperr"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestInspect_PNG(t *testing.T) {
	info, err := Inspect(pngBytes(t, 4, 3))
	require.NoError(t, err)
	assert.Equal(t, "png", info.Format)
	assert.Equal(t, "image/png", info.ContentType)
	assert.Equal(t, 4, info.Width)
	assert.Equal(t, 3, info.Height)
}

func TestInspect_RejectsNonImages(t *testing.T) {
	_, err := Inspect([]byte("definitely not an image"))
	assert.True(t, httperr.IsBusiness(err, "not_an_image"))

	_, err = Inspect(nil)
	assert.True(t, httperr.IsBusiness(err, "empty_file"))
}

func TestToWebP(t *testing.T) {
	out, err := ToWebP(pngBytes(t, 8, 8), 80)
	require.NoError(t, err)

	info, err := Inspect(out)
	require.NoError(t, err)
	assert.Equal(t, "webp", info.Format)
}

func TestWebPName(t *testing.T) {
	assert.Equal(t, "logo.webp", WebPName("logo.png"))
	assert.Equal(t, "logo.webp", WebPName("logo"))
}

func TestPrepare(t *testing.T) {
	src := File{Name: "logo.png", Data: pngBytes(t, 2, 2)}

	p, err := Prepare(src, false)
	require.NoError(t, err)
	assert.Equal(t, "logo.png", p.Name)
	assert.Equal(t, "image/png", p.ContentType)
	assert.Equal(t, src.Data, p.Data)

	p, err = Prepare(src, true)
	require.NoError(t, err)
	assert.Equal(t, "logo.webp", p.Name)
	assert.Equal(t, "image/webp", p.ContentType)

	info, err := Inspect(p.Data)
	require.NoError(t, err)
	assert.Equal(t, "webp", info.Format)

	_, err = Prepare(File{Name: "notes.txt", Data: []byte("hello")}, true)
	assert.True(t, httperr.IsBusiness(err, "not_an_image"))
}
