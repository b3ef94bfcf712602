package images

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeTestImage(t *testing.T, w, h int, enc func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, enc(&buf, img))
	return buf.Bytes()
}

func TestNormalizeResizesToSquarePNG(t *testing.T) {
	src := encodeTestImage(t, 500, 400, func(buf *bytes.Buffer, img image.Image) error {
		return png.Encode(buf, img)
	})

	n := NewNormalizer(250)
	out, err := n.Normalize(src)
	require.NoError(t, err)

	decoded, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 250, decoded.Bounds().Dx())
	assert.Equal(t, 250, decoded.Bounds().Dy())
}

func TestNormalizeAcceptsJPEG(t *testing.T) {
	src := encodeTestImage(t, 300, 300, func(buf *bytes.Buffer, img image.Image) error {
		return jpeg.Encode(buf, img, nil)
	})

	n := NewNormalizer(0) // falls back to DefaultAvatarSize
	out, err := n.Normalize(src)
	require.NoError(t, err)

	decoded, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, DefaultAvatarSize, decoded.Bounds().Dx())
}

func TestNormalizeRejectsNonImage(t *testing.T) {
	n := NewNormalizer(250)
	_, err := n.Normalize([]byte("definitely not an image"))
	assert.Error(t, err)
}
