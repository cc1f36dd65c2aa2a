package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedExtension(t *testing.T) {
	assert.True(t, AllowedExtension("photo.png"))
	assert.True(t, AllowedExtension("photo.JPG"))
	assert.True(t, AllowedExtension("archive.tar.webp"))
	assert.False(t, AllowedExtension("malware.exe"))
	assert.False(t, AllowedExtension("noext"))
	assert.False(t, AllowedExtension(""))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "passwd", SanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "my_photo_1.png", SanitizeFilename("my photo 1.png"))
	assert.Equal(t, "hidden.png", SanitizeFilename(".hidden.png"))
}

func TestUniqueFilename(t *testing.T) {
	first := UniqueFilename("x.png")
	second := UniqueFilename("x.png")

	assert.NotEqual(t, "x.png", first)
	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(first, "x_"))
	assert.True(t, strings.HasSuffix(first, ".png"))
}

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDownsampleLeavesSmallImagesAlone(t *testing.T) {
	data := encodePNG(t, 640, 480)

	resized, err := Downsample(data)
	require.NoError(t, err)
	assert.Nil(t, resized)
}

func TestDownsampleFitsWithinBounds(t *testing.T) {
	data := encodePNG(t, 4000, 1000)

	resized, err := Downsample(data)
	require.NoError(t, err)
	require.NotNil(t, resized)

	img, format, err := image.Decode(bytes.NewReader(resized))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 1920, img.Bounds().Dx())
	assert.Equal(t, 480, img.Bounds().Dy())
}

func TestDownsampleRejectsGarbage(t *testing.T) {
	_, err := Downsample([]byte("not an image"))
	assert.Error(t, err)
}

func TestFitWithin(t *testing.T) {
	w, h := fitWithin(3840, 2160, 1920, 1080)
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)

	w, h = fitWithin(1000, 4000, 1920, 1080)
	assert.Equal(t, 270, w)
	assert.Equal(t, 1080, h)
}
