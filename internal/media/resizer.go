package media

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	MaxWidth  = 1920
	MaxHeight = 1080
)

// DownsampleFile rewrites the file in place so the image fits within
// MaxWidth x MaxHeight, preserving aspect ratio and using Catmull-Rom
// resampling. Images already within bounds are left untouched. Callers
// treat any error as non-fatal: the upload keeps the original bytes.
func DownsampleFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	resized, err := Downsample(data)
	if err != nil {
		return err
	}
	if resized == nil {
		return nil
	}

	if err := os.WriteFile(path, resized, 0o644); err != nil {
		return fmt.Errorf("write resized image: %w", err)
	}
	return nil
}

// Downsample returns re-encoded bytes fitting within the bounds, or nil
// when the image already fits. webp decodes via the x/image decoder but has
// no Go encoder, so oversized webp uploads come back as an error and stay
// at their original size.
func Downsample(data []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= MaxWidth && height <= MaxHeight {
		return nil, nil
	}

	scaledWidth, scaledHeight := fitWithin(width, height, MaxWidth, MaxHeight)

	scaled := image.NewRGBA(image.Rect(0, 0, scaledWidth, scaledHeight))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, xdraw.Over, nil)

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: 90})
	case "png":
		err = png.Encode(&buf, scaled)
	case "gif":
		err = gif.Encode(&buf, scaled, nil)
	default:
		return nil, fmt.Errorf("no encoder for format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

func fitWithin(width, height, maxWidth, maxHeight int) (int, int) {
	scale := float64(maxWidth) / float64(width)
	if s := float64(maxHeight) / float64(height); s < scale {
		scale = s
	}

	scaledWidth := int(float64(width) * scale)
	scaledHeight := int(float64(height) * scale)
	if scaledWidth < 1 {
		scaledWidth = 1
	}
	if scaledHeight < 1 {
		scaledHeight = 1
	}
	return scaledWidth, scaledHeight
}
