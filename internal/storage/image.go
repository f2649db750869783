package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	MaxImageWidth = 800
	webpQuality   = 80
)

var ErrUnsupportedImage = errors.New("unsupported image format")

var allowedFormats = map[string]bool{"jpeg": true, "png": true, "webp": true}

// ToWebP decodes a jpeg, png or webp image, shrinks it to maxWidth keeping
// the aspect ratio and re-encodes it as webp.
func ToWebP(r io.Reader, maxWidth int) ([]byte, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if !allowedFormats[format] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, format)
	}

	img := src
	if b := src.Bounds(); maxWidth > 0 && b.Dx() > maxWidth {
		height := b.Dy() * maxWidth / b.Dx()
		if height < 1 {
			height = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}
