package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
)

func pngOf(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestToWebPResizesWideImages(t *testing.T) {
	out, err := ToWebP(pngOf(t, 1600, 400), MaxImageWidth)
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}

func TestToWebPKeepsSmallImages(t *testing.T) {
	out, err := ToWebP(pngOf(t, 300, 120), MaxImageWidth)
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Width)
}

func TestToWebPRejectsGarbage(t *testing.T) {
	_, err := ToWebP(strings.NewReader("not an image"), MaxImageWidth)
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestServiceImageKey(t *testing.T) {
	key := ServiceImageKey("Corte Barba Clásico")

	assert.True(t, strings.HasPrefix(key, "servicios/corte-barba-clasico-"), key)
	assert.True(t, strings.HasSuffix(key, ".webp"))
	assert.NotEqual(t, key, ServiceImageKey("Corte Barba Clásico"))
}

func TestNewS3StoreDisabledWithoutBucket(t *testing.T) {
	assert.Nil(t, NewS3Store(config.S3Config{}))

	s := NewS3Store(config.S3Config{Bucket: "fotos", Region: "us-east-1", AccessKey: "ak", SecretKey: "sk", PublicBaseURL: "https://cdn.example/"})
	require.NotNil(t, s)
	assert.Equal(t, "https://cdn.example", s.baseURL)
}
