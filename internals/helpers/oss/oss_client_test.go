package helper

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildObjectKey(t *testing.T) {
	now := time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC)
	key := buildObjectKey("/sekolahku/", "achievements", "Juara Lomba.PNG", now)

	assert.True(t, strings.HasPrefix(key, "sekolahku/achievements/2025/03/juara-lomba-"), key)
	assert.True(t, strings.HasSuffix(key, ".webp"), key)

	key = buildObjectKey("", "", "!!!.jpg", now)
	assert.True(t, strings.HasPrefix(key, "2025/03/item-"), key)
}

func TestPublicURLAndKeyRoundTrip(t *testing.T) {
	s := &OSSService{Endpoint: "https://oss-ap-southeast-5.aliyuncs.com", BucketName: "sekolah"}
	u := s.PublicURL("a/b.webp")
	assert.Equal(t, "https://sekolah.oss-ap-southeast-5.aliyuncs.com/a/b.webp", u)

	key, ok := s.keyFromPublicURL(u)
	require.True(t, ok)
	assert.Equal(t, "a/b.webp", key)

	_, ok = s.keyFromPublicURL("https://example.com/a/b.webp")
	assert.False(t, ok)

	s.PublicBase = "https://cdn.sekolah.id"
	assert.Equal(t, "https://cdn.sekolah.id/a/b.webp", s.PublicURL("/a/b.webp"))
}

func TestConvertToWebPDownscales(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 200))
	for x := 0; x < 400; x++ {
		for y := 0; y < 200; y++ {
			src.Set(x, y, color.RGBA{uint8(x), uint8(y), 120, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	out, err := ConvertToWebP(&buf, "foto.png", WebPOptions{MaxW: 100, MaxH: 100, Quality: 70})
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestConvertToWebPRejectsNonImage(t *testing.T) {
	_, err := ConvertToWebP(strings.NewReader("bukan gambar"), "catatan.txt", WebPOptions{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
