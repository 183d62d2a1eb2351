package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
)

type memStorage struct {
	key         string
	contentType string
	body        []byte
}

func (m *memStorage) Put(_ context.Context, key, contentType string, body []byte) (string, error) {
	m.key, m.contentType, m.body = key, contentType, body
	return "https://cdn.test/" + key, nil
}

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestToWebPDownscales(t *testing.T) {
	out, err := ToWebP(bytes.NewReader(pngOf(t, 800, 400)), 200)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not webp: %v", err)
	}
	if cfg.Width != 200 || cfg.Height != 100 {
		t.Fatalf("expected 200x100, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestToWebPKeepsSmallImages(t *testing.T) {
	out, err := ToWebP(bytes.NewReader(pngOf(t, 40, 60)), 200)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 40 || cfg.Height != 60 {
		t.Fatalf("expected 40x60, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestToWebPRejectsGarbage(t *testing.T) {
	_, err := ToWebP(strings.NewReader("not an image"), 200)
	if !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}
}

func TestUploaderLogo(t *testing.T) {
	st := &memStorage{}
	url, err := NewUploader(st).Logo(context.Background(), 9, pngOf(t, 1024, 1024))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if !strings.HasPrefix(st.key, "logos/9/") || !strings.HasSuffix(st.key, ".webp") {
		t.Fatalf("unexpected key %q", st.key)
	}
	if st.contentType != "image/webp" || len(st.body) == 0 {
		t.Fatalf("unexpected object %q (%d bytes)", st.contentType, len(st.body))
	}
	if url != "https://cdn.test/"+st.key {
		t.Fatalf("unexpected url %q", url)
	}
}
