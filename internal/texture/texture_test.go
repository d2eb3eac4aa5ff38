package texture

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ftrvxmtrx/tga"

	"smartcourt/internal/court"
)

func writeImage(t *testing.T, name string, encode func(*os.File, image.Image) error) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTexture(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		encode func(*os.File, image.Image) error
	}{
		{"png", "court.png", func(f *os.File, m image.Image) error { return png.Encode(f, m) }},
		{"tga", "court.tga", func(f *os.File, m image.Image) error { return tga.Encode(f, m) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeImage(t, tt.file, tt.encode)
			img, err := LoadTexture(path)
			if err != nil {
				t.Fatal(err)
			}
			if img.Bounds() != image.Rect(0, 0, 4, 2) {
				t.Fatalf("bounds = %v", img.Bounds())
			}
			if got := img.NRGBAAt(1, 1); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 255}) {
				t.Errorf("pixel = %v", got)
			}
		})
	}
}

func TestLoadTextureRejectsUnknownExtension(t *testing.T) {
	if _, err := LoadTexture("court.bmp"); err == nil {
		t.Error("expected error for .bmp")
	}
}

func TestCacheProducesOnce(t *testing.T) {
	c := NewCache()
	c.Register("court", func() (*image.NRGBA, error) {
		return image.NewNRGBA(image.Rect(0, 0, 2, 2)), nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.Resolve("court") == nil {
				t.Error("Resolve returned nil")
			}
		}()
	}
	wg.Wait()
	first := c.Resolve("court")
	if c.Resolve("court") != first {
		t.Error("cache returned a different image")
	}
	if c.Resolve("missing") != nil {
		t.Error("unregistered name resolved")
	}
}

func TestCacheRemembersFailure(t *testing.T) {
	c := NewCache()
	calls := 0
	c.Register("broken", func() (*image.NRGBA, error) {
		calls++
		return nil, errors.New("boom")
	})
	c.Resolve("broken")
	c.Resolve("broken")
	if calls != 1 {
		t.Errorf("failing source called %d times", calls)
	}
}

func TestCourtCache(t *testing.T) {
	c := CourtCache("court", court.Default(), 64, 128, "")
	img := c.Resolve("court")
	if img == nil || img.Bounds().Dx() != 64 || img.Bounds().Dy() != 128 {
		t.Fatalf("procedural court texture = %v", img)
	}

	path := writeImage(t, "override.png", func(f *os.File, m image.Image) error { return png.Encode(f, m) })
	c = CourtCache("court", court.Default(), 64, 128, path)
	if img := c.Resolve("court"); img == nil || img.Bounds().Dx() != 4 {
		t.Errorf("override not used: %v", img)
	}
}
