package soft

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestNewPixmapClamps(t *testing.T) {
	p := NewPixmap(0, -3)
	if p.Width() != 1 || p.Height() != 1 {
		t.Errorf("NewPixmap(0,-3) = %dx%d, want 1x1", p.Width(), p.Height())
	}
}

func TestPixmapSetGet(t *testing.T) {
	p := NewPixmap(4, 3)
	c := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	p.SetRGBA(2, 1, c)
	if got := p.RGBAAt(2, 1); got != c {
		t.Errorf("RGBAAt() = %v, want %v", got, c)
	}
	p.SetRGBA(9, 9, c) // ignored
	if got := p.RGBAAt(9, 9); got != (color.RGBA{}) {
		t.Errorf("out of range RGBAAt() = %v, want transparent", got)
	}
}

func TestPixmapBlend(t *testing.T) {
	p := NewPixmap(1, 1)
	p.Clear(color.RGBA{B: 255, A: 255})

	p.BlendRGBA(0, 0, color.RGBA{})
	if got := p.RGBAAt(0, 0); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("transparent blend changed pixel to %v", got)
	}

	// Premultiplied half red over opaque blue.
	p.BlendRGBA(0, 0, color.RGBA{R: 128, A: 128})
	got := p.RGBAAt(0, 0)
	if got.R != 128 || got.B != 127 || got.A != 255 {
		t.Errorf("blend = %v, want {128 0 127 255}", got)
	}
}

func TestPixmapSavePNG(t *testing.T) {
	p := NewPixmap(3, 2)
	p.Clear(color.RGBA{G: 255, A: 255})
	path := filepath.Join(t.TempDir(), "out.png")
	if err := p.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("decoded bounds = %v", img.Bounds())
	}
}
