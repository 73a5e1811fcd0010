package debug

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/image/bmp"
)

func TestCaptureFromPixels_FlipsRows(t *testing.T) {
	dir := t.TempDir()
	sc, err := NewScreenshotCapture(filepath.Join(dir, "shots"), "kv6view", "")
	if err != nil {
		t.Fatal(err)
	}
	sc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	// 2x2, bottom row red, top row blue (OpenGL order: bottom first).
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}

	path, err := sc.CaptureFromPixels(pixels, 2, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels failed: %v", err)
	}
	if want := filepath.Join(dir, "shots", "kv6view_2024-05-01_12-30-00.png"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening screenshot: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding screenshot: %v", err)
	}

	blue := color.RGBA{0, 0, 255, 255}
	red := color.RGBA{255, 0, 0, 255}
	if got := color.RGBAModel.Convert(img.At(0, 0)); got != blue {
		t.Errorf("top-left = %v, want %v", got, blue)
	}
	if got := color.RGBAModel.Convert(img.At(1, 1)); got != red {
		t.Errorf("bottom-right = %v, want %v", got, red)
	}
}

func TestCaptureFromPixels_SameSecond(t *testing.T) {
	dir := t.TempDir()
	sc, err := NewScreenshotCapture(dir, "shot", FormatPNG)
	if err != nil {
		t.Fatal(err)
	}
	sc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	pixels := make([]byte, 4)
	first, err := sc.CaptureFromPixels(pixels, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	second, err := sc.CaptureFromPixels(pixels, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Errorf("second capture overwrote %q", first)
	}
}

func TestCaptureFromPixels_SizeMismatch(t *testing.T) {
	sc, err := NewScreenshotCapture(t.TempDir(), "shot", FormatPNG)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sc.CaptureFromPixels(make([]byte, 7), 1, 2); err == nil {
		t.Error("expected error for short pixel buffer")
	}
}

func TestCaptureFromPixels_BMP(t *testing.T) {
	sc, err := NewScreenshotCapture(t.TempDir(), "shot", FormatBMP)
	if err != nil {
		t.Fatal(err)
	}

	pixels := []byte{10, 20, 30, 255}
	path, err := sc.CaptureFromPixels(pixels, 1, 1)
	if err != nil {
		t.Fatalf("CaptureFromPixels failed: %v", err)
	}
	if !strings.HasSuffix(path, ".bmp") {
		t.Errorf("path = %q, want .bmp suffix", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := bmp.Decode(f)
	if err != nil {
		t.Fatalf("decoding BMP: %v", err)
	}
	r, g, b, _ := img.At(0, 0).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("pixel = (%d, %d, %d), want (10, 20, 30)", r>>8, g>>8, b>>8)
	}
}

func TestNewScreenshotCapture_UnknownFormat(t *testing.T) {
	if _, err := NewScreenshotCapture(t.TempDir(), "shot", "gif"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
