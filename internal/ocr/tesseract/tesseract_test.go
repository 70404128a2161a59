package tesseract

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os/exec"
	"testing"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/routescan/internal/ocr"
)

func ensureTesseractAvailable(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("tesseract"); err != nil {
		t.Skip("tesseract not installed in PATH")
	}
}

func renderLine(t *testing.T, text string) []byte {
	t.Helper()

	small := image.NewRGBA(image.Rect(0, 0, 160, 24))
	draw.Draw(small, small.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  small,
		Src:  image.Black,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, 16),
	}
	d.DrawString(text)

	big := image.NewRGBA(image.Rect(0, 0, 640, 96))
	draw.NearestNeighbor.Scale(big, big.Bounds(), small, small.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, big); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestEngineRecognize(t *testing.T) {
	ensureTesseractAvailable(t)

	e := New("eng")
	res, err := e.Recognize(context.Background(), ocr.Input{
		ID:     "line-1",
		Image:  renderLine(t, "Storgatan 12"),
		Format: ocr.ImageFormatPNG,
		DPI:    300,
	})
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if res.InputID != "line-1" {
		t.Errorf("InputID = %q", res.InputID)
	}
	if res.Text == "" {
		t.Errorf("Recognize() returned no text")
	}
	t.Logf("recognized %q (confidence %.2f)", res.Text, res.Confidence)
}

func TestEngineRecognizeEmptyImage(t *testing.T) {
	_, err := New().Recognize(context.Background(), ocr.Input{})
	if !errors.Is(err, ocr.ErrEmptyImage) {
		t.Errorf("Recognize() error = %v, want ErrEmptyImage", err)
	}
}

func TestEngineRecognizeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Recognize(ctx, ocr.Input{Image: []byte{1}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Recognize() error = %v, want context.Canceled", err)
	}
}

func TestName(t *testing.T) {
	if got := New().Name(); got != "tesseract" {
		t.Errorf("Name() = %q", got)
	}
}
