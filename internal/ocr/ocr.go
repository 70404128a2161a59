// Package ocr defines the contract for the optical recognition engine that
// turns a photographed manifest into raw text. Engines are injected so the
// extraction pipeline can be exercised with synthetic text.
package ocr

import (
	"context"
	"errors"
)

// ImageFormat identifies the content type of an OCR input image.
type ImageFormat string

const (
	ImageFormatPNG  ImageFormat = "image/png"
	ImageFormatJPEG ImageFormat = "image/jpeg"
	ImageFormatGIF  ImageFormat = "image/gif"
	ImageFormatTIFF ImageFormat = "image/tiff"
	ImageFormatBMP  ImageFormat = "image/bmp"
	ImageFormatWebP ImageFormat = "image/webp"
)

// ErrEmptyImage is returned when no image bytes were supplied.
var ErrEmptyImage = errors.New("ocr: empty image")

// Input is a single image submitted for recognition.
type Input struct {
	// ID is echoed back in the Result.
	ID string
	// Image is the encoded payload in Format.
	Image  []byte
	Format ImageFormat
	// Languages are Tesseract language codes ("swe", "eng").
	Languages []string
	// DPI is the effective resolution; zero means unknown.
	DPI int

	maxDim int
}

// Result is the recognized text for one Input.
type Result struct {
	InputID string
	Text    string
	// Confidence is the mean word confidence in [0,1], zero if unknown.
	Confidence float64
}

// Engine recognizes text in a single image.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, in Input) (Result, error)
}

// EngineFunc adapts a plain function to Engine.
type EngineFunc func(ctx context.Context, in Input) (Result, error)

// Name implements Engine.
func (f EngineFunc) Name() string { return "func" }

// Recognize implements Engine.
func (f EngineFunc) Recognize(ctx context.Context, in Input) (Result, error) { return f(ctx, in) }
