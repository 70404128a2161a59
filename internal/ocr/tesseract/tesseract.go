// Package tesseract implements ocr.Engine on top of the Tesseract library
// through gosseract.
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/routescan/internal/ocr"
)

// Engine recognizes text with a fresh gosseract client per call.
type Engine struct {
	clientFactory func() *gosseract.Client
	languages     []string
}

// New returns an Engine. languages are the defaults used when an Input
// carries no language hint; Swedish is assumed when none are given.
func New(languages ...string) *Engine {
	if len(languages) == 0 {
		languages = []string{"swe"}
	}
	return &Engine{clientFactory: gosseract.NewClient, languages: languages}
}

func (e *Engine) Name() string { return "tesseract" }

type outcome struct {
	res ocr.Result
	err error
}

// Recognize runs Tesseract on in. The native call cannot be interrupted, so
// on cancellation Recognize returns ctx.Err() straight away and the client
// is closed once the native call finishes.
func (e *Engine) Recognize(ctx context.Context, in ocr.Input) (ocr.Result, error) {
	if len(in.Image) == 0 {
		return ocr.Result{}, ocr.ErrEmptyImage
	}
	if err := ctx.Err(); err != nil {
		return ocr.Result{}, err
	}

	done := make(chan outcome, 1)
	go func() {
		c := e.clientFactory()
		defer c.Close()
		res, err := e.recognizeWithClient(c, in)
		done <- outcome{res: res, err: err}
	}()

	select {
	case <-ctx.Done():
		return ocr.Result{}, ctx.Err()
	case o := <-done:
		return o.res, o.err
	}
}

func (e *Engine) recognizeWithClient(c *gosseract.Client, in ocr.Input) (ocr.Result, error) {
	if err := c.SetImageFromBytes(in.Image); err != nil {
		return ocr.Result{}, fmt.Errorf("set image: %w", err)
	}

	langs := in.Languages
	if len(langs) == 0 {
		langs = e.languages
	}
	if err := c.SetLanguage(langs...); err != nil {
		return ocr.Result{}, fmt.Errorf("set languages: %w", err)
	}
	if in.DPI > 0 {
		if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(in.DPI)); err != nil {
			return ocr.Result{}, fmt.Errorf("set dpi: %w", err)
		}
	}
	// Manifests are columns of short lines; treat the page as one block.
	if err := c.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return ocr.Result{}, fmt.Errorf("set page segmentation: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return ocr.Result{}, fmt.Errorf("recognize text: %w", err)
	}

	return ocr.Result{
		InputID:    in.ID,
		Text:       strings.TrimSpace(text),
		Confidence: meanConfidence(c),
	}, nil
}

func meanConfidence(c *gosseract.Client) float64 {
	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, b := range boxes {
		sum += b.Confidence / 100.0
	}
	return sum / float64(len(boxes))
}
