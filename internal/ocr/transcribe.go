package ocr

import (
	"context"
	"fmt"
)

// Transcribe prepares image, runs it through engine and returns the raw
// text. If ctx ends while the engine is working the text is thrown away and
// ctx.Err() is returned, so a cancelled upload never reaches extraction.
func Transcribe(ctx context.Context, engine Engine, image []byte, opts ...InputOption) (string, error) {
	if len(image) == 0 {
		return "", ErrEmptyImage
	}

	in := Input{Format: ImageFormatPNG}
	for _, opt := range opts {
		opt(&in)
	}

	data, err := Prepare(image, in.maxDim)
	if err != nil {
		return "", err
	}
	in.Image = data

	res, err := engine.Recognize(ctx, in)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if err != nil {
		return "", fmt.Errorf("recognize with %s: %w", engine.Name(), err)
	}
	return res.Text, nil
}
