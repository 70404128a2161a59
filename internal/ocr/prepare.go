package ocr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var formatsByName = map[string]ImageFormat{
	"png":  ImageFormatPNG,
	"jpeg": ImageFormatJPEG,
	"gif":  ImageFormatGIF,
	"tiff": ImageFormatTIFF,
	"bmp":  ImageFormatBMP,
	"webp": ImageFormatWebP,
}

// DetectFormat sniffs the image format from its header.
func DetectFormat(data []byte) (ImageFormat, error) {
	_, name, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("detect image format: %w", err)
	}
	f, ok := formatsByName[name]
	if !ok {
		return "", fmt.Errorf("detect image format: unsupported %q", name)
	}
	return f, nil
}

// Prepare decodes a phone photo or scan and returns it as PNG, scaled down
// so neither side exceeds maxDim. A PNG already within bounds is returned
// unchanged. maxDim <= 0 disables scaling.
func Prepare(data []byte, maxDim int) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}

	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		if name == "png" {
			return data, nil
		}
	} else {
		scale := float64(maxDim) / float64(max(w, h))
		nw := max(1, int(float64(w)*scale))
		nh := max(1, int(float64(h)*scale))
		dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
