// Package source turns an uploaded manifest into raw text lines for the
// extractor. Plain text passes through, PDF text layers, HTML pages and
// spreadsheets are flattened to one line per row, and photographs are sent
// to the OCR engine.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"

	"github.com/routescan/internal/normalize"
	"github.com/routescan/internal/ocr"
)

var (
	// ErrUnsupportedFormat is returned for files the loader cannot read.
	ErrUnsupportedFormat = errors.New("source: unsupported format")
	// ErrNoEngine is returned when an image arrives and no OCR engine is set.
	ErrNoEngine = errors.New("source: no OCR engine configured")
)

// Kind is the detected manifest type.
type Kind string

const (
	KindText  Kind = "text"
	KindPDF   Kind = "pdf"
	KindHTML  Kind = "html"
	KindXLSX  Kind = "xlsx"
	KindImage Kind = "image"
)

var kindsByExt = map[string]Kind{
	"":      KindText,
	".txt":  KindText,
	".text": KindText,
	".csv":  KindText,
	".pdf":  KindPDF,
	".html": KindHTML,
	".htm":  KindHTML,
	".xlsx": KindXLSX,
	".png":  KindImage,
	".jpg":  KindImage,
	".jpeg": KindImage,
	".gif":  KindImage,
	".tif":  KindImage,
	".tiff": KindImage,
	".bmp":  KindImage,
	".webp": KindImage,
}

// Loader reads manifests of any supported Kind.
type Loader struct {
	engine  ocr.Engine
	ocrOpts []ocr.InputOption
}

// NewLoader returns a Loader. engine may be nil, in which case images are
// rejected with ErrNoEngine.
func NewLoader(engine ocr.Engine, opts ...ocr.InputOption) *Loader {
	return &Loader{engine: engine, ocrOpts: opts}
}

// Detect works out the Kind of a file from its name, falling back to
// content sniffing for unknown extensions.
func Detect(name string, data []byte) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if name == "-" {
		ext = ""
	}
	if k, ok := kindsByExt[ext]; ok {
		return k, nil
	}
	if _, err := ocr.DetectFormat(data); err == nil {
		return KindImage, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// Load returns the raw text of the manifest, one source line per line.
func (l *Loader) Load(ctx context.Context, name string, data []byte) (string, error) {
	kind, err := Detect(name, data)
	if err != nil {
		return "", err
	}

	switch kind {
	case KindText:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: %q is not UTF-8 text", ErrUnsupportedFormat, name)
		}
		return string(data), nil
	case KindPDF:
		return pdfText(data)
	case KindHTML:
		return htmlText(data)
	case KindXLSX:
		return xlsxText(data)
	case KindImage:
		if l.engine == nil {
			return "", ErrNoEngine
		}
		return ocr.Transcribe(ctx, l.engine, data, l.ocrOpts...)
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind)
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var lines []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		lines = append(lines, text)
	}
	return compactLines(strings.Join(lines, "\n")), nil
}

var (
	htmlBlocks   = "p,div,li,tr,h1,h2,h3,h4,h5,h6,address,section,article"
	reWhitespace = regexp.MustCompile(`\s+`)
)

func htmlText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script,style,noscript,head").Remove()
	// Source formatting whitespace must not split a row into lines.
	doc.Find("*").Contents().Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "#text" {
			s.Nodes[0].Data = reWhitespace.ReplaceAllString(s.Nodes[0].Data, " ")
		}
	})
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("td,th").Each(func(_ int, cell *goquery.Selection) {
		cell.AppendHtml(" ")
	})
	doc.Find(htmlBlocks).Each(func(_ int, block *goquery.Selection) {
		block.AppendHtml("\n")
	})

	return compactLines(doc.Find("body").Text()), nil
}

func xlsxText(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	var lines []string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		for _, row := range rows {
			cells := make([]string, 0, len(row))
			for _, c := range row {
				if c = strings.TrimSpace(c); c != "" {
					cells = append(cells, c)
				}
			}
			if len(cells) > 0 {
				lines = append(lines, strings.Join(cells, " "))
			}
		}
	}
	return strings.Join(lines, "\n"), nil
}

// compactLines collapses runs of spaces inside each line and drops blank
// lines.
func compactLines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = normalize.CollapseSpaces(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
