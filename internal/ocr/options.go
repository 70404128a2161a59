package ocr

// InputOption mutates an Input before recognition.
type InputOption func(*Input)

// WithLanguages sets the language hints.
func WithLanguages(langs ...string) InputOption {
	return func(in *Input) { in.Languages = append([]string(nil), langs...) }
}

// WithDPI sets the resolution hint.
func WithDPI(dpi int) InputOption {
	return func(in *Input) { in.DPI = dpi }
}

// WithID sets the input identifier.
func WithID(id string) InputOption {
	return func(in *Input) { in.ID = id }
}

// WithMaxDimension bounds the longest image side before recognition. Zero
// leaves the image size alone.
func WithMaxDimension(px int) InputOption {
	return func(in *Input) { in.maxDim = px }
}
