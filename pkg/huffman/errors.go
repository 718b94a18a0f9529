package huffman

import "errors"

var (
	// ErrEmptyInput is returned when there is nothing to compress.
	ErrEmptyInput = errors.New("empty input")

	// ErrUnencodableSymbol is returned when an input symbol has no code,
	// which means the code table was not derived from this input.
	ErrUnencodableSymbol = errors.New("symbol not in code table")

	// ErrCorruptContainer is returned when a persisted container is
	// structurally invalid or its payload does not decode cleanly.
	ErrCorruptContainer = errors.New("corrupt container")

	// ErrUnsupportedFormat is returned for format tags this codec does not know.
	ErrUnsupportedFormat = errors.New("unsupported format")
)
