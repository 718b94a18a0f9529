// Package extract turns uploaded artifacts into flat symbol sequences for
// the codec and rebuilds artifacts from decoded symbols. It is the
// format-specific plumbing around pkg/huffman: the codec itself never
// touches files.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"huffpress/pkg/huffman"
)

// Detect maps a file name to the codec format and the normalized
// extension that later selects the writer.
func Detect(name string) (huffman.Format, string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	switch ext {
	case "txt", "docx", "pdf":
		return huffman.FormatText, ext, nil
	case "png", "jpg", "jpeg", "bmp":
		return huffman.FormatPixels, ext, nil
	}
	return "", "", fmt.Errorf("%w: %q", huffman.ErrUnsupportedFormat, name)
}

// OutputExt is the extension of the reconstructed artifact. PDFs come
// back as plain text: only their text was compressed, and writing it
// under a .pdf name would produce a file no PDF reader accepts.
func OutputExt(ext string) string {
	if ext == "pdf" {
		return "txt"
	}
	return ext
}

// ReadSymbols extracts the symbol sequence (and, for images, the shape)
// from one uploaded artifact.
func ReadSymbols(name string, data []byte) ([]huffman.Symbol, huffman.Format, *huffman.Shape, error) {
	format, ext, err := Detect(name)
	if err != nil {
		return nil, "", nil, err
	}
	switch ext {
	case "txt":
		return textToSymbols(string(data)), format, nil, nil
	case "docx":
		text, err := readDocx(data)
		if err != nil {
			return nil, "", nil, fmt.Errorf("read docx: %w", err)
		}
		return textToSymbols(text), format, nil, nil
	case "pdf":
		text, err := readPDF(data)
		if err != nil {
			return nil, "", nil, fmt.Errorf("read pdf: %w", err)
		}
		return textToSymbols(text), format, nil, nil
	default: // png, jpg, jpeg, bmp
		symbols, shape, err := readImage(data)
		if err != nil {
			return nil, "", nil, fmt.Errorf("read image: %w", err)
		}
		return symbols, format, shape, nil
	}
}

// WriteArtifact rebuilds the artifact bytes from a decoded symbol
// sequence. ext is the extension the artifact was uploaded with.
func WriteArtifact(symbols []huffman.Symbol, format huffman.Format, shape *huffman.Shape, ext string) ([]byte, error) {
	switch format {
	case huffman.FormatText:
		text, err := symbolsToText(symbols)
		if err != nil {
			return nil, err
		}
		if ext == "docx" {
			return writeDocx(text)
		}
		return []byte(text), nil
	case huffman.FormatPixels:
		return writeImage(symbols, shape, ext)
	}
	return nil, fmt.Errorf("%w: %q", huffman.ErrUnsupportedFormat, format)
}
