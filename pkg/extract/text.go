package extract

import (
	"fmt"
	"strings"

	"huffpress/pkg/huffman"
)

func textToSymbols(text string) []huffman.Symbol {
	out := make([]huffman.Symbol, 0, len(text))
	for _, r := range text {
		out = append(out, huffman.TextSymbol(r))
	}
	return out
}

func symbolsToText(symbols []huffman.Symbol) (string, error) {
	var b strings.Builder
	b.Grow(len(symbols))
	for _, s := range symbols {
		if s.Kind != huffman.KindText {
			return "", fmt.Errorf("non-text symbol %s in text output", s)
		}
		b.WriteRune(s.Char)
	}
	return b.String(), nil
}
