package huffman

import (
	"fmt"
	"unicode/utf8"
)

// Format tags how a container's decoded symbols are to be reinterpreted.
type Format string

const (
	FormatText   Format = "text"
	FormatPixels Format = "pixels"
)

func (f Format) valid() bool { return f == FormatText || f == FormatPixels }

// Kind selects the active Symbol variant. A compression run uses exactly
// one kind; mixing is rejected.
type Kind uint8

const (
	KindText Kind = iota + 1
	KindPixels
)

func (f Format) kind() Kind {
	if f == FormatPixels {
		return KindPixels
	}
	return KindText
}

// Symbol is the atomic unit of encoding: a single text code point or an
// RGB pixel triple. It is comparable and keys the frequency and code maps.
type Symbol struct {
	Kind Kind
	Char rune     // set when Kind == KindText
	Pix  [3]uint8 // set when Kind == KindPixels
}

func TextSymbol(r rune) Symbol { return Symbol{Kind: KindText, Char: r} }

func PixelSymbol(r, g, b uint8) Symbol {
	return Symbol{Kind: KindPixels, Pix: [3]uint8{r, g, b}}
}

func (s Symbol) String() string {
	switch s.Kind {
	case KindText:
		return fmt.Sprintf("%q", s.Char)
	case KindPixels:
		return fmt.Sprintf("(%d,%d,%d)", s.Pix[0], s.Pix[1], s.Pix[2])
	}
	return "<invalid symbol>"
}

// less orders symbols so heap insertion order is deterministic across runs.
func (s Symbol) less(o Symbol) bool {
	if s.Kind != o.Kind {
		return s.Kind < o.Kind
	}
	if s.Kind == KindText {
		return s.Char < o.Char
	}
	for i := 0; i < 3; i++ {
		if s.Pix[i] != o.Pix[i] {
			return s.Pix[i] < o.Pix[i]
		}
	}
	return false
}

// symbolBytes flattens a symbol sequence to its canonical byte form, the
// input to the container checksum.
func symbolBytes(symbols []Symbol) []byte {
	out := make([]byte, 0, len(symbols)*3)
	for _, s := range symbols {
		if s.Kind == KindText {
			out = utf8.AppendRune(out, s.Char)
		} else {
			out = append(out, s.Pix[0], s.Pix[1], s.Pix[2])
		}
	}
	return out
}
