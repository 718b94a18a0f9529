package huffman

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/zeebo/xxh3"
)

// Wire layout, little-endian throughout:
//
//	magic "HUC1" | version u8 | format u8 | padding u8
//	[pixels only: width u32 | height u32 | channels u32]
//	checksum u64 (xxh3 of the decoded symbol stream)
//	table count u32
//	per entry: code length in bits u16 | packed code bits (MSB-first) | symbol
//	           (symbol = rune as u32 for text, 3 raw bytes for pixels)
//	payload length u32 | payload bytes
const (
	containerMagic   = "HUC1"
	containerVersion = 1

	wireFormatText   = 1
	wireFormatPixels = 2
)

// Shape describes the pixel array a pixels-format container reconstructs.
type Shape struct {
	Width    int
	Height   int
	Channels int
}

// Container is the persisted unit: the packed payload plus everything
// needed to decode it. The code tree itself is never persisted; the
// decode direction of the code table alone suffices.
type Container struct {
	Format   Format
	Table    *CodeTable
	Padding  uint8 // redundant with the in-payload header, cross-checked on decode
	Shape    *Shape
	Checksum uint64
	Payload  []byte
}

// Compress runs the full pipeline over one symbol sequence: frequency
// analysis, tree construction, bit packing, checksum. The frequency table
// and tree live only for the duration of this call.
func Compress(symbols []Symbol, format Format, shape *Shape) (*Container, error) {
	if !format.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	kind := format.kind()
	for _, s := range symbols {
		if s.Kind != kind {
			return nil, fmt.Errorf("%w: %s does not belong to format %q", ErrUnencodableSymbol, s, format)
		}
	}
	if format == FormatPixels {
		if shape == nil {
			return nil, fmt.Errorf("pixel format requires a shape")
		}
		if shape.Channels != 3 || shape.Width*shape.Height != len(symbols) {
			return nil, fmt.Errorf("shape %dx%dx%d does not cover %d pixels",
				shape.Width, shape.Height, shape.Channels, len(symbols))
		}
	} else if shape != nil {
		return nil, fmt.Errorf("shape is only valid for pixel format")
	}

	freqs, err := CountFrequencies(symbols)
	if err != nil {
		return nil, err
	}
	table := BuildCodeTable(freqs)
	payload, padding, err := Pack(symbols, table)
	if err != nil {
		return nil, err
	}
	return &Container{
		Format:   format,
		Table:    table,
		Padding:  padding,
		Shape:    shape,
		Checksum: xxh3.Hash(symbolBytes(symbols)),
		Payload:  payload,
	}, nil
}

// Decompress recovers the symbol sequence. Any mismatch between payload,
// code table, shape, or checksum is reported as ErrCorruptContainer.
func (c *Container) Decompress() ([]Symbol, error) {
	if !c.Format.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, c.Format)
	}
	if len(c.Payload) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrCorruptContainer)
	}
	// Fast-path sanity check: the first payload byte is the padding header.
	if c.Payload[0] != c.Padding {
		return nil, fmt.Errorf("%w: padding field %d disagrees with payload header %d",
			ErrCorruptContainer, c.Padding, c.Payload[0])
	}
	symbols, err := Unpack(c.Payload, c.Table)
	if err != nil {
		return nil, err
	}
	if c.Format == FormatPixels && c.Shape != nil && c.Shape.Width*c.Shape.Height != len(symbols) {
		return nil, fmt.Errorf("%w: decoded %d pixels, shape wants %d",
			ErrCorruptContainer, len(symbols), c.Shape.Width*c.Shape.Height)
	}
	if sum := xxh3.Hash(symbolBytes(symbols)); sum != c.Checksum {
		return nil, fmt.Errorf("%w: checksum mismatch (got %x, want %x)", ErrCorruptContainer, sum, c.Checksum)
	}
	return symbols, nil
}

// MarshalBinary serializes the container to its self-contained blob form.
// Table entries are written in code order so identical containers always
// marshal to identical bytes.
func (c *Container) MarshalBinary() ([]byte, error) {
	var wireFormat uint8
	switch c.Format {
	case FormatText:
		wireFormat = wireFormatText
	case FormatPixels:
		wireFormat = wireFormatPixels
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, c.Format)
	}
	if (c.Format == FormatPixels) != (c.Shape != nil) {
		return nil, fmt.Errorf("%w: format %q with shape presence %v", ErrCorruptContainer, c.Format, c.Shape != nil)
	}

	var out bytes.Buffer
	out.WriteString(containerMagic)
	out.WriteByte(containerVersion)
	out.WriteByte(wireFormat)
	out.WriteByte(c.Padding)
	if c.Shape != nil {
		for _, v := range []int{c.Shape.Width, c.Shape.Height, c.Shape.Channels} {
			binary.Write(&out, binary.LittleEndian, uint32(v))
		}
	}
	binary.Write(&out, binary.LittleEndian, c.Checksum)

	codes := make([]string, 0, len(c.Table.Symbols))
	for code := range c.Table.Symbols {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	binary.Write(&out, binary.LittleEndian, uint32(len(codes)))
	for _, code := range codes {
		binary.Write(&out, binary.LittleEndian, uint16(len(code)))
		out.Write(packCodeBits(code))
		sym := c.Table.Symbols[code]
		if c.Format == FormatText {
			binary.Write(&out, binary.LittleEndian, uint32(sym.Char))
		} else {
			out.Write([]byte{sym.Pix[0], sym.Pix[1], sym.Pix[2]})
		}
	}

	binary.Write(&out, binary.LittleEndian, uint32(len(c.Payload)))
	out.Write(c.Payload)
	return out.Bytes(), nil
}

// UnmarshalContainer parses a blob produced by MarshalBinary. Every
// structural failure surfaces as ErrCorruptContainer.
func UnmarshalContainer(data []byte) (*Container, error) {
	r := bytes.NewReader(data)

	magic := make([]byte, len(containerMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("%w: missing magic: %v", ErrCorruptContainer, err)
	}
	if string(magic) != containerMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorruptContainer, magic)
	}

	var version, wireFormat, padding uint8
	if err := readLE(r, &version, &wireFormat, &padding); err != nil {
		return nil, err
	}
	if version != containerVersion {
		return nil, fmt.Errorf("%w: unknown version %d", ErrCorruptContainer, version)
	}

	c := &Container{Padding: padding}
	switch wireFormat {
	case wireFormatText:
		c.Format = FormatText
	case wireFormatPixels:
		c.Format = FormatPixels
	default:
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, wireFormat)
	}

	if c.Format == FormatPixels {
		var w, h, ch uint32
		if err := readLE(r, &w, &h, &ch); err != nil {
			return nil, err
		}
		c.Shape = &Shape{Width: int(w), Height: int(h), Channels: int(ch)}
	}

	var count uint32
	if err := readLE(r, &c.Checksum, &count); err != nil {
		return nil, err
	}

	c.Table = &CodeTable{
		Codes:   make(map[Symbol]string, count),
		Symbols: make(map[string]Symbol, count),
	}
	for i := uint32(0); i < count; i++ {
		var bits uint16
		if err := readLE(r, &bits); err != nil {
			return nil, err
		}
		if bits == 0 {
			return nil, fmt.Errorf("%w: empty code in table", ErrCorruptContainer)
		}
		packed := make([]byte, (int(bits)+7)/8)
		if _, err := io.ReadFull(r, packed); err != nil {
			return nil, fmt.Errorf("%w: truncated code: %v", ErrCorruptContainer, err)
		}
		code := unpackCodeBits(packed, int(bits))

		var sym Symbol
		if c.Format == FormatText {
			var ch uint32
			if err := readLE(r, &ch); err != nil {
				return nil, err
			}
			sym = TextSymbol(rune(ch))
		} else {
			var px [3]byte
			if _, err := io.ReadFull(r, px[:]); err != nil {
				return nil, fmt.Errorf("%w: truncated pixel symbol: %v", ErrCorruptContainer, err)
			}
			sym = PixelSymbol(px[0], px[1], px[2])
		}
		if _, dup := c.Table.Symbols[code]; dup {
			return nil, fmt.Errorf("%w: duplicate code %s", ErrCorruptContainer, code)
		}
		c.Table.Symbols[code] = sym
		c.Table.Codes[sym] = code
	}

	var payloadLen uint32
	if err := readLE(r, &payloadLen); err != nil {
		return nil, err
	}
	c.Payload = make([]byte, payloadLen)
	if _, err := io.ReadFull(r, c.Payload); err != nil {
		return nil, fmt.Errorf("%w: truncated payload: %v", ErrCorruptContainer, err)
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorruptContainer, r.Len())
	}
	return c, nil
}

func readLE(r io.Reader, fields ...any) error {
	for _, f := range fields {
		if err := binary.Read(r, binary.LittleEndian, f); err != nil {
			return fmt.Errorf("%w: truncated field: %v", ErrCorruptContainer, err)
		}
	}
	return nil
}

func packCodeBits(code string) []byte {
	w := &bitWriter{buf: make([]byte, 0, (len(code)+7)/8)}
	for _, c := range code {
		w.writeBit(c == '1')
	}
	return w.buf
}

func unpackCodeBits(packed []byte, bits int) string {
	out := make([]byte, bits)
	for i := 0; i < bits; i++ {
		if packed[i/8]>>(7-uint(i%8))&1 == 1 {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
	}
	return string(out)
}
