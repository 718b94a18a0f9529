package huffman

import "fmt"

// MSB-first bit writer.
type bitWriter struct {
	buf []byte
	n   int // bits written
}

func (w *bitWriter) writeBit(bit bool) {
	if w.n%8 == 0 {
		w.buf = append(w.buf, 0)
	}
	if bit {
		w.buf[len(w.buf)-1] |= 1 << uint(7-w.n%8)
	}
	w.n++
}

func (w *bitWriter) writeByte(b uint8) {
	for i := 7; i >= 0; i-- {
		w.writeBit(b>>uint(i)&1 == 1)
	}
}

// MSB-first bit reader over a byte slice.
type bitReader struct {
	data []byte
	bits int
	pos  int
}

func newBitReader(b []byte) *bitReader { return &bitReader{data: b, bits: len(b) * 8} }

func (r *bitReader) remaining() int { return r.bits - r.pos }

func (r *bitReader) readBit() bool {
	v := (r.data[r.pos/8]>>(7-uint(r.pos%8)))&1 == 1
	r.pos++
	return v
}

// Pack emits each symbol's code in input order, prepends the 8-bit
// padding header and appends the filler bits. The filler count is always
// 1..8: even an exact byte multiple gets a full byte of padding so the
// header stays self-describing. The result length is a multiple of 8 bits.
func Pack(symbols []Symbol, table *CodeTable) (payload []byte, padding uint8, err error) {
	total := 0
	for _, s := range symbols {
		code, ok := table.Codes[s]
		if !ok {
			return nil, 0, fmt.Errorf("%w: %s", ErrUnencodableSymbol, s)
		}
		total += len(code)
	}

	extra := 8 - total%8 // 1..8

	w := &bitWriter{buf: make([]byte, 0, 1+(total+extra)/8)}
	w.writeByte(uint8(extra))
	for _, s := range symbols {
		for _, c := range table.Codes[s] {
			w.writeBit(c == '1')
		}
	}
	for i := 0; i < extra; i++ {
		w.writeBit(false)
	}
	return w.buf, uint8(extra), nil
}

// Unpack reverses Pack: reads the padding header, strips it and the
// trailing filler, then walks the remaining bits accumulating a candidate
// code until it hits the table. Any misalignment between the bit length
// and the code table is reported as ErrCorruptContainer.
func Unpack(payload []byte, table *CodeTable) ([]Symbol, error) {
	r := newBitReader(payload)
	if r.remaining() < 8 {
		return nil, fmt.Errorf("%w: payload shorter than padding header", ErrCorruptContainer)
	}
	padding := 0
	for i := 0; i < 8; i++ {
		padding <<= 1
		if r.readBit() {
			padding |= 1
		}
	}
	if padding > 8 {
		return nil, fmt.Errorf("%w: padding count %d out of range", ErrCorruptContainer, padding)
	}
	if padding > r.remaining() {
		return nil, fmt.Errorf("%w: padding count %d exceeds %d remaining bits", ErrCorruptContainer, padding, r.remaining())
	}

	nbits := r.remaining() - padding
	out := make([]Symbol, 0, nbits/2)
	acc := make([]byte, 0, 64)
	for i := 0; i < nbits; i++ {
		if r.readBit() {
			acc = append(acc, '1')
		} else {
			acc = append(acc, '0')
		}
		if sym, ok := table.Symbols[string(acc)]; ok {
			out = append(out, sym)
			acc = acc[:0]
		}
	}
	if len(acc) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bits do not form a code", ErrCorruptContainer, len(acc))
	}
	return out, nil
}
