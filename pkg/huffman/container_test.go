package huffman

import (
	"bytes"
	"errors"
	"testing"
)

func mustCompressText(t *testing.T, s string) *Container {
	t.Helper()
	c, err := Compress(textSymbols(s), FormatText, nil)
	if err != nil {
		t.Fatalf("compress %q: %v", s, err)
	}
	return c
}

func TestContainerMarshalRoundTripText(t *testing.T) {
	orig := mustCompressText(t, "abracadabra")
	blob, err := orig.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	c, err := UnmarshalContainer(blob)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.Format != FormatText || c.Padding != orig.Padding || c.Checksum != orig.Checksum {
		t.Errorf("header fields changed: %+v vs %+v", c, orig)
	}
	if c.Shape != nil {
		t.Errorf("text container grew a shape: %+v", c.Shape)
	}
	if !bytes.Equal(c.Payload, orig.Payload) {
		t.Errorf("payload changed across marshal")
	}

	got, err := c.Decompress()
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if !symbolsEqual(got, textSymbols("abracadabra")) {
		t.Errorf("round-trip mismatch")
	}
}

func TestContainerMarshalRoundTripPixels(t *testing.T) {
	pixels := []Symbol{
		PixelSymbol(0, 0, 0), PixelSymbol(255, 128, 7),
		PixelSymbol(0, 0, 0), PixelSymbol(9, 9, 9),
	}
	shape := &Shape{Width: 2, Height: 2, Channels: 3}
	orig, err := Compress(pixels, FormatPixels, shape)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	blob, err := orig.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	c, err := UnmarshalContainer(blob)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.Shape == nil || *c.Shape != *shape {
		t.Fatalf("shape lost: %+v", c.Shape)
	}
	got, err := c.Decompress()
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if !symbolsEqual(got, pixels) {
		t.Errorf("round-trip mismatch: %v", got)
	}
}

func TestContainerDeterministicMarshal(t *testing.T) {
	a, _ := mustCompressText(t, "stable wire bytes").MarshalBinary()
	b, _ := mustCompressText(t, "stable wire bytes").MarshalBinary()
	if !bytes.Equal(a, b) {
		t.Fatal("identical inputs marshalled to different blobs")
	}
}

// Flipping any single payload bit must either leave the round-trip intact
// (flips landing in the padding region) or be rejected as corruption. It
// must never silently return a different symbol sequence.
func TestContainerPayloadBitFlips(t *testing.T) {
	input := "the quick brown fox jumps over the lazy dog"
	want := textSymbols(input)
	orig := mustCompressText(t, input)
	blob, err := orig.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	for bit := 0; bit < len(orig.Payload)*8; bit++ {
		flipped := make([]byte, len(blob))
		copy(flipped, blob)
		// Payload bytes sit at the tail of the blob.
		off := len(blob) - len(orig.Payload)
		flipped[off+bit/8] ^= 1 << uint(7-bit%8)

		c, err := UnmarshalContainer(flipped)
		if err != nil {
			if !errors.Is(err, ErrCorruptContainer) {
				t.Fatalf("bit %d: unexpected unmarshal error %v", bit, err)
			}
			continue
		}
		got, err := c.Decompress()
		if err != nil {
			if !errors.Is(err, ErrCorruptContainer) {
				t.Fatalf("bit %d: unexpected decompress error %v", bit, err)
			}
			continue
		}
		if !symbolsEqual(got, want) {
			t.Fatalf("bit %d: corruption went undetected", bit)
		}
	}
}

func TestContainerTruncatedBlob(t *testing.T) {
	blob, err := mustCompressText(t, "truncate me").MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, n := range []int{0, 3, 5, 7, 15, len(blob) / 2, len(blob) - 1} {
		if _, err := UnmarshalContainer(blob[:n]); !errors.Is(err, ErrCorruptContainer) {
			t.Errorf("prefix %d: got %v, want ErrCorruptContainer", n, err)
		}
	}
}

func TestContainerTrailingGarbage(t *testing.T) {
	blob, _ := mustCompressText(t, "no trailers").MarshalBinary()
	if _, err := UnmarshalContainer(append(blob, 0xFF)); !errors.Is(err, ErrCorruptContainer) {
		t.Fatalf("got %v, want ErrCorruptContainer", err)
	}
}

func TestContainerBadMagicAndVersion(t *testing.T) {
	blob, _ := mustCompressText(t, "versioned").MarshalBinary()

	bad := append([]byte(nil), blob...)
	copy(bad, "NOPE")
	if _, err := UnmarshalContainer(bad); !errors.Is(err, ErrCorruptContainer) {
		t.Errorf("bad magic: got %v, want ErrCorruptContainer", err)
	}

	bad = append([]byte(nil), blob...)
	bad[4] = 99 // version byte
	if _, err := UnmarshalContainer(bad); !errors.Is(err, ErrCorruptContainer) {
		t.Errorf("bad version: got %v, want ErrCorruptContainer", err)
	}

	bad = append([]byte(nil), blob...)
	bad[5] = 42 // format byte
	if _, err := UnmarshalContainer(bad); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("bad format: got %v, want ErrUnsupportedFormat", err)
	}
}

func TestContainerPaddingFieldCrossCheck(t *testing.T) {
	c := mustCompressText(t, "cross-check")
	c.Padding ^= 0x04
	if _, err := c.Decompress(); !errors.Is(err, ErrCorruptContainer) {
		t.Fatalf("got %v, want ErrCorruptContainer", err)
	}
}
