package extract

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"

	"huffpress/pkg/huffman"
)

// readImage decodes the image and flattens it, row-major, into RGB
// triples. The alpha channel is dropped, matching the RGB conversion the
// compressor is specified against.
func readImage(data []byte) ([]huffman.Symbol, *huffman.Shape, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	symbols := make([]huffman.Symbol, 0, w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			symbols = append(symbols, huffman.PixelSymbol(uint8(r>>8), uint8(g>>8), uint8(bl>>8)))
		}
	}
	return symbols, &huffman.Shape{Width: w, Height: h, Channels: 3}, nil
}

func writeImage(symbols []huffman.Symbol, shape *huffman.Shape, ext string) ([]byte, error) {
	if shape == nil {
		return nil, fmt.Errorf("image output requires a shape")
	}
	if shape.Width*shape.Height != len(symbols) {
		return nil, fmt.Errorf("shape %dx%d does not cover %d pixels", shape.Width, shape.Height, len(symbols))
	}
	img := image.NewNRGBA(image.Rect(0, 0, shape.Width, shape.Height))
	for i, s := range symbols {
		if s.Kind != huffman.KindPixels {
			return nil, fmt.Errorf("non-pixel symbol %s in image output", s)
		}
		img.SetNRGBA(i%shape.Width, i/shape.Width, color.NRGBA{R: s.Pix[0], G: s.Pix[1], B: s.Pix[2], A: 255})
	}

	var buf bytes.Buffer
	var err error
	switch ext {
	case "png":
		err = png.Encode(&buf, img)
	case "jpg", "jpeg":
		err = jpeg.Encode(&buf, img, nil)
	case "bmp":
		err = bmp.Encode(&buf, img)
	default:
		return nil, fmt.Errorf("%w: image extension %q", huffman.ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
