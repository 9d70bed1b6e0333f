package image

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	ErrInvalidImage = errors.New("supplied data is not a valid image")
)

// DecodeRGBA decodes any registered image format and normalises it into an RGBA image
func DecodeRGBA(r io.Reader) (*image.RGBA, string, error) {
	srcImage, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}
	return ToRGBA(srcImage), format, nil
}

// ToRGBA normalises srcImage into an RGBA image. Alpha is ignored: non-opaque sources keep their straight colour
// channels and every converted pixel is written fully opaque.
func ToRGBA(srcImage image.Image) *image.RGBA {
	if rgba, ok := srcImage.(*image.RGBA); ok {
		return rgba
	}

	bounds := srcImage.Bounds()
	img := image.NewRGBA(bounds)
	if o, ok := srcImage.(interface{ Opaque() bool }); ok && o.Opaque() {
		// 16-bit sources are truncated to 8 bits per channel
		draw.Draw(img, bounds, srcImage, bounds.Min, draw.Src)
		return img
	}

	// draw would premultiply the channels by alpha, losing the colour of transparent pixels
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := straightColorAt(srcImage, x, y)
			img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: opaque})
		}
	}
	return img
}

func straightColorAt(srcImage image.Image, x, y int) color.NRGBA {
	switch src := srcImage.(type) {
	case *image.NRGBA:
		return src.NRGBAAt(x, y)
	case *image.NRGBA64:
		c := src.NRGBA64At(x, y)
		return color.NRGBA{R: uint8(c.R >> 8), G: uint8(c.G >> 8), B: uint8(c.B >> 8), A: uint8(c.A >> 8)}
	}
	return color.NRGBAModel.Convert(srcImage.At(x, y)).(color.NRGBA)
}

func ReadRGBAFile(filePath string) (*image.RGBA, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := DecodeRGBA(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return img, nil
}

// EncodePNG writes img as PNG. Lossy formats are never used for output, since they would destroy the low nibbles
func EncodePNG(w io.Writer, img image.Image, level png.CompressionLevel) error {
	enc := png.Encoder{CompressionLevel: level}
	return enc.Encode(w, img)
}
