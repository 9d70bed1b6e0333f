package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"nibsteg/test"
	"os"
	"path/filepath"
	"testing"
)

func TestEncodeDecodePNGIsLossless(t *testing.T) {
	merged, err := Merge(test.GenerateRandomImage(64, 48), test.GenerateRandomImage(32, 48))
	if err != nil {
		t.Fatalf("Error merging images: %s", err)
	}

	for _, level := range []png.CompressionLevel{png.NoCompression, png.DefaultCompression, png.BestSpeed, png.BestCompression} {
		buf := bytes.NewBuffer(nil)
		if err = EncodePNG(buf, merged, level); err != nil {
			t.Fatalf("Error encoding png: %s", err)
		}

		decoded, format, err := DecodeRGBA(buf)
		if err != nil {
			t.Fatalf("Error decoding png: %s", err)
		}
		if format != "png" {
			t.Errorf("Expected png format, got %s", format)
		}
		if !bytes.Equal(decoded.Pix, merged.Pix) {
			t.Errorf("PNG round trip with compression level %d was not lossless", level)
		}
	}
}

func TestDecodeRGBAConvertsOtherFormats(t *testing.T) {
	src := test.GenerateUniformImage(16, 16, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, src, &jpeg.Options{Quality: 100}); err != nil {
		t.Fatalf("Error encoding jpeg: %s", err)
	}

	decoded, format, err := DecodeRGBA(buf)
	if err != nil {
		t.Fatalf("Error decoding jpeg: %s", err)
	}
	if format != "jpeg" {
		t.Errorf("Expected jpeg format, got %s", format)
	}
	if decoded.Bounds() != src.Bounds() {
		t.Errorf("Decoded bounds %v do not match %v", decoded.Bounds(), src.Bounds())
	}
}

func TestDecodeRGBAInvalidImage(t *testing.T) {
	_, _, err := DecodeRGBA(bytes.NewReader(test.GenerateRandomBytes(128)))
	if !errors.Is(err, ErrInvalidImage) {
		t.Errorf("Expected invalid image error, got %v", err)
	}
}

func TestReadRGBAFile(t *testing.T) {
	src := test.GenerateRandomImage(8, 8)
	path := filepath.Join(t.TempDir(), "source.png")
	if err := os.WriteFile(path, test.EncodePNGBytes(src), 0644); err != nil {
		t.Fatalf("Error writing test image: %s", err)
	}

	img, err := ReadRGBAFile(path)
	if err != nil {
		t.Fatalf("Error reading image file: %s", err)
	}
	if !bytes.Equal(img.Pix, src.Pix) {
		t.Errorf("Read image does not match written image")
	}

	if _, err = ReadRGBAFile(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Errorf("Expected error reading missing file")
	}
}

func TestToRGBAKeepsRGBA(t *testing.T) {
	src := test.GenerateRandomImage(4, 4)
	if ToRGBA(src) != src {
		t.Errorf("RGBA images should not be copied")
	}

	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	gray.SetGray(1, 1, color.Gray{Y: 0x80})
	if got := pixelAt(ToRGBA(gray), 1, 1); got != [3]byte{0x80, 0x80, 0x80} {
		t.Errorf("Gray conversion expected 0x80 channels, got %v", got)
	}
}

func TestDecodeRGBAIgnoresAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x80})
	src.SetNRGBA(1, 0, color.NRGBA{R: 0xAB, G: 0xCD, B: 0xEF, A: 0x00})

	carrier, _, err := DecodeRGBA(bytes.NewReader(test.EncodePNGBytes(src)))
	if err != nil {
		t.Fatalf("Error decoding png: %s", err)
	}
	if got := pixelAt(carrier, 0, 0); got != [3]byte{0xFF, 0xFF, 0xFF} {
		t.Errorf("Semi transparent pixel expected straight channels ffffff, got %x", got)
	}
	if got := pixelAt(carrier, 1, 0); got != [3]byte{0xAB, 0xCD, 0xEF} {
		t.Errorf("Transparent pixel expected straight channels abcdef, got %x", got)
	}
	if carrier.Pix[3] != 0xFF || carrier.Pix[7] != 0xFF {
		t.Errorf("Decoded pixels should be opaque, got alpha %#x and %#x", carrier.Pix[3], carrier.Pix[7])
	}

	merged, err := Merge(carrier, test.GenerateUniformImage(1, 1, color.RGBA{A: 0xFF}))
	if err != nil {
		t.Fatalf("Error merging images: %s", err)
	}
	if got := pixelAt(merged, 0, 0); got != [3]byte{0xF0, 0xF0, 0xF0} {
		t.Errorf("Carrier high nibble not preserved for semi transparent pixel, got %x", got)
	}
	if got := pixelAt(merged, 1, 0); got != [3]byte{0xA0, 0xC0, 0xE0} {
		t.Errorf("Carrier high nibble not preserved for transparent pixel, got %x", got)
	}
}

func TestToRGBANonOpaqueSources(t *testing.T) {
	t.Parallel()

	nrgba64 := image.NewNRGBA64(image.Rect(0, 0, 1, 1))
	nrgba64.SetNRGBA64(0, 0, color.NRGBA64{R: 0x12FF, G: 0x3400, B: 0x56AA, A: 0x0100})

	paletted := image.NewPaletted(image.Rect(0, 0, 1, 1), color.Palette{color.NRGBA{R: 0x9A, G: 0xBC, B: 0xDE, A: 0x00}})

	tests := []struct {
		name string
		src  image.Image
		want [3]byte
	}{
		{name: "NRGBA64", src: nrgba64, want: [3]byte{0x12, 0x34, 0x56}},
		{name: "PalettedTransparent", src: paletted, want: [3]byte{0x9A, 0xBC, 0xDE}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rgba := ToRGBA(tt.src)
			if got := pixelAt(rgba, 0, 0); got != tt.want {
				t.Errorf("Expected channels %x, got %x", tt.want, got)
			}
			if rgba.Pix[3] != 0xFF {
				t.Errorf("Expected opaque pixel, got alpha %#x", rgba.Pix[3])
			}
		})
	}
}
