package image

import (
	"fmt"
	"image"
	"nibsteg/pkg/config"
	"testing"
)

type testFunc func(t *testing.T, codec *Codec)

var testCodecConfigs = []config.CodecConfig{
	{Workers: 1},
	{Workers: 4, RowsPerChunk: 1},
	{Workers: 3, RowsPerChunk: 7},
}

func runCodecTestsWithAllConfigs(t *testing.T, testFunc testFunc) {
	for _, cConfig := range testCodecConfigs {
		codec := NewCodec(cConfig)
		t.Run(fmt.Sprintf("Workers-%d/RowsPerChunk-%d", codec.config.Workers, codec.config.RowsPerChunk), func(t *testing.T) {
			t.Parallel()
			testFunc(t, codec)
		})
	}
}

// pixelAt returns the RGB channels of the pixel at x, y relative to the image's bounds
func pixelAt(img *image.RGBA, x, y int) [3]byte {
	r := img.Bounds()
	offset := img.PixOffset(r.Min.X+x, r.Min.Y+y)
	return [3]byte(img.Pix[offset : offset+3])
}

func checkEveryPixel(t *testing.T, img *image.RGBA, check func(x, y int, pixel [3]byte) bool) {
	t.Helper()
	size := img.Bounds().Size()
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			if !check(x, y, pixelAt(img, x, y)) {
				t.Fatalf("Pixel check failed at %d,%d: %v", x, y, pixelAt(img, x, y))
			}
		}
	}
}
