package test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/rand"
)

// GenerateRandomImage returns a fully opaque image with random colour channels
func GenerateRandomImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for p := 0; p < len(img.Pix); p += 4 {
		img.Pix[p] = randUint8()
		img.Pix[p+1] = randUint8()
		img.Pix[p+2] = randUint8()
		img.Pix[p+3] = 255
	}
	return img
}

func GenerateUniformImage(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func EncodePNGBytes(img image.Image) []byte {
	buf := bytes.NewBuffer(nil)
	if err := png.Encode(buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func GenerateRandomBytes(numOfBytesToGenerate int) []byte {
	generatedBytes := make([]byte, numOfBytesToGenerate)
	_, err := rand.Read(generatedBytes)
	if err != nil {
		panic(err)
	}
	return generatedBytes
}

func randUint8() uint8 {
	return uint8(rand.Intn(256))
}
