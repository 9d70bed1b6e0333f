package image

import (
	"fmt"
	"nibsteg/pkg/config"
	"nibsteg/test"
	"testing"
)

const (
	benchImageSize = 3000
)

func configWithWorkers(workers int) config.CodecConfig {
	return config.CodecConfig{Workers: workers, RowsPerChunk: 16}
}

func BenchmarkMerge(b *testing.B) {
	carrier := test.GenerateRandomImage(benchImageSize, benchImageSize)
	payload := test.GenerateRandomImage(benchImageSize, benchImageSize)

	for _, workers := range []int{1, 2, 4, 8} {
		codec := NewCodec(configWithWorkers(workers))
		b.Run(fmt.Sprintf("Workers=%d", workers), func(b *testing.B) {
			b.SetBytes(int64(len(carrier.Pix)))
			for i := 0; i < b.N; i++ {
				if _, err := codec.Merge(carrier, payload); err != nil {
					b.Fatalf("Error during merge: %s", err)
				}
			}
		})
	}
}

func BenchmarkUnmerge(b *testing.B) {
	img := test.GenerateRandomImage(benchImageSize, benchImageSize)

	for _, workers := range []int{1, 2, 4, 8} {
		codec := NewCodec(configWithWorkers(workers))
		b.Run(fmt.Sprintf("Workers=%d", workers), func(b *testing.B) {
			b.SetBytes(int64(len(img.Pix)))
			for i := 0; i < b.N; i++ {
				codec.Unmerge(img)
			}
		})
	}
}
