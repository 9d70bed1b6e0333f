package image

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/sync/errgroup"

	"nibsteg/internal/bits"
	"nibsteg/pkg/config"
)

const (
	bytesPerPixel = 4
	opaque        = 0xFF
)

var (
	ErrDimensionMismatch = errors.New("payload image must fit within the carrier image")

	defaultCodec = NewCodec(config.CodecConfig{})
)

// DimensionError is returned by Merge when the payload exceeds the carrier in width or height
type DimensionError struct {
	Carrier, Payload image.Point
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: payload is %dx%d but carrier is %dx%d", ErrDimensionMismatch.Error(),
		e.Payload.X, e.Payload.Y, e.Carrier.X, e.Carrier.Y)
}

func (e *DimensionError) Unwrap() error {
	return ErrDimensionMismatch
}

// Codec merges a payload image into the low nibbles of a carrier image, and recovers it again. A Codec holds no
// mutable state, so a single instance can serve concurrent callers as long as each call owns its images
type Codec struct {
	config config.CodecConfig
}

func NewCodec(cConfig config.CodecConfig) *Codec {
	cConfig.PopulateUnsetConfigVars()
	return &Codec{config: cConfig}
}

func Merge(carrier, payload *image.RGBA) (*image.RGBA, error) {
	return defaultCodec.Merge(carrier, payload)
}

func Unmerge(combined *image.RGBA) *image.RGBA {
	return defaultCodec.Unmerge(combined)
}

// Merge returns a new image with the carrier's dimensions, where each channel keeps the carrier's high nibble and
// carries the payload's high nibble in its low nibble. Positions outside the payload are merged as black.
func (c *Codec) Merge(carrier, payload *image.RGBA) (*image.RGBA, error) {
	carrierSize, payloadSize := carrier.Bounds().Size(), payload.Bounds().Size()
	if payloadSize.X > carrierSize.X || payloadSize.Y > carrierSize.Y {
		return nil, &DimensionError{Carrier: carrierSize, Payload: payloadSize}
	}

	merged := image.NewRGBA(image.Rect(0, 0, carrierSize.X, carrierSize.Y))
	c.forEachRowChunk(carrierSize.Y, func(startRow, endRow int) {
		for y := startRow; y < endRow; y++ {
			carrierRow := rowPixels(carrier, y)
			mergedRow := rowPixels(merged, y)

			// Rows below the payload only see black pixels
			var payloadRow []byte
			if y < payloadSize.Y {
				payloadRow = rowPixels(payload, y)
			}

			for p := 0; p < len(mergedRow); p += bytesPerPixel {
				var pr, pg, pb byte
				if p < len(payloadRow) {
					pr, pg, pb = payloadRow[p], payloadRow[p+1], payloadRow[p+2]
				}
				mergedRow[p] = bits.Pack(carrierRow[p], pr)
				mergedRow[p+1] = bits.Pack(carrierRow[p+1], pg)
				mergedRow[p+2] = bits.Pack(carrierRow[p+2], pb)
				mergedRow[p+3] = opaque
			}
		}
	})

	return merged, nil
}

// Unmerge recovers an approximation of the hidden payload: the low nibble of every channel is moved to the high
// nibble, and the low nibble of the output is always zero. The payload's own low nibbles were never stored.
func (c *Codec) Unmerge(combined *image.RGBA) *image.RGBA {
	size := combined.Bounds().Size()
	recovered := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))

	c.forEachRowChunk(size.Y, func(startRow, endRow int) {
		for y := startRow; y < endRow; y++ {
			combinedRow := rowPixels(combined, y)
			recoveredRow := rowPixels(recovered, y)
			for p := 0; p < len(recoveredRow); p += bytesPerPixel {
				recoveredRow[p] = bits.Unpack(combinedRow[p])
				recoveredRow[p+1] = bits.Unpack(combinedRow[p+1])
				recoveredRow[p+2] = bits.Unpack(combinedRow[p+2])
				recoveredRow[p+3] = opaque
			}
		}
	})

	return recovered
}

// forEachRowChunk splits rows into disjoint ranges and runs fn over them with at most config.Workers goroutines.
// fn must only write to pixels inside the rows it is given.
func (c *Codec) forEachRowChunk(rows int, fn func(startRow, endRow int)) {
	if rows <= c.config.RowsPerChunk || c.config.Workers == 1 {
		fn(0, rows)
		return
	}

	var g errgroup.Group
	g.SetLimit(c.config.Workers)
	for start := 0; start < rows; start += c.config.RowsPerChunk {
		startRow, endRow := start, min(start+c.config.RowsPerChunk, rows)
		g.Go(func() error {
			fn(startRow, endRow)
			return nil
		})
	}
	_ = g.Wait()
}

// rowPixels returns the Pix bytes of row y, relative to the image's own bounds
func rowPixels(img *image.RGBA, y int) []byte {
	r := img.Bounds()
	if r.Empty() {
		return nil
	}
	offset := img.PixOffset(r.Min.X, r.Min.Y+y)
	return img.Pix[offset : offset+r.Dx()*bytesPerPixel]
}
