package config

import (
	"image/png"
	"runtime"
)

const (
	DefaultRowsPerChunk = 64
)

var (
	pngCompressionMapping = map[string]png.CompressionLevel{
		"default": png.DefaultCompression,
		"none":    png.NoCompression,
		"fast":    png.BestSpeed,
		"best":    png.BestCompression,
	}
)

type CodecConfig struct {
	// Workers is the maximum number of goroutines that process row chunks at once
	Workers      int `toml:"workers"`
	RowsPerChunk int `toml:"rows_per_chunk"`
}

func (c *CodecConfig) PopulateUnsetConfigVars() {
	if c.Workers < 1 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.RowsPerChunk < 1 {
		c.RowsPerChunk = DefaultRowsPerChunk
	}
}

// ParsePngCompression maps a compression name (default, none, fast, best) to its png level. Unknown names fall back
// to the default compression, and found reports whether the name was recognised
func ParsePngCompression(name string) (level png.CompressionLevel, found bool) {
	level, found = pngCompressionMapping[name]
	if !found {
		return png.DefaultCompression, false
	}
	return level, true
}
