package config

import (
	"errors"
	"fmt"
	"image/png"
	"log/slog"

	"github.com/BurntSushi/toml"
)

const (
	DefaultPort           = "8080"
	DefaultUploadDir      = "uploads"
	DefaultResultDir      = "results"
	DefaultMaxUploadBytes = 32 << 20
)

var (
	ErrMissingDirectory   = errors.New("upload and result directories must be set")
	ErrInvalidUploadLimit = errors.New("max upload bytes must be greater than zero")
	ErrUnknownCompression = errors.New("unknown png compression, options are default, none, fast, best")
)

type ServerConfig struct {
	Port           string      `toml:"port"`
	UploadDir      string      `toml:"upload_dir"`
	ResultDir      string      `toml:"result_dir"`
	MaxUploadBytes int64       `toml:"max_upload_bytes"`
	PngCompression string      `toml:"png_compression"`
	LogLevel       string      `toml:"log_level"`
	Codec          CodecConfig `toml:"codec"`
}

func DefaultServerConfig() ServerConfig {
	c := ServerConfig{
		Port:           DefaultPort,
		UploadDir:      DefaultUploadDir,
		ResultDir:      DefaultResultDir,
		MaxUploadBytes: DefaultMaxUploadBytes,
		// best compression keeps response sizes down, the encoded images tend to be large otherwise
		PngCompression: "best",
		LogLevel:       "debug",
	}
	c.Codec.PopulateUnsetConfigVars()
	return c
}

// LoadServerConfig reads a TOML file on top of the default configuration, so only the keys present in the file
// override defaults
func LoadServerConfig(path string) (ServerConfig, error) {
	c := DefaultServerConfig()
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return ServerConfig{}, fmt.Errorf("reading server config %s: %w", path, err)
	}
	c.Codec.PopulateUnsetConfigVars()
	return c, c.Validate()
}

func (c ServerConfig) Validate() error {
	if c.UploadDir == "" || c.ResultDir == "" {
		return ErrMissingDirectory
	}
	if c.MaxUploadBytes <= 0 {
		return ErrInvalidUploadLimit
	}
	if _, found := ParsePngCompression(c.PngCompression); !found {
		return fmt.Errorf("%w: %q", ErrUnknownCompression, c.PngCompression)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

func (c ServerConfig) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelDebug, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

func (c ServerConfig) PngCompressionLevel() png.CompressionLevel {
	level, _ := ParsePngCompression(c.PngCompression)
	return level
}
