package storage

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	nibstegImage "nibsteg/pkg/image"
	"nibsteg/pkg/model"
)

const (
	resultExtension = ".png"
)

var (
	ErrInvalidName    = errors.New("file name must be a plain file name without path separators")
	ErrResultNotFound = errors.New("requested result does not exist")
)

// FileStore persists raw uploads and produced results in two working directories
type FileStore struct {
	uploadDir, resultDir string
}

func NewFileStore(uploadDir, resultDir string) (*FileStore, error) {
	for _, dir := range []string{uploadDir, resultDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return &FileStore{uploadDir: uploadDir, resultDir: resultDir}, nil
}

// SaveUpload copies the upload's content into the upload directory under a generated name, keeping the extension of
// the original name. The returned path can be reopened for decoding.
func (s *FileStore) SaveUpload(upload model.InputFile) (string, error) {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(filepath.Base(upload.Name)))
	path := filepath.Join(s.uploadDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	written, err := io.Copy(f, upload.Content)
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("writing upload %s: %w", upload.Name, err)
	}
	if upload.Size > 0 && written != upload.Size {
		_ = os.Remove(path)
		return "", fmt.Errorf("upload %s was truncated, wrote %d of %d bytes", upload.Name, written, upload.Size)
	}
	return path, nil
}

// RemoveUpload deletes an upload previously returned by SaveUpload. Paths outside the upload directory are rejected,
// and uploads that are already gone are not an error.
func (s *FileStore) RemoveUpload(path string) error {
	if filepath.Clean(filepath.Dir(path)) != filepath.Clean(s.uploadDir) {
		return ErrInvalidName
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// SaveResult encodes img as PNG under <prefix>_<uuid>.png in the result directory
func (s *FileStore) SaveResult(prefix string, img image.Image, level png.CompressionLevel) (model.ResultFile, error) {
	name := fmt.Sprintf("%s_%s%s", prefix, uuid.NewString(), resultExtension)
	path := filepath.Join(s.resultDir, name)

	f, err := os.Create(path)
	if err != nil {
		return model.ResultFile{}, err
	}

	if err = nibstegImage.EncodePNG(f, img, level); err != nil {
		f.Close()
		_ = os.Remove(path)
		return model.ResultFile{}, fmt.Errorf("encoding result %s: %w", name, err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return model.ResultFile{}, err
	}
	if err = f.Close(); err != nil {
		return model.ResultFile{}, err
	}

	return model.ResultFile{Name: name, Path: path, Size: stat.Size()}, nil
}

// ResultPath resolves the name of a stored result to its path on disk
func (s *FileStore) ResultPath(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return "", ErrInvalidName
	}

	path := filepath.Join(s.resultDir, name)
	stat, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) || (err == nil && stat.IsDir()) {
		return "", ErrResultNotFound
	} else if err != nil {
		return "", err
	}
	return path, nil
}
