package configblock

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Source yields the raw bytes of the configuration record from its medium.
// It does no interpretation. Implementations must return within bounded time.
type Source interface {
	ReadBlock() ([]byte, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func() ([]byte, error)

// ReadBlock calls f.
func (f SourceFunc) ReadBlock() ([]byte, error) {
	return f()
}

// FileSource reads the record from a flash or EEPROM image at a fixed offset.
type FileSource struct {
	Path   string
	Offset int64
}

// NewFileSource creates a source for the record at offset within path
func NewFileSource(path string, offset int64) *FileSource {
	return &FileSource{Path: path, Offset: offset}
}

// ReadBlock reads RecordSize bytes at the configured offset.
// An image that ends early yields the truncated bytes so the validator can
// classify them; any other I/O failure wraps ErrStorageUnreadable.
func (s *FileSource) ReadBlock() ([]byte, error) {
	if s.Offset < 0 {
		return nil, fmt.Errorf("%w: negative offset %d", ErrStorageUnreadable, s.Offset)
	}

	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnreadable, err)
	}
	defer file.Close()

	buf := make([]byte, RecordSize)
	n, err := file.ReadAt(buf, s.Offset)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return buf[:n], nil
		}
		return nil, fmt.Errorf("%w: %s at offset %d: %v", ErrStorageUnreadable, s.Path, s.Offset, err)
	}

	return buf, nil
}

// BytesSource serves the record from an in-memory image, e.g. a flash page
// already mapped by the platform.
type BytesSource struct {
	Image  []byte
	Offset int
}

// ReadBlock returns a copy of the record window.
func (s BytesSource) ReadBlock() ([]byte, error) {
	if s.Offset < 0 || s.Offset > len(s.Image) {
		return nil, fmt.Errorf("%w: offset %d outside %d byte image", ErrStorageUnreadable, s.Offset, len(s.Image))
	}

	end := s.Offset + RecordSize
	if end > len(s.Image) {
		end = len(s.Image)
	}

	out := make([]byte, end-s.Offset)
	copy(out, s.Image[s.Offset:end])
	return out, nil
}
