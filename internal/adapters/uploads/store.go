package uploads

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/kennygrant/sanitize"
	"github.com/nfnt/resize"
	"github.com/rs/zerolog/log"
)

const (
	thumbDir    = "thumbs"
	thumbWidth  = 320
	thumbHeight = 240
)

var ErrEmptyName = errors.New("uploads: empty file name")

// Store keeps uploaded listing images on local disk.
type Store struct{ dir string }

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, thumbDir), 0o755); err != nil {
		return nil, fmt.Errorf("uploads: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes the upload under its sanitized name and returns that name.
// An existing file with the same name is overwritten.
func (s *Store) Save(name string, r io.Reader) (string, error) {
	clean := sanitize.Name(filepath.Base(name))
	if clean == "" || clean == "." {
		return "", ErrEmptyName
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("uploads: read %s: %w", clean, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, clean), data, 0o644); err != nil {
		return "", fmt.Errorf("uploads: write %s: %w", clean, err)
	}
	if err := s.writeThumb(clean, data); err != nil {
		log.Warn().Err(err).Str("file", clean).Msg("thumbnail failed")
	}
	return clean, nil
}

// ThumbPath is where the thumbnail for name lives.
func (s *Store) ThumbPath(name string) string {
	return filepath.Join(s.dir, thumbDir, name)
}

func (s *Store) writeThumb(name string, data []byte) error {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		// not an image we can read; keep a verbatim copy
		return os.WriteFile(s.ThumbPath(name), data, 0o644)
	}
	t := resize.Thumbnail(thumbWidth, thumbHeight, img, resize.Lanczos3)

	var buf bytes.Buffer
	// same format as the upload; the thumbnail reuses its name
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, t, &jpeg.Options{Quality: 85})
	case "gif":
		err = gif.Encode(&buf, t, nil)
	default:
		err = png.Encode(&buf, t)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(s.ThumbPath(name), buf.Bytes(), 0o644)
}
