package uploads

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var ErrInvalidImage = errors.New("invalid image")

// Store writes product images into a single directory.
type Store struct {
	dir     string
	allowed map[string]bool
	now     func() time.Time
}

func NewStore(dir string, allowedExt []string) *Store {
	allowed := make(map[string]bool, len(allowedExt))
	for _, e := range allowedExt {
		allowed[strings.TrimPrefix(strings.ToLower(e), ".")] = true
	}
	return &Store{dir: dir, allowed: allowed, now: time.Now}
}

func (s *Store) Dir() string { return s.dir }

func (s *Store) Allowed(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	return ext != "" && s.allowed[ext]
}

// SaveFile stores an uploaded multipart file and returns the stored name.
func (s *Store) SaveFile(fh *multipart.FileHeader) (string, error) {
	if fh == nil || !s.Allowed(fh.Filename) {
		return "", fmt.Errorf("%w: extension not allowed", ErrInvalidImage)
	}
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := s.filename(fh.Filename)
	if err := s.write(name, src); err != nil {
		return "", err
	}
	return name, nil
}

// SaveDataURL stores a base64 image such as a camera capture
// ("data:image/png;base64,...." or bare base64).
func (s *Store) SaveDataURL(data string) (string, error) {
	ext := "png"
	payload := data
	if header, encoded, ok := strings.Cut(data, ","); ok {
		payload = encoded
		if mt, _, found := strings.Cut(strings.TrimPrefix(header, "data:"), ";"); found && strings.HasPrefix(mt, "image/") {
			ext = strings.TrimPrefix(mt, "image/")
		}
	}
	if !s.allowed[ext] {
		return "", fmt.Errorf("%w: type %s not allowed", ErrInvalidImage, ext)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil || len(raw) == 0 {
		return "", fmt.Errorf("%w: bad base64", ErrInvalidImage)
	}

	name := s.filename("camera." + ext)
	if err := s.write(name, strings.NewReader(string(raw))); err != nil {
		return "", err
	}
	return name, nil
}

// Remove deletes a stored image; a missing file is not an error.
func (s *Store) Remove(name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// filename is "<UTC timestamp>_<8 hex>_<slug>.<ext>"; the uuid fragment
// keeps two uploads in the same second apart.
func (s *Store) filename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := slug.Make(strings.TrimSuffix(filepath.Base(original), filepath.Ext(original)))
	if base == "" {
		base = "image"
	}
	return fmt.Sprintf("%s_%s_%s%s", s.now().UTC().Format("20060102150405"), uuid.NewString()[:8], base, ext)
}

func (s *Store) write(name string, r io.Reader) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
