package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"simplifytour/pkg/utils"
)

var ErrInvalidName = errors.New("invalid storage name")

// Storage stores uploaded media under names relative to its root.
type Storage interface {
	Save(name string, r io.Reader) (string, error)
	Exists(name string) bool
	Open(name string) (io.ReadCloser, error)
	Delete(name string) error
	Path(name string) string
	URL(name string) string
}

type FileSystemStorage struct {
	root    string
	baseURL string
}

func NewFileSystemStorage(root, baseURL string) *FileSystemStorage {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &FileSystemStorage{root: root, baseURL: baseURL}
}

// clean rejects names escaping the storage root.
func clean(name string) (string, error) {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	if name == "" || name == "." {
		return "", ErrInvalidName
	}
	return name, nil
}

func (s *FileSystemStorage) Path(name string) string {
	name, err := clean(name)
	if err != nil {
		return s.root
	}
	return filepath.Join(s.root, filepath.FromSlash(name))
}

func (s *FileSystemStorage) URL(name string) string {
	return s.baseURL + strings.TrimPrefix(name, "/")
}

func (s *FileSystemStorage) Exists(name string) bool {
	name, err := clean(name)
	if err != nil {
		return false
	}
	_, err = os.Stat(s.Path(name))
	return err == nil
}

func (s *FileSystemStorage) Open(name string) (io.ReadCloser, error) {
	name, err := clean(name)
	if err != nil {
		return nil, err
	}
	return os.Open(s.Path(name))
}

func (s *FileSystemStorage) Delete(name string) error {
	name, err := clean(name)
	if err != nil {
		return err
	}
	if err := os.Remove(s.Path(name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Save writes r under name, or under an alternative name when it is taken,
// and returns the name actually used.
func (s *FileSystemStorage) Save(name string, r io.Reader) (string, error) {
	name, err := clean(name)
	if err != nil {
		return "", err
	}

	name, err = s.availableName(name)
	if err != nil {
		return "", err
	}

	full := s.Path(name)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return name, nil
}

func (s *FileSystemStorage) availableName(name string) (string, error) {
	if !s.Exists(name) {
		return name, nil
	}
	dir, file := path.Split(name)
	ext := path.Ext(file)
	stem := strings.TrimSuffix(file, ext)
	for i := 0; i < 100; i++ {
		suffix, err := utils.GenerateSecureToken(4)
		if err != nil {
			return "", err
		}
		candidate := fmt.Sprintf("%s%s_%s%s", dir, stem, suffix[:7], ext)
		if !s.Exists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no available name for %s", name)
}
