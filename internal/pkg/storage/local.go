package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps media on disk and serves it below publicBase.
type LocalStorage struct {
	root       string
	publicBase string
}

func NewLocalStorage(root, publicBase string) *LocalStorage {
	return &LocalStorage{root: root, publicBase: strings.TrimSuffix(publicBase, "/")}
}

func (s *LocalStorage) Root() string { return s.root }

func (s *LocalStorage) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}

func (s *LocalStorage) Put(_ context.Context, key string, reader io.Reader, _ int64, _ string) error {
	dst, err := s.path(key)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create media dir: %w", err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", key, err)
	}
	defer func() {
		_ = f.Close()
	}()
	if _, err = io.Copy(f, reader); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *LocalStorage) Delete(_ context.Context, key string) error {
	dst, err := s.path(key)
	if err != nil {
		return err
	}
	if err = os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *LocalStorage) URL(key string) string {
	return s.publicBase + "/" + strings.TrimPrefix(key, "/")
}
