package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageStore persists uploaded images and hands back a stable reference.
type ImageStore interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
	Delete(ctx context.Context, ref string) error
	URL(ref string) string
}

// DiskImageStore keeps images under a local directory served as static files.
type DiskImageStore struct {
	root    string
	baseURL string
}

func NewDiskImageStore(root, baseURL string) (*DiskImageStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &DiskImageStore{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save names the file after the sniffed content type. The client file name
// is never used on disk.
func (s *DiskImageStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ext, ok := imageExtension(data)
	if !ok {
		return "", fmt.Errorf("%s is not a supported image", name)
	}
	ref := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.root, ref), data, 0o644); err != nil {
		return "", err
	}
	return ref, nil
}

// Delete removes a stored image. Missing files are not an error.
func (s *DiskImageStore) Delete(_ context.Context, ref string) error {
	if ref == "" || ref != filepath.Base(ref) {
		return fmt.Errorf("invalid image reference %q", ref)
	}
	err := os.Remove(filepath.Join(s.root, ref))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s *DiskImageStore) URL(ref string) string {
	return s.baseURL + "/" + ref
}
