package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/cart"
)

// fileCartRepository stores one JSON file per session key under dir. Writes go
// to a temp file first and are renamed into place.
type fileCartRepository struct {
	dir string
}

func NewFileCartRepo(dir string) (cart.Persister, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cart directory %s: %w", dir, err)
	}

	return &fileCartRepository{dir: dir}, nil
}

func (r *fileCartRepository) Load(ctx context.Context, key string) ([]byte, error) {
	path, err := r.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cart.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to read cart snapshot: %w", err)
	}

	return data, nil
}

func (r *fileCartRepository) Save(ctx context.Context, key string, data []byte) error {
	path, err := r.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(r.dir, ".cart-*")
	if err != nil {
		return fmt.Errorf("failed to create temp cart file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cart snapshot: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close cart snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to move cart snapshot into place: %w", err)
	}

	return nil
}

func (r *fileCartRepository) Delete(ctx context.Context, key string) error {
	path, err := r.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete cart snapshot: %w", err)
	}

	return nil
}

func (r *fileCartRepository) path(key string) (string, error) {
	name := strings.ReplaceAll(key, ":", "_")

	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid cart key %q", key)
	}

	return filepath.Join(r.dir, name+".json"), nil
}
