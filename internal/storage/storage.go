// Package storage is a flat key/value store kept as one file per key on a hackpadfs filesystem.
// The editor keeps saved scenes under SceneKey.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
	osfs "github.com/hack-pad/hackpadfs/os"
)

// SceneKey is the key the editor saves the current scene under.
const SceneKey = "ai3d_scene"

// ErrNotFound is returned by Get for a key that has never been set.
var ErrNotFound = errors.New("storage: not found")

// Store maps keys to byte values.
type Store struct {
	fs hackpadfs.FS
}

// New returns a store over fsys. fsys must support writes (hackpadfs.OpenFileFS).
func New(fsys hackpadfs.FS) *Store {
	return &Store{fs: fsys}
}

// OpenDir returns a store kept in the OS directory dir, creating it if needed.
func OpenDir(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	root := osfs.NewFS()
	p, err := root.FromOSPath(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	if err := hackpadfs.MkdirAll(root, p, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", dir, err)
	}
	sub, err := root.Sub(p)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	return New(sub), nil
}

// Memory returns an empty in-memory store.
func Memory() (*Store, error) {
	m, err := mem.NewFS()
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	return New(m), nil
}

func checkKey(key string) error {
	if key == "" || strings.Contains(key, "/") || !fs.ValidPath(key) {
		return fmt.Errorf("storage: invalid key %q", key)
	}
	return nil
}

// Get returns the value stored under key, or an error wrapping ErrNotFound.
func (s *Store) Get(key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	data, err := hackpadfs.ReadFile(s.fs, key)
	if errors.Is(err, hackpadfs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", key, err)
	}
	return data, nil
}

// Set replaces the value stored under key.
func (s *Store) Set(key string, data []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := hackpadfs.WriteFullFile(s.fs, key, data, 0o644); err != nil {
		return fmt.Errorf("storage: write %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := hackpadfs.Remove(s.fs, key); err != nil && !errors.Is(err, hackpadfs.ErrNotExist) {
		return fmt.Errorf("storage: delete %s: %w", key, err)
	}
	return nil
}

// Keys lists the stored keys in lexical order.
func (s *Store) Keys() ([]string, error) {
	entries, err := hackpadfs.ReadDir(s.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("storage: list: %w", err)
	}
	var keys []string
	for _, e := range entries {
		if !e.IsDir() {
			keys = append(keys, e.Name())
		}
	}
	sort.Strings(keys)
	return keys, nil
}
