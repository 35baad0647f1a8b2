package jsonstore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/Makepad-fr/cart/internal/store"
)

// File-backed slots. One human-readable file per key.
// No locking; fine for a local single-user CLI.

const fileExt = ".json"

type Store struct {
	dir string
}

// New returns a Store rooted at dir, creating it if needed.
// An empty dir means the working directory.
func New(dir string) (*Store, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "getwd")
		}
		dir = wd
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "mkdir")
	}
	return &Store{dir: dir}, nil
}

// Path returns the file a key is kept in.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, sanitize(key)+fileExt)
}

func (s *Store) Get(key string) (string, error) {
	b, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", store.ErrNotFound
		}
		return "", errors.Wrap(err, "read file")
	}
	return string(b), nil
}

// Set writes through a temp file and a rename so readers never see a
// partial value.
func (s *Store) Set(key, value string) error {
	p := s.Path(key)
	tmp, err := os.CreateTemp(s.dir, "."+sanitize(key)+"-*")
	if err != nil {
		return errors.Wrap(err, "create temp")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp")
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return errors.Wrap(err, "chmod")
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return errors.Wrap(err, "rename")
	}
	return nil
}

func (s *Store) Delete(key string) error {
	if err := os.Remove(s.Path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrap(err, "remove")
	}
	return nil
}

func (s *Store) Close() error { return nil }

// sanitize keeps keys from escaping the store directory.
func sanitize(key string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\':
			return '_'
		}
		return r
	}, filepath.Clean("/" + key)[1:])
}
