// Package memstore is an in-process Backend. Nothing survives the process;
// it backs --store=memory and the tests.
package memstore

import "github.com/Makepad-fr/cart/internal/store"

type Store struct {
	m        map[string]string
	writeErr error
}

func New() *Store {
	return &Store{m: make(map[string]string)}
}

func (s *Store) Get(key string) (string, error) {
	v, ok := s.m[key]
	if !ok {
		return "", store.ErrNotFound
	}
	return v, nil
}

func (s *Store) Set(key, value string) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.m[key] = value
	return nil
}

func (s *Store) Delete(key string) error {
	delete(s.m, key)
	return nil
}

func (s *Store) Close() error { return nil }

// FailWrites makes every later Set return err, like a full quota.
// Pass nil to accept writes again.
func (s *Store) FailWrites(err error) { s.writeErr = err }
