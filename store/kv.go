// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/aclements/go-numline/interval"
)

// KV is a flat key/value store of JSON documents.
type KV interface {
	// Get returns the value stored under key. ok is false if key
	// has no value.
	Get(key string) (val []byte, ok bool, err error)
	// Set stores val under key.
	Set(key string, val []byte) error
}

// MemStore is an in-memory KV. The zero MemStore is ready to use.
type MemStore struct {
	mu sync.Mutex
	m  map[string][]byte
}

func (s *MemStore) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return append([]byte(nil), v...), ok, nil
}

func (s *MemStore) Set(key string, val []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		s.m = make(map[string][]byte)
	}
	s.m[key] = append([]byte(nil), val...)
	return nil
}

// FileStore is a KV kept in a single JSON object file. Every Set
// rewrites the file; the rewrite is atomic, so a crash leaves either
// the old or the new contents.
type FileStore struct {
	path string

	mu sync.Mutex
}

// NewFileStore returns a FileStore backed by path. The file need not
// exist yet.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file backing s.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	} else if err != nil {
		return nil, err
	}
	m := map[string]json.RawMessage{}
	if len(data) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return m, nil
}

func (s *FileStore) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.load()
	if err != nil {
		return nil, false, err
	}
	v, ok := m[key]
	return []byte(v), ok, nil
}

func (s *FileStore) Set(key string, val []byte) error {
	if !json.Valid(val) {
		return fmt.Errorf("value for %q is not valid JSON", key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, err := s.load()
	if err != nil {
		return err
	}
	m[key] = json.RawMessage(val)
	data, err := json.MarshalIndent(m, "", "\t")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Save writes s and rs to kv.
func Save(kv KV, s *interval.Scale, rs []*interval.Range) error {
	data, err := json.Marshal(EncodeScale(s))
	if err != nil {
		return err
	}
	if err := kv.Set(ScaleKey, data); err != nil {
		return err
	}
	data, err = json.Marshal(EncodeRanges(rs))
	if err != nil {
		return err
	}
	return kv.Set(RangesKey, data)
}

// LoadScale reads the Scale from kv. It returns nil, with a nil error,
// if there is no usable Scale record; the caller should fall back to
// a default Scale. The error is non-nil only if kv itself fails.
func LoadScale(kv KV) (*interval.Scale, error) {
	data, ok, err := kv.Get(ScaleKey)
	if err != nil || !ok {
		return nil, err
	}
	s, err := UnmarshalScale(data)
	if err != nil {
		return nil, nil
	}
	return s, nil
}

// LoadRanges reads the Ranges from kv, dropping unusable records. It
// returns the number of records dropped. The error is non-nil only if
// kv itself fails.
func LoadRanges(kv KV) ([]*interval.Range, int, error) {
	data, ok, err := kv.Get(RangesKey)
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return []*interval.Range{}, 0, nil
	}
	rs, dropped, err := UnmarshalRanges(data)
	if err != nil {
		// Not an array; nothing is recoverable.
		return rs, 0, nil
	}
	return rs, dropped, nil
}
