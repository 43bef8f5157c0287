// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"
)

// FileStore keeps one JSON document per device under a directory.
// Writes replace the document atomically.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("file storage requires a directory")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Get(ctx context.Context, device, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(device)
	if err != nil {
		return "", err
	}
	value, ok := doc[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *FileStore) Set(ctx context.Context, device, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(device)
	if err != nil {
		return err
	}
	doc[key] = value
	return s.save(device, doc)
}

func (s *FileStore) Remove(ctx context.Context, device string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(device)
	if err != nil {
		return err
	}
	for _, key := range keys {
		delete(doc, key)
	}
	if len(doc) == 0 {
		err := os.Remove(s.path(device))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove storage file: %w", err)
		}
		return nil
	}
	return s.save(device, doc)
}

// Touch is a no-op; the file's modification time already tracks activity.
func (s *FileStore) Touch(ctx context.Context, device string) error {
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) path(device string) string {
	return filepath.Join(s.dir, filepath.Base(device)+".json")
}

func (s *FileStore) load(device string) (map[string]string, error) {
	data, err := os.ReadFile(s.path(device))
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read storage file: %w", err)
	}

	doc := map[string]string{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse storage file: %w", err)
	}
	return doc, nil
}

func (s *FileStore) save(device string, doc map[string]string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode storage file: %w", err)
	}
	if err := atomic.WriteFile(s.path(device), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write storage file: %w", err)
	}
	return nil
}
