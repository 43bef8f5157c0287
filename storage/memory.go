// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps everything in process memory. Used by tests and by
// --storage memory.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]map[string]string
	seen map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]map[string]string),
		seen: make(map[string]int),
	}
}

func (s *MemoryStore) Get(ctx context.Context, device, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.data[device][key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *MemoryStore) Set(ctx context.Context, device, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data[device] == nil {
		s.data[device] = make(map[string]string)
	}
	s.data[device][key] = value
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, device string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.data[device], key)
	}
	return nil
}

func (s *MemoryStore) Touch(ctx context.Context, device string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seen[device]++
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// Keys returns the keys stored for device.
func (s *MemoryStore) Keys(device string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var keys []string
	for k := range s.data[device] {
		keys = append(keys, k)
	}
	return keys
}

// Seen returns how many times device was touched.
func (s *MemoryStore) Seen(device string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.seen[device]
}
