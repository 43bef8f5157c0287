// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"fmt"
	"sync"

	"github.com/danielhkuo/giftquiz/models"
)

// State is the in-memory questionnaire state of one device.
type State struct {
	// loadMu serializes restore attempts, writeMu serializes Persist and Clear.
	loadMu  sync.Mutex
	writeMu sync.Mutex

	mu      sync.Mutex
	loaded  bool
	gen     uint64
	answers models.Answers
	meta    *models.Meta
	notices []models.Notice
}

func newState(total int) *State {
	return &State{answers: models.NewAnswers(total)}
}

// Answers returns a copy of the answer array.
func (s *State) Answers() models.Answers {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.answers.Clone()
}

// Answer returns the answer at index i.
func (s *State) Answer(i int) models.Answer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.answers) {
		return models.Unanswered
	}
	return s.answers[i]
}

// SetAnswer records value at index i.
func (s *State) SetAnswer(i int, value models.Answer) error {
	if !value.Valid() {
		return fmt.Errorf("answer %d out of range 0-%d", value, models.MaxAnswer)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.answers) {
		return fmt.Errorf("question index %d out of range 0-%d", i, len(s.answers)-1)
	}
	s.answers[i] = value
	return nil
}

// Progress returns answered count over the answer array length.
func (s *State) Progress() models.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.NewProgress(s.answers, len(s.answers))
}

// Meta returns the last metadata stamp written or restored, or nil.
func (s *State) Meta() *models.Meta {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.meta == nil {
		return nil
	}
	m := *s.meta
	return &m
}

// Notify queues a notice for the next rendered page.
func (s *State) Notify(level, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notices = append(s.notices, models.Notice{Level: level, Message: message})
}

// TakeNotices returns and clears the queued notices.
func (s *State) TakeNotices() []models.Notice {
	s.mu.Lock()
	defer s.mu.Unlock()

	notices := s.notices
	s.notices = nil
	return notices
}

// isLoaded reports whether storage has been read successfully, found empty
// or found corrupt. Until then the stored answers must not be overwritten.
func (s *State) isLoaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loaded
}

func (s *State) markLoaded() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = true
}

// generation changes on every reset.
func (s *State) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.gen
}

// reset empties the answers. Storage was cleared, so the state counts as
// loaded.
func (s *State) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.answers.Reset()
	s.meta = nil
	s.loaded = true
	s.gen++
}
