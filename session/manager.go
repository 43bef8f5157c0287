// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/giftquiz/models"
	"github.com/danielhkuo/giftquiz/storage"
)

// DefaultPersistDelay is the quiet period before a scheduled write fires.
const DefaultPersistDelay = 500 * time.Millisecond

const (
	persistTimeout = 5 * time.Second
	restoreTimeout = 5 * time.Second
)

// ErrNotRestored is returned by Persist while the device's saved answers
// have not been read; writing then would overwrite them.
var ErrNotRestored = errors.New("saved answers not loaded yet")

// Manager owns the State of every device and moves it to and from storage.
type Manager struct {
	store storage.Store
	total int
	now   func() time.Time

	debouncer *Debouncer

	mu     sync.Mutex
	states map[string]*State
}

// NewManager creates a manager for answer arrays of length total.
// A zero delay uses DefaultPersistDelay.
func NewManager(store storage.Store, total int, delay time.Duration) *Manager {
	if delay <= 0 {
		delay = DefaultPersistDelay
	}
	m := &Manager{
		store:  store,
		total:  total,
		now:    time.Now,
		states: make(map[string]*State),
	}
	m.debouncer = NewDebouncer(delay, func(device string) {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		_ = m.Persist(ctx, device)
	})
	return m
}

// State returns the device's state. Saved answers are restored on first
// use, and again on later calls while storage keeps failing.
func (m *Manager) State(ctx context.Context, device string) *State {
	st := m.state(device)
	if !st.isLoaded() {
		m.Restore(ctx, device)
	}
	return st
}

func (m *Manager) state(device string) *State {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.states[device]
	if !ok {
		st = newState(m.total)
		m.states[device] = st
	}
	return st
}

// Restore loads the device's saved answers unless a previous attempt
// settled the state. A missing key or corrupt data settles it with the
// defaults; a storage error leaves it unsettled so the next call retries.
// Answers recorded before the load take precedence over stored ones. The
// return value reports whether stored answers were applied.
func (m *Manager) Restore(ctx context.Context, device string) bool {
	return m.restore(ctx, device, m.state(device))
}

func (m *Manager) restore(ctx context.Context, device string, st *State) bool {
	st.loadMu.Lock()
	defer st.loadMu.Unlock()

	if st.isLoaded() {
		return false
	}

	// The read must not fail because the requesting client went away.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), restoreTimeout)
	defer cancel()

	raw, err := m.store.Get(ctx, device, models.StorageKeyAnswers)
	if errors.Is(err, storage.ErrNotFound) {
		st.markLoaded()
		return false
	}
	if err != nil {
		slog.Warn("failed to load saved answers", "device", device, "error", err)
		st.Notify(models.NoticeWarning, "Saved answers could not be loaded")
		return false
	}

	var answers models.Answers
	if err := json.Unmarshal([]byte(raw), &answers); err != nil || len(answers) != m.total {
		slog.Warn("discarding corrupt saved answers", "device", device, "length", len(answers), "error", err)
		st.Notify(models.NoticeWarning, "Saved answers could not be loaded")
		st.markLoaded()
		return false
	}

	var meta *models.Meta
	if rawMeta, err := m.store.Get(ctx, device, models.StorageKeyMeta); err == nil {
		var mt models.Meta
		if json.Unmarshal([]byte(rawMeta), &mt) == nil {
			meta = &mt
		}
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	// A Clear settled the state while storage was being read.
	if st.loaded {
		return false
	}
	for i, v := range st.answers {
		if v.Answered() {
			answers[i] = v
		}
	}
	st.answers = answers
	st.meta = meta
	st.loaded = true

	slog.Debug("answers restored", "device", device, "answered", answers.Count())
	return true
}

// Persist writes the device's answers and a metadata stamp. A failure is
// logged and queued as a warning notice; the in-memory state is kept.
// Nothing is written while the saved answers could not be read, and a
// write that waited behind a Clear is dropped.
func (m *Manager) Persist(ctx context.Context, device string) error {
	st := m.state(device)
	gen := st.generation()

	st.writeMu.Lock()
	defer st.writeMu.Unlock()

	if st.generation() != gen {
		return nil
	}

	if !st.isLoaded() {
		m.restore(ctx, device, st)
	}
	if !st.isLoaded() {
		slog.Warn("not saving answers before the saved ones are loaded", "device", device)
		st.Notify(models.NoticeError, "Your answers could not be saved")
		return ErrNotRestored
	}

	answers := st.Answers()
	meta := models.Meta{
		UpdatedAt: m.now().UTC().Truncate(time.Millisecond),
		Version:   models.SchemaVersion,
	}

	err := m.write(ctx, device, answers, meta)
	if err != nil {
		slog.Warn("failed to save answers", "device", device, "error", err)
		st.Notify(models.NoticeError, "Your answers could not be saved")
		return err
	}

	st.mu.Lock()
	st.meta = &meta
	st.mu.Unlock()
	return nil
}

func (m *Manager) write(ctx context.Context, device string, answers models.Answers, meta models.Meta) error {
	rawAnswers, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	rawMeta, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encode meta: %w", err)
	}

	if err := m.store.Set(ctx, device, models.StorageKeyAnswers, string(rawAnswers)); err != nil {
		return err
	}
	return m.store.Set(ctx, device, models.StorageKeyMeta, string(rawMeta))
}

// SchedulePersist (re)schedules a single write for device, replacing any
// write that has not fired yet.
func (m *Manager) SchedulePersist(device string) {
	m.debouncer.Schedule(device)
}

// Clear drops any pending write, removes both storage keys and resets the
// answers. Callers must have the user's confirmation.
func (m *Manager) Clear(ctx context.Context, device string) error {
	m.debouncer.Cancel(device)
	st := m.state(device)

	// Waits for a write that already started, so it cannot bring the keys back.
	st.writeMu.Lock()
	defer st.writeMu.Unlock()

	err := m.store.Remove(ctx, device, models.StorageKeyAnswers, models.StorageKeyMeta)
	if err != nil {
		slog.Error("failed to clear saved answers", "device", device, "error", err)
	}

	st.reset()
	st.Notify(models.NoticeSuccess, "All answers have been deleted")
	slog.Info("answers cleared", "device", device)
	return err
}

// Flush runs every pending write now. Called on shutdown.
func (m *Manager) Flush() {
	m.debouncer.Flush()
}

// Pending returns the number of scheduled writes.
func (m *Manager) Pending() int {
	return m.debouncer.Pending()
}
