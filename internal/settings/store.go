package settings

import (
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/falldown/internal/storage"
)

// Backend is the persistent key-value store the settings live in.
// Read returns storage.ErrNotFound when the key has never been written.
type Backend interface {
	Read(key Key) ([]byte, error)
	Write(key Key, value []byte) error
}

// Redrawer is the capability handed to toggle callbacks by the list UI.
// Its only use is asking the UI to refresh a row after the value changed.
type Redrawer interface {
	RedrawRow(index int)
}

// Listener is notified after a toggle changed the settings.
type Listener func(s Settings)

// Store owns the settings record and bridges it to the backend.
// Persistence failures are logged and never returned to callers.
type Store struct {
	mu          sync.Mutex
	current     Settings
	initialized bool
	backend     Backend
	logger      *log.Logger

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int
}

// NewStore creates a store holding the default settings.
// A nil backend is treated as permanently unavailable storage.
func NewStore(backend Backend, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		current:   Defaults(),
		backend:   backend,
		logger:    logger,
		listeners: make(map[int]Listener),
	}
}

// InitSettings loads every toggle from the backend. Missing or malformed
// values fall back to their defaults. Calling it again re-reads storage.
func (s *Store) InitSettings() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
}

// load must be called with s.mu held.
func (s *Store) load() {
	defaults := Defaults()
	next := defaults

	for _, t := range toggles {
		*t.field(&next) = s.readToggle(t, *t.field(&defaults))
	}

	s.current = next
	s.initialized = true
}

func (s *Store) readToggle(t toggle, fallback bool) bool {
	if s.backend == nil {
		return fallback
	}

	data, err := s.backend.Read(t.key)
	if errors.Is(err, storage.ErrNotFound) {
		return fallback
	}
	if err != nil {
		s.logger.Warn("cannot read setting, using default", "key", t.key, "error", err)
		return fallback
	}

	v, ok := decodeBool(data)
	if !ok {
		s.logger.Warn("malformed setting, using default", "key", t.key, "size", len(data))
		return fallback
	}
	return v
}

// DeinitSettings writes every toggle to the backend.
// Write failures leave the previously persisted values in place.
func (s *Store) DeinitSettings() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range toggles {
		s.writeToggle(t, *t.field(&s.current))
	}
}

func (s *Store) writeToggle(t toggle, v bool) {
	if s.backend == nil {
		return
	}
	if err := s.backend.Write(t.key, encodeBool(v)); err != nil {
		s.logger.Warn("cannot persist setting", "key", t.key, "error", err)
	}
}

// AccelerometerControlCallback flips motion control and persists the new
// value immediately. Calls for any row other than the accelerometer row
// are ignored.
func (s *Store) AccelerometerControlCallback(index int, redraw Redrawer) {
	if index != RowAccelerometerControl {
		return
	}
	s.flip(toggles[RowAccelerometerControl], index, redraw)
}

// Select dispatches a user action on the row at index to its callback.
func (s *Store) Select(index int, redraw Redrawer) {
	if index < 0 || index >= len(toggles) {
		return
	}

	switch index {
	case RowAccelerometerControl:
		s.AccelerometerControlCallback(index, redraw)
	default:
		s.flip(toggles[index], index, redraw)
	}
}

func (s *Store) flip(t toggle, index int, redraw Redrawer) {
	if index < 0 || index >= len(toggles) {
		return
	}

	s.mu.Lock()
	if !s.initialized {
		s.load()
	}
	field := t.field(&s.current)
	*field = !*field
	s.writeToggle(t, *field)
	snapshot := s.current
	s.mu.Unlock()

	s.logger.Debug("setting toggled", "key", t.key, "value", onOff(*t.field(&snapshot)))

	if redraw != nil {
		redraw.RedrawRow(index)
	}
	s.notify(snapshot)
}

// DisplaySettings returns the render data for every toggle row.
// Before the first load it shows the defaults.
func (s *Store) DisplaySettings() []Row {
	snapshot := s.Settings()

	rows := make([]Row, 0, len(toggles))
	for _, t := range toggles {
		v := *t.field(&snapshot)
		rows = append(rows, Row{
			Title:    t.title,
			Subtitle: onOff(v),
			On:       v,
		})
	}
	return rows
}

// Settings returns a copy of the current settings record.
func (s *Store) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Initialized reports whether InitSettings has run at least once.
func (s *Store) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// Subscribe registers l for toggle notifications.
// The returned function removes the subscription.
func (s *Store) Subscribe(l Listener) (cancel func()) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) notify(snapshot Settings) {
	s.listenersMu.Lock()
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	s.listenersMu.Unlock()

	for _, l := range ls {
		l(snapshot)
	}
}
