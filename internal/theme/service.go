package theme

import (
	"context"
	"errors"
	"sync"

	"dsfs/internal/kv"
	applog "dsfs/internal/log"
)

// StorageKey is the durable key holding the preference string.
const StorageKey = "app_theme_mode"

// Storage is the subset of kv.Storage the service needs.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Recorder receives a notification for every preference change.
type Recorder interface {
	RecordThemeChange(preference string)
}

// Snapshot is a consistent read of the service state. Scheme and Palette
// are always derived from the same Preference and Host values.
type Snapshot struct {
	Preference   Preference `json:"preference"`
	Scheme       Scheme     `json:"scheme"`
	Host         Scheme     `json:"host"`
	IsSystemMode bool       `json:"isSystemMode"`
	Palette      Palette    `json:"palette"`
}

// Option customizes a Service.
type Option func(*Service)

// WithRecorder installs a change recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// WithHostAppearance sets the initial host appearance. The default is light.
func WithHostAppearance(host Scheme) Option {
	return func(s *Service) {
		if host.Valid() {
			s.host = host
		}
	}
}

// Service is the single source of truth for the active palette. Mutations
// are serialized; reads never observe a half-applied change.
type Service struct {
	storage  Storage
	recorder Recorder

	// writeMu orders preference updates together with their persistence so
	// the stored value always matches the last in-memory value.
	writeMu sync.Mutex

	mu         sync.RWMutex
	preference Preference
	host       Scheme
	listeners  map[int]func(Snapshot)
	nextID     int
}

// NewService builds a Service starting in system mode. storage may be nil,
// in which case preferences only live for the session.
func NewService(storage Storage, opts ...Option) *Service {
	s := &Service{
		storage:    storage,
		preference: DefaultPreference,
		host:       SchemeLight,
		listeners:  make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load restores the persisted preference. Missing, invalid or unreadable
// values leave the service in system mode.
func (s *Service) Load(ctx context.Context) Preference {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	pref := DefaultPreference
	if s.storage == nil {
		applog.Debug(ctx, "theme storage not configured; using default preference")
	} else {
		raw, err := s.storage.Get(ctx, StorageKey)
		switch {
		case errors.Is(err, kv.ErrNotFound):
			applog.Debug(ctx, "no persisted theme preference")
		case err != nil:
			applog.Warn(ctx, "failed to load theme preference", "error", err)
		default:
			parsed, perr := ParsePreference(raw)
			if perr != nil {
				applog.Warn(ctx, "ignoring invalid persisted theme preference", "value", raw)
			} else {
				pref = parsed
			}
		}
	}

	s.apply(pref)
	applog.Debug(ctx, "theme preference loaded", "preference", pref)
	return pref
}

// SetPreference applies p immediately and persists it. Persistence errors
// are logged and do not undo the change.
func (s *Service) SetPreference(ctx context.Context, p Preference) error {
	if !p.Valid() {
		return ErrInvalidPreference
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.setLocked(ctx, p)
	return nil
}

// Toggle flips between light and dark. From system mode it pins the
// opposite of the current effective scheme.
func (s *Service) Toggle(ctx context.Context) Preference {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	next := Next(s.preference, s.host)
	s.mu.RUnlock()

	s.setLocked(ctx, next)
	return next
}

func (s *Service) setLocked(ctx context.Context, p Preference) {
	s.apply(p)
	if s.recorder != nil {
		s.recorder.RecordThemeChange(string(p))
	}
	if s.storage == nil {
		return
	}
	if err := s.storage.Set(ctx, StorageKey, string(p)); err != nil {
		applog.Error(ctx, "failed to persist theme preference", "preference", p, "error", err)
	}
}

func (s *Service) apply(p Preference) {
	s.mu.Lock()
	s.preference = p
	snap := s.snapshotLocked()
	listeners := s.listenersLocked()
	s.mu.Unlock()
	notify(listeners, snap)
}

// SetHostAppearance records the host's current appearance. Invalid values
// are ignored.
func (s *Service) SetHostAppearance(host Scheme) {
	if !host.Valid() {
		return
	}
	s.mu.Lock()
	if s.host == host {
		s.mu.Unlock()
		return
	}
	s.host = host
	snap := s.snapshotLocked()
	listeners := s.listenersLocked()
	s.mu.Unlock()
	notify(listeners, snap)
}

// Preference returns the current user preference.
func (s *Service) Preference() Preference {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.preference
}

// EffectiveScheme resolves the preference against the host appearance.
func (s *Service) EffectiveScheme() Scheme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Resolve(s.preference, s.host)
}

// Palette returns the palette for the effective scheme.
func (s *Service) Palette() Palette {
	return PaletteFor(s.EffectiveScheme())
}

// Snapshot returns preference, host, scheme and palette from one read.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe registers fn for every state change and returns a function that
// removes it. fn runs synchronously and must not call SetPreference or Toggle.
func (s *Service) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Service) snapshotLocked() Snapshot {
	scheme := Resolve(s.preference, s.host)
	return Snapshot{
		Preference:   s.preference,
		Scheme:       scheme,
		Host:         s.host,
		IsSystemMode: s.preference == PreferenceSystem,
		Palette:      PaletteFor(scheme),
	}
}

func (s *Service) listenersLocked() []func(Snapshot) {
	out := make([]func(Snapshot), 0, len(s.listeners))
	for _, fn := range s.listeners {
		out = append(out, fn)
	}
	return out
}

func notify(listeners []func(Snapshot), snap Snapshot) {
	for _, fn := range listeners {
		fn(snap)
	}
}
