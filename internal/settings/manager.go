package settings

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Store reads and writes the serialized record.
type Store interface {
	Read() ([]byte, error)
	Write(data []byte) error
}

// Manager loads, merges and persists Settings through a Store.
type Manager struct {
	store  Store
	codec  Codec
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithCodec sets the on-disk format. The default is YAML.
func WithCodec(c Codec) Option {
	return func(m *Manager) {
		m.codec = c
	}
}

// WithLogger sets the logger for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithClock sets the time source used to stamp bootstrapped records.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a Manager backed by s.
func NewManager(s Store, opts ...Option) *Manager {
	m := &Manager{
		store:  s,
		codec:  yamlCodec{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Result is the outcome of Apply. Settings is always the merged record, even
// when SaveErr reports that it could not be written.
type Result struct {
	Settings     Settings
	Bootstrapped bool
	SaveErr      error
}

// Load reads the stored record. The stored bytes must satisfy the settings
// schema; keys they omit take their default values, except UpdateTime which
// stays zero until a cache refresh records one.
func (m *Manager) Load() (Settings, error) {
	data, err := m.store.Read()
	if err != nil {
		return Settings{}, &LoadError{Path: m.location(), Err: err}
	}
	if err := validateDocument(m.codec, data); err != nil {
		return Settings{}, &LoadError{Path: m.location(), Err: err}
	}

	s := Defaults(time.Time{})
	if err := m.codec.Decode(data, &s); err != nil {
		return Settings{}, &LoadError{
			Path: m.location(),
			Err:  fmt.Errorf("decoding %s: %w", m.codec.Name(), err),
		}
	}
	return s, nil
}

// LoadOrBootstrap returns the stored record, or a default record carrying
// token when nothing usable is stored. Without a token a failed load is
// returned as a *LoadError. token must already have passed ValidateToken.
func (m *Manager) LoadOrBootstrap(token *string) (Settings, error) {
	s, _, err := m.loadOrBootstrap(token)
	return s, err
}

func (m *Manager) loadOrBootstrap(token *string) (Settings, bool, error) {
	s, err := m.Load()
	if err == nil {
		return s, false, nil
	}
	if token == nil {
		return Settings{}, false, err
	}

	m.logger.Debug("bootstrapping default settings", "reason", err)
	s = Defaults(m.now())
	s.AuthToken = *token
	return s, true, nil
}

// Persist writes the full record, replacing whatever was stored.
func (m *Manager) Persist(s Settings) error {
	data, err := m.codec.Encode(s)
	if err != nil {
		return &PersistError{
			Path: m.location(),
			Err:  fmt.Errorf("encoding %s: %w", m.codec.Name(), err),
		}
	}
	if err := m.store.Write(data); err != nil {
		return &PersistError{Path: m.location(), Err: err}
	}
	return nil
}

// Apply validates u, loads or bootstraps the current record, merges u into
// it and persists the result. Validation and load failures are returned as
// errors. A failed save is logged and reported in Result.SaveErr only.
func (m *Manager) Apply(u Update) (Result, error) {
	if err := u.Validate(); err != nil {
		return Result{}, err
	}

	current, bootstrapped, err := m.loadOrBootstrap(u.AuthToken)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Settings:     Merge(current, u),
		Bootstrapped: bootstrapped,
	}
	if err := m.Persist(res.Settings); err != nil {
		m.logger.Error("couldn't save settings", "error", err)
		res.SaveErr = err
		return res, nil
	}
	m.logger.Debug("saved settings", "path", m.location(), "format", m.codec.Name())
	return res, nil
}

// location names the store for messages when it knows its path.
func (m *Manager) location() string {
	if p, ok := m.store.(interface{ Path() string }); ok {
		return p.Path()
	}
	return ""
}
