package settings

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pinmark/alfred-pinboard/internal/store"
)

// memStore is an in-memory Store with injectable failures.
type memStore struct {
	data     []byte
	readErr  error
	writeErr error
	reads    int
	writes   int
}

func (m *memStore) Read() ([]byte, error) {
	m.reads++
	if m.readErr != nil {
		return nil, m.readErr
	}
	if m.data == nil {
		return nil, store.ErrNotFound
	}
	return append([]byte(nil), m.data...), nil
}

func (m *memStore) Write(data []byte) error {
	m.writes++
	if m.writeErr != nil {
		return m.writeErr
	}
	m.data = append([]byte(nil), data...)
	return nil
}

func clock() time.Time { return fixedNow }

func newTestManager(s Store, opts ...Option) *Manager {
	return NewManager(s, append([]Option{WithClock(clock)}, opts...)...)
}

func TestLoadOrBootstrap_MissingWithToken(t *testing.T) {
	m := newTestManager(&memStore{})

	got, err := m.LoadOrBootstrap(ptr("user:secret"))
	if err != nil {
		t.Fatalf("LoadOrBootstrap: %v", err)
	}
	want := Defaults(fixedNow)
	want.AuthToken = "user:secret"
	if !got.Equal(want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLoadOrBootstrap_MissingWithoutToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	m := newTestManager(store.NewFile(path))

	_, err := m.LoadOrBootstrap(nil)
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("error = %v, want *LoadError", err)
	}
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("error %v should wrap store.ErrNotFound", err)
	}
	if le.Path != path {
		t.Errorf("LoadError.Path = %q, want %q", le.Path, path)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("no file should be created when the load is fatal")
	}
}

func TestLoadOrBootstrap_ExistingIgnoresToken(t *testing.T) {
	ms := &memStore{}
	stored := sample()
	if err := newTestManager(ms).Persist(stored); err != nil {
		t.Fatal(err)
	}

	got, err := newTestManager(ms).LoadOrBootstrap(ptr("other:token"))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(stored) {
		t.Errorf("got %+v, want stored record %+v", got, stored)
	}
}

func TestLoadOrBootstrap_CorruptContent(t *testing.T) {
	ms := &memStore{data: []byte("{{{ not: [valid")}

	if _, err := newTestManager(ms).LoadOrBootstrap(nil); err == nil {
		t.Fatal("expected load error without a token")
	}

	got, err := newTestManager(ms).LoadOrBootstrap(ptr("user:secret"))
	if err != nil {
		t.Fatalf("with token: %v", err)
	}
	if got.AuthToken != "user:secret" || got.PinsToShow != DefaultPinsToShow {
		t.Errorf("expected bootstrapped defaults, got %+v", got)
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	docs := map[string]string{
		"zero pins":      "pins_to_show: 0\n",
		"string tags":    "tags_to_show: many\n",
		"token no colon": "auth_token: abc\n",
		"bool as string": "fuzzy_search: \"yes\"\n",
		"not an object":  "- 1\n- 2\n",
		"empty document": "",
		"null limit":     "pins_to_show:\n",
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			_, err := newTestManager(&memStore{data: []byte(doc)}).Load()
			if err == nil {
				t.Fatal("expected error")
			}
			var le *LoadError
			if !errors.As(err, &le) {
				t.Errorf("error = %v, want *LoadError", err)
			}
		})
	}
}

func TestLoad_SchemaErrorNamesField(t *testing.T) {
	_, err := newTestManager(&memStore{data: []byte("pins_to_show: 0\n")}).Load()
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *SchemaError", err)
	}
	if len(se.Issues) == 0 || se.Issues[0].Path != "/pins_to_show" {
		t.Errorf("issues = %+v, want one at /pins_to_show", se.Issues)
	}
}

func TestLoad_ForwardAndBackwardCompatible(t *testing.T) {
	doc := `auth_token: user:secret
pins_to_show: 15
dark_mode: true
future_section:
  nested: 1
`
	got, err := newTestManager(&memStore{data: []byte(doc)}).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Defaults(time.Time{})
	want.AuthToken = "user:secret"
	want.PinsToShow = 15
	if !got.Equal(want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLoad_MissingUpdateTimeIsNotStamped(t *testing.T) {
	ms := &memStore{data: []byte("auth_token: u:s\n")}

	first, err := NewManager(ms, WithClock(func() time.Time {
		return time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	})).Load()
	if err != nil {
		t.Fatalf("first Load: %v", err)
	}
	second, err := NewManager(ms, WithClock(func() time.Time {
		return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	})).Load()
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}

	if !first.UpdateTime.IsZero() {
		t.Errorf("UpdateTime = %v, want zero when the record has none", first.UpdateTime)
	}
	if !first.UpdateTime.Equal(second.UpdateTime) {
		t.Errorf("UpdateTime changed between loads: %v then %v", first.UpdateTime, second.UpdateTime)
	}
}

func TestApply_KeepsStoredUpdateTime(t *testing.T) {
	ms := &memStore{data: []byte("auth_token: u:s\n")}

	res, err := newTestManager(ms).Apply(Update{FuzzySearch: ptr(true)})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Settings.UpdateTime.IsZero() {
		t.Errorf("Apply stamped UpdateTime = %v", res.Settings.UpdateTime)
	}
	stored, err := newTestManager(ms).Load()
	if err != nil {
		t.Fatal(err)
	}
	if !stored.UpdateTime.IsZero() {
		t.Errorf("persisted UpdateTime = %v, want zero", stored.UpdateTime)
	}
}

func TestPersistLoad_RoundTrip(t *testing.T) {
	for _, format := range []string{"yaml", "toml", "json"} {
		t.Run(format, func(t *testing.T) {
			codec, err := CodecFor(format)
			if err != nil {
				t.Fatal(err)
			}
			path := filepath.Join(t.TempDir(), "settings."+format)
			m := newTestManager(store.NewFile(path), WithCodec(codec))

			c := sample()
			c.UpdateTime = time.Date(2023, 11, 5, 8, 15, 42, 0, time.FixedZone("CET", 3600))
			if err := m.Persist(c); err != nil {
				t.Fatalf("Persist: %v", err)
			}

			got, err := newTestManager(store.NewFile(path), WithCodec(codec)).Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !got.Equal(c) {
				t.Errorf("round trip = %+v\nwant         %+v", got, c)
			}
		})
	}
}

func TestApply_InvalidTokenTouchesNothing(t *testing.T) {
	ms := &memStore{}
	_, err := newTestManager(ms).Apply(Update{AuthToken: ptr("abc"), FuzzySearch: ptr(true)})
	if !errors.Is(err, ErrInvalidTokenFormat) {
		t.Fatalf("error = %v, want ErrInvalidTokenFormat", err)
	}
	if ms.reads != 0 || ms.writes != 0 {
		t.Errorf("store touched: %d reads, %d writes", ms.reads, ms.writes)
	}
}

func TestApply_MissingStoreWithoutToken(t *testing.T) {
	ms := &memStore{}
	_, err := newTestManager(ms).Apply(Update{TagsToShow: ptr(3)})
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("error = %v, want *LoadError", err)
	}
	if ms.writes != 0 {
		t.Error("nothing should be written after a fatal load")
	}
}

func TestApply_BootstrapsAndPersists(t *testing.T) {
	ms := &memStore{}
	res, err := newTestManager(ms).Apply(Update{
		AuthToken:  ptr("user:secret"),
		PinsToShow: ptr(20),
		Shared:     ptr(true),
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !res.Bootstrapped {
		t.Error("expected Bootstrapped")
	}
	if res.SaveErr != nil {
		t.Fatalf("SaveErr: %v", res.SaveErr)
	}

	want := Defaults(fixedNow)
	want.AuthToken = "user:secret"
	want.PinsToShow = 20
	want.PrivateNewPin = false
	if !res.Settings.Equal(want) {
		t.Errorf("Settings = %+v, want %+v", res.Settings, want)
	}

	stored, err := newTestManager(ms).Load()
	if err != nil {
		t.Fatal(err)
	}
	if !stored.Equal(res.Settings) {
		t.Errorf("stored %+v differs from merged %+v", stored, res.Settings)
	}
}

func TestApply_MergesOntoExisting(t *testing.T) {
	ms := &memStore{}
	if err := newTestManager(ms).Persist(sample()); err != nil {
		t.Fatal(err)
	}

	res, err := newTestManager(ms).Apply(Update{TagsToShow: ptr(7)})
	if err != nil {
		t.Fatal(err)
	}
	want := sample()
	want.TagsToShow = 7
	if res.Bootstrapped {
		t.Error("should not bootstrap over an existing record")
	}
	if !res.Settings.Equal(want) {
		t.Errorf("Settings = %+v, want %+v", res.Settings, want)
	}
}

func TestApply_PersistFailureIsNonFatal(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	ms := &memStore{writeErr: errors.New("disk full")}

	res, err := newTestManager(ms, WithLogger(logger)).Apply(Update{
		AuthToken:   ptr("user:secret"),
		FuzzySearch: ptr(true),
	})
	if err != nil {
		t.Fatalf("Apply returned fatal error: %v", err)
	}

	var pe *PersistError
	if !errors.As(res.SaveErr, &pe) {
		t.Fatalf("SaveErr = %v, want *PersistError", res.SaveErr)
	}
	if !strings.Contains(pe.Error(), "disk full") {
		t.Errorf("PersistError should carry the cause, got %q", pe.Error())
	}
	if !res.Settings.FuzzySearch || res.Settings.AuthToken != "user:secret" {
		t.Errorf("merged state lost: %+v", res.Settings)
	}
	if !strings.Contains(logs.String(), "couldn't save settings") {
		t.Errorf("expected error log, got %q", logs.String())
	}
}
