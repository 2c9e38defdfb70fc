package theme

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"dsfs/internal/kv"
)

type failingStorage struct {
	getErr error
	setErr error
	sets   int
}

func (f *failingStorage) Get(context.Context, string) (string, error) {
	return "", f.getErr
}

func (f *failingStorage) Set(context.Context, string, string) error {
	f.sets++
	return f.setErr
}

type recorderStub struct {
	mu      sync.Mutex
	changes []string
}

func (r *recorderStub) RecordThemeChange(p string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, p)
}

func TestNewServiceDefaultsToSystem(t *testing.T) {
	t.Parallel()

	svc := NewService(nil)
	if svc.Preference() != PreferenceSystem {
		t.Fatalf("Preference() = %s, want system", svc.Preference())
	}
	if svc.EffectiveScheme() != SchemeLight {
		t.Fatalf("EffectiveScheme() = %s, want light", svc.EffectiveScheme())
	}
}

func TestSetPreferencePersistsAndApplies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := kv.NewMemoryStore()
	rec := &recorderStub{}
	svc := NewService(store, WithRecorder(rec), WithHostAppearance(SchemeLight))

	if err := svc.SetPreference(ctx, PreferenceDark); err != nil {
		t.Fatalf("SetPreference error = %v", err)
	}
	if svc.EffectiveScheme() != SchemeDark {
		t.Fatalf("EffectiveScheme() = %s, want dark", svc.EffectiveScheme())
	}
	if got, _ := store.Get(ctx, StorageKey); got != "dark" {
		t.Fatalf("persisted value = %q, want dark", got)
	}
	if len(rec.changes) != 1 || rec.changes[0] != "dark" {
		t.Fatalf("recorded changes = %v", rec.changes)
	}
}

func TestSetPreferenceRejectsInvalid(t *testing.T) {
	t.Parallel()

	store := &failingStorage{}
	svc := NewService(store)
	if err := svc.SetPreference(context.Background(), Preference("sepia")); !errors.Is(err, ErrInvalidPreference) {
		t.Fatalf("SetPreference error = %v, want ErrInvalidPreference", err)
	}
	if store.sets != 0 {
		t.Fatal("invalid preference must not be persisted")
	}
	if svc.Preference() != PreferenceSystem {
		t.Fatalf("Preference() = %s, want unchanged system", svc.Preference())
	}
}

func TestSetPreferenceSurvivesStorageFailure(t *testing.T) {
	t.Parallel()

	svc := NewService(&failingStorage{setErr: errors.New("disk full")})
	if err := svc.SetPreference(context.Background(), PreferenceDark); err != nil {
		t.Fatalf("SetPreference error = %v, want nil", err)
	}
	if svc.Preference() != PreferenceDark {
		t.Fatalf("Preference() = %s, want dark for the session", svc.Preference())
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		storage Storage
		want    Preference
	}{
		{"nil storage", nil, PreferenceSystem},
		{"missing key", kv.NewMemoryStore(), PreferenceSystem},
		{"read failure", &failingStorage{getErr: errors.New("io")}, PreferenceSystem},
		{"persisted dark", seeded(t, "dark"), PreferenceDark},
		{"persisted invalid", seeded(t, "neon"), PreferenceSystem},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := NewService(tt.storage)
			if got := svc.Load(context.Background()); got != tt.want {
				t.Fatalf("Load() = %s, want %s", got, tt.want)
			}
			if svc.Preference() != tt.want {
				t.Fatalf("Preference() = %s, want %s", svc.Preference(), tt.want)
			}
		})
	}
}

func seeded(t *testing.T, value string) *kv.MemoryStore {
	t.Helper()
	store := kv.NewMemoryStore()
	if err := store.Set(context.Background(), StorageKey, value); err != nil {
		t.Fatalf("seed storage: %v", err)
	}
	return store
}

func TestLoadRestoresAcrossRestart(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := kv.NewMemoryStore()
	first := NewService(store)
	if err := first.SetPreference(ctx, PreferenceLight); err != nil {
		t.Fatalf("SetPreference error = %v", err)
	}

	second := NewService(store, WithHostAppearance(SchemeDark))
	second.Load(ctx)
	if second.EffectiveScheme() != SchemeLight {
		t.Fatalf("EffectiveScheme() after restart = %s, want light", second.EffectiveScheme())
	}
}

func TestToggle(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		start Preference
		host  Scheme
		want  Preference
	}{
		{"system on light host", PreferenceSystem, SchemeLight, PreferenceDark},
		{"system on dark host", PreferenceSystem, SchemeDark, PreferenceLight},
		{"light", PreferenceLight, SchemeDark, PreferenceDark},
		{"dark", PreferenceDark, SchemeDark, PreferenceLight},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			svc := NewService(kv.NewMemoryStore(), WithHostAppearance(tt.host))
			if err := svc.SetPreference(ctx, tt.start); err != nil {
				t.Fatalf("SetPreference error = %v", err)
			}
			before := svc.EffectiveScheme()
			if got := svc.Toggle(ctx); got != tt.want {
				t.Fatalf("Toggle() = %s, want %s", got, tt.want)
			}
			if svc.EffectiveScheme() == before {
				t.Fatalf("Toggle() kept effective scheme %s", before)
			}
		})
	}
}

func TestHostAppearanceOnlyAffectsSystemMode(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewService(nil)
	svc.SetHostAppearance(SchemeDark)
	if svc.EffectiveScheme() != SchemeDark {
		t.Fatalf("EffectiveScheme() = %s, want dark from host", svc.EffectiveScheme())
	}

	if err := svc.SetPreference(ctx, PreferenceLight); err != nil {
		t.Fatalf("SetPreference error = %v", err)
	}
	svc.SetHostAppearance(SchemeLight)
	svc.SetHostAppearance(SchemeDark)
	if svc.EffectiveScheme() != SchemeLight {
		t.Fatalf("EffectiveScheme() = %s, want pinned light", svc.EffectiveScheme())
	}

	svc.SetHostAppearance(Scheme("sepia"))
	if svc.Snapshot().Host != SchemeDark {
		t.Fatalf("invalid host appearance should be ignored, host = %s", svc.Snapshot().Host)
	}
}

func TestPaletteIdempotentBetweenChanges(t *testing.T) {
	t.Parallel()

	svc := NewService(nil, WithHostAppearance(SchemeDark))
	if diff := cmp.Diff(svc.Palette(), svc.Palette()); diff != "" {
		t.Fatalf("palette differs between reads:\n%s", diff)
	}
}

func TestSnapshotIsConsistent(t *testing.T) {
	t.Parallel()

	svc := NewService(nil, WithHostAppearance(SchemeDark))
	snap := svc.Snapshot()
	if !snap.IsSystemMode || snap.Scheme != SchemeDark {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.Palette != PaletteFor(snap.Scheme) {
		t.Fatal("snapshot palette does not match its scheme")
	}
}

func TestSubscribeReceivesChanges(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewService(nil)
	var got []Scheme
	unsubscribe := svc.Subscribe(func(s Snapshot) {
		got = append(got, s.Scheme)
	})

	svc.Toggle(ctx)
	svc.SetHostAppearance(SchemeDark)
	unsubscribe()
	unsubscribe()
	svc.Toggle(ctx)

	want := []Scheme{SchemeDark, SchemeDark}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestConcurrentReadsDuringToggle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := NewService(kv.NewMemoryStore())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			svc.Toggle(ctx)
		}()
		go func() {
			defer wg.Done()
			snap := svc.Snapshot()
			if snap.Palette != PaletteFor(snap.Scheme) {
				t.Error("observed palette diverging from scheme")
			}
		}()
	}
	wg.Wait()
}
