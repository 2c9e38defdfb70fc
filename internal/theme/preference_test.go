package theme

import (
	"errors"
	"testing"
)

func TestResolveExplicitPreferenceWins(t *testing.T) {
	t.Parallel()

	for _, p := range []Preference{PreferenceLight, PreferenceDark} {
		for _, host := range []Scheme{SchemeLight, SchemeDark} {
			if got := Resolve(p, host); string(got) != string(p) {
				t.Fatalf("Resolve(%s, %s) = %s, want %s", p, host, got, p)
			}
		}
	}
}

func TestResolveSystemFollowsHost(t *testing.T) {
	t.Parallel()

	for _, host := range []Scheme{SchemeLight, SchemeDark} {
		if got := Resolve(PreferenceSystem, host); got != host {
			t.Fatalf("Resolve(system, %s) = %s", host, got)
		}
	}
	if got := Resolve(PreferenceSystem, ""); got != SchemeLight {
		t.Fatalf("Resolve(system, unknown) = %s, want light", got)
	}
}

func TestNextAlwaysChangesEffectiveScheme(t *testing.T) {
	t.Parallel()

	for _, p := range []Preference{PreferenceLight, PreferenceDark, PreferenceSystem} {
		for _, host := range []Scheme{SchemeLight, SchemeDark} {
			before := Resolve(p, host)
			after := Resolve(Next(p, host), host)
			if before == after {
				t.Fatalf("Next(%s, %s) kept scheme %s", p, host, before)
			}
		}
	}
}

func TestParsePreference(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw     string
		want    Preference
		wantErr bool
	}{
		{"light", PreferenceLight, false},
		{" DARK ", PreferenceDark, false},
		{"System", PreferenceSystem, false},
		{"sepia", "", true},
		{"", "", true},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			got, err := ParsePreference(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPreference) {
					t.Fatalf("ParsePreference(%q) error = %v, want ErrInvalidPreference", tt.raw, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("ParsePreference(%q) = %q, %v; want %q", tt.raw, got, err, tt.want)
			}
		})
	}
}

func TestParseScheme(t *testing.T) {
	t.Parallel()

	if s, err := ParseScheme("Dark"); err != nil || s != SchemeDark {
		t.Fatalf("ParseScheme(Dark) = %q, %v", s, err)
	}
	if _, err := ParseScheme("system"); !errors.Is(err, ErrInvalidScheme) {
		t.Fatalf("ParseScheme(system) error = %v, want ErrInvalidScheme", err)
	}
}
