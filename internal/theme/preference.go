// Package theme resolves the user's display preference against the host
// appearance and hands out the palette for the resulting scheme.
package theme

import (
	"errors"
	"fmt"
	"strings"
)

// Preference is the user-selected display mode.
type Preference string

// Scheme is the light or dark appearance actually rendered.
type Scheme string

const (
	PreferenceLight  Preference = "light"
	PreferenceDark   Preference = "dark"
	PreferenceSystem Preference = "system"

	SchemeLight Scheme = "light"
	SchemeDark  Scheme = "dark"
)

// DefaultPreference applies when nothing valid has been persisted.
const DefaultPreference = PreferenceSystem

var (
	// ErrInvalidPreference is returned for values outside light, dark and system.
	ErrInvalidPreference = errors.New("theme: invalid preference")
	// ErrInvalidScheme is returned for appearances other than light and dark.
	ErrInvalidScheme = errors.New("theme: invalid scheme")
)

// Valid reports whether p is one of the known preferences.
func (p Preference) Valid() bool {
	switch p {
	case PreferenceLight, PreferenceDark, PreferenceSystem:
		return true
	}
	return false
}

// ParsePreference normalizes and validates a raw preference value.
func ParsePreference(value string) (Preference, error) {
	p := Preference(strings.ToLower(strings.TrimSpace(value)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPreference, value)
	}
	return p, nil
}

// Valid reports whether s is light or dark.
func (s Scheme) Valid() bool {
	return s == SchemeLight || s == SchemeDark
}

// Opposite returns the other scheme.
func (s Scheme) Opposite() Scheme {
	if s == SchemeDark {
		return SchemeLight
	}
	return SchemeDark
}

// ParseScheme normalizes and validates a raw appearance value.
func ParseScheme(value string) (Scheme, error) {
	s := Scheme(strings.ToLower(strings.TrimSpace(value)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidScheme, value)
	}
	return s, nil
}

// Resolve maps a preference and the host appearance to the effective scheme.
// An explicit light or dark preference always wins over the host.
func Resolve(p Preference, host Scheme) Scheme {
	switch p {
	case PreferenceLight:
		return SchemeLight
	case PreferenceDark:
		return SchemeDark
	}
	if host.Valid() {
		return host
	}
	return SchemeLight
}

// Next returns the preference Toggle moves to. From system it pins the
// opposite of what the host currently shows so the change is always visible.
func Next(p Preference, host Scheme) Preference {
	switch p {
	case PreferenceLight:
		return PreferenceDark
	case PreferenceDark:
		return PreferenceLight
	}
	if Resolve(p, host) == SchemeLight {
		return PreferenceDark
	}
	return PreferenceLight
}
