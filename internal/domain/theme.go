package domain

import (
	"context"
	"errors"
)

// ThemePreference is the persisted dark/light presentation flag.
type ThemePreference string

const (
	ThemeDark  ThemePreference = "dark"
	ThemeLight ThemePreference = "light"

	// ThemeKey is the single durable key the preference lives under.
	ThemeKey = "theme"
)

// ParseThemePreference maps a stored value to a preference. Anything but "light" is dark.
func ParseThemePreference(v string) ThemePreference {
	if v == string(ThemeLight) {
		return ThemeLight
	}
	return ThemeDark
}

// IsDark reports whether the preference selects the dark palette.
func (p ThemePreference) IsDark() bool {
	return p != ThemeLight
}

// Toggled returns the opposite preference.
func (p ThemePreference) Toggled() ThemePreference {
	if p.IsDark() {
		return ThemeLight
	}
	return ThemeDark
}

// ErrKeyNotFound is returned by a KeyValueStore when the key is absent.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is durable string storage scoped to one visitor.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// ThemeUsecase reads and toggles a visitor's theme preference.
type ThemeUsecase interface {
	Current(ctx context.Context, store KeyValueStore) (ThemePreference, error)
	Toggle(ctx context.Context, store KeyValueStore) (ThemePreference, error)
	Set(ctx context.Context, store KeyValueStore, pref ThemePreference) error
}
