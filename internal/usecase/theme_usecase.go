package usecase

import (
	"context"
	"errors"
	"fmt"

	"portfolio-site/internal/domain"
)

type themeUsecase struct{}

// NewThemeUsecase creates the theme controller. The store is supplied per call
// because it is scoped to one visitor.
func NewThemeUsecase() domain.ThemeUsecase {
	return &themeUsecase{}
}

// Current reads the stored preference; absent or unreadable values mean dark.
func (u *themeUsecase) Current(ctx context.Context, store domain.KeyValueStore) (domain.ThemePreference, error) {
	v, err := store.Get(ctx, domain.ThemeKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return domain.ThemeDark, nil
	}
	if err != nil {
		return domain.ThemeDark, fmt.Errorf("read theme: %w", err)
	}
	return domain.ParseThemePreference(v), nil
}

// Toggle flips the preference and persists it immediately.
func (u *themeUsecase) Toggle(ctx context.Context, store domain.KeyValueStore) (domain.ThemePreference, error) {
	current, err := u.Current(ctx, store)
	if err != nil {
		return current, err
	}
	next := current.Toggled()
	if err := u.Set(ctx, store, next); err != nil {
		return current, err
	}
	return next, nil
}

// Set persists pref.
func (u *themeUsecase) Set(ctx context.Context, store domain.KeyValueStore, pref domain.ThemePreference) error {
	if err := store.Set(ctx, domain.ThemeKey, string(domain.ParseThemePreference(string(pref)))); err != nil {
		return fmt.Errorf("write theme: %w", err)
	}
	return nil
}
