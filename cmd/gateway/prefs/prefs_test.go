package prefs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileDefaultsToLight(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "theme.json"))
	if s.Theme() != ThemeLight {
		t.Fatalf("expected light default, got %q", s.Theme())
	}
}

func TestLoadCorruptFileDefaultsToLight(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	s := Load(path)
	if s.Theme() != ThemeLight {
		t.Fatalf("expected light for corrupt file, got %q", s.Theme())
	}
}

func TestSetThemePersistsAcrossReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")

	s := Load(path)
	if err := s.SetTheme(ThemeDark); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 재시작 시뮬레이션: 같은 파일에서 다시 읽는다.
	reloaded := Load(path)
	if reloaded.Theme() != ThemeDark {
		t.Fatalf("expected dark after reload, got %q", reloaded.Theme())
	}
}

func TestSetThemeRejectsUnknownValue(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "theme.json"))
	if err := s.SetTheme("solarized"); !errors.Is(err, ErrInvalidTheme) {
		t.Fatalf("expected ErrInvalidTheme, got %v", err)
	}
	if s.Theme() != ThemeLight {
		t.Fatalf("rejected value must not change the theme")
	}
}

func TestToggle(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "theme.json"))

	theme, err := s.Toggle()
	if err != nil || theme != ThemeDark {
		t.Fatalf("expected dark after first toggle, got %q (%v)", theme, err)
	}
	theme, err = s.Toggle()
	if err != nil || theme != ThemeLight {
		t.Fatalf("expected light after second toggle, got %q (%v)", theme, err)
	}
}
