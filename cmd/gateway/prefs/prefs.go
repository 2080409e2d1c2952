package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ErrInvalidTheme 은 dark/light 이외의 값이 들어왔을 때 반환된다.
var ErrInvalidTheme = errors.New("theme must be dark or light")

type themeFile struct {
	Theme string `json:"theme"`
}

// Store 는 UI 환경설정을 JSON 파일 하나로 유지한다.
// 프로세스를 재시작해도 마지막 테마 선택이 살아남는다.
type Store struct {
	mu    sync.Mutex
	path  string
	theme string
}

// Load 는 파일에서 설정을 읽어 Store 를 만든다. 파일이 없거나 값이 깨져
// 있으면 light 로 시작한다. 설정 파일 문제로 기동이 막히면 안 된다.
func Load(path string) *Store {
	s := &Store{path: path, theme: ThemeLight}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var f themeFile
	if err := json.Unmarshal(data, &f); err != nil {
		return s
	}
	if f.Theme == ThemeDark || f.Theme == ThemeLight {
		s.theme = f.Theme
	}
	return s
}

// Theme 은 현재 테마를 반환한다.
func (s *Store) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SetTheme 은 테마를 바꾸고 즉시 파일에 기록한다.
func (s *Store) SetTheme(theme string) error {
	if theme != ThemeDark && theme != ThemeLight {
		return ErrInvalidTheme
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(themeFile{Theme: theme})
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write theme file: %w", err)
	}
	s.theme = theme
	return nil
}

// Toggle 은 dark ↔ light 를 전환하고 바뀐 값을 반환한다.
func (s *Store) Toggle() (string, error) {
	next := ThemeDark
	if s.Theme() == ThemeDark {
		next = ThemeLight
	}
	if err := s.SetTheme(next); err != nil {
		return "", err
	}
	return next, nil
}
