package service

import (
	"webbuilder/internal/config"
	"webbuilder/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Window Size Persistence
// ─────────────────────────────────────────────────────────────
//
// Saves and restores the main Wails window size between sessions as two
// rows of app_settings.

type WindowSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type WindowSettingsService struct {
	settings *storage.SettingsStore
	defaults config.WindowConfig
}

// NewWindowSettingsService takes a nil store to always use the defaults.
func NewWindowSettingsService(settings *storage.SettingsStore, defaults config.WindowConfig) *WindowSettingsService {
	return &WindowSettingsService{settings: settings, defaults: defaults}
}

const (
	settingWindowWidth  = "window_width"
	settingWindowHeight = "window_height"
	minWindowWidth      = 800
	minWindowHeight     = 600
)

// LoadWindowSize returns the saved size, falling back to the configured
// defaults for missing or too-small values.
func (s *WindowSettingsService) LoadWindowSize() WindowSize {
	w, h := s.defaults.Width, s.defaults.Height
	if w < minWindowWidth {
		w = minWindowWidth
	}
	if h < minWindowHeight {
		h = minWindowHeight
	}
	if s.settings == nil {
		return WindowSize{Width: w, Height: h}
	}
	if v, err := s.settings.GetInt(settingWindowWidth, w); err == nil && v >= minWindowWidth {
		w = v
	}
	if v, err := s.settings.GetInt(settingWindowHeight, h); err == nil && v >= minWindowHeight {
		h = v
	}
	return WindowSize{Width: w, Height: h}
}

func (s *WindowSettingsService) SaveWindowSize(width, height int) error {
	if s.settings == nil {
		return nil
	}
	if err := s.settings.SetInt(settingWindowWidth, width); err != nil {
		return err
	}
	return s.settings.SetInt(settingWindowHeight, height)
}
