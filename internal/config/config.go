// Package config loads the user configuration: defaults, then the YAML
// file, then a .env file, then WEBBUILDER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// PreviewConfig bounds the GET issued by buttons in preview mode.
type PreviewConfig struct {
	TimeoutMs     int     `yaml:"timeout_ms"`
	RatePerSecond float64 `yaml:"rate_per_second"`
	Burst         int     `yaml:"burst"`
	MaxBodyBytes  int64   `yaml:"max_body_bytes"`
}

type EditorConfig struct {
	ClampResizeDrift bool `yaml:"clamp_resize_drift"`
	GridSize         int  `yaml:"grid_size"`
}

type StorageConfig struct {
	DataDir string `yaml:"data_dir"`
}

// RetentionConfig controls pruning of the preview call log.
type RetentionConfig struct {
	Schedule   string `yaml:"schedule"` // cron spec
	MaxAgeDays int    `yaml:"max_age_days"`
}

type AppConfig struct {
	ConfigVersion int             `yaml:"config_version"`
	Window        WindowConfig    `yaml:"window"`
	Logging       LoggingConfig   `yaml:"logging"`
	Preview       PreviewConfig   `yaml:"preview"`
	Editor        EditorConfig    `yaml:"editor"`
	Storage       StorageConfig   `yaml:"storage"`
	Retention     RetentionConfig `yaml:"retention"`
}

func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Window:        WindowConfig{Width: 1280, Height: 800},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
		Preview:       PreviewConfig{TimeoutMs: 30000, RatePerSecond: 5, Burst: 5, MaxBodyBytes: 5 << 20},
		Editor:        EditorConfig{ClampResizeDrift: false, GridSize: 30},
		Storage:       StorageConfig{DataDir: defaultDataDir()},
		Retention:     RetentionConfig{Schedule: "@daily", MaxAgeDays: 30},
	}
}

const (
	EnvConfigPath = "WEBBUILDER_CONFIG"
	EnvDotEnv     = "WEBBUILDER_DOTENV"

	EnvLogLevel  = "WEBBUILDER_LOG_LEVEL"
	EnvLogFormat = "WEBBUILDER_LOG_FORMAT"
	EnvLogSource = "WEBBUILDER_LOG_SOURCE"
	EnvLogFile   = "WEBBUILDER_LOG_FILE"

	EnvPreviewTimeoutMs = "WEBBUILDER_PREVIEW_TIMEOUT_MS"
	EnvPreviewRate      = "WEBBUILDER_PREVIEW_RATE"
	EnvClampResizeDrift = "WEBBUILDER_CLAMP_RESIZE_DRIFT"
	EnvDataDir          = "WEBBUILDER_DATA_DIR"
)

// ConfigPath returns the per-user config file path, or $WEBBUILDER_CONFIG.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	base := userDir()
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

func userDir() string {
	switch runtime.GOOS {
	case "windows":
		base := os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		return filepath.Join(base, "WebBuilder")
	case "darwin":
		return filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "WebBuilder")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "webbuilder")
		}
		return filepath.Join(os.Getenv("HOME"), ".config", "webbuilder")
	}
}

func defaultDataDir() string {
	if d := userDir(); d != "" {
		return filepath.Join(d, "data")
	}
	return "data"
}

// Load resolves ConfigPath and calls LoadFile.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return Defaults(), err
	}
	return LoadFile(path)
}

// LoadFile builds the effective config. A missing file is not an error;
// a file that does not parse is.
func LoadFile(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	if err := loadDotEnv(); err != nil {
		return cfg, err
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// loadDotEnv reads $WEBBUILDER_DOTENV or ./.env when present. Variables
// already in the environment win.
func loadDotEnv() error {
	path := strings.TrimSpace(os.Getenv(EnvDotEnv))
	if path == "" {
		path = ".env"
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.Window.Width > 0 {
		dst.Window.Width = src.Window.Width
	}
	if src.Window.Height > 0 {
		dst.Window.Height = src.Window.Height
	}
	if v := strings.TrimSpace(src.Logging.Level); v != "" {
		dst.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Logging.Format); v != "" {
		dst.Logging.Format = strings.ToLower(v)
	}
	dst.Logging.Source = src.Logging.Source
	if v := strings.TrimSpace(src.Logging.File); v != "" {
		dst.Logging.File = v
	}
	if src.Preview.TimeoutMs > 0 {
		dst.Preview.TimeoutMs = src.Preview.TimeoutMs
	}
	if src.Preview.RatePerSecond > 0 {
		dst.Preview.RatePerSecond = src.Preview.RatePerSecond
	}
	if src.Preview.Burst > 0 {
		dst.Preview.Burst = src.Preview.Burst
	}
	if src.Preview.MaxBodyBytes > 0 {
		dst.Preview.MaxBodyBytes = src.Preview.MaxBodyBytes
	}
	dst.Editor.ClampResizeDrift = src.Editor.ClampResizeDrift
	if src.Editor.GridSize > 0 {
		dst.Editor.GridSize = src.Editor.GridSize
	}
	if v := strings.TrimSpace(src.Storage.DataDir); v != "" {
		dst.Storage.DataDir = v
	}
	if v := strings.TrimSpace(src.Retention.Schedule); v != "" {
		dst.Retention.Schedule = v
	}
	if src.Retention.MaxAgeDays != 0 {
		dst.Retention.MaxAgeDays = src.Retention.MaxAgeDays
	}
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPreviewTimeoutMs)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Preview.TimeoutMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvPreviewRate)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Preview.RatePerSecond = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvClampResizeDrift)); v != "" {
		cfg.Editor.ClampResizeDrift = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvDataDir)); v != "" {
		cfg.Storage.DataDir = v
	}
}

// EnvOverrideFor reports the env var currently overriding a config key.
func EnvOverrideFor(key string) (string, bool) {
	env, ok := map[string]string{
		"logging.level":             EnvLogLevel,
		"logging.format":            EnvLogFormat,
		"logging.source":            EnvLogSource,
		"logging.file":              EnvLogFile,
		"preview.timeout_ms":        EnvPreviewTimeoutMs,
		"preview.rate_per_second":   EnvPreviewRate,
		"editor.clamp_resize_drift": EnvClampResizeDrift,
		"storage.data_dir":          EnvDataDir,
	}[key]
	if !ok || os.Getenv(env) == "" {
		return "", false
	}
	return env, true
}

func (p PreviewConfig) Timeout() time.Duration {
	if p.TimeoutMs <= 0 {
		return time.Duration(Defaults().Preview.TimeoutMs) * time.Millisecond
	}
	return time.Duration(p.TimeoutMs) * time.Millisecond
}

func (r RetentionConfig) MaxAge() time.Duration {
	return time.Duration(r.MaxAgeDays) * 24 * time.Hour
}
