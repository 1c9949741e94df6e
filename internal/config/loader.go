package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/alnah/md2pdf-angebot/internal/hints"
	"github.com/alnah/md2pdf-angebot/internal/yamlutil"
)

// Loader resolves the branding configuration for a run. Every failure is
// logged and answered with defaults; Load never fails.
type Loader struct {
	// Path is an explicit config file. Empty means search Dir.
	Path string
	// Dir is searched for FileNames. Empty means the executable's directory.
	Dir string

	logger *zap.Logger
}

// NewLoader creates a Loader logging to logger (nil disables logging).
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// Load returns the configuration to use for the run.
func (l *Loader) Load() *Config {
	dir, err := l.searchDir()
	if err != nil {
		l.logger.Warn("cannot locate config directory, using defaults", zap.Error(err))
		return DefaultConfig()
	}

	path := l.Path
	if path == "" {
		found, ok := FindConfig(dir)
		if !ok {
			l.logger.Debug("no config file found, using defaults", zap.String("dir", dir))
			cfg := DefaultConfig()
			cfg.BaseDir = dir
			return cfg
		}
		path = found
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		l.logger.Warn("config ignored, using defaults", zap.String("path", path), zap.Error(err))
		cfg = DefaultConfig()
		cfg.BaseDir = filepath.Dir(path)
		return cfg
	}

	l.warnUnknownKeys(path)
	l.logger.Debug("config loaded", zap.String("path", path))
	return cfg
}

// warnUnknownKeys reports keys that Load silently ignored, typically typos.
func (l *Loader) warnUnknownKeys(path string) {
	data, err := os.ReadFile(path) // #nosec G304 -- same file Load just parsed
	if err != nil {
		return
	}
	if err := yamlutil.CheckKnownFields(data, &Config{}); err != nil {
		l.logger.Warn("config has unknown keys", zap.String("path", path), zap.Error(err))
	}
}

// ResolveLogo returns the configured logo as a data URI, or "" when no logo
// is configured or it cannot be embedded (logged as a warning).
func (l *Loader) ResolveLogo(cfg *Config) string {
	if cfg == nil || cfg.Logo.File == "" {
		return ""
	}

	path := cfg.Logo.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.BaseDir, path)
	}

	uri, err := LogoDataURI(path)
	if err != nil {
		l.logger.Warn("logo skipped"+hints.ForLogo(), zap.String("path", path), zap.Error(err))
		return ""
	}
	return uri
}

func (l *Loader) searchDir() (string, error) {
	if l.Path != "" {
		return filepath.Dir(l.Path), nil
	}
	if l.Dir != "" {
		return l.Dir, nil
	}
	return ExecutableDir()
}

// ErrNoExecutable is returned when the running binary cannot be located.
var ErrNoExecutable = errors.New("cannot locate executable")

// ExecutableDir returns the directory of the running binary, symlinks resolved.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoExecutable, err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
