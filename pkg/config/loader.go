package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/atlas/pkg/errors"
	"github.com/arthur-debert/atlas/pkg/logging"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// ConfigFileName is the name of the persisted per-user configuration file
const ConfigFileName = "config.toml"

// appDirName is the per-user configuration directory name
const appDirName = "atlas"

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Manager loads and persists the per-user configuration. The directory
// is injected so tests can substitute a temporary location.
type Manager struct {
	configDir string
}

// NewManager creates a Manager rooted at the given configuration
// directory.
func NewManager(configDir string) *Manager {
	return &Manager{configDir: configDir}
}

// DefaultManager creates a Manager rooted at the XDG config home.
func DefaultManager() *Manager {
	return NewManager(filepath.Join(xdg.ConfigHome, appDirName))
}

// Path returns the location of the persisted configuration file.
func (m *Manager) Path() string {
	return filepath.Join(m.configDir, ConfigFileName)
}

// Exists reports whether a persisted configuration file is present.
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.Path())
	return err == nil
}

// Load reads the layered configuration: embedded defaults first, then
// the per-user file on top of them.
func (m *Manager) Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	path := m.Path()
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Newf(errors.ErrFileNotFound, "config file not found: %s", path)
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", path)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal configuration")
	}
	return &cfg, nil
}

// LoadOrDefault returns the persisted configuration when one exists,
// otherwise the built-in defaults.
func (m *Manager) LoadOrDefault() (*Config, error) {
	if !m.Exists() {
		logger := logging.GetLogger("config")
		logger.Debug().
			Str("path", m.Path()).
			Msg("No persisted config, using defaults")
		return Default(), nil
	}
	return m.Load()
}

// Save persists the configuration, creating the directory as needed.
// The document round-trips through Load with no information loss.
func (m *Manager) Save(cfg *Config) error {
	if err := os.MkdirAll(m.configDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create config directory %s", m.configDir)
	}

	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrSerialize, "failed to serialize configuration")
	}

	if err := os.WriteFile(m.Path(), data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write config file %s", m.Path())
	}

	logger := logging.GetLogger("config")
	logger.Info().Str("path", m.Path()).Msg("Configuration saved")
	return nil
}
