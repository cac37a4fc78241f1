package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/matzehuels/scenesvg/pkg/errors"
	"github.com/matzehuels/scenesvg/pkg/export"
)

// Config is the optional config.toml. Flags override every value.
type Config struct {
	Export  ExportConfig  `toml:"export"`
	Cache   CacheConfig   `toml:"cache"`
	Session SessionConfig `toml:"session"`
	Server  ServerConfig  `toml:"server"`
}

// ExportConfig holds defaults for the export command.
type ExportConfig struct {
	// Scale is used instead of the remembered scale when set.
	Scale     string   `toml:"scale"`
	Order     string   `toml:"order"`
	Formats   []string `toml:"formats"`
	Precision *int     `toml:"precision"`
	PNGScale  float64  `toml:"png_scale"`
	Wysiwyg   *bool    `toml:"wysiwyg"`
}

// CacheConfig selects the artifact cache.
type CacheConfig struct {
	Disabled bool `toml:"disabled"`
	// Dir overrides the default cache directory.
	Dir string `toml:"dir"`
	// RedisAddr switches to a Redis cache when set.
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	TTL           time.Duration `toml:"ttl"`
}

// SessionConfig selects the session store.
type SessionConfig struct {
	Dir string `toml:"dir"`
	// MongoURI switches to a MongoDB store when set.
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// ServerConfig holds defaults for the serve command.
type ServerConfig struct {
	Addr          string        `toml:"addr"`
	ExportTimeout time.Duration `toml:"export_timeout"`
}

// exportOptions returns export options seeded from the config.
func (c ExportConfig) exportOptions() export.Options {
	return export.Options{
		Order:     c.Order,
		Formats:   c.Formats,
		Precision: c.Precision,
		PNGScale:  c.PNGScale,
		Wysiwyg:   c.Wysiwyg,
	}
}

// loadConfig reads the config file at path. An empty path means the default
// location, where a missing file yields the zero Config. Unknown keys are
// rejected so typos do not pass silently.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return &Config{}, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if explicit {
				return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "config %s", path)
			}
			return &Config{}, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return &cfg, nil
}

// configDir returns the config directory using XDG standard (~/.config/scenesvg/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
