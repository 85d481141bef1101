// Package config resolves ninety's settings from the environment and the
// optional config.yaml in the data directory.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/stefanpenner/ninety/pkg/plan"
	"github.com/stefanpenner/ninety/pkg/store"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable, e.g. NINETY_DIR.
const EnvPrefix = "NINETY"

// FileName is the tracker settings file inside the data directory.
const FileName = "config.yaml"

const defaultFileYAML = `# ninety configuration

# Length of the plan in days.
horizon_days: 90

# Completed items needed for the count-based milestones.
milestones:
  fast_start: 3 # phase 1
  momentum: 3   # phase 2

# Catalog override, relative to the data directory. The built-in plan is
# used when the file does not exist.
catalog: catalog.yaml
`

// Env holds settings read from NINETY_* environment variables.
type Env struct {
	Dir         string        `split_words:"true"`
	LogLevel    string        `split_words:"true" default:"info"`
	DatabaseURL string        `split_words:"true"`
	DBTimeout   time.Duration `split_words:"true" default:"5s"`
	MetricsFile string        `split_words:"true"`
}

// File models config.yaml.
type File struct {
	HorizonDays int             `yaml:"horizon_days"`
	Milestones  plan.Thresholds `yaml:"milestones"`
	Catalog     string          `yaml:"catalog"`
}

// Config is the resolved configuration.
type Config struct {
	Env
	File

	// Dir is the data directory: --dir, then NINETY_DIR, then the OS default.
	Dir string
}

func defaultFile() File {
	return File{
		HorizonDays: plan.DefaultHorizonDays,
		Milestones:  plan.DefaultThresholds(),
		Catalog:     "catalog.yaml",
	}
}

// LoadEnv reads the NINETY_* environment.
func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &env, nil
}

// Load resolves the configuration. dirFlag overrides NINETY_DIR when set.
func Load(dirFlag string) (*Config, error) {
	env, err := LoadEnv()
	if err != nil {
		return nil, err
	}

	c := &Config{Env: *env, File: defaultFile()}
	switch {
	case dirFlag != "":
		c.Dir = dirFlag
	case env.Dir != "":
		c.Dir = env.Dir
	default:
		c.Dir = store.DefaultDataDir()
	}

	if err := c.loadFile(); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

// Path returns the config.yaml path.
func (c *Config) Path() string {
	return filepath.Join(c.Dir, FileName)
}

// LogsDir returns the directory holding ninety.log.
func (c *Config) LogsDir() string {
	return filepath.Join(c.Dir, "logs")
}

// CatalogPath returns the catalog override path, resolved against Dir.
func (c *Config) CatalogPath() string {
	return resolvePath(c.Dir, c.Catalog)
}

// Level parses LogLevel.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Options returns the tracker options described by the config file.
func (c *Config) Options(logger zerolog.Logger) plan.Options {
	return plan.Options{
		HorizonDays: c.HorizonDays,
		Thresholds:  c.Milestones,
		Logger:      logger,
	}
}

func (c *Config) loadFile() error {
	path := c.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	// keys missing from the file keep their defaults
	parsed := defaultFile()
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	parsed.Catalog = strings.TrimSpace(parsed.Catalog)
	if parsed.Catalog == "" {
		parsed.Catalog = defaultFile().Catalog
	}
	c.File = parsed
	return nil
}

func (c *Config) validate() error {
	if c.HorizonDays <= 0 {
		return fmt.Errorf("horizon_days must be > 0")
	}
	if c.Milestones.FastStart < 0 || c.Milestones.Momentum < 0 {
		return fmt.Errorf("milestone thresholds must be >= 0")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	if c.DBTimeout <= 0 {
		return fmt.Errorf("db timeout must be > 0")
	}
	return nil
}

// WriteDefault writes a commented config.yaml into dir unless one exists.
func WriteDefault(dir string) error {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: ensure dir: %w", err)
	}
	return os.WriteFile(path, []byte(defaultFileYAML), 0644)
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}
