// Package config loads artisan.yaml, the project file that tells
// "artisan run" which directives to apply to which classes.
//
//	directives: access.ajex
//	classes:
//	  - build/classes/**/*.class
//	output: build/artisan
//
// Relative paths are resolved against the directory holding the file. A
// .env file next to it may set ARTISAN_OUTPUT and ARTISAN_VERBOSITY; real
// environment variables take precedence over it.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/VoidCRDev/Artisan/ajex"
)

const (
	DefaultFile = "artisan.yaml"

	EnvOutput    = "ARTISAN_OUTPUT"
	EnvVerbosity = "ARTISAN_VERBOSITY"
)

type Config struct {
	Directives             string   `yaml:"directives" validate:"required,ajexfile"`
	Classes                []string `yaml:"classes" validate:"required,min=1,dive,required,glob"`
	Output                 string   `yaml:"output" validate:"required"`
	Verbosity              int      `yaml:"verbosity" validate:"gte=-4,lte=2"`
	InheritSuperclassRules bool     `yaml:"inheritSuperclassRules"`
	Diff                   bool     `yaml:"diff"`

	// Dir is the directory the configuration was loaded from.
	Dir string `yaml:"-"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("ajexfile", func(fl validator.FieldLevel) bool {
		return strings.HasSuffix(fl.Field().String(), ajex.FileExtension)
	})
	_ = validate.RegisterValidation("glob", func(fl validator.FieldLevel) bool {
		return doublestar.ValidatePattern(filepath.ToSlash(fl.Field().String()))
	})
}

// Load reads the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolve config directory: %w", err)
	}
	cfg.Dir = dir

	dotenv, err := godotenv.Read(filepath.Join(dir, ".env"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}
	if err := cfg.applyEnv(dotenv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	cfg.resolve()
	return &cfg, nil
}

// Find walks up from dir looking for DefaultFile.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, DefaultFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s not found: %w", DefaultFile, fs.ErrNotExist)
		}
		dir = parent
	}
}

func (c *Config) Validate() error {
	return validate.Struct(c)
}

func (c *Config) applyEnv(dotenv map[string]string) error {
	if v, ok := lookupEnv(dotenv, EnvOutput); ok && v != "" {
		c.Output = v
	}
	if v, ok := lookupEnv(dotenv, EnvVerbosity); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVerbosity, err)
		}
		c.Verbosity = n
	}
	return nil
}

func lookupEnv(dotenv map[string]string, key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	v, ok := dotenv[key]
	return v, ok
}

func (c *Config) resolve() {
	c.Directives = c.abs(c.Directives)
	c.Output = c.abs(c.Output)
	for i, pattern := range c.Classes {
		c.Classes[i] = c.abs(pattern)
	}
}

func (c *Config) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir, path)
}

// ClassFiles expands the class globs. The result is sorted and free of
// duplicates.
func (c *Config) ClassFiles() ([]string, error) {
	var files []string
	for _, pattern := range c.Classes {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expand %s: %w", pattern, err)
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}
