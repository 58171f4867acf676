package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Validator is implemented by config types that check their own invariants
// after loading.
type Validator interface {
	Validate() error
}

// Load reads a YAML file into a fresh T. To layer a file over defaults,
// use [LoadInto] with a pre-filled value instead.
func Load[T any](path string) (T, error) {
	var cfg T
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Join(ErrFailedToReadConfig, err)
	}
	return Parse[T](raw)
}

// LoadFS reads a YAML file from an fs.FS, typically an embed.FS with
// bundled defaults.
func LoadFS[T any](fsys fs.FS, path string) (T, error) {
	var cfg T
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return cfg, errors.Join(ErrFailedToReadConfig, err)
	}
	return Parse[T](raw)
}

// Parse decodes YAML bytes into a fresh T. If *T implements [Validator],
// Validate runs after decoding and its failure surfaces as [ErrInvalidConfig].
func Parse[T any](raw []byte) (T, error) {
	var cfg T
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, errors.Join(ErrFailedToParseConfig, err)
	}
	if v, ok := any(&cfg).(Validator); ok {
		if err := v.Validate(); err != nil {
			return cfg, errors.Join(ErrInvalidConfig, err)
		}
	}
	return cfg, nil
}

// ParseInto decodes YAML bytes over an existing value, leaving fields the
// file does not mention untouched. Use it to layer a file over defaults:
//
//	cfg := appDefaults()
//	if err := config.ParseInto(raw, &cfg); err != nil { ... }
func ParseInto(raw []byte, cfg any) error {
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return errors.Join(ErrFailedToParseConfig, err)
	}
	if v, ok := cfg.(Validator); ok {
		if err := v.Validate(); err != nil {
			return errors.Join(ErrInvalidConfig, err)
		}
	}
	return nil
}

// LoadInto reads a YAML file over an existing value, leaving fields the file
// does not mention untouched.
func LoadInto(path string, cfg any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Join(ErrFailedToReadConfig, err)
	}
	return ParseInto(raw, cfg)
}
