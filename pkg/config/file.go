package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile decodes the YAML file at path into v. Fields absent from the file
// keep whatever v already holds, so callers can pre-fill defaults. Unknown
// keys are rejected. File configs are not cached.
//
//	cfg := toast.DefaultConfig()
//	err := config.LoadFile("toast.yaml", &cfg)
func LoadFile[T any](path string, v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Join(ErrReadingConfigFile, err)
	}

	// An empty document leaves v untouched.
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return errors.Join(ErrParsingConfigFile, err)
	}
	return nil
}

// MustLoadFile works like LoadFile but panics on failure.
func MustLoadFile[T any](path string, v *T) {
	if err := LoadFile(path, v); err != nil {
		panic(fmt.Sprintf("Failed to load config file %s: %v", path, err))
	}
}
