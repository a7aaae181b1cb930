package config

import (
	"bytes"
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadProfile decodes a YAML profile file into dst. Unknown keys are
// rejected so a typo in the file fails loudly instead of silently
// falling back to a default.
func LoadProfile(path string, dst any) error {
	if dst == nil {
		return ErrNilPointer
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Join(ErrLoadProfile, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(dst); err != nil {
		return errors.Join(ErrLoadProfile, err)
	}
	return nil
}
