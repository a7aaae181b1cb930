package config

import (
	"errors"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvOnce sync.Once

// Load parses environment variables into cfg using `env` struct tags.
// The first call loads a `.env` file from the working directory if one
// exists; a missing file is not an error.
//
//	type Config struct {
//		BaseURL string `env:"API_BASE_URL,required"`
//		Debug   bool   `env:"DEBUG" envDefault:"false"`
//	}
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilPointer
	}
	defaultEnvOnce.Do(func() {
		_ = godotenv.Load()
	})
	if err := env.Parse(cfg); err != nil {
		return errors.Join(ErrParseEnv, err)
	}
	return nil
}

// LoadEnv loads the named env files into the process environment before
// Load is called. Later files take precedence over earlier ones.
// Unlike the implicit default, a missing named file is an error.
func LoadEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Overload(path); err != nil {
			return errors.Join(ErrLoadEnvFile, err)
		}
	}
	return nil
}
