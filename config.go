package clientkit

import (
	"errors"
	"time"

	"github.com/agentforge/clientkit/pkg/config"
	"github.com/agentforge/clientkit/pkg/httpclient"
)

// Config is the full client configuration. Channel settings come from
// the embedded httpclient.Config; the rest selects credential storage
// and the routes forced logouts navigate to.
type Config struct {
	httpclient.Config

	// ProfilePath points at an optional YAML profile describing a
	// backend target. Profile values override the environment.
	ProfilePath string `env:"CLIENTKIT_PROFILE"`

	LoginPath      string `env:"CLIENTKIT_LOGIN_PATH" envDefault:"/login"`
	AdminLoginPath string `env:"CLIENTKIT_ADMIN_LOGIN_PATH" envDefault:"/admin-login"`

	// StoragePath enables the encrypted file store for user
	// credentials. StorageKey is its base64-encoded 32-byte key.
	StoragePath string `env:"CLIENTKIT_STORAGE_PATH"`
	StorageKey  string `env:"CLIENTKIT_STORAGE_KEY"`

	// RedisURL enables the redis-backed credential store and takes
	// precedence over StoragePath.
	RedisURL string `env:"CLIENTKIT_REDIS_URL"`

	// LogFormat turns on logging ("json" or "text"); when empty the
	// client stays silent. LogLevel is debug, info, warn or error.
	LogFormat string `env:"CLIENTKIT_LOG_FORMAT"`
	LogLevel  string `env:"CLIENTKIT_LOG_LEVEL" envDefault:"info"`
}

// Profile is the YAML shape of a backend target file. Zero values leave
// the corresponding Config field untouched. Timeouts are duration
// strings ("15s", "1m").
type Profile struct {
	BaseURL        string `yaml:"base_url"`
	LoginPath      string `yaml:"login_path"`
	AdminLoginPath string `yaml:"admin_login_path"`
	Timeouts       struct {
		Public string `yaml:"public"`
		User   string `yaml:"user"`
		Admin  string `yaml:"admin"`
	} `yaml:"timeouts"`
}

// ErrInvalidProfile is returned when a profile file carries values that
// cannot be applied, such as a malformed timeout.
var ErrInvalidProfile = errors.New("clientkit.invalid_profile")

// LoadConfig reads configuration from the environment (and a default
// .env file if present), then applies the profile file named by
// CLIENTKIT_PROFILE, if any.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.ProfilePath != "" {
		var profile Profile
		if err := config.LoadProfile(cfg.ProfilePath, &profile); err != nil {
			return Config{}, err
		}
		if err := cfg.apply(profile); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

func (c *Config) apply(p Profile) error {
	if p.BaseURL != "" {
		c.BaseURL = p.BaseURL
	}
	if p.LoginPath != "" {
		c.LoginPath = p.LoginPath
	}
	if p.AdminLoginPath != "" {
		c.AdminLoginPath = p.AdminLoginPath
	}

	set := func(dst *time.Duration, raw string) error {
		if raw == "" {
			return nil
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			return errors.Join(ErrInvalidProfile, err)
		}
		*dst = d
		return nil
	}
	if err := set(&c.PublicTimeout, p.Timeouts.Public); err != nil {
		return err
	}
	if err := set(&c.UserTimeout, p.Timeouts.User); err != nil {
		return err
	}
	return set(&c.AdminTimeout, p.Timeouts.Admin)
}
