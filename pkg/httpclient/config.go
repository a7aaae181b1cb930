package httpclient

import "time"

// Config holds the channel factory settings. The admin timeout is
// deliberately generous; admin reporting endpoints aggregate across
// collections and run slower than user-facing calls.
type Config struct {
	BaseURL       string        `env:"API_BASE_URL,required"`
	PublicTimeout time.Duration `env:"API_PUBLIC_TIMEOUT" envDefault:"15s"`
	UserTimeout   time.Duration `env:"API_USER_TIMEOUT" envDefault:"15s"`
	AdminTimeout  time.Duration `env:"API_ADMIN_TIMEOUT" envDefault:"30s"`
}
