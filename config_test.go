package clientkit_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientkit "github.com/agentforge/clientkit"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.agentforge.ai")
	t.Setenv("CLIENTKIT_PROFILE", "")

	cfg, err := clientkit.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://api.agentforge.ai", cfg.BaseURL)
	assert.Equal(t, "/login", cfg.LoginPath)
	assert.Equal(t, "/admin-login", cfg.AdminLoginPath)
	assert.Equal(t, 15*time.Second, cfg.UserTimeout)
	assert.Equal(t, 30*time.Second, cfg.AdminTimeout)
}

func TestLoadConfig_ProfileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staging.yaml")
	content := `
base_url: https://staging.agentforge.ai
admin_login_path: /ops-login
timeouts:
  admin: 1m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("API_BASE_URL", "https://api.agentforge.ai")
	t.Setenv("CLIENTKIT_PROFILE", path)

	cfg, err := clientkit.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://staging.agentforge.ai", cfg.BaseURL)
	assert.Equal(t, "/ops-login", cfg.AdminLoginPath)
	assert.Equal(t, "/login", cfg.LoginPath)
	assert.Equal(t, time.Minute, cfg.AdminTimeout)
	assert.Equal(t, 15*time.Second, cfg.UserTimeout)
}

func TestLoadConfig_BadProfileTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeouts:\n  user: soon\n"), 0o600))

	t.Setenv("API_BASE_URL", "https://api.agentforge.ai")
	t.Setenv("CLIENTKIT_PROFILE", path)

	_, err := clientkit.LoadConfig()
	assert.ErrorIs(t, err, clientkit.ErrInvalidProfile)
}
