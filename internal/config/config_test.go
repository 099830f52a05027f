package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		System: SystemConfig{
			LogLevel:          "info",
			DefaultIntervalMS: 300000,
			DefaultCooldownMS: 14400000,
			MaxHistoryPoints:  360,
		},
		Mail: MailConfig{SMTPHost: "smtp.example.com", SMTPPort: 587},
		Sites: []Site{
			{Name: "blog", URL: "https://example.com", TextMatch: "OK", IntervalMS: 300000, CooldownMS: 14400000},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config passes",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty site list",
			mutate:  func(c *Config) { c.Sites = nil },
			wantErr: "at least one site",
		},
		{
			name: "duplicate site names",
			mutate: func(c *Config) {
				c.Sites = append(c.Sites, c.Sites[0])
			},
			wantErr: "duplicate",
		},
		{
			name:    "missing url",
			mutate:  func(c *Config) { c.Sites[0].URL = "" },
			wantErr: "url is required",
		},
		{
			name:    "non-http url",
			mutate:  func(c *Config) { c.Sites[0].URL = "ftp://example.com" },
			wantErr: "must be a valid http(s) URL",
		},
		{
			name:    "missing text_match",
			mutate:  func(c *Config) { c.Sites[0].TextMatch = "" },
			wantErr: "text_match is required",
		},
		{
			name:    "non-positive interval",
			mutate:  func(c *Config) { c.Sites[0].IntervalMS = -5 },
			wantErr: "interval_ms must be > 0",
		},
		{
			name:    "non-positive cooldown",
			mutate:  func(c *Config) { c.Sites[0].CooldownMS = 0 },
			wantErr: "cooldown_ms must be > 0",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.System.LogLevel = "verbose" },
			wantErr: "log_level must be one of",
		},
		{
			name:    "missing smtp host",
			mutate:  func(c *Config) { c.Mail.SMTPHost = "" },
			wantErr: "smtp_host is required",
		},
		{
			name:    "smtp port out of range",
			mutate:  func(c *Config) { c.Mail.SMTPPort = 70000 },
			wantErr: "smtp_port must be in 1..65535",
		},
		{
			name:    "password hash without username",
			mutate:  func(c *Config) { c.Auth.PasswordHash = "$2a$10$abc" },
			wantErr: "auth.username is required",
		},
		{
			name:    "ops server without auth",
			mutate:  func(c *Config) { c.System.BindAddress = ":8080" },
			wantErr: "required when system.bind_address is set",
		},
		{
			name: "ops server with auth passes",
			mutate: func(c *Config) {
				c.System.BindAddress = ":8080"
				c.Auth = AuthConfig{Username: "ops", PasswordHash: "$2a$10$abc"}
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := validConfig()
			test.mutate(&cfg)

			err := cfg.Validate()
			if test.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), test.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{
		Sites: []Site{
			{Name: "blog", URL: "https://example.com", TextMatch: "OK"},
			{Name: "shop", URL: "https://shop.example.com", TextMatch: "In stock", IntervalMS: 60000, CooldownMS: 600000},
		},
	}

	require.NoError(t, cfg.ApplyDefaults())

	assert.Equal(t, "info", cfg.System.LogLevel)
	assert.Equal(t, "smtp.gmail.com", cfg.Mail.SMTPHost)
	assert.Equal(t, 587, cfg.Mail.SMTPPort)
	assert.Equal(t, 360, cfg.System.MaxHistoryPoints)

	// Unset site timings fall back to the system defaults.
	assert.Equal(t, 300000, cfg.Sites[0].IntervalMS)
	assert.Equal(t, 14400000, cfg.Sites[0].CooldownMS)

	// Explicit site timings are kept.
	assert.Equal(t, 60000, cfg.Sites[1].IntervalMS)
	assert.Equal(t, 600000, cfg.Sites[1].CooldownMS)
}

func TestSiteDurations(t *testing.T) {
	s := Site{IntervalMS: 300000, CooldownMS: 14400000}
	assert.Equal(t, 5*time.Minute, s.Interval())
	assert.Equal(t, 4*time.Hour, s.Cooldown())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	data := `{
		"mail": {"smtp_host": "smtp.example.com", "smtp_port": 465},
		"sites": [
			{"name": "blog", "url": "https://example.com", "text_match": "hello", "interval_ms": 1000, "cooldown_ms": 2000}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com", cfg.Mail.SMTPHost)
	assert.Equal(t, 465, cfg.Mail.SMTPPort)
	assert.Equal(t, "info", cfg.System.LogLevel)
	require.Len(t, cfg.Sites, 1)
	assert.Equal(t, "blog", cfg.Sites[0].Name)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.ErrorContains(t, err, "read config")
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

		_, err := Load(path)
		assert.ErrorContains(t, err, "parse config JSON")
	})

	t.Run("invalid config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"sites": []}`), 0o600))

		_, err := Load(path)
		assert.ErrorContains(t, err, "at least one site")
	})
}

func TestCredentialsFromEnv(t *testing.T) {
	t.Run("both present", func(t *testing.T) {
		t.Setenv(EnvMailAccount, "alerts@example.com")
		t.Setenv(EnvMailPassword, "app-password")

		creds, err := CredentialsFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "alerts@example.com", creds.Account)
		assert.Equal(t, "app-password", creds.Password)
	})

	t.Run("missing password", func(t *testing.T) {
		t.Setenv(EnvMailAccount, "alerts@example.com")
		t.Setenv(EnvMailPassword, "")

		_, err := CredentialsFromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), EnvMailPassword)
	})

	t.Run("both missing lists both", func(t *testing.T) {
		t.Setenv(EnvMailAccount, "")
		t.Setenv(EnvMailPassword, "")

		_, err := CredentialsFromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), EnvMailAccount)
		assert.Contains(t, err.Error(), EnvMailPassword)
	})
}
