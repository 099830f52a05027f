package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"dario.cat/mergo"
)

// Environment variables providing the mail account identity and the
// application credential. Both must be set before anything is scheduled.
const (
	EnvMailAccount  = "MAIL_ACCOUNT"
	EnvMailPassword = "MAIL_PASSWORD"
)

// Config is the root configuration loaded from the JSON config file.
// The site list is fixed for the lifetime of the process.
type Config struct {
	System SystemConfig `json:"system"`
	Mail   MailConfig   `json:"mail"`
	Auth   AuthConfig   `json:"auth"`
	Sites  []Site       `json:"sites"`
}

type SystemConfig struct {
	// BindAddress enables the ops HTTP API when set (e.g. ":8080").
	// Empty keeps the process log-and-mail only.
	BindAddress       string `json:"bind_address,omitempty"`
	LogLevel          string `json:"log_level"`
	DefaultIntervalMS int    `json:"default_interval_ms"`
	DefaultCooldownMS int    `json:"default_cooldown_ms"`
	MaxHistoryPoints  int    `json:"max_history_points"`
}

// MailConfig describes the SMTP endpoint. The account address and password
// never live in the config file; they come from the environment.
type MailConfig struct {
	SMTPHost string `json:"smtp_host"`
	SMTPPort int    `json:"smtp_port"`
}

// AuthConfig protects the ops API with HTTP basic auth. Both fields are
// required when the ops API is enabled. PasswordHash is a bcrypt hash.
type AuthConfig struct {
	Username     string `json:"username,omitempty"`
	PasswordHash string `json:"password_hash,omitempty"`
}

// Site is one monitored page. Immutable after load.
type Site struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	TextMatch  string `json:"text_match"`
	IntervalMS int    `json:"interval_ms"`
	CooldownMS int    `json:"cooldown_ms"`
}

// Interval is the normal re-check cadence.
func (s Site) Interval() time.Duration {
	return time.Duration(s.IntervalMS) * time.Millisecond
}

// Cooldown is the cadence after any failure or alert.
func (s Site) Cooldown() time.Duration {
	return time.Duration(s.CooldownMS) * time.Millisecond
}

// Credentials holds the mail account identity (used as both sender and
// recipient) and the application credential.
type Credentials struct {
	Account  string
	Password string
}

// CredentialsFromEnv reads the mail credentials from the environment.
// Both variables are required; a missing one is a startup-fatal error.
func CredentialsFromEnv() (Credentials, error) {
	creds := Credentials{
		Account:  os.Getenv(EnvMailAccount),
		Password: os.Getenv(EnvMailPassword),
	}
	var missing []string
	if creds.Account == "" {
		missing = append(missing, EnvMailAccount)
	}
	if creds.Password == "" {
		missing = append(missing, EnvMailPassword)
	}
	if len(missing) > 0 {
		return Credentials{}, fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}
	return creds, nil
}

// DefaultConfig returns a config with sensible defaults. The interval
// defaults match a small static site set: re-check every five minutes,
// back off for four hours after a failure or alert.
func DefaultConfig() Config {
	return Config{
		System: SystemConfig{
			LogLevel:          "info",
			DefaultIntervalMS: 300000,
			DefaultCooldownMS: 14400000,
			MaxHistoryPoints:  360,
		},
		Mail: MailConfig{
			SMTPHost: "smtp.gmail.com",
			SMTPPort: 587,
		},
	}
}

// Load reads the config file at path, fills defaults and validates.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config JSON: %w", err)
	}

	if err := cfg.ApplyDefaults(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyDefaults folds DefaultConfig into unset fields and resolves per-site
// interval fallbacks, so every Site carries its effective timings afterwards.
func (c *Config) ApplyDefaults() error {
	if err := mergo.Merge(c, DefaultConfig()); err != nil {
		return fmt.Errorf("merge default config: %w", err)
	}

	if c.System.MaxHistoryPoints <= 0 {
		c.System.MaxHistoryPoints = DefaultConfig().System.MaxHistoryPoints
	}

	for i := range c.Sites {
		if c.Sites[i].IntervalMS <= 0 {
			c.Sites[i].IntervalMS = c.System.DefaultIntervalMS
		}
		if c.Sites[i].CooldownMS <= 0 {
			c.Sites[i].CooldownMS = c.System.DefaultCooldownMS
		}
	}
	return nil
}

// Validate checks the config for logical errors.
func (c *Config) Validate() error {
	var errs []string

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.System.LogLevel] {
		errs = append(errs, fmt.Sprintf("system.log_level must be one of: debug, info, warn, error (got %q)", c.System.LogLevel))
	}

	if c.Mail.SMTPHost == "" {
		errs = append(errs, "mail.smtp_host is required")
	}
	if c.Mail.SMTPPort <= 0 || c.Mail.SMTPPort > 65535 {
		errs = append(errs, fmt.Sprintf("mail.smtp_port must be in 1..65535 (got %d)", c.Mail.SMTPPort))
	}

	if c.Auth.PasswordHash != "" && c.Auth.Username == "" {
		errs = append(errs, "auth.username is required when auth.password_hash is set")
	}
	if c.System.BindAddress != "" && (c.Auth.Username == "" || c.Auth.PasswordHash == "") {
		errs = append(errs, "auth.username and auth.password_hash are required when system.bind_address is set")
	}

	if len(c.Sites) == 0 {
		errs = append(errs, "at least one site must be configured")
	}

	seen := make(map[string]bool)
	for i, s := range c.Sites {
		prefix := fmt.Sprintf("sites[%d]", i)
		if s.Name == "" {
			errs = append(errs, prefix+".name is required")
		}
		if seen[s.Name] {
			errs = append(errs, prefix+".name is duplicate: "+s.Name)
		}
		seen[s.Name] = true

		if s.URL == "" {
			errs = append(errs, prefix+".url is required")
		} else if u, err := url.Parse(s.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, prefix+".url must be a valid http(s) URL")
		}

		if s.TextMatch == "" {
			errs = append(errs, prefix+".text_match is required")
		}

		if s.IntervalMS <= 0 {
			errs = append(errs, prefix+".interval_ms must be > 0")
		}
		if s.CooldownMS <= 0 {
			errs = append(errs, prefix+".cooldown_ms must be > 0")
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n  " + strings.Join(errs, "\n  "))
	}
	return nil
}
