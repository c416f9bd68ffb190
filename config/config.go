// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package config loads the router core's configuration: access control
// entries, per-session defaults and logging. ACL entries are parsed
// eagerly so malformed entries fail at load time rather than
// mid-session.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/absmach/routemq/acl"
)

// Config holds all configuration for the router core.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Session SessionConfig `yaml:"session"`
	Auth    AuthConfig    `yaml:"auth"`
	Limits  LimitsConfig  `yaml:"limits"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// SessionConfig holds per-session defaults applied at connection
// establishment.
type SessionConfig struct {
	// Upper bound offered for outbound topic aliases; 0 disables them.
	TopicAliasMax uint16 `yaml:"topic_alias_max"`

	// Create subscription filters on the fly during publish.
	DynamicFilters bool `yaml:"dynamic_filters"`

	// Maximum subscriptions per session; 0 means unlimited.
	MaxSubscriptions int `yaml:"max_subscriptions"`
}

// AuthConfig holds the configured access control entries, in the
// textual "<rule>:<flags>" form.
type AuthConfig struct {
	// ACL entries applied to every connection.
	ACL []string `yaml:"acl"`

	// Per-user entries, appended to the global ones.
	Users []UserAuthConfig `yaml:"users"`
}

// UserAuthConfig holds the additional ACL entries of one user.
type UserAuthConfig struct {
	Username string   `yaml:"username"`
	ACL      []string `yaml:"acl"`
}

// LimitsConfig holds publish-path limits enforced by the built-in
// filters; zero values disable the corresponding filter.
type LimitsConfig struct {
	// Maximum payload size in bytes.
	MaxPayloadSize int `yaml:"max_payload_size"`

	// Publishes per second delivered to one client, with burst.
	PublishRate  float64 `yaml:"publish_rate"`
	PublishBurst int     `yaml:"publish_burst"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Session: SessionConfig{
			TopicAliasMax:  16,
			DynamicFilters: false,
		},
		Auth: AuthConfig{
			ACL: []string{"#:rw"},
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't
// exist, returns default configuration.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid. Every configured ACL
// entry is parsed, so a missing-flags entry is rejected here.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of: debug, info, warn, error")
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be one of: text, json")
	}

	if c.Session.MaxSubscriptions < 0 {
		return fmt.Errorf("session.max_subscriptions cannot be negative")
	}
	if c.Limits.MaxPayloadSize < 0 {
		return fmt.Errorf("limits.max_payload_size cannot be negative")
	}
	if c.Limits.PublishRate < 0 {
		return fmt.Errorf("limits.publish_rate cannot be negative")
	}
	if c.Limits.PublishRate > 0 && c.Limits.PublishBurst < 1 {
		return fmt.Errorf("limits.publish_burst must be at least 1 when publish_rate is set")
	}

	for _, e := range c.Auth.ACL {
		if _, err := acl.Parse(e); err != nil {
			return fmt.Errorf("auth.acl: %w", err)
		}
	}
	for _, u := range c.Auth.Users {
		if u.Username == "" {
			return fmt.Errorf("auth.users entries require a username")
		}
		for _, e := range u.ACL {
			if _, err := acl.Parse(e); err != nil {
				return fmt.Errorf("auth.users[%s]: %w", u.Username, err)
			}
		}
	}
	return nil
}

// ACLsFor returns the un-substituted ACL entries applying to a user:
// the global entries followed by the user's own. Variable substitution
// happens once per connection, in session.New. The configuration must
// have been validated; entries that fail to parse are skipped.
func (c *Config) ACLsFor(username string) []acl.ACL {
	var acls []acl.ACL
	appendParsed := func(entries []string) {
		for _, e := range entries {
			a, err := acl.Parse(e)
			if err != nil {
				continue
			}
			acls = append(acls, a)
		}
	}

	appendParsed(c.Auth.ACL)
	for _, u := range c.Auth.Users {
		if u.Username == username {
			appendParsed(u.ACL)
		}
	}
	return acls
}
