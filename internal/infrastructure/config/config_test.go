package config

import (
	"testing"
	"time"
)

func validTestConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Together: TogetherConfig{
			APIKey:  "tok-test",
			BaseURL: "https://api.together.xyz/v1",
			Model:   "mistralai/Mixtral-8x7B-Instruct-v0.1",
		},
		AI: AIConfig{
			MinDelay:    time.Second,
			CategoryCap: 10,
		},
		Catalog: CatalogConfig{Path: "catalog/maquinaria.json"},
		Cache: CacheConfig{
			Enabled:         true,
			MaxSize:         1000,
			TTL:             24 * time.Hour,
			CleanupInterval: 10 * time.Minute,
		},
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Server.Port = 0 }, true},
		{"missing api key", func(c *Config) { c.Together.APIKey = "" }, true},
		{"missing base url", func(c *Config) { c.Together.BaseURL = "" }, true},
		{"missing model", func(c *Config) { c.Together.Model = "" }, true},
		{"missing catalog path", func(c *Config) { c.Catalog.Path = "" }, true},
		{"negative min delay", func(c *Config) { c.AI.MinDelay = -time.Second }, true},
		{"zero min delay allowed", func(c *Config) { c.AI.MinDelay = 0 }, false},
		{"zero category cap", func(c *Config) { c.AI.CategoryCap = 0 }, true},
		{"cache enabled without size", func(c *Config) { c.Cache.MaxSize = 0 }, true},
		{"cache enabled without ttl", func(c *Config) { c.Cache.TTL = 0 }, true},
		{"cache enabled without cleanup", func(c *Config) { c.Cache.CleanupInterval = 0 }, true},
		{"cache disabled skips cache checks", func(c *Config) {
			c.Cache.Enabled = false
			c.Cache.MaxSize = 0
			c.Cache.TTL = 0
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr && err == nil {
				t.Error("validateConfig returned nil, want error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("validateConfig returned %v, want nil", err)
			}
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "****"},
		{"short", "****"},
		{"tok-1234567890abcd", "tok-...abcd"},
	}

	for _, tt := range tests {
		if got := maskAPIKey(tt.in); got != tt.want {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
