package config

import (
	"context"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.DatabaseType != "memory" {
		t.Errorf("expected default database type memory, got %q", cfg.DatabaseType)
	}
	if cfg.DefaultStorageBackend != "memory" {
		t.Errorf("expected default storage backend memory, got %q", cfg.DefaultStorageBackend)
	}
	if !cfg.EnableEventLogging {
		t.Error("expected event logging enabled by default")
	}
}

func TestLoadAppliesOptionsInOrder(t *testing.T) {
	first := func(c *ServerConfig) error {
		c.Port = "1111"
		return nil
	}
	second := func(c *ServerConfig) error {
		c.Port = "2222"
		return nil
	}

	cfg, err := Load(first, second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "2222" {
		t.Errorf("expected later option to win, got port %q", cfg.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*ServerConfig)
		wantError bool
	}{
		{"defaults are valid", func(c *ServerConfig) {}, false},
		{"missing port", func(c *ServerConfig) { c.Port = "" }, true},
		{"bad database type", func(c *ServerConfig) { c.DatabaseType = "oracle" }, true},
		{"postgres without URL", func(c *ServerConfig) { c.DatabaseType = "postgres" }, true},
		{"file without path", func(c *ServerConfig) {
			c.DatabaseType = "file"
			c.LibraryFile = ""
		}, true},
		{"unknown default backend", func(c *ServerConfig) { c.DefaultStorageBackend = "unknown" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestBuildServiceMemory(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc, err := cfg.BuildService(nil)
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	if svc == nil {
		t.Fatal("expected a service instance")
	}

	if _, err := svc.GetContents(context.Background(), ""); err != nil {
		t.Errorf("service not usable: %v", err)
	}
}

func TestBuildServiceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")

	cfg, err := Load(func(c *ServerConfig) error {
		c.DatabaseType = "file"
		c.LibraryFile = path
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc, err := cfg.BuildService(nil)
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	if svc == nil {
		t.Fatal("expected a service instance")
	}
}
