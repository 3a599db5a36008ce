package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := DefaultConfig()
	if cfg.ListenAddr != want.ListenAddr || cfg.OwnerID != want.OwnerID {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "listen_addr: \":9090\"\nowner_id: alice\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":9090" || cfg.OwnerID != "alice" {
		t.Errorf("cfg = %+v", cfg)
	}
	// Untouched keys keep their defaults.
	if cfg.ServerURL != DefaultConfig().ServerURL {
		t.Errorf("server_url = %q", cfg.ServerURL)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("owner_id: alice\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("NOTENEST_OWNER_ID", "bob")
	t.Setenv("NOTENEST_SERVER_URL", "http://example.test:8080")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.OwnerID != "bob" {
		t.Errorf("owner_id = %q, want env override", cfg.OwnerID)
	}
	if cfg.ServerURL != "http://example.test:8080" {
		t.Errorf("server_url = %q", cfg.ServerURL)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("listen_addr: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
