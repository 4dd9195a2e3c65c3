package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if cfg.ServerURL != "http://localhost:8000" || cfg.Tier != "advanced" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "server_url: https://eagle.example.gov\ntenant_id: nci-oa\nuser_id: cs-lead\ntier: premium\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("EAGLE_TENANT_ID", "nci-oa-east")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ServerURL != "https://eagle.example.gov" {
		t.Fatalf("yaml value lost: %q", cfg.ServerURL)
	}
	if cfg.TenantID != "nci-oa-east" {
		t.Fatalf("env must override yaml, got %q", cfg.TenantID)
	}
	if cfg.Tier != "premium" {
		t.Fatalf("unexpected tier: %q", cfg.Tier)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server_url: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
