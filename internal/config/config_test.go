package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Default()

	if cfg.Web.Port != 8710 {
		t.Errorf("Web.Port = %d, want 8710", cfg.Web.Port)
	}
	if cfg.Web.Host != "127.0.0.1" {
		t.Errorf("Web.Host = %q, want 127.0.0.1", cfg.Web.Host)
	}
	if cfg.Check.Concurrency != 4 {
		t.Errorf("Check.Concurrency = %d, want 4", cfg.Check.Concurrency)
	}
	if cfg.Lawgo.TimeoutSeconds != 30 {
		t.Errorf("Lawgo.TimeoutSeconds = %d, want 30", cfg.Lawgo.TimeoutSeconds)
	}
	if got := cfg.RunLogPath(); got != filepath.Join("data", "data.json") {
		t.Errorf("RunLogPath = %q, want data/data.json", got)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	content := `
[data]
dir = "/srv/firecode/data"

[web]
port = 9000

[lawgo]
mock = true

[check]
cron = "0 9 * * *"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Web.Port != 9000 {
		t.Errorf("Web.Port = %d, want 9000", cfg.Web.Port)
	}
	if !cfg.Lawgo.Mock {
		t.Error("Lawgo.Mock = false, want true")
	}
	if cfg.Check.Cron != "0 9 * * *" {
		t.Errorf("Check.Cron = %q, want schedule", cfg.Check.Cron)
	}
	if got := cfg.SnapshotPath(); got != "/srv/firecode/data/snapshot.json" {
		t.Errorf("SnapshotPath = %q, want under configured dir", got)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Web.Port != 8710 {
		t.Errorf("Web.Port = %d, want default", cfg.Web.Port)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LAWGO_OC", "env-oc-key")
	t.Setenv("LAWGO_MOCK", "1")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Lawgo.OC != "env-oc-key" {
		t.Errorf("Lawgo.OC = %q, want env override", cfg.Lawgo.OC)
	}
	if !cfg.Lawgo.Mock {
		t.Error("Lawgo.Mock = false, want env override true")
	}
}
