package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "priced.yaml", `
addr: ":8080"
model_path: /var/lib/priced/car_price.json
max_body_bytes: 2097152
log:
  level: debug
  file: /var/log/priced.log
  max_size_mb: 20
cors:
  disabled: true
  origins: ["https://example.com"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.ModelPath != "/var/lib/priced/car_price.json" {
		t.Fatalf("cfg: %+v", cfg)
	}
	if cfg.MaxBodyBytes != 2097152 {
		t.Fatalf("max_body_bytes=%d", cfg.MaxBodyBytes)
	}
	if cfg.Log.Level != "debug" || cfg.Log.MaxSizeMB != 20 {
		t.Fatalf("log: %+v", cfg.Log)
	}
	if !cfg.CORS.Disabled || len(cfg.CORS.Origins) != 1 {
		t.Fatalf("cors: %+v", cfg.CORS)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "priced.json", `{"addr":":9090","log":{"level":"warn"}}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.Log.Level != "warn" {
		t.Fatalf("cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "priced.toml", `
addr = ":7070"
model_path = "models/car_price.json"

[log]
level = "info"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.ModelPath != "models/car_price.json" || cfg.Log.Level != "info" {
		t.Fatalf("cfg: %+v", cfg)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeConfig(t, "priced.ini", "addr=:8080")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("err=%v, want unsupported extension", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadEmptyPath(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
