package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDSNValueVerbatim(t *testing.T) {
	c := DatabaseConfig{DSN: "user:pass@tcp(db:3306)/app?parseTime=True"}
	if got := c.DSNValue(); got != "user:pass@tcp(db:3306)/app?parseTime=True" {
		t.Fatalf("verbatim DSN mangled: %q", got)
	}
}

func TestDSNValueFromParts(t *testing.T) {
	c := DatabaseConfig{
		Host:     "db.internal",
		Port:     3307,
		User:     "app",
		Password: "s3cret",
		Name:     "fleet",
	}
	dsn := c.DSNValue()
	if !strings.HasPrefix(dsn, "app:s3cret@tcp(db.internal:3307)/fleet?") {
		t.Fatalf("unexpected DSN prefix: %q", dsn)
	}
	for _, want := range []string{"charset=utf8mb4", "parseTime=True", "loc=Local"} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("DSN %q missing %q", dsn, want)
		}
	}
}

func TestRedisURLValue(t *testing.T) {
	c := RedisConfig{Host: "cache", Port: 6380, Password: "pw", DB: 2}
	url := c.URLValue()
	if !strings.HasPrefix(url, "redis://") {
		t.Fatalf("unexpected scheme: %q", url)
	}
	if !strings.Contains(url, "cache:6380/2") {
		t.Fatalf("unexpected host/db: %q", url)
	}

	c = RedisConfig{URL: "redis://verbatim:6379/0"}
	if got := c.URLValue(); got != "redis://verbatim:6379/0" {
		t.Fatalf("verbatim URL mangled: %q", got)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("env: production\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 2440 {
		t.Fatalf("Port = %d, want default 2440", cfg.Port)
	}
	if cfg.Database.Name != "driveshare" {
		t.Fatalf("Database.Name = %q, want driveshare", cfg.Database.Name)
	}
	if cfg.IsDev() {
		t.Fatalf("env production should not be dev")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("prot: 8080\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected unknown key to fail strict decode")
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("port: 70000\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected out-of-range port to fail")
	}
}
