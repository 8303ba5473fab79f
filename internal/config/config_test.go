package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	cfg := &Config{APIURL: "https://api.coachmeplay.test/api", DefaultProfile: "work"}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.APIURL != cfg.APIURL {
		t.Errorf("APIURL = %q, want %q", loaded.APIURL, cfg.APIURL)
	}
	if loaded.DefaultProfile != "work" {
		t.Errorf("DefaultProfile = %q, want %q", loaded.DefaultProfile, "work")
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("/nonexistent/config.toml")
	if err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoadWithEnvOverlay(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")
	if err := Save(path, &Config{APIURL: "http://file.example/api", DefaultProfile: "file"}); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CMP_API_URL", "http://env.example/api")
	t.Setenv("CMP_PROFILE", "env")

	cfg := LoadWithEnv(path)
	if cfg.APIURL != "http://env.example/api" {
		t.Errorf("APIURL = %q, want env override", cfg.APIURL)
	}
	if cfg.DefaultProfile != "env" {
		t.Errorf("DefaultProfile = %q, want env override", cfg.DefaultProfile)
	}
}

func TestLoadWithEnvMissingFile(t *testing.T) {
	t.Setenv("CMP_API_URL", "")
	t.Setenv("CMP_PROFILE", "")

	cfg := LoadWithEnv(filepath.Join(t.TempDir(), "nope.toml"))
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("APIURL = %q, want default", cfg.APIURL)
	}
}

func TestSavePermissions(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	if err := Save(path, &Config{DefaultProfile: "default"}); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	perm := info.Mode().Perm()
	if perm != 0600 {
		t.Errorf("file permission = %o, want 0600", perm)
	}
}
