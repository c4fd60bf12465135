package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	base := t.TempDir()
	cfg, err := Load(filepath.Join(base, "nope.json"), base)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TemplateDir != filepath.Join(base, "templates") {
		t.Errorf("TemplateDir = %q", cfg.TemplateDir)
	}
	if cfg.LogDir != filepath.Join(base, "logs") {
		t.Errorf("LogDir = %q", cfg.LogDir)
	}
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "config.json")
	if err := os.WriteFile(path, []byte(`{"outputDir": "/custom/out"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, base)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputDir != "/custom/out" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.TemplateDir != filepath.Join(base, "templates") {
		t.Errorf("TemplateDir not defaulted: %q", cfg.TemplateDir)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "nested", "config.json")

	cfg := Default(base)
	cfg.OutputDir = "/custom/out"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path, base)
	if err != nil {
		t.Fatal(err)
	}
	if loaded != cfg {
		t.Errorf("round-trip mismatch: %+v != %+v", loaded, cfg)
	}
}

func TestEnsureDirs(t *testing.T) {
	base := t.TempDir()
	cfg := Default(base)
	if err := cfg.EnsureDirs(); err != nil {
		t.Fatal(err)
	}
	for _, dir := range []string{cfg.TemplateDir, cfg.OutputDir, cfg.AssetsDir, cfg.LogosDir, cfg.LogDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("directory %s not created", dir)
		}
	}
}
