package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "data/hexplan.db" || cfg.APIPort != 8080 {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Generator.Radius <= 0 {
		t.Errorf("generator defaults missing: %+v", cfg.Generator)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hexplan.yaml")
	data := `
db_path: /tmp/other.db
api_port: 9000
default_civ: japan
generator:
  radius: 6
  seed: 7
  sea_level: 0.2
  mountain_lvl: 0.8
  hills_lvl: 0.6
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/tmp/other.db" || cfg.APIPort != 9000 || cfg.DefaultCiv != "japan" {
		t.Errorf("overrides lost: %+v", cfg)
	}
	if cfg.Generator.Radius != 6 || cfg.Generator.Seed != 7 {
		t.Errorf("generator overrides lost: %+v", cfg.Generator)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"bad yaml": "api_port: [unclosed",
		"bad port": "api_port: -1",
		"bad radius": `generator:
  radius: 0`,
	}
	for name, data := range cases {
		path := filepath.Join(t.TempDir(), "cfg.yaml")
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
