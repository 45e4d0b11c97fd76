package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	cfg := Load()

	if cfg.DataDir != ".civicgraph" {
		t.Errorf("DataDir = %q, want .civicgraph", cfg.DataDir)
	}
	if cfg.Store != "jsonl" {
		t.Errorf("Store = %q, want jsonl", cfg.Store)
	}
	if cfg.ServePort != 8377 {
		t.Errorf("ServePort = %d, want 8377", cfg.ServePort)
	}
	if cfg.Verbose {
		t.Error("Verbose = true, want false")
	}
}

func TestLoad_Overrides(t *testing.T) {
	viper.Reset()
	viper.Set("data_dir", "/tmp/tracker")
	viper.Set("store", "sqlite")
	viper.Set("serve_port", 9000)
	defer viper.Reset()

	cfg := Load()
	if cfg.DataDir != "/tmp/tracker" {
		t.Errorf("DataDir = %q, want /tmp/tracker", cfg.DataDir)
	}
	if cfg.Store != "sqlite" {
		t.Errorf("Store = %q, want sqlite", cfg.Store)
	}
	if cfg.ServePort != 9000 {
		t.Errorf("ServePort = %d, want 9000", cfg.ServePort)
	}
}
