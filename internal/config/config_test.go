package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// point at a file that does not exist so only defaults apply
	c, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DefaultModel != "llama3.1:8b" {
		t.Errorf("DefaultModel = %s, want llama3.1:8b", c.DefaultModel)
	}
	if c.MaxTotalRows != 50_000_000 {
		t.Errorf("MaxTotalRows = %d, want 50000000", c.MaxTotalRows)
	}
	if c.GeoThresholdKM != 25.0 {
		t.Errorf("GeoThresholdKM = %v, want 25", c.GeoThresholdKM)
	}
	if c.OllamaHost != "http://127.0.0.1:11434" {
		t.Errorf("OllamaHost = %s", c.OllamaHost)
	}
	if c.RetryMaxAttempts != 3 {
		t.Errorf("RetryMaxAttempts = %d, want 3", c.RetryMaxAttempts)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	want := &Global{
		DefaultModel:     "mistral:7b",
		MaxTokens:        2048,
		Temperature:      0.5,
		MaxTotalRows:     1000,
		GeoThresholdKM:   10,
		HTTPTimeoutSec:   30,
		RetryMaxAttempts: 5,
		RetryBaseDelayMs: 100,
		RetryMaxDelayMs:  2000,
		OllamaHost:       "http://127.0.0.1:9999",
		OllamaTimeoutSec: 90,
	}
	if err := Save(want, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.DefaultModel != want.DefaultModel {
		t.Errorf("DefaultModel = %s, want %s", got.DefaultModel, want.DefaultModel)
	}
	if got.MaxTotalRows != want.MaxTotalRows {
		t.Errorf("MaxTotalRows = %d, want %d", got.MaxTotalRows, want.MaxTotalRows)
	}
	if got.GeoThresholdKM != want.GeoThresholdKM {
		t.Errorf("GeoThresholdKM = %v, want %v", got.GeoThresholdKM, want.GeoThresholdKM)
	}
	if got.OllamaHost != want.OllamaHost {
		t.Errorf("OllamaHost = %s, want %s", got.OllamaHost, want.OllamaHost)
	}
}

func TestEnvOverride(t *testing.T) {
	os.Setenv("TABLOOM_DEFAULT_MODEL", "phi3:mini")
	defer os.Unsetenv("TABLOOM_DEFAULT_MODEL")

	c, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DefaultModel != "phi3:mini" {
		t.Errorf("DefaultModel = %s, want env override phi3:mini", c.DefaultModel)
	}
}
