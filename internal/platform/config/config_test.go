package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.AppEnv != "local" {
		t.Errorf("AppEnv = %q, want local default", cfg.AppEnv)
	}

	if cfg.LicenseStoreFile != "licenses.json" {
		t.Errorf("LicenseStoreFile = %q, want licenses.json default", cfg.LicenseStoreFile)
	}

	if cfg.DefaultRecentVideos != 10 {
		t.Errorf("DefaultRecentVideos = %d, want 10 default", cfg.DefaultRecentVideos)
	}

	if cfg.YouTubeTimeout != 60*time.Second {
		t.Errorf("YouTubeTimeout = %v, want 60s default", cfg.YouTubeTimeout)
	}
}

func TestAPIKeyFallback(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "")
	t.Setenv("YT_API_KEY", "legacy-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.APIKey() != "legacy-key" {
		t.Errorf("APIKey() = %q, want the legacy fallback", cfg.APIKey())
	}

	t.Setenv("YOUTUBE_API_KEY", "primary-key")

	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.APIKey() != "primary-key" {
		t.Errorf("APIKey() = %q, want the primary key to win", cfg.APIKey())
	}
}
