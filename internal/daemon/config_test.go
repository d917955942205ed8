package daemon

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "127.0.0.1")
	}
	if cfg.API.Port != 7171 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 7171)
	}
	if cfg.Notifications.MaxPerDay != 5 {
		t.Errorf("Notifications.MaxPerDay = %d, want 5", cfg.Notifications.MaxPerDay)
	}
	if cfg.Notifications.QuietStart != "22:00" || cfg.Notifications.QuietEnd != "08:00" {
		t.Errorf("quiet hours = %s–%s, want 22:00–08:00",
			cfg.Notifications.QuietStart, cfg.Notifications.QuietEnd)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	t.Setenv("WELLSPRING_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.API.Port = 9999
	cfg.Notifications.MaxPerDay = 2

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.API.Port != 9999 {
		t.Errorf("port = %d, want 9999", loaded.API.Port)
	}
	if loaded.Notifications.MaxPerDay != 2 {
		t.Errorf("max per day = %d, want 2", loaded.Notifications.MaxPerDay)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("WELLSPRING_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Port != 7171 {
		t.Errorf("port = %d, want default 7171", cfg.API.Port)
	}
}
