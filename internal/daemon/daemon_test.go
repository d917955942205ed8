package daemon

import (
	"testing"
)

func TestNewWithConfig_NotificationPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Dir = t.TempDir()
	cfg.Notifications.MaxPerDay = 0 // Disabled, not "unset"
	cfg.Notifications.QuietStart = "23:30"
	cfg.Notifications.QuietEnd = ""

	d, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer d.Close()

	policy := d.Notify.Policy()
	if policy.MaxPerDay != 0 {
		t.Errorf("MaxPerDay = %d, want 0 (disabled)", policy.MaxPerDay)
	}
	if policy.QuietStart != "23:30" {
		t.Errorf("QuietStart = %q, want the configured 23:30", policy.QuietStart)
	}
	if policy.QuietEnd != "08:00" {
		t.Errorf("QuietEnd = %q, want default 08:00", policy.QuietEnd)
	}
}
