package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_ENV", "test-missing")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.CodeLength != 6 {
		t.Errorf("CodeLength = %d, want 6", cfg.CodeLength)
	}
	if cfg.RoomTTL != 20*time.Minute {
		t.Errorf("RoomTTL = %s, want 20m", cfg.RoomTTL)
	}
	if cfg.MaxRooms != 10 {
		t.Errorf("MaxRooms = %d, want 10", cfg.MaxRooms)
	}
	if cfg.PINRequired {
		t.Error("PINRequired = true, want false")
	}
	if cfg.ReadLimit != 32768 {
		t.Errorf("ReadLimit = %d, want 32768", cfg.ReadLimit)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_ENV", "test-missing")
	t.Setenv("BEACON_MAX_ROOMS", "3")
	t.Setenv("BEACON_ROOM_TTL", "90s")
	t.Setenv("BEACON_CODE_LENGTH", "8")
	t.Setenv("BEACON_PIN_REQUIRED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MaxRooms != 3 {
		t.Errorf("MaxRooms = %d, want 3", cfg.MaxRooms)
	}
	if cfg.RoomTTL != 90*time.Second {
		t.Errorf("RoomTTL = %s, want 90s", cfg.RoomTTL)
	}
	if cfg.CodeLength != 8 {
		t.Errorf("CodeLength = %d, want 8", cfg.CodeLength)
	}
	if !cfg.PINRequired {
		t.Error("PINRequired = false, want true")
	}
}
