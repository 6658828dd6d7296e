package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// createTestGdataManager 在临时 HOME 下创建 gdata Manager
func createTestGdataManager(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "")

	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Skipf("Cannot create gdata manager for testing: %v", err)
	}
	return manager
}

func TestDefaultHostSettings(t *testing.T) {
	settings := DefaultHostSettings()

	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
	if settings.TimeScale != 1.0 {
		t.Errorf("TimeScale: got %v, want 1.0", settings.TimeScale)
	}
	if !settings.ShowHUD {
		t.Error("ShowHUD: got false, want true")
	}
}

func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)

	if sm.GetSettings().TimeScale != 1.0 {
		t.Errorf("Degraded mode TimeScale: got %v, want 1.0", sm.GetSettings().TimeScale)
	}

	// 降级模式下保存不报错
	sm.SetFullscreen(true)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail, got %v", err)
	}
}

func TestSettingsLoadSave(t *testing.T) {
	manager := createTestGdataManager(t, "arena_settings_test")

	sm1 := NewSettingsManager(manager)
	sm1.SetFullscreen(true)
	sm1.SetTimeScale(2.0)
	sm1.SetShowHUD(false)

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2 := NewSettingsManager(manager)
	settings := sm2.GetSettings()

	if !settings.Fullscreen {
		t.Error("Fullscreen: got false, want true")
	}
	if settings.TimeScale != 2.0 {
		t.Errorf("TimeScale: got %v, want 2.0", settings.TimeScale)
	}
	if settings.ShowHUD {
		t.Error("ShowHUD: got true, want false")
	}
}

func TestSettingsLoadCorruptData(t *testing.T) {
	manager := createTestGdataManager(t, "arena_settings_corrupt_test")

	if err := manager.SaveObjectProp(settingsObject, settingsProperty, []byte("timeScale: [oops")); err != nil {
		t.Fatalf("failed to write corrupt settings: %v", err)
	}

	sm := NewSettingsManager(manager)
	if err := sm.Load(); err == nil {
		t.Error("Expected error for corrupt settings")
	}
	if sm.GetSettings().TimeScale != 1.0 {
		t.Errorf("Expected defaults after corrupt load, got %v", sm.GetSettings().TimeScale)
	}
}

func TestSetTimeScaleClamps(t *testing.T) {
	sm := NewSettingsManager(nil)

	tests := []struct {
		in, want float64
	}{
		{0, MinTimeScale},
		{-3, MinTimeScale},
		{1.5, 1.5},
		{10, MaxTimeScale},
	}

	for _, tt := range tests {
		sm.SetTimeScale(tt.in)
		if got := sm.GetSettings().TimeScale; got != tt.want {
			t.Errorf("SetTimeScale(%v): got %v, want %v", tt.in, got, tt.want)
		}
	}
}
