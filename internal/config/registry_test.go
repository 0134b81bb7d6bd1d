package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/hubdeck/hubdeck/internal/dashboard"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	if !strings.Contains(configDir, "hubdeck") {
		t.Errorf("GetConfigDir() = %v, should contain 'hubdeck'", configDir)
	}

	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin", "linux":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("Unix config dir should contain '.config', got: %v", configDir)
		}
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}

	if reg.Dashboards == nil {
		t.Error("NewRegistry().Dashboards should not be nil")
	}

	if reg.Preferences == nil {
		t.Fatal("NewRegistry().Preferences should not be nil")
	}

	if reg.Preferences.AutoDiscover != true {
		t.Error("NewRegistry().Preferences.AutoDiscover should be true by default")
	}

	if reg.Preferences.ToastDuration != 4000 {
		t.Errorf("NewRegistry().Preferences.ToastDuration = %v, want 4000", reg.Preferences.ToastDuration)
	}

	if reg.Preferences.ScrollThreshold != 300 {
		t.Errorf("NewRegistry().Preferences.ScrollThreshold = %v, want 300", reg.Preferences.ScrollThreshold)
	}
}

func mustDraft(t *testing.T, name string) dashboard.Draft {
	t.Helper()
	d, err := dashboard.NewDraft(name, "esp32", "mqtt", "test dashboard", "123456789012345", time.Now())
	if err != nil {
		t.Fatalf("NewDraft() error = %v", err)
	}
	return d
}

func TestRegistryAddDashboard(t *testing.T) {
	reg := NewRegistry()

	entry := reg.AddDashboard(mustDraft(t, "Living Room"))
	if entry == nil {
		t.Fatal("AddDashboard() returned nil")
	}

	if len(reg.Dashboards) != 1 {
		t.Fatalf("Dashboards length = %d, want 1", len(reg.Dashboards))
	}

	if entry.Name != "Living Room" {
		t.Errorf("entry.Name = %v, want 'Living Room'", entry.Name)
	}
	if entry.Device != "esp32" {
		t.Errorf("entry.Device = %v, want 'esp32'", entry.Device)
	}
	if entry.Connectivity != "mqtt" {
		t.Errorf("entry.Connectivity = %v, want 'mqtt'", entry.Connectivity)
	}
	if entry.TopicID != "123456789012345" {
		t.Errorf("entry.TopicID = %v, want '123456789012345'", entry.TopicID)
	}
	if entry.CreatedAt == "" {
		t.Error("entry.CreatedAt should be set")
	}
}

func TestRegistryFindDashboard(t *testing.T) {
	reg := NewRegistry()
	reg.AddDashboard(mustDraft(t, "Garage"))
	reg.AddDashboard(mustDraft(t, "Greenhouse"))

	if entry := reg.FindDashboard("Greenhouse"); entry == nil {
		t.Error("FindDashboard() should find existing entry")
	}

	if entry := reg.FindDashboard("Attic"); entry != nil {
		t.Errorf("FindDashboard() = %v, want nil for missing entry", entry)
	}
}

func TestRegistryRemoveDashboard(t *testing.T) {
	reg := NewRegistry()
	reg.AddDashboard(mustDraft(t, "Garage"))
	reg.AddDashboard(mustDraft(t, "Greenhouse"))

	if !reg.RemoveDashboard("Garage") {
		t.Error("RemoveDashboard() should return true for existing entry")
	}

	if len(reg.Dashboards) != 1 {
		t.Errorf("Dashboards length = %d, want 1", len(reg.Dashboards))
	}

	if reg.RemoveDashboard("Garage") {
		t.Error("RemoveDashboard() should return false for missing entry")
	}
}

func TestRegistryTouchDashboard(t *testing.T) {
	reg := NewRegistry()
	reg.AddDashboard(mustDraft(t, "Garage"))

	at := time.Date(2026, 8, 23, 10, 30, 0, 0, time.UTC)
	reg.TouchDashboard("Garage", at)

	entry := reg.FindDashboard("Garage")
	if entry.LastOpened != "2026-08-23T10:30:00Z" {
		t.Errorf("LastOpened = %v, want '2026-08-23T10:30:00Z'", entry.LastOpened)
	}
}

func TestRegistrySaveAndLoadRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	testConfigPath := filepath.Join(tmpDir, "config.yaml")

	reg := NewRegistry()
	reg.AddDashboard(mustDraft(t, "Sensor Hub"))
	reg.Preferences.ServiceURL = "http://192.168.1.50:8240"
	reg.Preferences.ToastDuration = 2500

	if err := reg.saveToPath(testConfigPath); err != nil {
		t.Fatalf("saveToPath() error = %v", err)
	}

	loaded, err := loadRegistryFromPath(testConfigPath)
	if err != nil {
		t.Fatalf("loadRegistryFromPath() error = %v", err)
	}

	if len(loaded.Dashboards) != 1 {
		t.Fatalf("loaded Dashboards length = %d, want 1", len(loaded.Dashboards))
	}

	entry := loaded.Dashboards[0]
	if entry.Name != "Sensor Hub" {
		t.Errorf("loaded entry Name = %v, want 'Sensor Hub'", entry.Name)
	}
	if entry.TopicID != "123456789012345" {
		t.Errorf("loaded entry TopicID = %v, want '123456789012345'", entry.TopicID)
	}

	if loaded.Preferences.ServiceURL != "http://192.168.1.50:8240" {
		t.Errorf("loaded ServiceURL = %v", loaded.Preferences.ServiceURL)
	}
	if loaded.Preferences.ToastDuration != 2500 {
		t.Errorf("loaded ToastDuration = %v, want 2500", loaded.Preferences.ToastDuration)
	}
}

func TestLoadRegistryMissingFileReturnsDefaults(t *testing.T) {
	tmpDir := t.TempDir()

	reg, err := loadRegistryFromPath(filepath.Join(tmpDir, "config.yaml"))
	if err != nil {
		t.Fatalf("loadRegistryFromPath() error = %v", err)
	}

	if reg.Version != 1 {
		t.Errorf("default registry Version = %v, want 1", reg.Version)
	}
	if len(reg.Dashboards) != 0 {
		t.Errorf("default registry should have no dashboards, got %d", len(reg.Dashboards))
	}
}

func TestLoadRegistryRejectsUnknownVersion(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(path, []byte("version: 99\n"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := loadRegistryFromPath(path); err == nil {
		t.Error("loadRegistryFromPath() should reject unsupported version")
	}
}

func TestLoadRegistryRejectsMalformedYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(path, []byte("version: [not closed\n"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := loadRegistryFromPath(path); err == nil {
		t.Error("loadRegistryFromPath() should reject malformed YAML")
	}
}
