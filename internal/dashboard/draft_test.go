package dashboard

import (
	"strings"
	"testing"
	"time"
)

func TestNewDraft(t *testing.T) {
	submitted := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	draft, err := NewDraft("Sensor Hub", DeviceESP8266, ConnectivityMQTT, "", "123456789012345", submitted)
	if err != nil {
		t.Fatalf("NewDraft() error = %v", err)
	}

	if draft.Name != "Sensor Hub" {
		t.Errorf("Name = %q, want %q", draft.Name, "Sensor Hub")
	}
	if draft.Device != DeviceESP8266 {
		t.Errorf("Device = %q, want %q", draft.Device, DeviceESP8266)
	}
	if draft.Connectivity != ConnectivityMQTT {
		t.Errorf("Connectivity = %q, want %q", draft.Connectivity, ConnectivityMQTT)
	}
	if draft.Description != "" {
		t.Errorf("Description = %q, want empty", draft.Description)
	}
	if draft.TopicID != "123456789012345" {
		t.Errorf("TopicID = %q, want %q", draft.TopicID, "123456789012345")
	}

	// CreatedAt must be a valid RFC 3339 timestamp matching the submit time
	parsed, err := time.Parse(time.RFC3339, draft.CreatedAt)
	if err != nil {
		t.Fatalf("CreatedAt = %q is not valid RFC 3339: %v", draft.CreatedAt, err)
	}
	if !parsed.Equal(submitted) {
		t.Errorf("CreatedAt = %v, want %v", parsed, submitted)
	}
}

func TestNewDraftTrimsName(t *testing.T) {
	draft, err := NewDraft("  Greenhouse  ", DeviceESP32, ConnectivityWiFi, "", "", time.Now())
	if err != nil {
		t.Fatalf("NewDraft() error = %v", err)
	}
	if draft.Name != "Greenhouse" {
		t.Errorf("Name = %q, want trimmed %q", draft.Name, "Greenhouse")
	}
}

func TestNewDraftRejectsEmptyName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		if _, err := NewDraft(name, DeviceESP32, ConnectivityWiFi, "", "", time.Now()); err == nil {
			t.Errorf("NewDraft(%q) should fail for empty/whitespace name", name)
		}
	}
}

func TestNewDraftRejectsUnknownEnums(t *testing.T) {
	if _, err := NewDraft("x", DeviceType("arduino"), ConnectivityWiFi, "", "", time.Now()); err == nil {
		t.Error("NewDraft() should reject unknown device type")
	}
	if _, err := NewDraft("x", DeviceESP32, Connectivity("lora"), "", "", time.Now()); err == nil {
		t.Error("NewDraft() should reject unknown connectivity type")
	}
}

func TestEnumValidity(t *testing.T) {
	for _, d := range DeviceTypes {
		if !d.Valid() {
			t.Errorf("DeviceType %q should be valid", d)
		}
	}
	for _, c := range Connectivities {
		if !c.Valid() {
			t.Errorf("Connectivity %q should be valid", c)
		}
	}
	if DeviceType("").Valid() {
		t.Error("empty DeviceType should be invalid")
	}
	if Connectivity("").Valid() {
		t.Error("empty Connectivity should be invalid")
	}
}

func TestDraftString(t *testing.T) {
	draft, err := NewDraft("Attic", DeviceESP32, ConnectivityEthernet, "", "555555555555555", time.Now())
	if err != nil {
		t.Fatalf("NewDraft() error = %v", err)
	}
	s := draft.String()
	for _, want := range []string{"Attic", "ESP32", "Ethernet", "555555555555555"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, should contain %q", s, want)
		}
	}
}
