// Package dashboard defines the dashboard draft record emitted by the
// creation form, along with the device and connectivity vocabularies it is
// built from.
package dashboard

import (
	"fmt"
	"strings"
	"time"
)

// DeviceType identifies the microcontroller family a dashboard monitors.
type DeviceType string

const (
	DeviceESP32   DeviceType = "esp32"
	DeviceESP8266 DeviceType = "esp8266"
)

// DeviceTypes lists the supported device types in display order.
var DeviceTypes = []DeviceType{DeviceESP32, DeviceESP8266}

// Valid reports whether the device type is one of the supported values.
func (d DeviceType) Valid() bool {
	switch d {
	case DeviceESP32, DeviceESP8266:
		return true
	}
	return false
}

// Label returns a human-readable name for display.
func (d DeviceType) Label() string {
	switch d {
	case DeviceESP32:
		return "ESP32"
	case DeviceESP8266:
		return "ESP8266"
	}
	return string(d)
}

// Connectivity identifies how the device reports its telemetry.
type Connectivity string

const (
	ConnectivityWiFi     Connectivity = "wifi"
	ConnectivityEthernet Connectivity = "ethernet"
	ConnectivityMQTT     Connectivity = "mqtt"
)

// Connectivities lists the supported connectivity types in display order.
var Connectivities = []Connectivity{ConnectivityWiFi, ConnectivityEthernet, ConnectivityMQTT}

// Valid reports whether the connectivity type is one of the supported values.
func (c Connectivity) Valid() bool {
	switch c {
	case ConnectivityWiFi, ConnectivityEthernet, ConnectivityMQTT:
		return true
	}
	return false
}

// Label returns a human-readable name for display.
func (c Connectivity) Label() string {
	switch c {
	case ConnectivityWiFi:
		return "Wi-Fi"
	case ConnectivityEthernet:
		return "Ethernet"
	case ConnectivityMQTT:
		return "MQTT"
	}
	return string(c)
}

// Draft is the dashboard-creation record handed to the caller when the form
// is submitted. It is immutable once emitted: the form resets its own state
// and retains no reference.
type Draft struct {
	// Name is the dashboard display name, trimmed, always non-empty.
	Name string

	// Device is the monitored device type.
	Device DeviceType

	// Connectivity is the device's reporting transport.
	Connectivity Connectivity

	// Description is optional free-form text. May be empty.
	Description string

	// TopicID is the generated message-routing topic identifier. It may be
	// empty when generation never completed and the form's policy permits
	// submitting without one.
	TopicID string

	// CreatedAt is the RFC 3339 timestamp captured at submit time.
	CreatedAt string
}

// NewDraft builds a Draft from raw form values. The name is trimmed and must
// be non-empty; device and connectivity must be supported values. CreatedAt
// is stamped from the supplied submit time.
func NewDraft(name string, device DeviceType, connectivity Connectivity, description, topicID string, submittedAt time.Time) (Draft, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Draft{}, fmt.Errorf("dashboard name must not be empty")
	}
	if !device.Valid() {
		return Draft{}, fmt.Errorf("unsupported device type: %q", device)
	}
	if !connectivity.Valid() {
		return Draft{}, fmt.Errorf("unsupported connectivity type: %q", connectivity)
	}

	return Draft{
		Name:         name,
		Device:       device,
		Connectivity: connectivity,
		Description:  description,
		TopicID:      topicID,
		CreatedAt:    submittedAt.UTC().Format(time.RFC3339),
	}, nil
}

// String returns a one-line summary of the draft.
func (d Draft) String() string {
	return fmt.Sprintf("%s (%s via %s, topic %s)", d.Name, d.Device.Label(), d.Connectivity.Label(), d.TopicID)
}
