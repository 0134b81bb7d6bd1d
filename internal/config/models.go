package config

import (
	"time"

	"github.com/hubdeck/hubdeck/internal/dashboard"
)

// Registry represents the entire user configuration file.
// This stores saved dashboards and application preferences.
type Registry struct {
	Version     int               `yaml:"version"`
	Dashboards  []*DashboardEntry `yaml:"dashboards,omitempty"`
	Preferences *Preferences      `yaml:"preferences,omitempty"`
}

// DashboardEntry is the persisted form of a created dashboard.
type DashboardEntry struct {
	Name         string `yaml:"name"`
	Device       string `yaml:"device"`                 // Device type identifier (e.g., "esp32")
	Connectivity string `yaml:"connectivity"`           // Connectivity identifier (e.g., "mqtt")
	Description  string `yaml:"description,omitempty"`  // Optional free-form description
	TopicID      string `yaml:"topic_id,omitempty"`     // Generated or fallback Topic ID
	CreatedAt    string `yaml:"created_at"`             // ISO-8601 creation timestamp
	LastOpened   string `yaml:"last_opened,omitempty"`  // ISO-8601, updated when the dashboard is viewed
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	ServiceURL      string `yaml:"service_url,omitempty"` // Topic ID service base URL (overrides discovery)
	AutoDiscover    bool   `yaml:"auto_discover"`         // Enable automatic mDNS discovery on startup
	DiscoverTimeout int    `yaml:"discover_timeout"`      // mDNS discovery timeout in seconds
	ToastDuration   int    `yaml:"toast_duration"`        // Notification auto-dismiss in ms (0 disables)
	ScrollThreshold int    `yaml:"scroll_threshold"`      // Rows scrolled before the top shortcut appears
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:    1,
		Dashboards: []*DashboardEntry{},
		Preferences: &Preferences{
			AutoDiscover:    true,
			DiscoverTimeout: 10,
			ToastDuration:   4000,
			ScrollThreshold: 300,
		},
	}
}

// AddDashboard appends a draft to the registry as a persisted entry and
// returns it.
func (r *Registry) AddDashboard(d dashboard.Draft) *DashboardEntry {
	entry := &DashboardEntry{
		Name:         d.Name,
		Device:       string(d.Device),
		Connectivity: string(d.Connectivity),
		Description:  d.Description,
		TopicID:      d.TopicID,
		CreatedAt:    d.CreatedAt,
	}
	r.Dashboards = append(r.Dashboards, entry)
	return entry
}

// FindDashboard returns the first dashboard with the given name, or nil.
func (r *Registry) FindDashboard(name string) *DashboardEntry {
	for _, entry := range r.Dashboards {
		if entry.Name == name {
			return entry
		}
	}
	return nil
}

// RemoveDashboard removes the first dashboard with the given name.
// Returns true if an entry was removed.
func (r *Registry) RemoveDashboard(name string) bool {
	for i, entry := range r.Dashboards {
		if entry.Name == name {
			r.Dashboards = append(r.Dashboards[:i], r.Dashboards[i+1:]...)
			return true
		}
	}
	return false
}

// TouchDashboard updates the last-opened timestamp for the named dashboard.
func (r *Registry) TouchDashboard(name string, at time.Time) {
	if entry := r.FindDashboard(name); entry != nil {
		entry.LastOpened = at.UTC().Format(time.RFC3339)
	}
}
