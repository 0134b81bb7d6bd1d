package discovery

import (
	"fmt"
	"time"
)

// Service represents a discovered Topic ID service instance on the network.
type Service struct {
	// Instance is the mDNS instance name (e.g., "topicd-office")
	Instance string

	// Hostname is the mDNS hostname (e.g., "office-pi.local.")
	Hostname string

	// IP is the IPv4 address (e.g., "192.168.1.50")
	IP string

	// Port is the HTTP port (typically 8240)
	Port int

	// Metadata contains additional mDNS TXT record data
	// Common fields: "version=0.3.0"
	Metadata map[string]string

	// DiscoveredAt is when the instance was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the instance.
func (s *Service) String() string {
	return fmt.Sprintf("Topic service %s (%s) at %s:%d", s.Instance, s.Hostname, s.IP, s.Port)
}

// BaseURL returns the HTTP base URL for the instance.
func (s *Service) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", s.IP, s.Port)
}

// GetMetadata retrieves a TXT record value by key, or returns empty string if not found.
func (s *Service) GetMetadata(key string) string {
	if s.Metadata == nil {
		return ""
	}
	return s.Metadata[key]
}
