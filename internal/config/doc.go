// Package config manages the persistent user configuration for Hubdeck:
// saved dashboard definitions and application preferences, stored as YAML
// in the platform-appropriate config directory. Writes are atomic
// (temp file + rename) so a crash mid-save never corrupts the file.
package config
