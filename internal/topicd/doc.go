// Package topicd implements the Topic ID generation service: a small HTTP
// server that hands out random 15-digit identifiers for new dashboards.
// Instances announce themselves over mDNS so the TUI can find one on the
// local network without configuration.
package topicd
