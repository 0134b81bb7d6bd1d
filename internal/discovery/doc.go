// Package discovery finds topicd instances on the local network via mDNS
// and lets a running topicd announce itself.
package discovery
