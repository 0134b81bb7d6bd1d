// Hubdeck-topicd is the Topic ID generation service for Hubdeck.
//
// It serves random 15-digit Topic IDs over a small HTTP API and announces
// itself on the local network via mDNS so hubdeck clients can find it
// without configuration.
//
// Usage:
//
//	hubdeck-topicd [flags]
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hubdeck/hubdeck/internal/discovery"
	"github.com/hubdeck/hubdeck/internal/logging"
	"github.com/hubdeck/hubdeck/internal/topicd"
	"github.com/hubdeck/hubdeck/internal/version"
)

var (
	listenAddr string
	noMDNS     bool
	instance   string
)

func main() {
	if err := logging.Initialize("info"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "hubdeck-topicd",
	Short:   "Topic ID generation service for Hubdeck",
	Version: version.Version,
	RunE:    runServe,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.Flags().StringVar(&listenAddr, "addr", topicd.DefaultAddr, "Listen address")
	rootCmd.Flags().BoolVar(&noMDNS, "no-mdns", false, "Disable mDNS announcement")
	rootCmd.Flags().StringVar(&instance, "instance", "", "mDNS instance name (defaults to topicd-<hostname>)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := topicd.NewServer(listenAddr)

	if !noMDNS {
		port, err := listenPort(server.Addr())
		if err != nil {
			return fmt.Errorf("cannot announce over mDNS: %w", err)
		}

		name := instance
		if name == "" {
			hostname, _ := os.Hostname()
			if hostname == "" {
				hostname = "local"
			}
			name = "topicd-" + hostname
		}

		stopAnnounce, err := discovery.Announce(name, port, []string{"version=" + version.Version})
		if err != nil {
			logging.Warn("mDNS announcement failed, continuing without", zap.Error(err))
		} else {
			logging.Info("announced over mDNS", zap.String("instance", name), zap.Int("port", port))
			defer stopAnnounce()
		}
	}

	return server.Run(ctx)
}

// listenPort extracts the numeric port from a listen address like ":8240".
func listenPort(addr string) (int, error) {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("invalid port in %q: %w", addr, err)
	}
	return port, nil
}
