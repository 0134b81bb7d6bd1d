// Hubdeck is a terminal dashboard builder for small IoT fleets.
//
// It manages a local catalog of device dashboards: each dashboard names a
// device (ESP32/ESP8266), how it reports telemetry, and a generated Topic
// ID used for message routing. Topic IDs come from a topicd service found
// over mDNS, with a local fallback when none is reachable.
//
// Usage:
//
//	hubdeck [command] [flags]
//
// Running without arguments launches the interactive interface.
// See 'hubdeck --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hubdeck/hubdeck/internal/logging"
	"github.com/hubdeck/hubdeck/internal/version"
)

func main() {
	_ = logging.InitializeFromEnv()
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hubdeck",
	Short: "Terminal dashboard builder for IoT devices",
	Long: `Hubdeck manages dashboards for small fleets of IoT devices.

Create dashboards interactively, browse the saved catalog, and generate
message-routing Topic IDs from a local topicd service.

If no command is specified, the interactive interface launches.`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, args)
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hubdeck %s (commit: %s)\n", version.Version, version.Commit)
	},
}
