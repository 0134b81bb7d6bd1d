package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hubdeck/hubdeck/internal/config"
	"github.com/hubdeck/hubdeck/internal/discovery"
	"github.com/hubdeck/hubdeck/internal/topic"
	"github.com/hubdeck/hubdeck/internal/tui"
)

// Command flags
var (
	serviceURL  string
	scanTimeout int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&serviceURL, "service", "", "Topic service base URL (skips discovery)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(topicCmd)
	rootCmd.AddCommand(scanCmd)
}

// runApp launches the interactive interface.
func runApp(cmd *cobra.Command, args []string) error {
	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if serviceURL != "" {
		registry.Preferences.ServiceURL = serviceURL
	}

	program := tea.NewProgram(tui.NewApp(registry), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("interface error: %w", err)
	}
	return nil
}

// listCmd prints the saved dashboard catalog.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved dashboards",
	Long:  `Print every dashboard in the local catalog with its device, connectivity, and Topic ID.`,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if len(registry.Dashboards) == 0 {
		fmt.Println("No dashboards saved.")
		fmt.Println("\nRun 'hubdeck' and press 'n' to create one.")
		return nil
	}

	fmt.Printf("%d dashboard(s):\n\n", len(registry.Dashboards))
	for i, entry := range registry.Dashboards {
		fmt.Printf("%d. %s\n", i+1, entry.Name)
		fmt.Printf("   Device:       %s via %s\n", entry.Device, entry.Connectivity)
		if entry.TopicID != "" {
			fmt.Printf("   Topic ID:     %s\n", entry.TopicID)
		}
		if entry.Description != "" {
			fmt.Printf("   Description:  %s\n", entry.Description)
		}
		fmt.Printf("   Created:      %s\n", entry.CreatedAt)
		if entry.LastOpened != "" {
			fmt.Printf("   Last opened:  %s\n", entry.LastOpened)
		}
		fmt.Println()
	}
	return nil
}

// topicCmd generates a single Topic ID without the interface.
var topicCmd = &cobra.Command{
	Use:   "topic",
	Short: "Generate a Topic ID",
	Long: `Generate one Topic ID and print it.

Uses the configured or discovered topicd service; if none is reachable,
a local time-based fallback identifier is printed instead.`,
	Example: `  # Use mDNS discovery
  hubdeck topic

  # Target a specific service
  hubdeck topic --service http://192.168.1.50:8240`,
	RunE: runTopic,
}

func runTopic(cmd *cobra.Command, args []string) error {
	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	baseURL := serviceURL
	if baseURL == "" {
		baseURL = registry.Preferences.ServiceURL
	}

	ctx := context.Background()

	if baseURL == "" && registry.Preferences.AutoDiscover {
		scanner := discovery.NewScanner()
		scanner.Timeout = time.Duration(registry.Preferences.DiscoverTimeout) * time.Second
		if svc, err := scanner.First(ctx); err == nil {
			// mDNS records can outlive the service; confirm it answers
			// before trusting it for generation.
			if err := topic.NewClient(svc.BaseURL()).Ping(ctx); err == nil {
				baseURL = svc.BaseURL()
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: discovered service failed health check: %v\n", err)
			}
		}
	}

	if baseURL == "" {
		fmt.Println(topic.FallbackID(time.Now()))
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: no topic service reachable, printed a local fallback id")
		return nil
	}

	client := topic.NewClient(baseURL)
	id, err := client.Generate(ctx)
	if err != nil {
		fmt.Println(topic.FallbackID(time.Now()))
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v, printed a local fallback id\n", err)
		return nil
	}

	fmt.Println(id)
	return nil
}

// scanCmd discovers topicd services on the network.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for topic services on the network",
	Long: `Scan for topicd instances using mDNS/DNS-SD discovery.

Displays every instance found with its address and metadata.`,
	Example: `  # Scan for 10 seconds (default)
  hubdeck scan

  # Quick 3-second scan
  hubdeck scan --timeout 3`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 10, "Scan timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for topic services (timeout: %ds)...\n\n", scanTimeout)

	scanner := discovery.NewScanner()
	scanner.Timeout = time.Duration(scanTimeout) * time.Second

	services, err := scanner.Browse(context.Background())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(services) == 0 {
		fmt.Println("No services found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure a hubdeck-topicd instance is running on this network")
		fmt.Println("  - Check that mDNS traffic is not blocked by a firewall")
		fmt.Println("  - Use --service to target a known address directly")
		return nil
	}

	fmt.Printf("Found %d service(s):\n\n", len(services))
	for i, svc := range services {
		fmt.Printf("%d. %s\n", i+1, svc.Instance)
		fmt.Printf("   Address:  %s\n", svc.BaseURL())
		if len(svc.Metadata) > 0 {
			fmt.Printf("   Metadata: %v\n", svc.Metadata)
		}
		fmt.Println()
	}
	return nil
}
