// Package cmd wires the command line surface. The bare binary opens the
// interactive storefront; subcommands cover quick lookups without entering
// the full-screen UI.
package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"showtime-tix-cli/config"
	"showtime-tix-cli/service"
	"showtime-tix-cli/tui"
)

var (
	version = "dev"
	commit  = "none"
)

// SetVersion receives the build metadata stamped into main via ldflags.
func SetVersion(v string, c string) {
	if v != "" {
		version = v
	}
	if c != "" {
		commit = c
	}
}

var rootCmd = &cobra.Command{
	Use:   "showtime-tix",
	Short: "Movie tickets from your terminal",
	Long:  `Browse movies, pick seats, and book tickets without leaving the terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, err := bootstrap()
		if err != nil {
			return err
		}
		p := tea.NewProgram(tui.New(cfg, client), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of showtime-tix",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("showtime-tix %s", version)
		if commit != "none" && commit != "" {
			fmt.Printf(" (%s)", commit)
		}
		fmt.Println()
	},
}

// bootstrap loads configuration and builds the shared API client.
func bootstrap() (config.Config, *service.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, service.NewClient(nil, cfg.APIBaseURL), nil
}

func Execute() {
	rootCmd.AddCommand(showsCmd, bookingsCmd, versionCmd)
	showsCmd.Flags().Int64("movie", 0, "movie id to list shows for (prompted when omitted)")
	showsCmd.Flags().String("date", "", "show date as YYYY-MM-DD")
	showsCmd.Flags().String("city", "", "only theaters in this city")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
