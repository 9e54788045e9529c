package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
)

const version = "v1.0.0"

var configFile string

var rootCmd = &cobra.Command{
	Use:   "healthcoach",
	Short: "Personalized health coach service",
	Long: `healthcoach generates personalized health recommendations from
user activity logs using a three-stage agent pipeline: analyze the
user's data, retrieve supporting knowledge, and rank candidate
recommendations by relevance.

Run 'healthcoach serve' to start the HTTP API, or
'healthcoach recommend' for a one-shot recommendation run.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with signal handling.
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"Config file path (default $HEALTHCOACH_HOME/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recommendCmd)
}

// resolveConfigPath returns the config file to load. An empty result
// means no file exists and defaults apply.
func resolveConfigPath() string {
	if configFile != "" {
		return configFile
	}

	home := os.Getenv("HEALTHCOACH_HOME")
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		home = filepath.Join(userHome, ".healthcoach")
	}
	return filepath.Join(home, "config.yaml")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("healthcoach " + version)
	},
}
