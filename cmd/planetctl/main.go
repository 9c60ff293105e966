package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	serverAddr string
	authToken  string
	jsonOutput bool

	rootCmd = &cobra.Command{
		Use:           "planetctl",
		Short:         "Command line client for the PlanetPal relationship service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&serverAddr, "addr", envOr("PLANETPAL_ADDR", "localhost:7001"), "gRPC address of planet-svc")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", os.Getenv("PLANETPAL_TOKEN"), "session token (PLANETPAL_TOKEN)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print raw JSON responses")

	registerCommands(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
