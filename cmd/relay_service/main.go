package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "relay_service",
		Short: "Real-time presence and private messaging relay",
		Long: `relay_service keeps the online user list, routes private messages
and typing indicators between websocket clients and tracks unread counts in memory.`,
	}

	rootCmd.AddCommand(createServeCmd())
	rootCmd.AddCommand(createStatusCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
