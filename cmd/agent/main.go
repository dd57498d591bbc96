package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	srv "github.com/ydovzhyk/insight-agent/internal/server"
)

func main() {
	var root = &cobra.Command{Use: "insight-agent"}

	var cfgPath string
	var serveAddr string
	var serve = &cobra.Command{
		Use:   "serve",
		Short: "Run the chat agent HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if serveAddr == "" {
				serveAddr = os.Getenv("INSIGHT_HTTP_ADDR")
			}
			return srv.Run(cfgPath, serveAddr)
		},
	}
	serve.Flags().StringVar(&cfgPath, "config", "", "path to config file")
	serve.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")

	root.AddCommand(serve)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
