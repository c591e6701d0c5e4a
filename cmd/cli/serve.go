package main

import (
	"github.com/limaJavier/coursetables/internal/server"
	"github.com/spf13/cobra"
)

func serveCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the timetable API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				cfg.Server.Port = port
			}
			return server.New(cfg, log).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listening port (defaults to config)")
	return cmd
}
