package main

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/scan-splitter/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Long: `serve exposes scan splitting, region extraction and inventory building as
MCP tools over JSON-RPC 2.0 on stdio. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.logger.Info().Str("version", Version).Str("commit", GitCommit).Msg("scan-splitter MCP server starting")

			srv := server.New(a.cfg, a.logger)
			srv.Version = Version
			return srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
