package main

import (
	"github.com/spf13/cobra"

	"researchbot"
	mcpadapter "researchbot/pkg/adapters/mcp"
	"researchbot/pkg/session"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server on stdio",
	Long:  `Exposes dialogue sessions as Model Context Protocol tools so agent hosts can drive the research bot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := createLogger(cmd, cfg)

		app, err := researchbot.New(cfg, researchbot.WithLogger(logger))
		if err != nil {
			return err
		}
		if err := app.Retrieval().EnsureReady(cmd.Context()); err != nil {
			logger.Warn("document index unavailable, falling back to model knowledge", "err", err)
		}

		srv := mcpadapter.NewServer(func() (*session.Controller, error) {
			return app.NewSession()
		}, researchbot.Version, mcpadapter.WithLogger(logger))

		logger.Info("mcp server listening on stdio")
		return srv.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
