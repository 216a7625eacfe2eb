package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "portfolio",
		Short: "Chinmay Jain's portfolio site",
		Long: `Serve the portfolio page or export it as a static bundle.

Running without a subcommand is the same as "portfolio serve".
Configuration comes from the environment and an optional .env file.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, "")
		},
	}

	root.AddCommand(newServeCmd(), newExportCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, port)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (overrides PORT)")
	return cmd
}

func runServe(cmd *cobra.Command, port string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	if port != "" {
		cfg.Port = port
	}
	return serve(cmd.Context(), cfg)
}

func newExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the page and its assets to a directory",
		Long: `Render index.html with the same templates and metadata the server uses
and copy the static assets next to it.

Examples:
  portfolio export --out dist
  SITE_URL=https://chinmay.dev portfolio export --out public`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			return export(cfg, out, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "dist", "output directory")
	return cmd
}
