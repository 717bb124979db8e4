package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cortex/internal/adapters/catalog"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("cortex exited with error")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	serve := newServeCmd()

	cmd := &cobra.Command{
		Use:           "cortex",
		Short:         "Cortex is a multi-purpose Telegram chat bot",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig(cfgFile)
		},
		RunE: serve.RunE,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./config.toml)")

	cmd.AddCommand(serve, newCommandsCmd(), newVersionCmd())

	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Connect to Telegram and answer messages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "Print the command catalogue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := catalog.Default()
			if err != nil {
				return err
			}

			for _, e := range c.Entries() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", e.Render()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version)
			return err
		},
	}
}
