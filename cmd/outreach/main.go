package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"ContactOutreach/internal/app"
	"ContactOutreach/internal/config"
	"ContactOutreach/internal/logging"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "outreach",
		Short: "Contact outreach pipeline for canvassing follow-ups",
		Long: `outreach pulls canvassing interactions from the field-organizing API into
a CSV contact ledger, backfills phone numbers from a property-data export,
and drives personalized email/SMS follow-ups with at-most-once delivery
per contact.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to YAML config (defaults to $OUTREACH_CONFIG)")
	rootCmd.PersistentFlags().String("ledger", "", "Override the ledger CSV path")

	rootCmd.AddCommand(
		newVersionCmd(),
		newFetchCmd(),
		newMergeCmd(),
		newSendCmd(),
		newResetCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("outreach version %s\n", version)
		},
	}
}

func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch new interactions and append them to the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, logger, closer, err := buildApp(cmd)
			if err != nil {
				return err
			}
			defer closer.Close()

			stats, err := application.Ingest.Run(cmd.Context())
			if err != nil {
				logger.Error("fetch failed", "error", err)
				return err
			}
			fmt.Printf("Added %d new rows (%d fetched, %d already in ledger)\n",
				stats.Appended, stats.Fetched, stats.Known)
			return nil
		},
	}
}

func newMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge",
		Short: "Backfill phone numbers from the property-data export",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, logger, closer, err := buildApp(cmd)
			if err != nil {
				return err
			}
			defer closer.Close()

			stats, err := application.Merge.Run(cmd.Context())
			if err != nil {
				logger.Error("merge failed", "error", err)
				return err
			}
			fmt.Printf("Matched %d of %d rows against %d source addresses\n",
				stats.Matched, stats.TotalRows, stats.SourceAddresses)
			return nil
		},
	}
}

func newSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send outreach to every ledger row not yet contacted",
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			application, logger, closer, err := buildAppWith(cmd, func(cfg *config.Config) {
				if dryRun {
					cfg.Dispatch.DryRun = true
				}
			})
			if err != nil {
				return err
			}
			defer closer.Close()

			stats, err := application.Dispatch.Run(cmd.Context())
			if err != nil {
				logger.Error("send failed", "error", err)
				return err
			}
			fmt.Printf("Processed %d contacts: %d emails sent, %d sms sent, %d newly contacted\n",
				stats.Processed, stats.EmailsSent, stats.SMSSent, stats.MarkedContacted)
			return nil
		},
	}
	cmd.Flags().Bool("dry-run", false, "Validate and log without sending or touching the ledger")
	return cmd
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <interaction-id> [interaction-id...]",
		Short: "Flip contacted back to no for explicitly named rows",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, logger, closer, err := buildApp(cmd)
			if err != nil {
				return err
			}
			defer closer.Close()

			stats, err := application.Reset.Run(cmd.Context(), args)
			if err != nil {
				logger.Error("reset failed", "error", err)
				return err
			}
			fmt.Printf("Reset %d contacts (%d already no, %d not found)\n",
				stats.Reset, stats.AlreadyNo, len(stats.NotFound))
			return nil
		},
	}
}

func buildApp(cmd *cobra.Command) (*app.Application, *slog.Logger, io.Closer, error) {
	return buildAppWith(cmd, nil)
}

func buildAppWith(cmd *cobra.Command, mutate func(*config.Config)) (*app.Application, *slog.Logger, io.Closer, error) {
	configPath, _ := cmd.Flags().GetString("config")
	ledgerPath, _ := cmd.Flags().GetString("ledger")

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, nil, nil, err
	}
	if ledgerPath != "" {
		cfg.Ledger.Path = ledgerPath
	}
	if mutate != nil {
		mutate(&cfg)
	}

	logger, closer, err := logging.NewWithFile(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, nil, nil, err
	}

	return app.New(cfg, logger), logger, closer, nil
}
