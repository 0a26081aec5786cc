package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/accounts"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/config"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/model"
)

func newInitCommand() *cobra.Command {
	var remoteURL string
	var baseCurrency string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ledgerdesk workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, remoteURL, baseCurrency)
		},
	}

	cmd.Flags().StringVar(&remoteURL, "remote", "", "remote ledger base URL (required)")
	_ = cmd.MarkFlagRequired("remote")
	cmd.Flags().StringVar(&baseCurrency, "base-currency", "USD", "application base currency")

	return cmd
}

func runInit(dir, remoteURL, baseCurrency string) error {
	for _, d := range []string{"logs", "import"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(remoteURL, baseCurrency)
	if err := config.Save(filepath.Join(dir, configFile), cfg); err != nil {
		return err
	}

	// Seed an empty accounts snapshot if none exists; a real snapshot is
	// exported from the remote ledger's settings screen.
	snapshotPath := filepath.Join(dir, cfg.Accounts.SnapshotPath)
	if _, err := os.Stat(snapshotPath); os.IsNotExist(err) {
		svc := accounts.NewService([]model.Account{})
		if err := svc.Save(snapshotPath); err != nil {
			return err
		}
	}

	fmt.Printf("initialized ledgerdesk workspace in %s\n", dir)
	return nil
}
