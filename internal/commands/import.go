package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/importer"
)

func newImportCommand() *cobra.Command {
	var workspaceDir string
	var format string
	var accountID string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a broker export as new activities and save them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, workspaceDir, args[0], format, accountID, dryRun)
		},
	}

	cmd.Flags().StringVar(&workspaceDir, "workspace", ".", "workspace directory")
	cmd.Flags().StringVar(&format, "format", "generic", "export format")
	cmd.Flags().StringVar(&accountID, "account", "", "account to assign imported rows to")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and validate without saving")

	return cmd
}

func runImport(cmd *cobra.Command, workspaceDir, file, format, accountID string, dryRun bool) error {
	w, err := openWorkspace(workspaceDir)
	if err != nil {
		return err
	}

	rows, err := importer.ParseFile(importer.DefaultRegistry(), format, file)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", file, err)
	}
	if len(rows) == 0 {
		fmt.Println("no rows to import")
		return nil
	}

	if accountID != "" {
		for i := range rows {
			rows[i].AccountID = accountID
		}
	}
	w.ledger.AddDrafts(rows...)

	summary := w.ledger.Summary()
	fmt.Printf("parsed %d rows (%d new)\n", len(rows), summary.New)

	if dryRun {
		w.ledger.Reset()
		return nil
	}

	result, err := w.save(cmd.Context(), "import", importer.BaseName(file))
	if err != nil {
		return err
	}
	return reportResult(result)
}
