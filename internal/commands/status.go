package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCommand() *cobra.Command {
	var workspaceDir string
	var accountID string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "List activities from the remote ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, workspaceDir, accountID)
		},
	}

	cmd.Flags().StringVar(&workspaceDir, "workspace", ".", "workspace directory")
	cmd.Flags().StringVar(&accountID, "account", "", "filter by account")

	return cmd
}

func runStatus(cmd *cobra.Command, workspaceDir, accountID string) error {
	w, err := openWorkspace(workspaceDir)
	if err != nil {
		return err
	}
	if err := w.loadActivities(cmd.Context(), accountID); err != nil {
		return err
	}

	rows := w.ledger.Activities()
	for _, a := range rows {
		amount := ""
		if a.Amount.Valid {
			amount = a.Amount.Decimal.String()
		}
		fmt.Printf("%s  %-12s %-8s %10s %s\n", a.Date.Format("2006-01-02"), a.Type, a.Symbol, amount, a.Currency)
	}
	fmt.Printf("%d activities\n", len(rows))
	return nil
}
