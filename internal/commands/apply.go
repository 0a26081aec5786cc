package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/session"
)

// Script is a YAML batch of edits applied against the activity table, the
// headless equivalent of one inline editing session.
type Script struct {
	Account    string       `yaml:"account,omitempty"`
	Edits      []ScriptEdit `yaml:"edits,omitempty"`
	Deletes    []string     `yaml:"deletes,omitempty"`
	Duplicates []string     `yaml:"duplicates,omitempty"`
}

// ScriptEdit is one field change on one row.
type ScriptEdit struct {
	Activity string `yaml:"activity"`
	Field    string `yaml:"field"`
	Value    string `yaml:"value"`
}

func newApplyCommand() *cobra.Command {
	var workspaceDir string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "apply <script.yaml>",
		Short: "Apply a batch edit script and save the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, workspaceDir, args[0], dryRun)
		},
	}

	cmd.Flags().StringVar(&workspaceDir, "workspace", ".", "workspace directory")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "apply and summarize without saving")

	return cmd
}

// ParseScript reads and decodes an edit script.
func ParseScript(data []byte) (*Script, error) {
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parsing edit script: %w", err)
	}
	return &script, nil
}

func runApply(cmd *cobra.Command, workspaceDir, scriptPath string, dryRun bool) error {
	data, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("reading edit script: %w", err)
	}
	script, err := ParseScript(data)
	if err != nil {
		return err
	}

	w, err := openWorkspace(workspaceDir)
	if err != nil {
		return err
	}
	if err := w.loadActivities(cmd.Context(), script.Account); err != nil {
		return err
	}

	for _, sourceID := range script.Duplicates {
		if _, ok := w.ledger.Duplicate(sourceID); !ok {
			return fmt.Errorf("duplicate: no activity %s", sourceID)
		}
	}

	edits := make([]session.FieldEdit, 0, len(script.Edits))
	for _, e := range script.Edits {
		edits = append(edits, session.FieldEdit{
			ActivityID: e.Activity,
			Field:      session.Field(e.Field),
			Value:      e.Value,
		})
	}
	w.ledger.BulkApply(edits)
	w.ledger.MarkForDeletion(script.Deletes...)

	summary := w.ledger.Summary()
	fmt.Printf("pending changes: %d new, %d updated, %d deleted\n", summary.New, summary.Updated, summary.Deleted)

	if dryRun {
		return nil
	}

	result, err := w.save(cmd.Context(), "apply", scriptPath)
	if err != nil {
		return err
	}
	return reportResult(result)
}
