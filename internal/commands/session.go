package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/accounts"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/auditlog"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/config"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/currency"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/payload"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/remote"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/session"
)

// configFile is the workspace config file name.
const configFile = "ledgerdesk.yaml"

// workspace bundles everything a command needs to run an editing session.
type workspace struct {
	root     string
	cfg      *config.Config
	accounts *accounts.Service
	client   *remote.Client
	ledger   *session.Ledger
	logger   zerolog.Logger
}

// openWorkspace loads config and accounts from a workspace directory and
// wires up a session against the configured remote ledger.
func openWorkspace(root string) (*workspace, error) {
	cfg, err := config.Load(filepath.Join(root, configFile))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	accts, err := accounts.Load(filepath.Join(root, cfg.Accounts.SnapshotPath))
	if err != nil {
		return nil, fmt.Errorf("loading accounts: %w", err)
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	timeout := time.Duration(cfg.Remote.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := remote.NewClient(cfg.Remote.BaseURL, &http.Client{Timeout: timeout}, logger)

	resolver := currency.NewResolver(accts, cfg.Currency.Base)
	ledger := session.NewLedger(accts, resolver, client, logger)

	return &workspace{
		root:     root,
		cfg:      cfg,
		accounts: accts,
		client:   client,
		ledger:   ledger,
		logger:   logger,
	}, nil
}

// loadActivities materializes the session from the remote ledger.
func (w *workspace) loadActivities(ctx context.Context, accountID string) error {
	records, err := w.client.ListActivities(ctx, accountID)
	if err != nil {
		return err
	}
	rows, err := payload.ToActivities(records)
	if err != nil {
		return fmt.Errorf("materializing activities: %w", err)
	}
	w.ledger.Load(rows)
	return nil
}

// save drives one commit and appends the outcome to the audit log.
func (w *workspace) save(ctx context.Context, action string, details string) (*session.SaveResult, error) {
	result, err := w.ledger.Save(ctx)

	if w.cfg.Audit.Enabled && result != nil {
		entry := auditlog.Entry{
			Timestamp: time.Now(),
			Action:    action,
			Outcome:   string(result.Status),
			Created:   result.Created,
			Updated:   result.Updated,
			Deleted:   result.Deleted,
			Details:   details,
		}
		if logErr := auditlog.Append(filepath.Join(w.root, w.cfg.Audit.Dir), []auditlog.Entry{entry}); logErr != nil {
			w.logger.Warn().Err(logErr).Msg("writing audit log")
		}
	}

	return result, err
}

// reportResult prints a save outcome the way a user reads it.
func reportResult(result *session.SaveResult) error {
	switch result.Status {
	case session.SaveStatusNoChanges:
		fmt.Println("nothing to save")
	case session.SaveStatusSaved:
		fmt.Printf("saved: %d created, %d updated, %d deleted\n", result.Created, result.Updated, result.Deleted)
		if len(result.Response.Errors) > 0 {
			fmt.Printf("warning: %d rows reported errors server-side\n", len(result.Response.Errors))
		}
	case session.SaveStatusValidationFailed:
		max := len(result.ValidationErrors)
		if max > 5 {
			max = 5
		}
		for _, verr := range result.ValidationErrors[:max] {
			fmt.Printf("invalid: %s\n", verr.Error())
		}
		return fmt.Errorf("validation failed with %d errors", len(result.ValidationErrors))
	}
	return nil
}
