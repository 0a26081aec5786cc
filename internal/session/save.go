package session

import (
	"context"
	"fmt"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/payload"
)

// SaveState tracks where the driver is in the save pipeline.
type SaveState string

const (
	StateIdle        SaveState = "idle"
	StateValidating  SaveState = "validating"
	StateCompiling   SaveState = "compiling"
	StateSubmitting  SaveState = "submitting"
	StateReconciling SaveState = "reconciling"
)

// SaveStatus is the outcome of one save attempt.
type SaveStatus string

const (
	SaveStatusSaved            SaveStatus = "saved"
	SaveStatusNoChanges        SaveStatus = "no-changes"
	SaveStatusValidationFailed SaveStatus = "validation-failed"
	SaveStatusSubmitFailed     SaveStatus = "submit-failed"
)

// SaveResult reports what a save attempt did.
type SaveResult struct {
	Status           SaveStatus
	ValidationErrors []ValidationError
	Created          int
	Updated          int
	Deleted          int
	Response         *payload.BulkResponse
}

// BulkSubmitter sends one compiled bulk mutation to the remote ledger.
type BulkSubmitter interface {
	SubmitBulk(ctx context.Context, req payload.BulkRequest) (*payload.BulkResponse, error)
}

// State returns the driver's current pipeline state. Saving while a save is
// in flight is an orchestration error; the caller is expected to debounce.
func (l *Ledger) State() SaveState {
	return l.state
}

// Save drives one commit: validate, compile, submit, reconcile. Validation
// failure and transport failure both leave the list and the tracking sets
// exactly as they were, so a retry recompiles an identical payload from
// current state. There is no automatic retry and no partial commit.
func (l *Ledger) Save(ctx context.Context) (*SaveResult, error) {
	defer func() { l.state = StateIdle }()

	if !l.HasChanges() {
		return &SaveResult{Status: SaveStatusNoChanges}, nil
	}

	l.state = StateValidating
	if verrs := Validate(l.activities, l.dirty); len(verrs) > 0 {
		l.logger.Warn().Int("errors", len(verrs)).Msg("save blocked by validation")
		return &SaveResult{Status: SaveStatusValidationFailed, ValidationErrors: verrs}, nil
	}

	l.state = StateCompiling
	req := payload.Compile(l.activities, l.dirty, l.pendingDelete, l.resolver)
	if req.Empty() {
		// Every tracked id was stale.
		l.dirty = make(map[string]struct{})
		l.pendingDelete = make(map[string]struct{})
		return &SaveResult{Status: SaveStatusNoChanges}, nil
	}

	l.state = StateSubmitting
	l.logger.Info().
		Int("creates", len(req.Creates)).
		Int("updates", len(req.Updates)).
		Int("deletes", len(req.DeleteIDs)).
		Msg("submitting bulk mutation")

	resp, err := l.submitter.SubmitBulk(ctx, req)
	if err != nil {
		l.logger.Error().Err(err).Msg("bulk mutation failed")
		return &SaveResult{Status: SaveStatusSubmitFailed}, fmt.Errorf("submitting bulk mutation: %w", err)
	}

	l.state = StateReconciling
	l.reconcile(resp)

	return &SaveResult{
		Status:   SaveStatusSaved,
		Created:  len(req.Creates),
		Updated:  len(req.Updates),
		Deleted:  len(req.DeleteIDs),
		Response: resp,
	}, nil
}

// reconcile applies a confirmed bulk response: server-assigned ids replace
// draft ids, deleted rows leave the list, and all tracking state clears.
// A draft with no mapping in the response stays a draft — the row may have
// failed server-side while its siblings succeeded.
func (l *Ledger) reconcile(resp *payload.BulkResponse) {
	mapped := make(map[string]string, len(resp.CreatedMappings))
	for _, m := range resp.CreatedMappings {
		mapped[m.TempID] = m.PersistedID
	}

	kept := l.activities[:0]
	for _, a := range l.activities {
		if _, ok := l.pendingDelete[a.ID]; ok {
			continue
		}
		if persisted, ok := mapped[a.ID]; ok {
			a.ID = persisted
			a.Modified = false
		}
		kept = append(kept, a)
	}
	l.activities = kept

	if len(resp.Errors) > 0 {
		l.logger.Warn().Int("rows", len(resp.Errors)).Msg("batch accepted with per-row errors")
	}

	l.dirty = make(map[string]struct{})
	l.pendingDelete = make(map[string]struct{})
	l.selection = make(map[string]struct{})
}
