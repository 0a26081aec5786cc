// Package session implements the local editing engine for the activity
// table: a change-tracking ledger over the displayed rows, the field-update
// reducer, pre-flight validation, and the save driver that compiles local
// changes into one bulk mutation against the remote ledger.
package session

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/currency"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/id"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/model"
)

// AccountSource supplies the accounts an editing session can draw on.
type AccountSource interface {
	Get(id string) (model.Account, bool)
	All() []model.Account
}

// FieldEdit is one field change on one row, as produced by inline editing
// or a grid paste.
type FieldEdit struct {
	ActivityID string
	Field      Field
	Value      string
}

// ChangeSummary is a projection of the tracking sets for display.
type ChangeSummary struct {
	New     int
	Updated int
	Deleted int
}

// Total returns the number of rows affected by the next save.
func (s ChangeSummary) Total() int {
	return s.New + s.Updated + s.Deleted
}

// Ledger owns the local activity list and its two tracking sets for the
// duration of one editing session. All mutations go through its methods;
// no other component writes the list or the sets directly.
type Ledger struct {
	activities    []model.Activity
	dirty         map[string]struct{}
	pendingDelete map[string]struct{}
	selection     map[string]struct{}

	accounts  AccountSource
	resolver  *currency.Resolver
	submitter BulkSubmitter
	logger    zerolog.Logger
	state     SaveState
	now       func() time.Time
}

// NewLedger creates an empty editing session.
func NewLedger(accounts AccountSource, resolver *currency.Resolver, submitter BulkSubmitter, logger zerolog.Logger) *Ledger {
	return &Ledger{
		dirty:         make(map[string]struct{}),
		pendingDelete: make(map[string]struct{}),
		selection:     make(map[string]struct{}),
		accounts:      accounts,
		resolver:      resolver,
		submitter:     submitter,
		logger:        logger,
		state:         StateIdle,
		now:           time.Now,
	}
}

// Load replaces the session's rows with activities materialized from the
// remote ledger and clears all tracking state.
func (l *Ledger) Load(activities []model.Activity) {
	l.activities = make([]model.Activity, len(activities))
	copy(l.activities, activities)
	// Legacy cash tokens are normalized once at the boundary.
	for i := range l.activities {
		l.activities[i].AssetID = currency.NormalizeAssetID(l.activities[i].AssetID)
	}
	l.dirty = make(map[string]struct{})
	l.pendingDelete = make(map[string]struct{})
	l.selection = make(map[string]struct{})
}

// Activities returns the current rows in display order.
func (l *Ledger) Activities() []model.Activity {
	out := make([]model.Activity, len(l.activities))
	copy(out, l.activities)
	return out
}

// Get returns a row by id.
func (l *Ledger) Get(activityID string) (model.Activity, bool) {
	for _, a := range l.activities {
		if a.ID == activityID {
			return a, true
		}
	}
	return model.Activity{}, false
}

// MarkDirty adds ids to the dirty set. Idempotent; unknown ids are kept
// and silently dropped at compile time.
func (l *Ledger) MarkDirty(ids ...string) {
	for _, activityID := range ids {
		l.dirty[activityID] = struct{}{}
	}
}

// MarkForDeletion queues rows for removal. A draft row was never persisted,
// so it vanishes immediately with nothing to delete remotely; a persisted
// row moves from the dirty set to the pending-delete set, since a row
// queued for deletion is not also submitted as an update.
func (l *Ledger) MarkForDeletion(ids ...string) {
	for _, activityID := range ids {
		if id.IsDraft(activityID) {
			delete(l.dirty, activityID)
			delete(l.selection, activityID)
			l.remove(activityID)
			continue
		}
		l.pendingDelete[activityID] = struct{}{}
		delete(l.dirty, activityID)
	}
}

// Duplicate clones a source row into a fresh draft, prepended to the list
// and marked dirty. Returns the new draft, or false if the source is gone.
func (l *Ledger) Duplicate(sourceID string) (model.Activity, bool) {
	src, ok := l.Get(sourceID)
	if !ok {
		return model.Activity{}, false
	}

	clone := src
	clone.ID = id.NewDraft()
	clone.AssetID = currency.NormalizeAssetID(src.AssetID)
	clone.Date = l.now()
	clone.UpdatedAt = l.now()
	clone.Modified = false
	clone.NeedsReview = false

	l.activities = append([]model.Activity{clone}, l.activities...)
	l.MarkDirty(clone.ID)
	return clone, true
}

// Draft creates a blank row defaulted from the first active account (or the
// first account if none is active), prepended and marked dirty.
func (l *Ledger) Draft() model.Activity {
	acct := l.defaultAccount()

	a := model.Activity{
		ID:          id.NewDraft(),
		AccountID:   acct.ID,
		AccountName: acct.Name,
		Type:        model.TypeBuy,
		Currency:    acct.Currency,
		Date:        l.now(),
		UpdatedAt:   l.now(),
	}

	l.activities = append([]model.Activity{a}, l.activities...)
	l.MarkDirty(a.ID)
	return a
}

// AddDrafts inserts externally-built rows (e.g. an import) as drafts: each
// gets a fresh draft id, defaults for missing account and currency, and a
// dirty mark. Returns the inserted copies.
func (l *Ledger) AddDrafts(activities ...model.Activity) []model.Activity {
	added := make([]model.Activity, 0, len(activities))
	for _, a := range activities {
		a.ID = id.NewDraft()
		if a.AccountID == "" {
			acct := l.defaultAccount()
			a.AccountID = acct.ID
			a.AccountName = acct.Name
			if a.Currency == "" {
				a.Currency = acct.Currency
			}
		}
		a.AssetID = currency.NormalizeAssetID(a.AssetID)
		a.UpdatedAt = l.now()
		if a.Date.IsZero() {
			a.Date = l.now()
		}
		added = append(added, a)
	}

	l.activities = append(added, l.activities...)
	for _, a := range added {
		l.MarkDirty(a.ID)
	}
	return added
}

// BulkApply routes a batch of field edits through the reducer, once per
// field per row. Only rows with at least one actually-changed field, by
// value-aware equality rather than reference equality, are marked dirty —
// a paste that restates the current values stays clean.
func (l *Ledger) BulkApply(edits []FieldEdit) {
	byRow := make(map[string][]FieldEdit)
	for _, e := range edits {
		byRow[e.ActivityID] = append(byRow[e.ActivityID], e)
	}

	ctx := FieldContext{Accounts: l.accounts, Resolver: l.resolver, Now: l.now}

	for i, a := range l.activities {
		rowEdits, ok := byRow[a.ID]
		if !ok {
			continue
		}
		updated := a
		for _, e := range rowEdits {
			updated = ApplyField(updated, e.Field, e.Value, ctx)
		}
		if activitiesEqual(a, updated) {
			continue
		}
		l.activities[i] = updated
		l.MarkDirty(a.ID)
	}
}

// Summary derives the change counts purely from the tracking sets and the
// draft flags; nothing is stored redundantly.
func (l *Ledger) Summary() ChangeSummary {
	var s ChangeSummary
	for _, a := range l.activities {
		if _, ok := l.pendingDelete[a.ID]; ok {
			s.Deleted++
			continue
		}
		if _, ok := l.dirty[a.ID]; !ok {
			continue
		}
		if a.IsDraft() {
			s.New++
		} else {
			s.Updated++
		}
	}
	return s
}

// HasChanges reports whether the next save would do anything.
func (l *Ledger) HasChanges() bool {
	return len(l.dirty) > 0 || len(l.pendingDelete) > 0
}

// Reset clears both tracking sets and drops any rows still in draft state.
// Used on cancel.
func (l *Ledger) Reset() {
	kept := l.activities[:0]
	for _, a := range l.activities {
		if !a.IsDraft() {
			kept = append(kept, a)
		}
	}
	l.activities = kept
	l.dirty = make(map[string]struct{})
	l.pendingDelete = make(map[string]struct{})
	l.selection = make(map[string]struct{})
}

// Select adds rows to the selection state.
func (l *Ledger) Select(ids ...string) {
	for _, activityID := range ids {
		l.selection[activityID] = struct{}{}
	}
}

// Selected returns the currently selected row ids.
func (l *Ledger) Selected() []string {
	out := make([]string, 0, len(l.selection))
	for _, a := range l.activities {
		if _, ok := l.selection[a.ID]; ok {
			out = append(out, a.ID)
		}
	}
	return out
}

// ClearSelection drops all row selection.
func (l *Ledger) ClearSelection() {
	l.selection = make(map[string]struct{})
}

func (l *Ledger) defaultAccount() model.Account {
	if l.accounts == nil {
		return model.Account{}
	}
	all := l.accounts.All()
	for _, acct := range all {
		if acct.Active {
			return acct
		}
	}
	if len(all) > 0 {
		return all[0]
	}
	return model.Account{}
}

func (l *Ledger) remove(activityID string) {
	for i, a := range l.activities {
		if a.ID == activityID {
			l.activities = append(l.activities[:i], l.activities[i+1:]...)
			return
		}
	}
}

// activitiesEqual compares two versions of a row for change detection.
// Edit stamps are ignored; numeric fields treat a cleared value as equal
// to zero (change-detection only, persistence keeps the distinction);
// dates compare by instant.
func activitiesEqual(a, b model.Activity) bool {
	return a.ID == b.ID &&
		a.AccountID == b.AccountID &&
		a.AccountName == b.AccountName &&
		a.Type == b.Type &&
		a.Symbol == b.Symbol &&
		a.AssetID == b.AssetID &&
		a.Currency == b.Currency &&
		a.Note == b.Note &&
		a.NeedsReview == b.NeedsReview &&
		a.Date.Equal(b.Date) &&
		numsEqual(a.Quantity, b.Quantity) &&
		numsEqual(a.UnitPrice, b.UnitPrice) &&
		numsEqual(a.Amount, b.Amount) &&
		numsEqual(a.Fee, b.Fee) &&
		numsEqual(a.FxRate, b.FxRate)
}

func numsEqual(a, b decimal.NullDecimal) bool {
	av, bv := decimal.Zero, decimal.Zero
	if a.Valid {
		av = a.Decimal
	}
	if b.Valid {
		bv = b.Decimal
	}
	return av.Equal(bv)
}
