package session

import (
	"fmt"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/model"
)

// ValidationError describes a single rule violation on a dirty row.
type ValidationError struct {
	ActivityID string
	Field      Field
	Message    string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.ActivityID, e.Field, e.Message)
}

// Validate checks every dirty row against the pre-flight rules. It is a
// purely local gate: no state is mutated and the remote ledger is never
// consulted. A non-empty result blocks payload compilation.
func Validate(activities []model.Activity, dirty map[string]struct{}) []ValidationError {
	var errs []ValidationError

	for _, a := range activities {
		if _, ok := dirty[a.ID]; !ok {
			continue
		}

		if a.AccountID == "" {
			errs = append(errs, ValidationError{
				ActivityID: a.ID,
				Field:      FieldAccount,
				Message:    "account is required",
			})
		}

		if a.Type == "" {
			errs = append(errs, ValidationError{
				ActivityID: a.ID,
				Field:      FieldType,
				Message:    "activity type is required",
			})
		} else if !a.Type.Valid() {
			errs = append(errs, ValidationError{
				ActivityID: a.ID,
				Field:      FieldType,
				Message:    fmt.Sprintf("unknown activity type %q", a.Type),
			})
		}

		if a.Date.IsZero() {
			errs = append(errs, ValidationError{
				ActivityID: a.ID,
				Field:      FieldDate,
				Message:    "date is required",
			})
		}

		// Cash kinds have no tradable asset; everything else needs a
		// resolvable one.
		if a.Type != "" && a.Type.Valid() && !a.Type.IsCash() {
			if a.Symbol == "" && a.AssetID == "" {
				errs = append(errs, ValidationError{
					ActivityID: a.ID,
					Field:      FieldSymbol,
					Message:    "symbol is required for non-cash activities",
				})
			}
		}

		if a.Fee.Valid && a.Fee.Decimal.IsNegative() {
			errs = append(errs, ValidationError{
				ActivityID: a.ID,
				Field:      FieldFee,
				Message:    "fee cannot be negative",
			})
		}

		if a.FxRate.Valid && a.FxRate.Decimal.IsNegative() {
			errs = append(errs, ValidationError{
				ActivityID: a.ID,
				Field:      FieldFxRate,
				Message:    "exchange rate cannot be negative",
			})
		}
	}

	return errs
}
