package session

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/currency"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/model"
)

// Field names one editable column of the activity table.
type Field string

const (
	FieldAccount   Field = "account"
	FieldType      Field = "type"
	FieldSymbol    Field = "symbol"
	FieldQuantity  Field = "quantity"
	FieldUnitPrice Field = "unit-price"
	FieldAmount    Field = "amount"
	FieldFee       Field = "fee"
	FieldFxRate    Field = "fx-rate"
	FieldCurrency  Field = "currency"
	FieldNote      Field = "note"
	FieldDate      Field = "date"
)

// FieldContext supplies the lookups a field edit may need.
type FieldContext struct {
	Accounts currency.AccountLookup
	Resolver *currency.Resolver
	Now      func() time.Time
}

func (ctx FieldContext) now() time.Time {
	if ctx.Now != nil {
		return ctx.Now()
	}
	return time.Now()
}

// ApplyField applies a single field edit to an activity and returns the
// updated copy. The input is never mutated. Unknown fields are no-ops, and
// a numeric value that fails to parse leaves the previous value untouched.
// A blank numeric input clears the field rather than coercing it to zero.
func ApplyField(a model.Activity, field Field, value string, ctx FieldContext) model.Activity {
	switch field {
	case FieldQuantity:
		n, ok := parseNullDecimal(value)
		if !ok {
			return a
		}
		a.Quantity = n
	case FieldUnitPrice:
		n, ok := parseNullDecimal(value)
		if !ok {
			return a
		}
		a.UnitPrice = n
		// Cash and income kinds treat unit price as the cash amount.
		if a.Type.IsCashAmount() {
			a.Amount = n
		}
	case FieldAmount:
		n, ok := parseNullDecimal(value)
		if !ok {
			return a
		}
		a.Amount = n
	case FieldFee:
		n, ok := parseNullDecimal(value)
		if !ok {
			return a
		}
		a.Fee = n
	case FieldFxRate:
		n, ok := parseNullDecimal(value)
		if !ok {
			return a
		}
		a.FxRate = n
	case FieldType:
		t := model.ActivityType(value)
		if !t.Valid() {
			return a
		}
		a.Type = t
		a = applyTypeDefaults(a, ctx)
	case FieldAccount:
		a.AccountID = value
		a.AccountName = ""
		if ctx.Accounts != nil {
			if acct, ok := ctx.Accounts.Get(value); ok {
				a.AccountName = acct.Name
			}
		}
		// Re-run the cascade: the asset's own currency takes priority over
		// the new account's currency.
		if ctx.Resolver != nil {
			if cur, ok := ctx.Resolver.AssetCurrency(a.AssetID); ok {
				a.Currency = cur
			} else if cur, ok := ctx.Resolver.AccountCurrency(value); ok {
				a.Currency = cur
			} else {
				a.Currency = ctx.Resolver.Base()
			}
		}
	case FieldSymbol:
		sym := strings.ToUpper(strings.TrimSpace(value))
		if sym != a.Symbol {
			// A changed symbol invalidates any previously resolved asset id;
			// the remote ledger re-resolves from the symbol on save.
			a.AssetID = ""
		}
		a.Symbol = sym
		if ctx.Resolver != nil && sym != "" {
			a.Currency = ctx.Resolver.SymbolCurrency(sym, a.AccountID)
		}
	case FieldCurrency:
		a.Currency = strings.ToUpper(strings.TrimSpace(value))
	case FieldNote:
		a.Note = value
	case FieldDate:
		ts, ok := parseDate(value)
		if !ok {
			return a
		}
		a.Date = ts
	default:
		return a
	}

	a.Modified = true
	a.UpdatedAt = ctx.now()
	return a
}

// applyTypeDefaults re-derives the fields implied by an activity kind
// change: cash kinds get a synthetic cash asset and zeroed quantity/price,
// and split rows zero quantity/price since the ratio lives elsewhere.
func applyTypeDefaults(a model.Activity, ctx FieldContext) model.Activity {
	if a.Type.IsCash() {
		cur := a.Currency
		if ctx.Resolver != nil {
			if resolved, ok := ctx.Resolver.Resolve(a, true); ok {
				cur = resolved
			}
		}
		a.AssetID = currency.CashAssetID(cur)
		a.Symbol = ""
		a.Currency = strings.ToUpper(cur)
		a.Quantity = zeroDecimal()
		a.UnitPrice = zeroDecimal()
	}
	if a.Type == model.TypeSplit {
		a.Quantity = zeroDecimal()
		a.UnitPrice = zeroDecimal()
	}
	return a
}

// parseNullDecimal parses a numeric input from the edit boundary. A blank
// input means "cleared". The second return is false on a parse failure.
func parseNullDecimal(value string) (decimal.NullDecimal, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return decimal.NullDecimal{}, true
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.NullDecimal{}, false
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, true
}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, strings.TrimSpace(value)); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func zeroDecimal() decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.Zero, Valid: true}
}
