package payload

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/currency"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/model"
)

// Compile converts session state into a bulk request. Only dirty rows are
// considered; ids in either tracking set with no matching row are silently
// ignored. Rows queued for deletion are emitted as delete ids only, never
// as updates.
//
// Currency is resolved strictly first: a cash kind has a deterministic
// currency and falls back account → base, while a non-cash kind is left
// unresolved so the remote ledger can derive an FX pair for an unseen
// asset on its own.
func Compile(activities []model.Activity, dirty, pendingDelete map[string]struct{}, resolver *currency.Resolver) BulkRequest {
	var req BulkRequest

	for _, a := range activities {
		if _, ok := pendingDelete[a.ID]; ok {
			req.DeleteIDs = append(req.DeleteIDs, a.ID)
			continue
		}
		if _, ok := dirty[a.ID]; !ok {
			continue
		}

		fields := compileFields(a, resolver)

		if a.IsDraft() {
			create := CreatePayload{ActivityFields: fields}
			if !a.Type.IsCash() {
				create.Symbol, create.Exchange = SplitSymbol(a.Symbol)
			}
			req.Creates = append(req.Creates, create)
			continue
		}

		update := UpdatePayload{ActivityFields: fields}
		if !a.Type.IsCash() {
			if a.AssetID != "" {
				update.AssetID = currency.NormalizeAssetID(a.AssetID)
			} else {
				update.Symbol, update.Exchange = SplitSymbol(a.Symbol)
			}
		}
		req.Updates = append(req.Updates, update)
	}

	return req
}

func compileFields(a model.Activity, resolver *currency.Resolver) ActivityFields {
	fields := ActivityFields{
		ID:           a.ID,
		AccountID:    a.AccountID,
		ActivityType: string(a.Type),
		Date:         a.Date.UTC().Format(time.RFC3339),
		Amount:       decimalString(a.Amount),
		Fee:          decimalString(a.Fee),
		FxRate:       decimalString(a.FxRate),
		Note:         a.Note,
	}

	// Split rows carry their ratio in a dedicated field; quantity and unit
	// price are stripped entirely.
	if a.Type != model.TypeSplit {
		fields.Quantity = decimalString(a.Quantity)
		fields.UnitPrice = decimalString(a.UnitPrice)
	}

	if cur, ok := resolver.Resolve(a, false); ok {
		fields.Currency = cur
	} else if a.Type.IsCash() {
		if cur, ok := resolver.AccountCurrency(a.AccountID); ok {
			fields.Currency = cur
		} else {
			fields.Currency = resolver.Base()
		}
	}

	return fields
}

// SplitSymbol splits "VWRL.AS" into a bare symbol and its exchange
// qualifier. Symbols without a qualifier pass through with an empty
// exchange.
func SplitSymbol(symbol string) (sym, exchange string) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if i := strings.LastIndex(symbol, "."); i > 0 && i < len(symbol)-1 {
		return symbol[:i], symbol[i+1:]
	}
	return symbol, ""
}

// decimalString encodes a nullable decimal for the wire; a cleared field
// is omitted, not sent as zero.
func decimalString(n decimal.NullDecimal) *string {
	if !n.Valid {
		return nil
	}
	s := n.Decimal.String()
	return &s
}
