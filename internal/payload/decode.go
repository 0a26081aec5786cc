package payload

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/currency"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/model"
)

// ToActivity materializes a persisted record from the remote ledger as a
// local row. Legacy cash tokens are normalized here, at the boundary.
func ToActivity(r RemoteActivity) (model.Activity, error) {
	a := model.Activity{
		ID:        r.ID,
		AccountID: r.AccountID,
		Type:      model.ActivityType(r.ActivityType),
		Symbol:    r.Symbol,
		AssetID:   currency.NormalizeAssetID(r.AssetID),
		Currency:  r.Currency,
		Note:      r.Note,
	}

	if r.Date != "" {
		ts, err := time.Parse(time.RFC3339, r.Date)
		if err != nil {
			return model.Activity{}, fmt.Errorf("parsing date %q: %w", r.Date, err)
		}
		a.Date = ts
	}

	for _, f := range []struct {
		src *string
		dst *decimal.NullDecimal
		col string
	}{
		{r.Quantity, &a.Quantity, "quantity"},
		{r.UnitPrice, &a.UnitPrice, "unitPrice"},
		{r.Amount, &a.Amount, "amount"},
		{r.Fee, &a.Fee, "fee"},
		{r.FxRate, &a.FxRate, "fxRate"},
	} {
		if f.src == nil {
			continue
		}
		d, err := decimal.NewFromString(*f.src)
		if err != nil {
			return model.Activity{}, fmt.Errorf("parsing %s %q: %w", f.col, *f.src, err)
		}
		*f.dst = decimal.NullDecimal{Decimal: d, Valid: true}
	}

	return a, nil
}

// ToActivities converts a listing response in bulk.
func ToActivities(records []RemoteActivity) ([]model.Activity, error) {
	out := make([]model.Activity, 0, len(records))
	for i, r := range records {
		a, err := ToActivity(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, a)
	}
	return out, nil
}
