package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/model"
)

// GenericParser parses the generic activity export layout:
// date,type,symbol,quantity,unit_price,amount,fee,currency,note
type GenericParser struct{}

const (
	genericDateFormat = "2006-01-02"
	genericNumFields  = 9
	genericColDate    = 0
	genericColType    = 1
	genericColSymbol  = 2
	genericColQty     = 3
	genericColPrice   = 4
	genericColAmount  = 5
	genericColFee     = 6
	genericColCur     = 7
	genericColNote    = 8
)

// Format returns the parser name.
func (p *GenericParser) Format() string { return "generic" }

// Parse reads a generic export CSV and returns activity rows.
func (p *GenericParser) Parse(r io.Reader) ([]model.Activity, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = genericNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading generic CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var rows []model.Activity
	for i, rec := range records[1:] {
		a, err := parseGenericRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, a)
	}
	return rows, nil
}

func parseGenericRow(rec []string) (model.Activity, error) {
	date, err := time.Parse(genericDateFormat, rec[genericColDate])
	if err != nil {
		return model.Activity{}, fmt.Errorf("parsing date %q: %w", rec[genericColDate], err)
	}

	kind := model.ActivityType(strings.ToLower(strings.TrimSpace(rec[genericColType])))
	if !kind.Valid() {
		return model.Activity{}, fmt.Errorf("unknown activity type %q", rec[genericColType])
	}

	a := model.Activity{
		Type:     kind,
		Symbol:   strings.ToUpper(strings.TrimSpace(rec[genericColSymbol])),
		Currency: strings.ToUpper(strings.TrimSpace(rec[genericColCur])),
		Note:     rec[genericColNote],
		Date:     date,
	}

	for _, f := range []struct {
		col int
		dst *decimal.NullDecimal
	}{
		{genericColQty, &a.Quantity},
		{genericColPrice, &a.UnitPrice},
		{genericColAmount, &a.Amount},
		{genericColFee, &a.Fee},
	} {
		raw := strings.TrimSpace(rec[f.col])
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return model.Activity{}, fmt.Errorf("parsing column %d %q: %w", f.col+1, raw, err)
		}
		*f.dst = decimal.NullDecimal{Decimal: d, Valid: true}
	}

	return a, nil
}
