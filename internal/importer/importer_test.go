package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/model"
)

const sampleCSV = "date,type,symbol,quantity,unit_price,amount,fee,currency,note\n" +
	"2025-01-15,buy,aapl,10,150.25,,1.5,USD,initial position\n" +
	"2025-02-01,deposit,,,,,0,EUR,monthly transfer\n"

func TestGenericParser_Parse(t *testing.T) {
	p := &GenericParser{}
	rows, err := p.Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	buy := rows[0]
	assert.Equal(t, model.TypeBuy, buy.Type)
	assert.Equal(t, "AAPL", buy.Symbol, "symbols are normalized to upper case")
	require.True(t, buy.Quantity.Valid)
	assert.Equal(t, "10", buy.Quantity.Decimal.String())
	assert.Equal(t, "150.25", buy.UnitPrice.Decimal.String())
	assert.False(t, buy.Amount.Valid, "blank stays cleared")
	assert.Equal(t, "USD", buy.Currency)
	assert.Equal(t, 2025, buy.Date.Year())

	dep := rows[1]
	assert.Equal(t, model.TypeDeposit, dep.Type)
	assert.Empty(t, dep.Symbol)
	assert.Equal(t, "EUR", dep.Currency)
}

func TestGenericParser_UnknownType(t *testing.T) {
	input := "date,type,symbol,quantity,unit_price,amount,fee,currency,note\n" +
		"2025-01-15,lottery,,,,,,,\n"

	_, err := (&GenericParser{}).Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestGenericParser_BadDecimal(t *testing.T) {
	input := "date,type,symbol,quantity,unit_price,amount,fee,currency,note\n" +
		"2025-01-15,buy,AAPL,ten,,,,USD,\n"

	_, err := (&GenericParser{}).Parse(strings.NewReader(input))
	require.Error(t, err)
}

func TestGenericParser_HeaderOnly(t *testing.T) {
	rows, err := (&GenericParser{}).Parse(strings.NewReader("date,type,symbol,quantity,unit_price,amount,fee,currency,note\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("generic"))
	assert.NotNil(t, r.Get("GENERIC"), "lookup is case-insensitive")
	assert.Nil(t, r.Get("unknown"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&GenericParser{})
	assert.Panics(t, func() { r.Register(&GenericParser{}) })
}

func TestParseFile_UnknownFormat(t *testing.T) {
	_, err := ParseFile(DefaultRegistry(), "nope", "ignored.csv")
	var ufe *UnknownFormatError
	require.ErrorAs(t, err, &ufe)
	assert.Equal(t, "nope", ufe.Format)
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "export-2025", BaseName("/tmp/foo/export-2025.csv"))
}
