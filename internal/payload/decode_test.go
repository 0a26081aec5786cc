package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/model"
)

func strPtr(s string) *string { return &s }

func TestToActivity(t *testing.T) {
	r := RemoteActivity{
		ActivityFields: ActivityFields{
			ID:           "act-1",
			AccountID:    "acc-eur",
			ActivityType: "buy",
			Date:         "2025-01-15T09:00:00Z",
			Quantity:     strPtr("10"),
			UnitPrice:    strPtr("150.25"),
			Fee:          strPtr("1.5"),
			Currency:     "EUR",
			Note:         "initial position",
		},
		AssetID: "ast_aapl",
		Symbol:  "AAPL",
	}

	a, err := ToActivity(r)
	require.NoError(t, err)

	assert.Equal(t, "act-1", a.ID)
	assert.False(t, a.IsDraft())
	assert.Equal(t, model.TypeBuy, a.Type)
	assert.True(t, a.Quantity.Decimal.Equal(dec("10")))
	assert.True(t, a.Fee.Decimal.Equal(dec("1.5")))
	assert.False(t, a.Amount.Valid, "absent field stays cleared")
	assert.Equal(t, 2025, a.Date.Year())
	assert.Equal(t, "initial position", a.Note)
}

func TestToActivity_NormalizesLegacyCashToken(t *testing.T) {
	r := RemoteActivity{
		ActivityFields: ActivityFields{ID: "act-1", ActivityType: "deposit"},
		AssetID:        "$CASH-EUR",
	}

	a, err := ToActivity(r)
	require.NoError(t, err)
	assert.Equal(t, "CASH:EUR", a.AssetID)
}

func TestToActivity_BadDecimal(t *testing.T) {
	r := RemoteActivity{
		ActivityFields: ActivityFields{ID: "act-1", ActivityType: "buy", Quantity: strPtr("ten")},
	}

	_, err := ToActivity(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantity")
}

func TestToActivities_RoundTripAfterCompile(t *testing.T) {
	// Compiling a dirty row and re-ingesting the echoed response yields a
	// persisted local row with the server's id.
	local := persistedBuy("act-1")
	req := Compile([]model.Activity{local}, set("act-1"), set(), newResolver())
	require.Len(t, req.Updates, 1)

	echoed := RemoteActivity{
		ActivityFields: req.Updates[0].ActivityFields,
		AssetID:        req.Updates[0].AssetID,
	}

	rows, err := ToActivities([]RemoteActivity{echoed})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "act-1", rows[0].ID)
	assert.False(t, rows[0].IsDraft())
	assert.True(t, rows[0].Quantity.Decimal.Equal(local.Quantity.Decimal))
	assert.True(t, rows[0].Date.Equal(local.Date))
}
