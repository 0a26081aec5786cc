package session

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/currency"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/model"
)

// mockAccounts implements AccountSource for testing.
type mockAccounts struct {
	accounts []model.Account
}

func (m *mockAccounts) Get(id string) (model.Account, bool) {
	for _, a := range m.accounts {
		if a.ID == id {
			return a, true
		}
	}
	return model.Account{}, false
}

func (m *mockAccounts) All() []model.Account {
	return m.accounts
}

func newMockAccounts(accts ...model.Account) *mockAccounts {
	return &mockAccounts{accounts: accts}
}

var testAccounts = newMockAccounts(
	model.Account{ID: "acc-closed", Name: "Old Broker", Currency: "USD", Active: false},
	model.Account{ID: "acc-1", Name: "Main Broker", Currency: "EUR", Active: true},
	model.Account{ID: "acc-2", Name: "US Broker", Currency: "USD", Active: true},
)

var testTime = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func testClock() time.Time { return testTime }

func newTestResolver() *currency.Resolver {
	r := currency.NewResolver(testAccounts, "USD")
	r.SetAssetCurrency("ast_vwrl", "EUR")
	r.SetSymbolCurrency("VWRL", "EUR")
	return r
}

func newTestContext() FieldContext {
	return FieldContext{Accounts: testAccounts, Resolver: newTestResolver(), Now: testClock}
}

func newTestLedger(submitter BulkSubmitter) *Ledger {
	l := NewLedger(testAccounts, newTestResolver(), submitter, zerolog.Nop())
	l.now = testClock
	return l
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func nd(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: dec(s), Valid: true}
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
