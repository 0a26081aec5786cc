package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/id"
)

// ActivityType classifies activities in the ledger.
type ActivityType string

const (
	TypeBuy         ActivityType = "buy"
	TypeSell        ActivityType = "sell"
	TypeDeposit     ActivityType = "deposit"
	TypeWithdrawal  ActivityType = "withdrawal"
	TypeDividend    ActivityType = "dividend"
	TypeInterest    ActivityType = "interest"
	TypeFee         ActivityType = "fee"
	TypeTax         ActivityType = "tax"
	TypeSplit       ActivityType = "split"
	TypeTransferIn  ActivityType = "transfer-in"
	TypeTransferOut ActivityType = "transfer-out"
	TypeAdjustment  ActivityType = "adjustment"
)

// AllActivityTypes lists every valid activity type.
var AllActivityTypes = []ActivityType{
	TypeBuy, TypeSell, TypeDeposit, TypeWithdrawal, TypeDividend,
	TypeInterest, TypeFee, TypeTax, TypeSplit, TypeTransferIn,
	TypeTransferOut, TypeAdjustment,
}

// Valid reports whether t is a known activity type.
func (t ActivityType) Valid() bool {
	for _, known := range AllActivityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsCash reports whether t is a pure-cash kind: no tradable asset, the
// activity's "asset" is a synthetic cash placeholder keyed by currency.
func (t ActivityType) IsCash() bool {
	switch t {
	case TypeDeposit, TypeWithdrawal, TypeFee, TypeInterest, TypeTax:
		return true
	}
	return false
}

// IsCashAmount reports whether t treats unit price as the cash amount.
// Covers the pure-cash kinds plus dividend income.
func (t ActivityType) IsCashAmount() bool {
	return t.IsCash() || t == TypeDividend
}

// Activity is one editable row in the activity table. Numeric fields use
// NullDecimal so a cleared field stays distinguishable from zero.
type Activity struct {
	ID          string
	AccountID   string
	AccountName string
	Type        ActivityType
	Symbol      string
	AssetID     string
	Quantity    decimal.NullDecimal
	UnitPrice   decimal.NullDecimal
	Amount      decimal.NullDecimal
	Fee         decimal.NullDecimal
	FxRate      decimal.NullDecimal
	Currency    string
	Note        string
	Date        time.Time
	NeedsReview bool
	Modified    bool
	UpdatedAt   time.Time
}

// IsDraft reports whether the activity was created locally and has never
// been persisted by the remote ledger.
func (a Activity) IsDraft() bool {
	return id.IsDraft(a.ID)
}

// Account is a row from the account service: the owning container for
// activities, carrying the account's default currency.
type Account struct {
	ID       string
	Name     string
	Currency string
	Active   bool
}
