// Package currency resolves the effective currency of an activity through
// an ordered fallback cascade, and owns the synthetic cash-asset encoding.
package currency

import (
	"strings"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/model"
)

// AccountLookup returns an account by id.
type AccountLookup interface {
	Get(id string) (model.Account, bool)
}

// Resolver resolves an activity's effective currency. Resolution order:
//  1. the activity's own currency field
//  2. the currency implied by its asset identity (cash token or asset table)
//  3. the owning account's currency (fallback only)
//  4. the base currency (fallback only)
type Resolver struct {
	accounts AccountLookup
	base     string
	byAsset  map[string]string
	bySymbol map[string]string
}

// NewResolver creates a Resolver with empty lookup tables.
func NewResolver(accounts AccountLookup, base string) *Resolver {
	return &Resolver{
		accounts: accounts,
		base:     strings.ToUpper(base),
		byAsset:  make(map[string]string),
		bySymbol: make(map[string]string),
	}
}

// SetAssetCurrency records the quote currency of a known asset id.
func (r *Resolver) SetAssetCurrency(assetID, cur string) {
	r.byAsset[NormalizeAssetID(assetID)] = strings.ToUpper(cur)
}

// SetSymbolCurrency records the quote currency of a known symbol.
func (r *Resolver) SetSymbolCurrency(symbol, cur string) {
	r.bySymbol[strings.ToUpper(symbol)] = strings.ToUpper(cur)
}

// Base returns the configured base currency.
func (r *Resolver) Base() string {
	return r.base
}

// Resolve returns the currency governing the activity's numeric fields.
// Without fallback, only the activity's own currency and its asset identity
// are consulted; an empty result means "unresolved" and the remote ledger
// is free to derive a currency for an unseen asset itself.
func (r *Resolver) Resolve(a model.Activity, withFallback bool) (string, bool) {
	if a.Currency != "" {
		return strings.ToUpper(a.Currency), true
	}
	if cur, ok := r.AssetCurrency(a.AssetID); ok {
		return cur, true
	}
	if !withFallback {
		return "", false
	}
	if cur, ok := r.AccountCurrency(a.AccountID); ok {
		return cur, true
	}
	if r.base != "" {
		return r.base, true
	}
	return "", false
}

// AssetCurrency resolves a currency from an asset id: cash tokens embed the
// currency directly, anything else goes through the asset table.
func (r *Resolver) AssetCurrency(assetID string) (string, bool) {
	if assetID == "" {
		return "", false
	}
	if cur, ok := CashCurrency(assetID); ok {
		return cur, true
	}
	cur, ok := r.byAsset[NormalizeAssetID(assetID)]
	return cur, ok
}

// SymbolCurrency resolves a currency from a symbol via the symbol table,
// falling back to the account's currency, then the base currency.
func (r *Resolver) SymbolCurrency(symbol, accountID string) string {
	if cur, ok := r.bySymbol[strings.ToUpper(symbol)]; ok {
		return cur
	}
	if cur, ok := r.AccountCurrency(accountID); ok {
		return cur
	}
	return r.base
}

// AccountCurrency returns the currency of an account, if known.
func (r *Resolver) AccountCurrency(accountID string) (string, bool) {
	if r.accounts == nil || accountID == "" {
		return "", false
	}
	acct, ok := r.accounts.Get(accountID)
	if !ok || acct.Currency == "" {
		return "", false
	}
	return strings.ToUpper(acct.Currency), true
}
