package currency

import "strings"

// Synthetic cash-asset tokens. A cash activity has no tradable asset; its
// asset id is a token that embeds the currency directly. The canonical
// encoding is "CASH:EUR". The legacy "$CASH-EUR" token still appears in
// data written by older clients and is accepted on read, never emitted.
const (
	cashPrefix       = "CASH:"
	legacyCashPrefix = "$CASH-"
)

// CashAssetID returns the canonical cash-asset token for a currency,
// e.g. "CASH:EUR".
func CashAssetID(cur string) string {
	return cashPrefix + strings.ToUpper(cur)
}

// CashCurrency extracts the currency embedded in a cash-asset token.
// Recognizes both the canonical and the legacy encoding.
func CashCurrency(assetID string) (string, bool) {
	var cur string
	switch {
	case strings.HasPrefix(assetID, cashPrefix):
		cur = assetID[len(cashPrefix):]
	case strings.HasPrefix(assetID, legacyCashPrefix):
		cur = assetID[len(legacyCashPrefix):]
	default:
		return "", false
	}
	if cur == "" {
		return "", false
	}
	return strings.ToUpper(cur), true
}

// IsCashAsset reports whether assetID is a synthetic cash-asset token in
// either encoding.
func IsCashAsset(assetID string) bool {
	_, ok := CashCurrency(assetID)
	return ok
}

// NormalizeAssetID rewrites a legacy cash token to the canonical encoding.
// Non-cash asset ids pass through unchanged.
func NormalizeAssetID(assetID string) string {
	if strings.HasPrefix(assetID, legacyCashPrefix) {
		return CashAssetID(assetID[len(legacyCashPrefix):])
	}
	return assetID
}
