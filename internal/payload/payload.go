// Package payload defines the bulk-mutation wire shapes exchanged with the
// remote ledger and the compiler that turns session state into one request.
// Every numeric field crosses the wire as a decimal string, never a float,
// so sub-cent quantities survive the round trip intact.
package payload

// ActivityFields holds the fields shared by creates and updates.
type ActivityFields struct {
	ID           string  `json:"id"`
	AccountID    string  `json:"accountId"`
	ActivityType string  `json:"activityType"`
	Date         string  `json:"date"`
	Quantity     *string `json:"quantity,omitempty"`
	UnitPrice    *string `json:"unitPrice,omitempty"`
	Amount       *string `json:"amount,omitempty"`
	Fee          *string `json:"fee,omitempty"`
	FxRate       *string `json:"fxRate,omitempty"`
	Currency     string  `json:"currency,omitempty"`
	Note         string  `json:"comment,omitempty"`
}

// CreatePayload is a new row. Creates identify assets by bare symbol plus
// an optional exchange qualifier — never by an opaque asset id, since only
// the remote ledger mints canonical asset identifiers.
type CreatePayload struct {
	ActivityFields
	Symbol   string `json:"symbol,omitempty"`
	Exchange string `json:"exchange,omitempty"`
}

// UpdatePayload is an edit to a persisted row. It may carry the opaque
// asset id directly, or a symbol and exchange to force re-resolution.
type UpdatePayload struct {
	ActivityFields
	AssetID  string `json:"assetId,omitempty"`
	Symbol   string `json:"symbol,omitempty"`
	Exchange string `json:"exchange,omitempty"`
}

// BulkRequest is the single bulk-mutation call batching creates, updates,
// and deletions together.
type BulkRequest struct {
	Creates   []CreatePayload `json:"creates"`
	Updates   []UpdatePayload `json:"updates"`
	DeleteIDs []string        `json:"deleteIds"`
}

// Empty reports whether the request would be a no-op.
func (r BulkRequest) Empty() bool {
	return len(r.Creates) == 0 && len(r.Updates) == 0 && len(r.DeleteIDs) == 0
}

// RemoteActivity is a persisted record as echoed back by the remote ledger.
type RemoteActivity struct {
	ActivityFields
	AssetID string `json:"assetId,omitempty"`
	Symbol  string `json:"symbol,omitempty"`
}

// IDMapping links a locally-minted draft id to its server-assigned id.
type IDMapping struct {
	TempID      string `json:"tempId"`
	PersistedID string `json:"persistedId"`
}

// SubmitError is a per-row failure reported inside an otherwise accepted
// batch response.
type SubmitError struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// BulkResponse is the remote ledger's answer to a BulkRequest.
type BulkResponse struct {
	Created         []RemoteActivity `json:"created"`
	Updated         []RemoteActivity `json:"updated"`
	Deleted         []string         `json:"deleted"`
	CreatedMappings []IDMapping      `json:"createdMappings"`
	Errors          []SubmitError    `json:"errors"`
}
