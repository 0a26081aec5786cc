// Package id owns the draft-id namespace. Rows created locally carry an id
// with a reserved prefix until the remote ledger assigns a persisted id, so
// the id itself tells draft and persisted rows apart.
package id

import (
	"strings"

	"github.com/google/uuid"
)

// DraftPrefix marks locally-minted, never-persisted ids. The remote ledger
// never issues ids with this prefix.
const DraftPrefix = "draft-"

// NewDraft mints a fresh draft id, e.g. "draft-4f1c...".
func NewDraft() string {
	return DraftPrefix + uuid.NewString()
}

// IsDraft reports whether s is a locally-minted draft id.
func IsDraft(s string) bool {
	return strings.HasPrefix(s, DraftPrefix)
}
