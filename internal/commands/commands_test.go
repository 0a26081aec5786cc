package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/accounts"
	"github.com/ledgerdesk-dev/ledgerdesk/internal/config"
)

func TestParseScript(t *testing.T) {
	data := []byte(`
account: acc-1
edits:
  - activity: act-1
    field: quantity
    value: "10"
  - activity: act-1
    field: note
    value: rebalance
deletes:
  - act-2
duplicates:
  - act-3
`)

	script, err := ParseScript(data)
	require.NoError(t, err)

	assert.Equal(t, "acc-1", script.Account)
	require.Len(t, script.Edits, 2)
	assert.Equal(t, "act-1", script.Edits[0].Activity)
	assert.Equal(t, "quantity", script.Edits[0].Field)
	assert.Equal(t, "10", script.Edits[0].Value)
	assert.Equal(t, []string{"act-2"}, script.Deletes)
	assert.Equal(t, []string{"act-3"}, script.Duplicates)
}

func TestParseScript_Invalid(t *testing.T) {
	_, err := ParseScript([]byte("edits: [not: a list"))
	require.Error(t, err)
}

func TestRunInit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir, "https://ledger.example.com", "EUR"))

	cfg, err := config.Load(filepath.Join(dir, configFile))
	require.NoError(t, err)
	assert.Equal(t, "https://ledger.example.com", cfg.Remote.BaseURL)
	assert.Equal(t, "EUR", cfg.Currency.Base)

	for _, d := range []string{"logs", "import"} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir())
	}

	svc, err := accounts.Load(filepath.Join(dir, cfg.Accounts.SnapshotPath))
	require.NoError(t, err)
	assert.Empty(t, svc.All(), "snapshot starts empty")
}

func TestRunInit_KeepsExistingSnapshot(t *testing.T) {
	dir := t.TempDir()
	snapshot := filepath.Join(dir, "accounts.csv")
	require.NoError(t, os.WriteFile(snapshot, []byte("account_id,name,currency,active\nacc-1,Main,EUR,true\n"), 0o644))

	require.NoError(t, runInit(dir, "https://ledger.example.com", "USD"))

	svc, err := accounts.Load(snapshot)
	require.NoError(t, err)
	assert.Len(t, svc.All(), 1, "existing snapshot is not overwritten")
}

func TestOpenWorkspace_MissingConfig(t *testing.T) {
	_, err := openWorkspace(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}
