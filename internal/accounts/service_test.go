package accounts

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/model"
)

func testAccounts() []model.Account {
	return []model.Account{
		{ID: "acc-closed", Name: "Old Broker", Currency: "USD", Active: false},
		{ID: "acc-1", Name: "Main Broker", Currency: "EUR", Active: true},
		{ID: "acc-2", Name: "US Broker", Currency: "USD", Active: true},
	}
}

func TestGet(t *testing.T) {
	svc := NewService(testAccounts())

	a, ok := svc.Get("acc-1")
	require.True(t, ok)
	assert.Equal(t, "Main Broker", a.Name)

	_, ok = svc.Get("acc-gone")
	assert.False(t, ok)
}

func TestExists(t *testing.T) {
	svc := NewService(testAccounts())
	assert.True(t, svc.Exists("acc-2"))
	assert.False(t, svc.Exists("acc-gone"))
}

func TestFirstActive(t *testing.T) {
	svc := NewService(testAccounts())
	a, ok := svc.FirstActive()
	require.True(t, ok)
	assert.Equal(t, "acc-1", a.ID, "skips inactive accounts")
}

func TestFirstActive_NoneActive(t *testing.T) {
	svc := NewService([]model.Account{{ID: "acc-closed", Active: false}})
	a, ok := svc.FirstActive()
	require.True(t, ok)
	assert.Equal(t, "acc-closed", a.ID, "falls back to the first account")
}

func TestFirstActive_Empty(t *testing.T) {
	svc := NewService(nil)
	_, ok := svc.FirstActive()
	assert.False(t, ok)
}

func TestByCurrency(t *testing.T) {
	svc := NewService(testAccounts())
	usd := svc.ByCurrency("USD")
	require.Len(t, usd, 2)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "accounts.csv")

	svc := NewService(testAccounts())
	require.NoError(t, svc.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, svc.All(), loaded.All())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}
