package accounts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/model"
)

func TestReadAccounts(t *testing.T) {
	input := "account_id,name,currency,active\n" +
		"acc-1,Main Broker,EUR,true\n" +
		"acc-2,US Broker,USD,false\n"

	accts, err := ReadAccounts(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, accts, 2)

	assert.Equal(t, "acc-1", accts[0].ID)
	assert.Equal(t, "EUR", accts[0].Currency)
	assert.True(t, accts[0].Active)
	assert.False(t, accts[1].Active)
}

func TestReadAccounts_BadActive(t *testing.T) {
	input := "account_id,name,currency,active\n" +
		"acc-1,Main Broker,EUR,maybe\n"

	_, err := ReadAccounts(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestWriteAccounts_RoundTrip(t *testing.T) {
	accts := []model.Account{
		{ID: "acc-1", Name: "Main Broker", Currency: "EUR", Active: true},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, accts))

	back, err := ReadAccounts(&buf)
	require.NoError(t, err)
	assert.Equal(t, accts, back)
}

func TestReadAccounts_Empty(t *testing.T) {
	accts, err := ReadAccounts(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, accts)
}
