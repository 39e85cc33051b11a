package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/account-selector/internal/core/domain"
)

func runCLICommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	app := newApp()
	app.Writer = out
	app.ErrWriter = out
	err := app.Run(append([]string{"selectorctl"}, args...))
	return out.String(), err
}

func setupEnv(t *testing.T, dbType string) {
	t.Setenv("SELECTOR_DATADIR", t.TempDir())
	t.Setenv("SELECTOR_DB_TYPE", dbType)
	t.Setenv("SELECTOR_LOG_LEVEL", "0")
	t.Setenv("SELECTOR_AUTO_SELECT_SETTLE_DELAY", "0s")
	t.Setenv("SELECTOR_HW_ACCOUNT_SETTLE_DELAY", "0s")
}

func TestSetAndGet(t *testing.T) {
	for _, dbType := range []string{"badger", "sqlite"} {
		dbType := dbType
		t.Run(dbType, func(t *testing.T) {
			setupEnv(t, dbType)

			out, err := runCLICommand(t,
				"set", "--scene", "home", "--indexed", "hd-1--0", "--network", "evm--1",
			)
			require.NoError(t, err)

			var selected domain.SelectedAccount
			require.NoError(t, json.Unmarshal([]byte(out), &selected))
			require.Equal(t, "hd-1", selected.WalletID)
			require.Equal(t, "hd-1--0", selected.IndexedAccountID)
			require.Equal(t, domain.DefaultDeriveType, selected.DeriveType)

			out, err = runCLICommand(t, "get", "--scene", "home")
			require.NoError(t, err)
			var stored domain.SelectedAccount
			require.NoError(t, json.Unmarshal([]byte(out), &stored))
			require.Equal(t, selected, stored)

			out, err = runCLICommand(t, "list", "--scene", "home")
			require.NoError(t, err)
			var m domain.SelectedAccountsMap
			require.NoError(t, json.Unmarshal([]byte(out), &m))
			require.Equal(t, selected, m[0])

			_, err = runCLICommand(t, "derive-types")
			require.NoError(t, err)
		})
	}
}

func TestSetMirrorsHome(t *testing.T) {
	setupEnv(t, "sqlite")

	_, err := runCLICommand(t,
		"set", "--scene", "settings", "--indexed", "hd-2--0", "--network", "btc--0",
	)
	require.NoError(t, err)

	out, err := runCLICommand(t, "get", "--scene", "home")
	require.NoError(t, err)
	var home domain.SelectedAccount
	require.NoError(t, json.Unmarshal([]byte(out), &home))
	require.Equal(t, "hd-2--0", home.IndexedAccountID)
	require.Equal(t, "btc--0", home.NetworkID)
}

func TestInvalidUsage(t *testing.T) {
	setupEnv(t, "inmemory")

	_, err := runCLICommand(t, "set", "--scene", "home")
	var e *invalidUsageError
	require.ErrorAs(t, err, &e)

	_, err = runCLICommand(t, "list", "--scene", "unknown")
	require.ErrorIs(t, err, domain.ErrUnknownScene)

	_, err = runCLICommand(t, "get", "--scene", "home")
	require.Error(t, err)
}

func TestDemo(t *testing.T) {
	setupEnv(t, "inmemory")

	out, err := runCLICommand(t, "demo", "--timeout", "5s")
	require.NoError(t, err)

	var steps []demoStep
	require.NoError(t, json.Unmarshal([]byte(out), &steps))
	require.Len(t, steps, 3)
	require.True(t, steps[1].Usable)
	require.NotEqual(t, steps[1].Selected.WalletID, steps[2].Selected.WalletID)
}
