package dbbadger_test

import (
	"context"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/account-selector/internal/core/domain"
	"github.com/tdex-network/account-selector/internal/core/ports"
	dbbadger "github.com/tdex-network/account-selector/internal/infrastructure/storage/db/badger"
)

var ctx = context.Background()

func newTestRepoManager(t *testing.T) ports.RepoManager {
	repoManager, err := dbbadger.NewRepoManager("", log.New())
	require.NoError(t, err)
	t.Cleanup(repoManager.Close)
	return repoManager
}

func TestSelectedAccountRepository(t *testing.T) {
	repo := newTestRepoManager(t).SelectedAccountRepository()

	home := domain.HomeScene
	discover := domain.Scene{Name: domain.SceneDiscover, URL: "https://x.io"}
	account := domain.SelectedAccount{
		WalletID:         "hd-1",
		IndexedAccountID: "hd-1--0",
		NetworkID:        "evm--1",
		DeriveType:       domain.DefaultDeriveType,
		FocusedWallet:    "hd-1",
	}

	t.Run("missing", func(t *testing.T) {
		got, err := repo.GetSelectedAccount(ctx, home)
		require.NoError(t, err)
		require.Nil(t, got)
	})

	t.Run("save_and_get", func(t *testing.T) {
		require.NoError(t, repo.SaveSelectedAccount(ctx, home, account))
		require.NoError(t, repo.SaveSelectedAccount(ctx, discover, account.ClearWallet()))

		got, err := repo.GetSelectedAccount(ctx, home)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Equal(t, account, *got)
	})

	t.Run("overwrite", func(t *testing.T) {
		updated := account
		updated.NetworkID = "btc--0"
		require.NoError(t, repo.SaveSelectedAccount(ctx, home, updated))

		got, err := repo.GetSelectedAccount(ctx, home)
		require.NoError(t, err)
		require.Equal(t, "btc--0", got.NetworkID)
	})

	t.Run("map_by_scene", func(t *testing.T) {
		swap1 := domain.Scene{Name: domain.SceneSwap, Num: 1}
		require.NoError(t, repo.SaveSelectedAccount(ctx, swap1, account))

		m, err := repo.GetSelectedAccountsMap(ctx, domain.SceneSwap, "")
		require.NoError(t, err)
		require.Equal(t, domain.SelectedAccountsMap{1: account}, m)

		m, err = repo.GetSelectedAccountsMap(ctx, domain.SceneDiscover, "https://x.io")
		require.NoError(t, err)
		require.Len(t, m, 1)

		m, err = repo.GetSelectedAccountsMap(ctx, domain.SceneDiscover, "https://y.io")
		require.NoError(t, err)
		require.Empty(t, m)
	})
}

func TestDeriveTypeRepository(t *testing.T) {
	repo := newTestRepoManager(t).DeriveTypeRepository()

	table, err := repo.GetGlobalDeriveTypes(ctx)
	require.NoError(t, err)
	require.Empty(t, table)

	require.NoError(t, repo.SaveGlobalDeriveType(ctx, domain.DeriveTypeScopeGlobal, "btc--0", "BIP86"))
	require.NoError(t, repo.SaveGlobalDeriveType(ctx, domain.DeriveTypeScopeDiscover, "btc--0", "BIP44"))
	require.NoError(t, repo.SaveGlobalDeriveType(ctx, domain.DeriveTypeScopeGlobal, "btc--0", "BIP84"))

	table, err = repo.GetGlobalDeriveTypes(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.DeriveType("BIP84"), table.Get(domain.DeriveTypeScopeGlobal, "btc--0"))
	require.Equal(t, domain.DeriveType("BIP44"), table.Get(domain.DeriveTypeScopeDiscover, "btc--0"))
}

func TestDappConnectionRepository(t *testing.T) {
	repo := newTestRepoManager(t).DappConnectionRepository()

	m, err := repo.GetAccountSelectorMap(ctx, "https://x.io")
	require.NoError(t, err)
	require.Nil(t, m)

	connected := domain.SelectedAccountsMap{
		0: {WalletID: "hd-1", IndexedAccountID: "hd-1--0", NetworkID: "evm--1"},
	}
	require.NoError(t, repo.SaveConnection(ctx, "https://x.io", connected))

	m, err = repo.GetAccountSelectorMap(ctx, "https://x.io")
	require.NoError(t, err)
	require.Equal(t, connected, m)
}
