package sqlitedb_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/account-selector/internal/core/domain"
	"github.com/tdex-network/account-selector/internal/core/ports"
	sqlitedb "github.com/tdex-network/account-selector/internal/infrastructure/storage/db/sqlite"
)

var ctx = context.Background()

func newTestRepoManager(t *testing.T) (ports.RepoManager, string) {
	dbPath := filepath.Join(t.TempDir(), "selector.db")
	repoManager, err := sqlitedb.NewRepoManager(dbPath)
	require.NoError(t, err)
	return repoManager, dbPath
}

func TestSelectedAccountRepository(t *testing.T) {
	repoManager, dbPath := newTestRepoManager(t)
	repo := repoManager.SelectedAccountRepository()

	account := domain.SelectedAccount{
		WalletID:         "hd-1",
		IndexedAccountID: "hd-1--0",
		NetworkID:        "btc--0",
		DeriveType:       "BIP86",
		FocusedWallet:    "hd-1",
	}
	swap0 := domain.Scene{Name: domain.SceneSwap}
	swap1 := domain.Scene{Name: domain.SceneSwap, Num: 1}

	got, err := repo.GetSelectedAccount(ctx, swap0)
	require.NoError(t, err)
	require.Nil(t, got)

	require.NoError(t, repo.SaveSelectedAccount(ctx, swap0, account))
	other := account
	other.NetworkID = "evm--1"
	other.DeriveType = domain.DefaultDeriveType
	require.NoError(t, repo.SaveSelectedAccount(ctx, swap1, other))

	got, err = repo.GetSelectedAccount(ctx, swap0)
	require.NoError(t, err)
	require.Equal(t, account, *got)

	m, err := repo.GetSelectedAccountsMap(ctx, domain.SceneSwap, "")
	require.NoError(t, err)
	require.Equal(t, domain.SelectedAccountsMap{0: account, 1: other}, m)

	// A url given for a scene that is not url scoped is ignored.
	m, err = repo.GetSelectedAccountsMap(ctx, domain.SceneSwap, "https://x.io")
	require.NoError(t, err)
	require.Len(t, m, 2)

	// Data survives a reopen, and migrations are idempotent.
	repoManager.Close()
	reopened, err := sqlitedb.NewRepoManager(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	got, err = reopened.SelectedAccountRepository().GetSelectedAccount(ctx, swap1)
	require.NoError(t, err)
	require.Equal(t, other, *got)
}

func TestDeriveTypeRepository(t *testing.T) {
	repoManager, _ := newTestRepoManager(t)
	defer repoManager.Close()
	repo := repoManager.DeriveTypeRepository()

	require.NoError(t, repo.SaveGlobalDeriveType(ctx, domain.DeriveTypeScopeGlobal, "btc--0", "BIP86"))
	require.NoError(t, repo.SaveGlobalDeriveType(ctx, domain.DeriveTypeScopeGlobal, "btc--0", "BIP84"))
	require.NoError(t, repo.SaveGlobalDeriveType(ctx, domain.DeriveTypeScopeDiscover, "btc--0", "BIP44"))

	table, err := repo.GetGlobalDeriveTypes(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.DeriveType("BIP84"), table.Get(domain.DeriveTypeScopeGlobal, "btc--0"))
	require.Equal(t, domain.DeriveType("BIP44"), table.Get(domain.DeriveTypeScopeDiscover, "btc--0"))
	require.Empty(t, table.Get(domain.DeriveTypeScopeGlobal, "evm--1"))
}

func TestDappConnectionRepository(t *testing.T) {
	repoManager, _ := newTestRepoManager(t)
	defer repoManager.Close()
	repo := repoManager.DappConnectionRepository()

	m, err := repo.GetAccountSelectorMap(ctx, "https://x.io")
	require.NoError(t, err)
	require.Nil(t, m)

	first := domain.SelectedAccountsMap{
		0: {WalletID: "hd-1", IndexedAccountID: "hd-1--0", NetworkID: "evm--1", DeriveType: domain.DefaultDeriveType},
		1: {WalletID: "hd-1", IndexedAccountID: "hd-1--1", NetworkID: "evm--1", DeriveType: domain.DefaultDeriveType},
	}
	require.NoError(t, repo.SaveConnection(ctx, "https://x.io", first))

	second := domain.SelectedAccountsMap{
		0: {WalletID: "hd-2", IndexedAccountID: "hd-2--0", NetworkID: "sol--101", DeriveType: domain.DefaultDeriveType},
	}
	require.NoError(t, repo.SaveConnection(ctx, "https://x.io", second))

	m, err = repo.GetAccountSelectorMap(ctx, "https://x.io")
	require.NoError(t, err)
	require.Equal(t, second, m)
}
