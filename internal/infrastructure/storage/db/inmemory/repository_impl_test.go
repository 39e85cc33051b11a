package inmemory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/account-selector/internal/core/domain"
)

var ctx = context.Background()

func TestSelectedAccountRepository(t *testing.T) {
	repo := NewRepoManager().SelectedAccountRepository()
	scene := domain.Scene{Name: domain.SceneSwap, Num: 1}
	account := domain.SelectedAccount{WalletID: "hd-1", IndexedAccountID: "hd-1--0"}

	got, err := repo.GetSelectedAccount(ctx, scene)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.SaveSelectedAccount(ctx, scene, account))

	got, err = repo.GetSelectedAccount(ctx, scene)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, account, *got)

	m, err := repo.GetSelectedAccountsMap(ctx, domain.SceneSwap, "")
	require.NoError(t, err)
	assert.Equal(t, domain.SelectedAccountsMap{1: account}, m)

	// urls only partition url scoped scenes
	got, err = repo.GetSelectedAccount(ctx, domain.Scene{
		Name: domain.SceneSwap, URL: "https://x.io", Num: 1,
	})
	require.NoError(t, err)
	assert.NotNil(t, got)

	m, err = repo.GetSelectedAccountsMap(ctx, domain.SceneDiscover, "https://x.io")
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestDeriveTypeRepository(t *testing.T) {
	repo := NewRepoManager().DeriveTypeRepository()

	require.NoError(t, repo.SaveGlobalDeriveType(
		ctx, domain.DeriveTypeScopeGlobal, "btc--0", "BIP86",
	))

	table, err := repo.GetGlobalDeriveTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DeriveType("BIP86"), table.Get(domain.DeriveTypeScopeGlobal, "btc--0"))
	assert.Empty(t, table.Get(domain.DeriveTypeScopeDiscover, "btc--0"))

	// returned tables are copies
	table.Set(domain.DeriveTypeScopeGlobal, "btc--0", "BIP44")
	table, err = repo.GetGlobalDeriveTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DeriveType("BIP86"), table.Get(domain.DeriveTypeScopeGlobal, "btc--0"))
}

func TestDappConnectionRepository(t *testing.T) {
	repo := NewRepoManager().DappConnectionRepository()

	m, err := repo.GetAccountSelectorMap(ctx, "https://x.io")
	require.NoError(t, err)
	assert.Nil(t, m)

	connected := domain.SelectedAccountsMap{0: {WalletID: "hd-1"}}
	require.NoError(t, repo.SaveConnection(ctx, "https://x.io", connected))

	m, err = repo.GetAccountSelectorMap(ctx, "https://x.io")
	require.NoError(t, err)
	assert.Equal(t, connected, m)
}
