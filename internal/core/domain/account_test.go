package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/account-selector/internal/core/domain"
)

func TestIDs(t *testing.T) {
	id, err := domain.BuildIndexedAccountID("hd-1", 0)
	require.NoError(t, err)
	require.Equal(t, "hd-1--0", id)
	require.Equal(t, "hd-1", domain.WalletIDFromAccountID(id))

	_, err = domain.BuildIndexedAccountID("hd-1", -1)
	require.ErrorIs(t, err, domain.ErrInvalidAccountIndex)

	require.Equal(t, domain.WalletIDWatching, domain.WalletIDFromAccountID(domain.URLAccountID))
	require.True(t, domain.IsAllNetworks(domain.AllNetworksID))
}

func TestCompatibleNetwork(t *testing.T) {
	account := domain.Account{
		ID:              "imported--evm--0xabc",
		Impl:            "evm",
		CreateAtNetwork: "evm--1",
	}

	t.Run("all_networks", func(t *testing.T) {
		n, err := account.CompatibleNetwork(domain.AllNetworksID)
		require.NoError(t, err)
		require.Equal(t, domain.AllNetworksID, n)
	})

	t.Run("same_impl", func(t *testing.T) {
		n, err := account.CompatibleNetwork("evm--56")
		require.NoError(t, err)
		require.Equal(t, "evm--56", n)
	})

	t.Run("other_impl_falls_back_to_created_network", func(t *testing.T) {
		n, err := account.CompatibleNetwork("btc--0")
		require.NoError(t, err)
		require.Equal(t, "evm--1", n)
	})

	t.Run("restricted_networks", func(t *testing.T) {
		restricted := account
		restricted.Networks = []string{"evm--137"}
		n, err := restricted.CompatibleNetwork("evm--1")
		require.NoError(t, err)
		require.Equal(t, "evm--137", n)
	})

	t.Run("mismatch", func(t *testing.T) {
		broken := account
		broken.CreateAtNetwork = "sol--101"
		_, err := broken.CompatibleNetwork("btc--0")
		require.ErrorIs(t, err, domain.ErrIncompatibleNetwork)
	})
}

func TestWalletType(t *testing.T) {
	require.True(t, domain.WalletTypeHD.OwnsIndexedAccounts())
	require.True(t, domain.WalletTypeQR.IsAirGapped())
	require.True(t, domain.WalletTypeHardware.IsHardware())
	require.True(t, domain.WalletTypeWatching.IsSingleton())
	require.False(t, domain.WalletTypeWatching.OwnsIndexedAccounts())

	wt, ok := domain.SingletonWalletType(domain.WalletIDExternal)
	require.True(t, ok)
	require.Equal(t, domain.WalletTypeExternal, wt)
	require.Equal(t, []string{"imported", "watching", "external"}, domain.OthersWalletIDs)
}
