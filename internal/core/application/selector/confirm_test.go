package selector_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/account-selector/internal/core/application/selector"
	"github.com/tdex-network/account-selector/internal/core/domain"
	"github.com/tdex-network/account-selector/internal/core/ports"
)

func TestConfirmAccountSelect(t *testing.T) {
	env := newTestEnv(t)
	res := env.createHDWallet(t)
	account, err := env.accounts.AddSingletonAccount(ctx, domain.WalletIDWatching, "btc--0", "bc1w")
	require.NoError(t, err)

	home := env.startScene(t, domain.SceneHome, "")
	waitSelected(t, home, 0, res.Wallet.ID, res.IndexedAccount.ID)

	t.Run("preconditions", func(t *testing.T) {
		err := home.ConfirmAccountSelect(ctx, selector.ConfirmAccountSelectParams{
			IndexedAccount: res.IndexedAccount,
			OthersAccount:  account,
		})
		require.ErrorIs(t, err, domain.ErrBothAccountKinds)

		err = home.ConfirmAccountSelect(ctx, selector.ConfirmAccountSelectParams{})
		require.ErrorIs(t, err, domain.ErrNoAccountKind)
		require.Empty(t, env.events.of(domain.TopicConfirmAccountSelected))
	})

	t.Run("others_account", func(t *testing.T) {
		env.events.reset()
		require.NoError(t, home.ConfirmAccountSelect(ctx, selector.ConfirmAccountSelectParams{
			OthersAccount:                       account,
			AutoChangeToAccountMatchedNetworkID: "evm--1",
		}))

		selected := home.GetSelectedAccount(0)
		require.Equal(t, domain.WalletIDWatching, selected.WalletID)
		require.Equal(t, "btc--0", selected.NetworkID)

		events := env.events.of(domain.TopicConfirmAccountSelected)
		require.Len(t, events, 1)
		confirmed := events[0].(domain.ConfirmAccountSelectedEvent)
		require.Equal(t, account, confirmed.OthersAccount)
		require.Equal(t, "btc--0", confirmed.NetworkID)
		require.Equal(t, home.InstanceID(), confirmed.Origin.InstanceID)
	})

	t.Run("indexed_account_with_forced_network", func(t *testing.T) {
		env.events.reset()
		require.NoError(t, home.ConfirmAccountSelect(ctx, selector.ConfirmAccountSelectParams{
			IndexedAccount:         res.IndexedAccount,
			ForceSelectToNetworkID: "sol--101",
		}))

		selected := home.GetSelectedAccount(0)
		require.Equal(t, res.Wallet.ID, selected.WalletID)
		require.Equal(t, res.IndexedAccount.ID, selected.IndexedAccountID)
		require.Empty(t, selected.OthersWalletAccountID)
		require.Equal(t, "sol--101", selected.NetworkID)

		updates := env.events.of(domain.TopicSelectedAccountUpdate)
		require.Len(t, updates, 1)
		update := updates[0].(domain.SelectedAccountUpdateEvent)
		require.Equal(t, res.IndexedAccount.ID, update.SelectedAccount.IndexedAccountID)
		require.Equal(t, "sol--101", update.SelectedAccount.NetworkID)
		require.Never(t, func() bool {
			return env.events.selectionUpdatesFrom(domain.SceneHome) > 1
		}, 200*time.Millisecond, tick)
	})
}

func TestShowAccountSelector(t *testing.T) {
	t.Run("missing_navigator", func(t *testing.T) {
		env := newTestEnv(t)
		home := env.svc.NewScene(domain.SceneHome, "")
		err := home.ShowAccountSelector(ctx, selector.ShowAccountSelectorParams{})
		require.ErrorIs(t, err, selector.ErrMissingNavigator)
	})

	t.Run("push", func(t *testing.T) {
		nav := &mockNavigator{}
		env := newTestEnv(t, withNavigator(nav))
		require.NoError(t, env.repo.DeriveTypeRepository().SaveGlobalDeriveType(
			ctx, domain.DeriveTypeScopeGlobal, "btc--0", "BIP86",
		))
		res := env.createHDWallet(t)

		home := env.startScene(t, domain.SceneHome, "")
		waitSelected(t, home, 0, res.Wallet.ID, res.IndexedAccount.ID)
		require.NoError(t, home.UpdateSelectedAccountFocusedWallet(ctx, 0, domain.FocusedWalletOthers))
		home.Store().SetEditMode(true)

		nav.On("PushAccountSelector", mock.Anything, ports.AccountSelectorParams{
			Scene:                 home.Identity(0),
			LinkNetworkID:         "btc--0",
			LinkNetworkDeriveType: "BIP86",
			EditMode:              true,
		}).Return(nil).Once()

		require.NoError(t, home.ShowAccountSelector(ctx, selector.ShowAccountSelectorParams{
			LinkNetworkID: "btc--0",
			EditMode:      true,
		}))
		nav.AssertExpectations(t)
		require.False(t, home.Store().EditMode())
		require.Equal(t, res.Wallet.ID, home.GetSelectedAccount(0).FocusedWallet)
	})
}
