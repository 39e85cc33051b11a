package selector_test

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/account-selector/internal/core/domain"
)

func TestUpdateSelectedAccount(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		env := newTestEnv(t)
		scene := env.svc.NewScene(domain.SceneHome, "")

		setNetwork := func(old domain.SelectedAccount) domain.SelectedAccount {
			old.NetworkID = "evm--1"
			return old
		}
		changed, err := scene.UpdateSelectedAccount(ctx, 0, setNetwork)
		require.NoError(t, err)
		require.True(t, changed)
		updatedAt := scene.Store().Meta(0).UpdatedAt

		changed, err = scene.UpdateSelectedAccount(ctx, 0, setNetwork)
		require.NoError(t, err)
		require.False(t, changed)
		require.Equal(t, updatedAt, scene.Store().Meta(0).UpdatedAt)
	})

	t.Run("idempotent_emits_and_saves_nothing", func(t *testing.T) {
		env := newTestEnv(t)
		res := env.createHDWallet(t)
		home := env.startScene(t, domain.SceneHome, "")
		waitSelected(t, home, 0, res.Wallet.ID, res.IndexedAccount.ID)
		require.Eventually(t, func() bool {
			stored := env.stored(t, domain.HomeScene)
			return stored != nil && *stored == home.GetSelectedAccount(0)
		}, waitFor, tick)
		time.Sleep(50 * time.Millisecond)

		stored := *env.stored(t, domain.HomeScene)
		updatedAt := home.Store().Meta(0).UpdatedAt
		env.events.reset()

		current := home.GetSelectedAccount(0)
		changed, err := home.UpdateSelectedAccount(ctx, 0,
			func(old domain.SelectedAccount) domain.SelectedAccount {
				old.NetworkID = current.NetworkID
				old.WalletID = current.WalletID
				return old
			},
		)
		require.NoError(t, err)
		require.False(t, changed)
		require.Equal(t, updatedAt, home.Store().Meta(0).UpdatedAt)

		require.Never(t, func() bool {
			return len(env.events.of(domain.TopicSelectedAccountUpdate)) > 0
		}, 200*time.Millisecond, tick)
		require.Equal(t, stored, *env.stored(t, domain.HomeScene))
	})

	t.Run("concurrent_updates_never_interleave", func(t *testing.T) {
		env := newTestEnv(t)
		scene := env.svc.NewScene(domain.SceneHome, "")

		const n = 50
		wg := &sync.WaitGroup{}
		wg.Add(n)
		for i := 0; i < n; i++ {
			go func() {
				defer wg.Done()
				_, err := scene.UpdateSelectedAccount(ctx, 0,
					func(old domain.SelectedAccount) domain.SelectedAccount {
						focused := old.FocusedWallet
						// Yield between read and write.
						time.Sleep(time.Millisecond)
						old.FocusedWallet = focused + "x"
						return old
					},
				)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		require.Equal(t, strings.Repeat("x", n), scene.GetSelectedAccount(0).FocusedWallet)
	})

	t.Run("empty_derive_type_is_default", func(t *testing.T) {
		env := newTestEnv(t)
		scene := env.svc.NewScene(domain.SceneHome, "")

		_, err := scene.UpdateSelectedAccount(ctx, 0,
			func(domain.SelectedAccount) domain.SelectedAccount {
				return domain.SelectedAccount{NetworkID: "evm--1"}
			},
		)
		require.NoError(t, err)
		require.Equal(t, domain.DefaultDeriveType, scene.GetSelectedAccount(0).DeriveType)

		require.NoError(t, scene.UpdateSelectedAccountDeriveType(ctx, 0, ""))
		require.Equal(t, domain.DefaultDeriveType, scene.GetSelectedAccount(0).DeriveType)
	})

	t.Run("derive_type_follows_network", func(t *testing.T) {
		env := newTestEnv(t)
		scene := env.svc.NewScene(domain.SceneHome, "")
		require.NoError(t, env.repo.DeriveTypeRepository().SaveGlobalDeriveType(
			ctx, domain.DeriveTypeScopeGlobal, "btc--0", "BIP86",
		))

		require.NoError(t, scene.UpdateSelectedAccountNetwork(ctx, 0, "evm--1"))
		require.NoError(t, scene.UpdateSelectedAccountNetwork(ctx, 0, "btc--0"))
		require.Equal(t, domain.DeriveType("BIP86"), scene.GetSelectedAccount(0).DeriveType)

		// BIP86 does not exist on evm and nothing is preferred there.
		require.NoError(t, scene.UpdateSelectedAccountNetwork(ctx, 0, "evm--1"))
		require.Equal(t, domain.DefaultDeriveType, scene.GetSelectedAccount(0).DeriveType)
	})

	t.Run("discover_scope", func(t *testing.T) {
		env := newTestEnv(t)
		repo := env.repo.DeriveTypeRepository()
		require.NoError(t, repo.SaveGlobalDeriveType(ctx, domain.DeriveTypeScopeGlobal, "btc--0", "BIP86"))
		require.NoError(t, repo.SaveGlobalDeriveType(ctx, domain.DeriveTypeScopeDiscover, "btc--0", "BIP44"))

		discover := env.svc.NewScene(domain.SceneDiscover, "https://x.io")
		require.NoError(t, discover.UpdateSelectedAccountNetwork(ctx, 0, "evm--1"))
		require.NoError(t, discover.UpdateSelectedAccountNetwork(ctx, 0, "btc--0"))
		require.Equal(t, domain.DeriveType("BIP44"), discover.GetSelectedAccount(0).DeriveType)

		home := env.svc.NewScene(domain.SceneHome, "")
		require.NoError(t, home.UpdateSelectedAccountNetwork(ctx, 0, "evm--1"))
		require.NoError(t, home.UpdateSelectedAccountNetwork(ctx, 0, "btc--0"))
		require.Equal(t, domain.DeriveType("BIP86"), home.GetSelectedAccount(0).DeriveType)
	})

	t.Run("account_kinds_are_exclusive", func(t *testing.T) {
		env := newTestEnv(t)
		scene := env.svc.NewScene(domain.SceneHome, "")

		_, err := scene.UpdateSelectedAccount(ctx, 0,
			func(old domain.SelectedAccount) domain.SelectedAccount {
				old.WalletID = "hd-1"
				old.IndexedAccountID = "hd-1--0"
				old.OthersWalletAccountID = "imported--evm--0xabc"
				return old
			},
		)
		require.NoError(t, err)
		selected := scene.GetSelectedAccount(0)
		require.Equal(t, "hd-1--0", selected.IndexedAccountID)
		require.Empty(t, selected.OthersWalletAccountID)
	})

	t.Run("web_dapp_mode", func(t *testing.T) {
		env := newTestEnv(t, withWebDappMode())

		home := env.svc.NewScene(domain.SceneHome, "")
		require.NoError(t, home.UpdateSelectedAccountNetwork(ctx, 0, "btc--0"))
		require.Equal(t, domain.AllNetworksID, home.GetSelectedAccount(0).NetworkID)

		// A pinned slot stays pinned when its network is cleared.
		settings := env.svc.NewScene(domain.SceneSettings, "")
		settings.Store().Set(0, func(old domain.SelectedAccount) domain.SelectedAccount {
			old.NetworkID = "btc--0"
			return old
		})
		require.NoError(t, settings.UpdateSelectedAccountNetwork(ctx, 0, ""))
		selected := settings.GetSelectedAccount(0)
		require.Equal(t, domain.AllNetworksID, selected.NetworkID)
		require.Equal(t, domain.DefaultDeriveType, selected.DeriveType)

		swap := env.svc.NewScene(domain.SceneSwap, "")
		require.NoError(t, swap.UpdateSelectedAccountNetwork(ctx, 0, "btc--0"))
		require.Equal(t, "btc--0", swap.GetSelectedAccount(0).NetworkID)
	})

	t.Run("hd_and_singleton_accounts", func(t *testing.T) {
		env := newTestEnv(t)
		scene := env.svc.NewScene(domain.SceneHome, "")
		account, err := env.accounts.AddSingletonAccount(ctx, domain.WalletIDImported, "btc--0", "bc1q")
		require.NoError(t, err)

		require.ErrorIs(t,
			scene.UpdateSelectedAccountForHdOrHwAccount(ctx, 0, "", "hd-1--0"),
			domain.ErrMissingWalletID,
		)

		require.NoError(t, scene.UpdateSelectedAccountNetwork(ctx, 0, "evm--1"))
		require.NoError(t, scene.UpdateSelectedAccountForSingletonAccount(
			ctx, 0, account.ID, "evm--1",
		))
		selected := scene.GetSelectedAccount(0)
		require.Equal(t, domain.WalletIDImported, selected.WalletID)
		require.Equal(t, account.ID, selected.OthersWalletAccountID)
		require.Equal(t, domain.FocusedWalletOthers, selected.FocusedWallet)
		require.Equal(t, "btc--0", selected.NetworkID)

		require.NoError(t, scene.UpdateSelectedAccountForHdOrHwAccount(ctx, 0, "hd-1", "hd-1--0"))
		selected = scene.GetSelectedAccount(0)
		require.Equal(t, "hd-1", selected.FocusedWallet)
		require.Empty(t, selected.OthersWalletAccountID)
	})

	t.Run("clear", func(t *testing.T) {
		env := newTestEnv(t)
		scene := env.svc.NewScene(domain.SceneHome, "")
		require.NoError(t, scene.UpdateSelectedAccountNetwork(ctx, 0, "evm--1"))
		require.NoError(t, scene.UpdateSelectedAccountForHdOrHwAccount(ctx, 0, "hd-1", "hd-1--0"))
		before := scene.GetSelectedAccount(0)

		require.NoError(t, scene.ClearSelectedAccount(ctx, 0, false))
		require.Equal(t, before, scene.GetSelectedAccount(0))

		require.NoError(t, scene.ClearSelectedAccount(ctx, 0, true))
		selected := scene.GetSelectedAccount(0)
		require.Empty(t, selected.WalletID)
		require.Empty(t, selected.IndexedAccountID)
		require.Empty(t, selected.OthersWalletAccountID)
		require.Empty(t, selected.FocusedWallet)
		require.Equal(t, "evm--1", selected.NetworkID)
	})

	t.Run("store_set_drops_noop", func(t *testing.T) {
		env := newTestEnv(t)
		store := env.svc.NewScene(domain.SceneHome, "").Store()

		identity := func(old domain.SelectedAccount) domain.SelectedAccount { return old }
		require.False(t, store.Set(0, identity))
		require.True(t, store.Set(0, func(old domain.SelectedAccount) domain.SelectedAccount {
			old.FocusedWallet = "hd-1"
			return old
		}))
		require.Equal(t, []int{0}, store.Slots())
	})
}
