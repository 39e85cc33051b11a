package selector

import (
	"context"

	"github.com/tdex-network/account-selector/internal/core/domain"
)

type SyncFromSceneParams struct {
	From domain.Scene
	Num  int
	// WithNetworkSync adopts the network and derive type of the source too.
	WithNetworkSync bool
	// AvailableNetworks restricts the networks the slot may end up on.
	AvailableNetworks []string
}

// SyncFromScene copies the stored selection of another scene into a slot.
// It waits for any running auto-select first, so that it never copies a
// selection about to be replaced.
func (s *Scene) SyncFromScene(ctx context.Context, params SyncFromSceneParams) error {
	if err := s.svc.locks.autoSelectNextAccount.waitForUnlock(ctx); err != nil {
		return err
	}

	src, err := s.svc.repo.SelectedAccountRepository().GetSelectedAccount(
		ctx, params.From,
	)
	if err != nil {
		return err
	}
	if src == nil {
		return nil
	}

	table, err := s.svc.repo.DeriveTypeRepository().GetGlobalDeriveTypes(ctx)
	if err != nil {
		s.logger(params.Num).WithError(err).Warn("failed to read global derive types")
	}
	scope := s.name.DeriveTypeScope()

	_, err = s.UpdateSelectedAccount(ctx, params.Num,
		func(old domain.SelectedAccount) domain.SelectedAccount {
			next := *src
			if !params.WithNetworkSync ||
				(s.name == domain.SceneDiscover && domain.IsAllNetworks(next.NetworkID)) {
				next.NetworkID = old.NetworkID
				next.DeriveType = old.DeriveType
			}

			if len(params.AvailableNetworks) > 0 &&
				!contains(params.AvailableNetworks, next.NetworkID) {
				if contains(params.AvailableNetworks, old.NetworkID) {
					next.NetworkID = old.NetworkID
					next.DeriveType = old.DeriveType
				} else {
					next.NetworkID = params.AvailableNetworks[0]
					next.DeriveType = ""
				}
			}

			if next.DeriveType == "" && next.NetworkID != "" {
				next.DeriveType = table.Get(scope, next.NetworkID)
			}
			return next
		},
	)
	return err
}

// ReloadSwapToAccountFromHome points the "to" slot of the swap scene at the
// wallet and account of home, keeping its own network.
func (s *Scene) ReloadSwapToAccountFromHome(ctx context.Context) error {
	if s.name != domain.SceneSwap {
		return ErrNotSwapScene
	}

	home, err := s.svc.repo.SelectedAccountRepository().GetSelectedAccount(
		ctx, domain.HomeScene,
	)
	if err != nil || home == nil {
		return err
	}

	walletOnly := *home
	walletOnly.NetworkID = ""
	walletOnly.DeriveType = ""

	_, err = s.UpdateSelectedAccount(ctx, 1,
		func(old domain.SelectedAccount) domain.SelectedAccount {
			return domain.MergeSelectedAccount(old, walletOnly)
		},
	)
	return err
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
