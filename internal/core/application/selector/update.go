package selector

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/account-selector/internal/core/domain"
)

// Builder computes the next selection of a slot from the current one. It
// receives a copy and must not retain it.
type Builder func(old domain.SelectedAccount) domain.SelectedAccount

// UpdateSelectedAccount is the single entry point for changing a slot. It
// returns whether the slot changed.
func (s *Scene) UpdateSelectedAccount(
	ctx context.Context, num int, builder Builder,
) (bool, error) {
	return s.updateSelectedAccount(ctx, num, false, builder)
}

func (s *Scene) updateSelectedAccount(
	ctx context.Context, num int, eventEmitDisabled bool, builder Builder,
) (bool, error) {
	var changed bool
	err := s.svc.locks.updateSelectedAccount.run(
		ctx, func(ctx context.Context) error {
			changed = s.doUpdateSelectedAccount(ctx, num, eventEmitDisabled, builder)
			return nil
		},
	)
	return changed, err
}

func (s *Scene) doUpdateSelectedAccount(
	ctx context.Context, num int, eventEmitDisabled bool, builder Builder,
) bool {
	old := s.store.Get(num)
	next := builder(old)
	if next.DeriveType == "" {
		next.DeriveType = domain.DefaultDeriveType
	}

	if s.svc.cfg.WebDappMode && s.name != domain.SceneSwap &&
		(isSpecificNetwork(old.NetworkID) || isSpecificNetwork(next.NetworkID)) {
		next.NetworkID = domain.AllNetworksID
		next.DeriveType = domain.DefaultDeriveType
	}

	if next == old {
		s.svc.metrics.IncUpdate(s.name, false)
		return false
	}

	// Derive types are per network: a value carried over from the previous
	// network must be replaced. Dropping this step loops forever.
	if next.NetworkID != old.NetworkID && next.DeriveType == old.DeriveType &&
		next.NetworkID != "" {
		next.DeriveType = s.fixDeriveTypeByGlobal(
			ctx, next.NetworkID, next.DeriveType, s.name.DeriveTypeScope(),
		)
		if !s.name.UsesGlobalDeriveType() &&
			!s.isDeriveTypeAvailable(ctx, next.NetworkID, next.DeriveType) {
			next.DeriveType = s.fixDeriveTypeByGlobal(
				ctx, next.NetworkID, next.DeriveType, domain.DeriveTypeScopeGlobal,
			)
		}
	}

	if next.IndexedAccountID != "" && next.OthersWalletAccountID != "" &&
		!domain.IsOthersWalletID(next.WalletID) {
		next.OthersWalletAccountID = ""
	}

	meta := domain.UpdateMeta{
		EventEmitDisabled: eventEmitDisabled,
		UpdatedAt:         time.Now(),
	}
	committed := s.store.commit(num, next, meta)
	s.svc.metrics.IncUpdate(s.name, committed)
	if committed {
		s.logger(num).WithFields(log.Fields{
			"old": old,
			"new": next,
		}).Debug("selected account updated")
	}
	return committed
}

// fixDeriveTypeByGlobal returns the preferred derive type of the network in
// scope when it is usable, otherwise current.
func (s *Scene) fixDeriveTypeByGlobal(
	ctx context.Context, networkID string, current domain.DeriveType,
	scope domain.DeriveTypeScope,
) domain.DeriveType {
	preferred := s.globalDeriveType(ctx, networkID, scope)
	if preferred == current {
		return current
	}
	if s.isDeriveTypeAvailable(ctx, networkID, preferred) {
		return preferred
	}
	if !s.isDeriveTypeAvailable(ctx, networkID, current) {
		return domain.DefaultDeriveType
	}
	return current
}

// globalDeriveType reads the preference table. A scoped lookup falls back to
// the global scope, and a missing value to the default derive type.
func (s *Scene) globalDeriveType(
	ctx context.Context, networkID string, scope domain.DeriveTypeScope,
) domain.DeriveType {
	table, err := s.svc.repo.DeriveTypeRepository().GetGlobalDeriveTypes(ctx)
	if err != nil {
		s.logger(0).WithError(err).Warn("failed to read global derive types")
		return domain.DefaultDeriveType
	}

	deriveType := table.Get(scope, networkID)
	if deriveType != "" && scope != domain.DeriveTypeScopeGlobal &&
		!s.isDeriveTypeAvailable(ctx, networkID, deriveType) {
		deriveType = ""
	}
	if deriveType == "" && scope != domain.DeriveTypeScopeGlobal {
		deriveType = table.Get(domain.DeriveTypeScopeGlobal, networkID)
	}
	if deriveType == "" {
		return domain.DefaultDeriveType
	}
	return deriveType
}

func (s *Scene) isDeriveTypeAvailable(
	ctx context.Context, networkID string, deriveType domain.DeriveType,
) bool {
	ok, err := s.svc.network.IsDeriveTypeAvailableForNetwork(
		ctx, networkID, deriveType,
	)
	if err != nil {
		s.logger(0).WithError(err).Debug("derive type availability unknown")
		return false
	}
	return ok
}

func (s *Scene) UpdateSelectedAccountFocusedWallet(
	ctx context.Context, num int, focusedWallet string,
) error {
	_, err := s.UpdateSelectedAccount(ctx, num,
		func(old domain.SelectedAccount) domain.SelectedAccount {
			old.FocusedWallet = focusedWallet
			return old
		},
	)
	return err
}

func (s *Scene) UpdateSelectedAccountNetwork(
	ctx context.Context, num int, networkID string,
) error {
	_, err := s.UpdateSelectedAccount(ctx, num,
		func(old domain.SelectedAccount) domain.SelectedAccount {
			old.NetworkID = networkID
			return old
		},
	)
	return err
}

// UpdateSelectedAccountDeriveType sets the derive type of the slot. An empty
// value means the default derive type.
func (s *Scene) UpdateSelectedAccountDeriveType(
	ctx context.Context, num int, deriveType domain.DeriveType,
) error {
	if deriveType == "" {
		deriveType = domain.DefaultDeriveType
	}
	_, err := s.UpdateSelectedAccount(ctx, num,
		func(old domain.SelectedAccount) domain.SelectedAccount {
			old.DeriveType = deriveType
			return old
		},
	)
	return err
}

// UpdateSelectedAccountForHdOrHwAccount selects an indexed account and drops
// any singleton account.
func (s *Scene) UpdateSelectedAccountForHdOrHwAccount(
	ctx context.Context, num int, walletID, indexedAccountID string,
) error {
	if walletID == "" {
		return domain.ErrMissingWalletID
	}
	_, err := s.UpdateSelectedAccount(ctx, num,
		func(old domain.SelectedAccount) domain.SelectedAccount {
			old.WalletID = walletID
			old.IndexedAccountID = indexedAccountID
			old.OthersWalletAccountID = ""
			old.FocusedWallet = walletID
			return old
		},
	)
	return err
}

// UpdateSelectedAccountForSingletonAccount selects an account of a singleton
// wallet. When autoChangeToNetworkID is set, the network is switched to the
// one of the account compatible with it.
func (s *Scene) UpdateSelectedAccountForSingletonAccount(
	ctx context.Context, num int, othersWalletAccountID string,
	autoChangeToNetworkID string,
) error {
	walletID := domain.WalletIDFromAccountID(othersWalletAccountID)
	if walletID == "" {
		return domain.ErrMissingWalletID
	}

	var networkID string
	if autoChangeToNetworkID != "" {
		account, err := s.svc.account.GetAccount(ctx, othersWalletAccountID)
		if err != nil {
			return err
		}
		networkID, err = account.CompatibleNetwork(autoChangeToNetworkID)
		if err != nil {
			return err
		}
	}

	_, err := s.UpdateSelectedAccount(ctx, num,
		func(old domain.SelectedAccount) domain.SelectedAccount {
			old.WalletID = walletID
			old.OthersWalletAccountID = othersWalletAccountID
			old.IndexedAccountID = ""
			old.FocusedWallet = domain.FocusForWallet(walletID)
			if networkID != "" {
				old.NetworkID = networkID
			}
			return old
		},
	)
	return err
}

// ClearSelectedAccount drops the wallet, the accounts and the focus of the
// slot when clearAccount is set. The network is kept.
func (s *Scene) ClearSelectedAccount(
	ctx context.Context, num int, clearAccount bool,
) error {
	_, err := s.UpdateSelectedAccount(ctx, num,
		func(old domain.SelectedAccount) domain.SelectedAccount {
			if !clearAccount {
				return old
			}
			return old.ClearWallet()
		},
	)
	return err
}

func isSpecificNetwork(networkID string) bool {
	return networkID != "" && networkID != domain.AllNetworksID
}
