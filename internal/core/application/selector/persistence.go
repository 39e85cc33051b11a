package selector

import (
	"context"
	"fmt"

	"github.com/tdex-network/account-selector/internal/core/domain"
)

// InitFromStorage loads the persisted selections of the scene into its store
// and marks the storage ready. Until then nothing is saved or auto-selected.
func (s *Scene) InitFromStorage(ctx context.Context) error {
	return s.svc.locks.saveToStorage.run(ctx, func(ctx context.Context) error {
		repo := s.svc.repo.SelectedAccountRepository()

		m, err := repo.GetSelectedAccountsMap(ctx, s.name, s.url)
		if err != nil {
			return fmt.Errorf("loading %s selections: %w", s.name, err)
		}
		if m == nil {
			m = make(domain.SelectedAccountsMap)
		}

		if s.name == domain.SceneDiscover && s.url != "" {
			connected, err := s.svc.repo.DappConnectionRepository().
				GetAccountSelectorMap(ctx, s.url)
			if err != nil {
				return fmt.Errorf("loading dapp connection of %s: %w", s.url, err)
			}
			if connected != nil {
				m = connected.Clone()
			}
		}

		if s.name == domain.SceneSwap {
			home, err := repo.GetSelectedAccount(ctx, domain.HomeScene)
			if err != nil {
				return fmt.Errorf("loading home selection: %w", err)
			}
			if home != nil {
				for _, num := range s.slots {
					m[num] = domain.MergeSelectedAccount(*home, m[num])
				}
			}
		}

		s.fixDeriveTypes(ctx, m)

		if !m.Equal(s.store.Map()) {
			s.logger(0).WithField("slots", len(m)).Debug("loaded selections from storage")
		}
		s.store.load(m, s.slots)
		return nil
	})
}

// fixDeriveTypes replaces derive types unavailable for their network with
// the preferred one of the global table.
func (s *Scene) fixDeriveTypes(ctx context.Context, m domain.SelectedAccountsMap) {
	scope := s.name.DeriveTypeScope()
	for num, account := range m {
		if account.NetworkID == "" {
			continue
		}
		if account.DeriveType == "" {
			account.DeriveType = domain.DefaultDeriveType
		}
		if !s.isDeriveTypeAvailable(ctx, account.NetworkID, account.DeriveType) {
			account.DeriveType = s.fixDeriveTypeByGlobal(
				ctx, account.NetworkID, account.DeriveType, scope,
			)
		}
		m[num] = account
	}
}

// SaveToStorage persists the current selection of a slot, mirrors it into
// the home scene when the slot syncs with home, and announces it unless the
// last change disabled events.
func (s *Scene) SaveToStorage(ctx context.Context, num int) error {
	return s.svc.locks.saveToStorage.run(ctx, func(ctx context.Context) error {
		return s.saveToStorage(ctx, num)
	})
}

func (s *Scene) saveToStorage(ctx context.Context, num int) error {
	logger := s.logger(num)
	if !s.store.StorageReady() {
		logger.Debug("storage not ready, skip saving")
		return nil
	}

	selected := s.store.Get(num)
	meta := s.store.Meta(num)
	if selected.IsDefault() {
		logger.Debug("default selection, skip saving")
		return nil
	}
	if s.name == domain.SceneHomeURLAccount &&
		selected.OthersWalletAccountID != domain.URLAccountID {
		selected = domain.DefaultSelectedAccount()
	}

	identity := s.Identity(num)
	repo := s.svc.repo.SelectedAccountRepository()
	stored, err := repo.GetSelectedAccount(ctx, identity)
	if err != nil {
		return err
	}
	if stored != nil && *stored == selected {
		logger.Debug("selection unchanged, skip saving")
		return nil
	}
	if err := repo.SaveSelectedAccount(ctx, identity, selected); err != nil {
		return err
	}

	if err := s.saveGlobalDeriveType(ctx, num, selected, meta.EventEmitDisabled); err != nil {
		logger.WithError(err).Warn("failed to save global derive type")
	}

	if identity.SyncsWithHome() && s.name != domain.SceneHome {
		home, err := repo.GetSelectedAccount(ctx, domain.HomeScene)
		if err != nil {
			return err
		}
		base := domain.DefaultSelectedAccount()
		if home != nil {
			base = *home
		}
		merged := domain.MergeSelectedAccount(base, selected)
		if home == nil || merged != *home {
			if err := repo.SaveSelectedAccount(ctx, domain.HomeScene, merged); err != nil {
				return err
			}
		}
	}

	if !meta.EventEmitDisabled {
		s.svc.pubsub.PublishSelectedAccountUpdate(s.origin(num), selected)
	}
	return nil
}

func (s *Scene) saveGlobalDeriveType(
	ctx context.Context, num int, selected domain.SelectedAccount,
	eventEmitDisabled bool,
) error {
	if selected.NetworkID == "" || selected.DeriveType == "" ||
		domain.IsAllNetworks(selected.NetworkID) {
		return nil
	}

	repo := s.svc.repo.DeriveTypeRepository()
	table, err := repo.GetGlobalDeriveTypes(ctx)
	if err != nil {
		return err
	}

	scope := s.name.DeriveTypeScope()
	current := table.Get(scope, selected.NetworkID)
	if current == selected.DeriveType ||
		(current == "" && selected.DeriveType == domain.DefaultDeriveType) {
		return nil
	}
	if err := repo.SaveGlobalDeriveType(
		ctx, scope, selected.NetworkID, selected.DeriveType,
	); err != nil {
		return err
	}

	if !eventEmitDisabled {
		s.svc.pubsub.PublishGlobalDeriveTypeUpdate(
			s.origin(num), scope, selected.NetworkID, selected.DeriveType,
		)
	}
	return nil
}

// SyncHomeAndSwapSelectedAccount merges the selection announced by another
// scene into slot 0 when both scenes sync with home. The merge never emits,
// so it can't echo back.
func (s *Scene) SyncHomeAndSwapSelectedAccount(
	ctx context.Context, event domain.SelectedAccountUpdateEvent,
) error {
	if event.Origin.InstanceID == s.instanceID {
		return nil
	}

	local := s.Identity(0)
	if event.Origin.Scene.Equal(local) {
		return nil
	}
	if !event.Origin.Scene.SyncsWithHome() || !local.SyncsWithHome() {
		return nil
	}

	return s.svc.locks.syncHomeAndSwap.run(ctx, func(ctx context.Context) error {
		_, err := s.updateSelectedAccount(ctx, 0, true,
			func(old domain.SelectedAccount) domain.SelectedAccount {
				return domain.MergeSelectedAccount(old, event.SelectedAccount)
			},
		)
		return err
	})
}

// SyncLocalDeriveTypeFromGlobal pushes the preferred derive type of the
// slot network into the slot, without emitting.
func (s *Scene) SyncLocalDeriveTypeFromGlobal(ctx context.Context, num int) error {
	return s.svc.locks.syncLocalDeriveType.run(ctx, func(ctx context.Context) error {
		selected := s.store.Get(num)
		if selected.NetworkID == "" || domain.IsAllNetworks(selected.NetworkID) {
			return nil
		}
		deriveType := s.globalDeriveType(
			ctx, selected.NetworkID, s.name.DeriveTypeScope(),
		)
		if deriveType == selected.DeriveType ||
			!s.isDeriveTypeAvailable(ctx, selected.NetworkID, deriveType) {
			return nil
		}
		_, err := s.updateSelectedAccount(ctx, num, true,
			func(old domain.SelectedAccount) domain.SelectedAccount {
				if old.NetworkID == selected.NetworkID {
					old.DeriveType = deriveType
				}
				return old
			},
		)
		return err
	})
}

func (s *Scene) onGlobalDeriveTypeUpdate(
	ctx context.Context, event domain.GlobalDeriveTypeUpdateEvent,
) {
	if event.Origin.InstanceID == s.instanceID ||
		event.Scope != s.name.DeriveTypeScope() {
		return
	}
	for _, num := range s.store.Slots() {
		if s.store.Get(num).NetworkID != event.NetworkID {
			continue
		}
		if err := s.SyncLocalDeriveTypeFromGlobal(ctx, num); err != nil {
			s.logger(num).WithError(err).Warn("failed to sync derive type")
		}
	}
}
