package selector

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/account-selector/internal/core/domain"
)

const (
	autoSelectSkipped  = "skipped"
	autoSelectNoop     = "noop"
	autoSelectSelected = "selected"
	autoSelectCleared  = "cleared"
)

// AutoSelectNextAccount replaces a selection that can't be resolved anymore
// with the first usable account, or clears it when there is none.
func (s *Scene) AutoSelectNextAccount(
	ctx context.Context, num int, trigger domain.AutoSelectTrigger,
) error {
	if !s.name.CanAutoSelect() {
		return nil
	}
	if err := sleep(ctx, s.svc.cfg.AutoSelectSettleDelay); err != nil {
		return err
	}
	if !s.store.StorageReady() {
		s.svc.metrics.IncAutoSelect(s.name, autoSelectSkipped)
		return nil
	}

	return s.svc.locks.autoSelectNextAccount.run(
		ctx, func(ctx context.Context) error {
			return s.autoSelectNextAccount(ctx, num, trigger)
		},
	)
}

func (s *Scene) autoSelectNextAccount(
	ctx context.Context, num int, trigger domain.AutoSelectTrigger,
) error {
	logger := s.logger(num).WithField("trigger", trigger)

	info, err := s.ReloadActiveAccountInfo(ctx, num)
	if err != nil {
		return err
	}
	selected := s.store.Get(num)

	needsFix := selected.FocusedWallet == "" || info.Network == nil ||
		info.Wallet == nil || !info.AccountExists()
	if !needsFix {
		s.svc.metrics.IncAutoSelect(s.name, autoSelectNoop)
		if trigger == domain.TriggerRemoveWallet ||
			trigger == domain.TriggerRemoveLastOthersAccount {
			_, err := s.UpdateSelectedAccount(ctx, num,
				func(old domain.SelectedAccount) domain.SelectedAccount {
					old.FocusedWallet = domain.FocusForWallet(old.WalletID)
					return old
				},
			)
			return err
		}
		return nil
	}

	logger.Info("auto selecting account")
	next := selected

	if info.Network == nil && s.svc.cfg.DefaultNetworkID != "" {
		next.NetworkID = s.svc.cfg.DefaultNetworkID
	}

	hasIndexedAccounts := false
	if next.WalletID != "" {
		hasIndexedAccounts, err = s.svc.account.IsWalletHasIndexedAccounts(
			ctx, next.WalletID,
		)
		if err != nil && !domain.IsNotFound(err) {
			return err
		}
	}

	if next.WalletID == "" || !hasIndexedAccounts {
		othersFound := false
		if domain.IsOthersWalletID(next.WalletID) {
			accounts, err := s.svc.account.GetSingletonAccountsOfWallet(
				ctx, next.WalletID, next.NetworkID,
			)
			if err != nil {
				return err
			}
			for _, account := range accounts {
				if account.SupportsNetwork(next.NetworkID) {
					othersFound = true
					break
				}
			}
		}

		if !othersFound {
			walletID, indexedAccountID, err := s.firstHdHwQrIndexedAccount(ctx)
			if err != nil {
				return err
			}
			next = next.ClearWallet()
			if walletID != "" {
				next.WalletID = walletID
				next.IndexedAccountID = indexedAccountID
				next.FocusedWallet = walletID
			}
		}
	}

	if err := s.fixAccountOfWallet(ctx, &next); err != nil {
		return err
	}

	if next.IndexedAccountID == "" && next.OthersWalletAccountID == "" {
		if err := s.selectFirstSingletonAccount(ctx, &next); err != nil {
			return err
		}
	}

	if next.WalletID != "" {
		wallet, err := s.svc.account.GetWallet(ctx, next.WalletID)
		if err != nil && !domain.IsNotFound(err) {
			return err
		}
		switch {
		case wallet == nil, !next.HasAccount():
			next = next.ClearWallet()
		case wallet.IsOthers() && next.OthersWalletAccountID == "":
			next = next.ClearWallet()
		}
	}
	if next.WalletID == "" {
		next = next.ClearWallet()
	}
	if next.WalletID != "" && next.FocusedWallet == "" {
		next.FocusedWallet = domain.FocusForWallet(next.WalletID)
	}

	if _, err := s.UpdateSelectedAccount(ctx, num,
		func(domain.SelectedAccount) domain.SelectedAccount { return next },
	); err != nil {
		return err
	}

	if next.WalletID != selected.WalletID &&
		trigger != domain.TriggerRemoveLastOthersAccount &&
		trigger != domain.TriggerRemoveAccount {
		s.store.SetEditMode(false)
	}

	outcome := autoSelectSelected
	if next.WalletID == "" {
		outcome = autoSelectCleared
	}
	s.svc.metrics.IncAutoSelect(s.name, outcome)
	logger.WithFields(log.Fields{
		"old": selected,
		"new": next,
	}).Info("auto select done")
	return nil
}

// firstHdHwQrIndexedAccount returns the first indexed account of the first
// non-mocked wallet owning one.
func (s *Scene) firstHdHwQrIndexedAccount(
	ctx context.Context,
) (walletID, indexedAccountID string, err error) {
	if err := sleep(ctx, s.svc.cfg.HwAccountSettleDelay); err != nil {
		return "", "", err
	}
	s.svc.account.ClearAccountCache()

	wallets, err := s.svc.account.GetAllHdHwQrWallets(ctx)
	if err != nil {
		return "", "", err
	}
	for _, w := range wallets {
		if w.IsMocked {
			continue
		}
		accounts, err := s.svc.account.GetIndexedAccountsOfWallet(ctx, w.ID)
		if err != nil {
			if domain.IsNotFound(err) {
				continue
			}
			return "", "", err
		}
		if len(accounts) > 0 {
			return w.ID, accounts[0].ID, nil
		}
	}
	return "", "", nil
}

// fixAccountOfWallet makes the account fields of next consistent with the
// kind of wallet it points to.
func (s *Scene) fixAccountOfWallet(
	ctx context.Context, next *domain.SelectedAccount,
) error {
	if next.WalletID == "" {
		return nil
	}
	wallet, err := s.svc.account.GetWallet(ctx, next.WalletID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil
		}
		return err
	}

	if wallet.OwnsIndexedAccounts() {
		belongs := false
		if next.IndexedAccountID != "" &&
			domain.WalletIDFromAccountID(next.IndexedAccountID) == wallet.ID {
			indexed, err := s.svc.account.GetIndexedAccount(ctx, next.IndexedAccountID)
			if err != nil && !domain.IsNotFound(err) {
				return err
			}
			belongs = indexed != nil && indexed.WalletID == wallet.ID
		}
		if !belongs {
			accounts, err := s.svc.account.GetIndexedAccountsOfWallet(ctx, wallet.ID)
			if err != nil && !domain.IsNotFound(err) {
				return err
			}
			next.IndexedAccountID = ""
			if len(accounts) > 0 {
				next.IndexedAccountID = accounts[0].ID
			}
			next.FocusedWallet = wallet.ID
		}
		next.OthersWalletAccountID = ""
		return nil
	}

	if wallet.IsOthers() {
		next.IndexedAccountID = ""
		next.FocusedWallet = domain.FocusedWalletOthers
		if next.OthersWalletAccountID != "" {
			account, err := s.svc.account.GetAccount(ctx, next.OthersWalletAccountID)
			if err != nil && !domain.IsNotFound(err) {
				return err
			}
			if account == nil || account.WalletID() != wallet.ID ||
				!account.SupportsNetwork(next.NetworkID) {
				next.OthersWalletAccountID = ""
			}
		}
	}
	return nil
}

// selectFirstSingletonAccount scans the singleton wallets in their fixed
// order and selects the first account found, on a network it supports.
func (s *Scene) selectFirstSingletonAccount(
	ctx context.Context, next *domain.SelectedAccount,
) error {
	for _, walletID := range domain.OthersWalletIDs {
		accounts, err := s.svc.account.GetSingletonAccountsOfWallet(
			ctx, walletID, next.NetworkID,
		)
		if err != nil {
			if domain.IsNotFound(err) {
				continue
			}
			return err
		}
		if len(accounts) == 0 {
			continue
		}

		account := accounts[0]
		networkID, err := account.CompatibleNetwork(next.NetworkID)
		if err != nil {
			s.logger(0).WithError(err).Debug("skipping incompatible account")
			continue
		}
		next.WalletID = walletID
		next.IndexedAccountID = ""
		next.OthersWalletAccountID = account.ID
		next.FocusedWallet = domain.FocusedWalletOthers
		if networkID != next.NetworkID {
			next.NetworkID = networkID
			next.DeriveType = domain.DefaultDeriveType
		}
		return nil
	}
	return nil
}

// AutoSelectNetworkOfOthersWalletAccount switches the slot to a network the
// given singleton account supports.
func (s *Scene) AutoSelectNetworkOfOthersWalletAccount(
	ctx context.Context, num int, othersWalletAccountID string,
) error {
	account, err := s.svc.account.GetAccount(ctx, othersWalletAccountID)
	if err != nil {
		return err
	}
	networkID, err := account.CompatibleNetwork(s.store.Get(num).NetworkID)
	if err != nil {
		return err
	}
	return s.UpdateSelectedAccountNetwork(ctx, num, networkID)
}

// AutoSelectHomeNextAvailableAccount repairs slot 0 of the home scene when it
// points at walletID, or unconditionally when walletID is empty.
func (s *Scene) AutoSelectHomeNextAvailableAccount(
	ctx context.Context, walletID string,
) error {
	home := s
	if s.name != domain.SceneHome {
		home = s.svc.findScene(domain.HomeScene)
	}
	if home == nil {
		return s.clearStoredHomeWallet(ctx, walletID)
	}

	selected := home.store.Get(0)
	if walletID != "" && selected.WalletID != walletID {
		return nil
	}
	return home.AutoSelectNextAccount(ctx, 0, domain.TriggerRemoveWallet)
}

// clearStoredHomeWallet clears the persisted home selection when no home
// scene is mounted to repair it.
func (s *Scene) clearStoredHomeWallet(ctx context.Context, walletID string) error {
	repo := s.svc.repo.SelectedAccountRepository()
	stored, err := repo.GetSelectedAccount(ctx, domain.HomeScene)
	if err != nil || stored == nil {
		return err
	}
	if walletID != "" && stored.WalletID != walletID {
		return nil
	}
	return repo.SaveSelectedAccount(ctx, domain.HomeScene, stored.ClearWallet())
}
