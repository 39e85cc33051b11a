package selector

import (
	"context"

	"github.com/tdex-network/account-selector/internal/core/domain"
)

// ReloadActiveAccountInfo resolves the current selection of a slot and
// caches the result. Resolution errors are never returned: they turn into a
// ready but empty info.
func (s *Scene) ReloadActiveAccountInfo(
	ctx context.Context, num int,
) (domain.ActiveAccountInfo, error) {
	var info domain.ActiveAccountInfo
	err := s.svc.locks.reloadActiveAccountInfo.run(
		ctx, func(ctx context.Context) error {
			selected := s.store.Get(num)
			info = s.resolve(ctx, num, selected)
			s.store.setActiveAccountInfo(num, selected, info)
			return nil
		},
	)
	return info, err
}

func (s *Scene) resolve(
	ctx context.Context, num int, selected domain.SelectedAccount,
) domain.ActiveAccountInfo {
	info, err := s.svc.resolveSelectedAccount(ctx, selected)
	if err != nil {
		s.logger(num).WithError(err).Warn(
			"failed to resolve selected account, falling back to empty",
		)
		return domain.DefaultActiveAccountInfo()
	}
	return info
}

// resolveSelectedAccount looks up every object referenced by the selection.
// A missing object leaves its field nil; any other failure is returned.
func (s *Service) resolveSelectedAccount(
	ctx context.Context, selected domain.SelectedAccount,
) (domain.ActiveAccountInfo, error) {
	info := domain.ActiveAccountInfo{DeriveType: selected.DeriveType}
	if info.DeriveType == "" {
		info.DeriveType = domain.DefaultDeriveType
	}

	if selected.WalletID != "" {
		wallet, err := s.account.GetWallet(ctx, selected.WalletID)
		if err != nil && !domain.IsNotFound(err) {
			return info, err
		}
		info.Wallet = wallet
	}

	if selected.NetworkID != "" {
		network, err := s.network.GetNetwork(ctx, selected.NetworkID)
		if err != nil && !domain.IsNotFound(err) {
			return info, err
		}
		info.Network = network
	}

	if info.Wallet == nil {
		info.Ready = true
		return info, nil
	}

	switch {
	case info.Wallet.OwnsIndexedAccounts() && selected.IndexedAccountID != "":
		indexed, err := s.account.GetIndexedAccount(ctx, selected.IndexedAccountID)
		if err != nil && !domain.IsNotFound(err) {
			return info, err
		}
		if indexed != nil && indexed.WalletID != info.Wallet.ID {
			indexed = nil
		}
		info.IndexedAccount = indexed

		if indexed != nil && info.Network != nil &&
			!domain.IsAllNetworks(info.Network.ID) {
			account, err := s.account.GetNetworkAccount(
				ctx, indexed.ID, info.Network.ID, info.DeriveType,
			)
			if err != nil && !domain.IsNotFound(err) {
				return info, err
			}
			info.Account = account
		}

	case info.Wallet.IsOthers() && selected.OthersWalletAccountID != "":
		account, err := s.account.GetAccount(ctx, selected.OthersWalletAccountID)
		if err != nil && !domain.IsNotFound(err) {
			return info, err
		}
		if account != nil && account.WalletID() != info.Wallet.ID {
			account = nil
		}
		if account != nil && info.Network != nil &&
			!account.SupportsNetwork(info.Network.ID) {
			account = nil
		}
		info.Account = account
	}

	info.Ready = true
	return info, nil
}
