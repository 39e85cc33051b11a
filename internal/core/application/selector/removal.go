package selector

import (
	"context"

	"github.com/tdex-network/account-selector/internal/core/domain"
)

type RemoveAccountParams struct {
	IndexedAccount *domain.IndexedAccount
	Account        *domain.Account
	// IsRemoveLastOthersAccount tells that the account was the last one of
	// its singleton wallet.
	IsRemoveLastOthersAccount bool
}

// RemoveAccount deletes an account and repairs slot 0.
func (s *Scene) RemoveAccount(ctx context.Context, params RemoveAccountParams) error {
	if params.IndexedAccount != nil && params.Account != nil {
		return domain.ErrBothAccountKinds
	}
	if params.IndexedAccount == nil && params.Account == nil {
		return domain.ErrNoAccountKind
	}

	if err := s.svc.account.RemoveAccount(
		ctx, params.IndexedAccount, params.Account,
	); err != nil {
		return err
	}

	trigger := domain.TriggerRemoveAccount
	if params.IsRemoveLastOthersAccount {
		trigger = domain.TriggerRemoveLastOthersAccount
	}
	defer s.svc.RefreshAll()
	return s.AutoSelectNextAccount(ctx, 0, trigger)
}

// RemoveWallet deletes a wallet, leaves edit mode and repairs slot 0.
// Hardware wallets can be turned back into a mocked placeholder instead.
func (s *Scene) RemoveWallet(
	ctx context.Context, walletID string, isRemoveToMocked bool,
) error {
	if walletID == "" {
		return domain.ErrMissingWalletID
	}
	if err := s.svc.account.RemoveWallet(ctx, walletID, isRemoveToMocked); err != nil {
		return err
	}

	s.store.SetEditMode(false)
	defer s.svc.RefreshAll()
	return s.AutoSelectNextAccount(ctx, 0, domain.TriggerRemoveWallet)
}
