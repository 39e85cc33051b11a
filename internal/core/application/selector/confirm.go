package selector

import (
	"context"

	"github.com/tdex-network/account-selector/internal/core/domain"
	"github.com/tdex-network/account-selector/internal/core/ports"
)

type ConfirmAccountSelectParams struct {
	Num            int
	IndexedAccount *domain.IndexedAccount
	OthersAccount  *domain.Account
	// AutoChangeToAccountMatchedNetworkID switches the slot to the network of
	// the singleton account compatible with it.
	AutoChangeToAccountMatchedNetworkID string
	// ForceSelectToNetworkID wins over AutoChangeToAccountMatchedNetworkID.
	ForceSelectToNetworkID string
}

// ConfirmAccountSelect commits the account picked in the selector. Exactly
// one kind of account must be given.
func (s *Scene) ConfirmAccountSelect(
	ctx context.Context, params ConfirmAccountSelectParams,
) error {
	if params.IndexedAccount != nil && params.OthersAccount != nil {
		return domain.ErrBothAccountKinds
	}
	if params.IndexedAccount == nil && params.OthersAccount == nil {
		return domain.ErrNoAccountKind
	}

	if params.IndexedAccount != nil {
		walletID := domain.WalletIDFromAccountID(params.IndexedAccount.ID)
		if walletID == "" {
			return domain.ErrMissingWalletID
		}
		if _, err := s.UpdateSelectedAccount(ctx, params.Num,
			func(old domain.SelectedAccount) domain.SelectedAccount {
				old.WalletID = walletID
				old.IndexedAccountID = params.IndexedAccount.ID
				old.OthersWalletAccountID = ""
				old.FocusedWallet = walletID
				if params.ForceSelectToNetworkID != "" {
					old.NetworkID = params.ForceSelectToNetworkID
				}
				return old
			},
		); err != nil {
			return err
		}
	} else {
		networkID := params.AutoChangeToAccountMatchedNetworkID
		if params.ForceSelectToNetworkID != "" {
			networkID = params.ForceSelectToNetworkID
		}
		if err := s.UpdateSelectedAccountForSingletonAccount(
			ctx, params.Num, params.OthersAccount.ID, networkID,
		); err != nil {
			return err
		}
	}

	s.svc.pubsub.PublishConfirmAccountSelected(
		s.origin(params.Num), params.IndexedAccount, params.OthersAccount,
		s.store.Get(params.Num).NetworkID,
	)
	return nil
}

type ShowAccountSelectorParams struct {
	Num int
	// LinkNetworkID is the network the selector lists accounts for. It
	// defaults to the network of the slot.
	LinkNetworkID string
	EditMode      bool
}

// ShowAccountSelector focuses the active wallet, leaves edit mode and asks
// the navigator to open the selector.
func (s *Scene) ShowAccountSelector(
	ctx context.Context, params ShowAccountSelectorParams,
) error {
	if s.svc.nav == nil {
		return ErrMissingNavigator
	}

	selected := s.store.Get(params.Num)
	if selected.WalletID != "" {
		if err := s.UpdateSelectedAccountFocusedWallet(
			ctx, params.Num, domain.FocusForWallet(selected.WalletID),
		); err != nil {
			return err
		}
	}
	s.store.SetEditMode(false)

	linkNetworkID := params.LinkNetworkID
	if linkNetworkID == "" {
		linkNetworkID = selected.NetworkID
	}
	var linkDeriveType domain.DeriveType
	if linkNetworkID != "" {
		linkDeriveType = s.globalDeriveType(
			ctx, linkNetworkID, s.name.DeriveTypeScope(),
		)
	}

	return s.svc.nav.PushAccountSelector(ctx, ports.AccountSelectorParams{
		Scene:                 s.Identity(params.Num),
		LinkNetworkID:         linkNetworkID,
		LinkNetworkDeriveType: linkDeriveType,
		EditMode:              params.EditMode,
	})
}
