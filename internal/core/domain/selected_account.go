package domain

import "time"

// DeriveType is the address derivation scheme used for a network.
type DeriveType string

// DefaultDeriveType is used whenever no explicit scheme was chosen.
const DefaultDeriveType DeriveType = "default"

// SelectedAccount is the persisted selection of a scene slot. Empty strings
// mean unset. It is a plain value: copying it is cloning it.
type SelectedAccount struct {
	WalletID              string     `json:"walletId,omitempty"`
	IndexedAccountID      string     `json:"indexedAccountId,omitempty"`
	OthersWalletAccountID string     `json:"othersWalletAccountId,omitempty"`
	NetworkID             string     `json:"networkId,omitempty"`
	DeriveType            DeriveType `json:"deriveType,omitempty"`
	FocusedWallet         string     `json:"focusedWallet,omitempty"`
}

// DefaultSelectedAccount returns the value of a slot that was never touched.
func DefaultSelectedAccount() SelectedAccount {
	return SelectedAccount{DeriveType: DefaultDeriveType}
}

// IsDefault returns whether the selection carries no information.
func (a SelectedAccount) IsDefault() bool {
	return a == SelectedAccount{} || a == DefaultSelectedAccount()
}

// HasAccount returns whether either kind of account is selected.
func (a SelectedAccount) HasAccount() bool {
	return a.IndexedAccountID != "" || a.OthersWalletAccountID != ""
}

// ClearWallet drops every wallet, account and focus reference.
func (a SelectedAccount) ClearWallet() SelectedAccount {
	a.WalletID = ""
	a.IndexedAccountID = ""
	a.OthersWalletAccountID = ""
	a.FocusedWallet = ""
	return a
}

// MergeSelectedAccount returns base overridden by the groups set in override.
// Wallet, accounts and focus move together, and so do network and derive
// type, so that a merge never pairs an account with a foreign wallet.
func MergeSelectedAccount(base, override SelectedAccount) SelectedAccount {
	merged := base
	if override.WalletID != "" {
		merged.WalletID = override.WalletID
		merged.IndexedAccountID = override.IndexedAccountID
		merged.OthersWalletAccountID = override.OthersWalletAccountID
		merged.FocusedWallet = override.FocusedWallet
	}
	if override.FocusedWallet != "" {
		merged.FocusedWallet = override.FocusedWallet
	}
	if override.NetworkID != "" {
		merged.NetworkID = override.NetworkID
		merged.DeriveType = override.DeriveType
	}
	if merged.NetworkID != "" && merged.DeriveType == "" {
		merged.DeriveType = DefaultDeriveType
	}
	return merged
}

// SelectedAccountsMap holds the selections of a scene by slot number.
type SelectedAccountsMap map[int]SelectedAccount

// Clone returns a copy of the map that can be mutated freely.
func (m SelectedAccountsMap) Clone() SelectedAccountsMap {
	if m == nil {
		return nil
	}
	cp := make(SelectedAccountsMap, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

// Equal compares two maps slot by slot.
func (m SelectedAccountsMap) Equal(other SelectedAccountsMap) bool {
	if len(m) != len(other) {
		return false
	}
	for k, v := range m {
		o, ok := other[k]
		if !ok || o != v {
			return false
		}
	}
	return true
}

// UpdateMeta is written next to every committed selection change and read by
// the persistence step that follows it.
type UpdateMeta struct {
	EventEmitDisabled bool
	UpdatedAt         time.Time
}
