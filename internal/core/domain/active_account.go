package domain

// ActiveAccountInfo is the resolved form of a SelectedAccount. It is never
// persisted.
type ActiveAccountInfo struct {
	Wallet         *Wallet
	IndexedAccount *IndexedAccount
	Account        *Account
	Network        *Network
	DeriveType     DeriveType
	// Ready is true once resolution completed, successfully or not.
	Ready bool
}

// DefaultActiveAccountInfo is the "ready but empty" terminal state.
func DefaultActiveAccountInfo() ActiveAccountInfo {
	return ActiveAccountInfo{DeriveType: DefaultDeriveType, Ready: true}
}

// AccountExists returns whether any kind of account was resolved.
func (i ActiveAccountInfo) AccountExists() bool {
	return i.IndexedAccount != nil || i.Account != nil
}

// IsUsable returns whether a wallet, a network and an account were all
// resolved.
func (i ActiveAccountInfo) IsUsable() bool {
	return i.Ready && i.Wallet != nil && i.Network != nil && i.AccountExists()
}
