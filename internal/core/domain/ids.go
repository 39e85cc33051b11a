package domain

import (
	"fmt"
	"strings"
)

const idSeparator = "--"

// URLAccountID is the watch-only account bound to a dapp url. It is the only
// account the homeUrlAccount scene is allowed to keep.
const URLAccountID = WalletIDWatching + idSeparator + "global-url-account"

// BuildIndexedAccountID returns the id of the indexed account of a wallet at
// the given derivation index.
func BuildIndexedAccountID(walletID string, index int) (string, error) {
	if index < 0 {
		return "", ErrInvalidAccountIndex
	}
	return fmt.Sprintf("%s%s%d", walletID, idSeparator, index), nil
}

// BuildAccountID joins a wallet id and an account suffix.
func BuildAccountID(walletID, suffix string) string {
	return walletID + idSeparator + suffix
}

// WalletIDFromAccountID returns the id of the wallet owning the given
// account or indexed account.
func WalletIDFromAccountID(accountID string) string {
	walletID, _, _ := strings.Cut(accountID, idSeparator)
	return walletID
}

// BuildNetworkID joins an implementation and a chain id.
func BuildNetworkID(impl, chainID string) string {
	return impl + idSeparator + chainID
}

// ParseNetworkID splits a network id into implementation and chain id.
func ParseNetworkID(networkID string) (impl, chainID string) {
	impl, chainID, _ = strings.Cut(networkID, idSeparator)
	return
}
