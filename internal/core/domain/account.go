package domain

import "fmt"

const (
	// AllNetworksImpl is the pseudo implementation of the all-networks view.
	AllNetworksImpl = "onekeyall"
	// AllNetworksID is the sentinel network covering every network.
	AllNetworksID = AllNetworksImpl + idSeparator + "0"
)

// IsAllNetworks returns whether the network id is the all-networks sentinel.
func IsAllNetworks(networkID string) bool {
	impl, _ := ParseNetworkID(networkID)
	return impl == AllNetworksImpl
}

type Network struct {
	ID      string
	Name    string
	Impl    string
	ChainID string
}

// IndexedAccount is an account derived from an HD, hardware or QR wallet at
// a given index. It groups the network accounts of every chain.
type IndexedAccount struct {
	ID       string
	WalletID string
	Index    int
	Name     string
}

// Account is a network account. Accounts of singleton wallets exist only in
// this form.
type Account struct {
	ID               string
	Name             string
	Impl             string
	CreateAtNetwork  string
	Networks         []string
	IndexedAccountID string
	DeriveType       DeriveType
	Address          string
}

// WalletID returns the id of the wallet owning the account.
func (a Account) WalletID() string {
	return WalletIDFromAccountID(a.ID)
}

// SupportsNetwork returns whether the account can be used on the given
// network.
func (a Account) SupportsNetwork(networkID string) bool {
	if IsAllNetworks(networkID) {
		return true
	}
	impl, _ := ParseNetworkID(networkID)
	if impl != a.Impl {
		return false
	}
	if len(a.Networks) == 0 {
		return true
	}
	for _, n := range a.Networks {
		if n == networkID {
			return true
		}
	}
	return false
}

// CompatibleNetwork returns the network the account should be shown on when
// the user is looking at networkID.
func (a Account) CompatibleNetwork(networkID string) (string, error) {
	if IsAllNetworks(networkID) {
		return networkID, nil
	}

	compatible := networkID
	if impl, _ := ParseNetworkID(compatible); impl != a.Impl {
		compatible = a.CreateAtNetwork
	}
	if len(a.Networks) > 0 && !contains(a.Networks, compatible) {
		compatible = a.Networks[0]
	}

	impl, chainID := ParseNetworkID(compatible)
	if compatible != "" && impl != a.Impl {
		return "", fmt.Errorf(
			"%w: account %s (%s), network %s",
			ErrIncompatibleNetwork, a.ID, a.Impl, compatible,
		)
	}
	if chainID == "" {
		return "", fmt.Errorf("%w: %q", ErrMissingChainID, compatible)
	}
	return compatible, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
