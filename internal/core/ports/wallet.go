package ports

import (
	"context"

	"github.com/tdex-network/account-selector/internal/core/domain"
)

// AccountService resolves and manages wallets and accounts. Lookups of
// missing objects return one of the domain not-found errors.
type AccountService interface {
	GetWallet(ctx context.Context, walletID string) (*domain.Wallet, error)
	// GetAllHdHwQrWallets returns the wallets owning indexed accounts, in a
	// stable order.
	GetAllHdHwQrWallets(ctx context.Context) ([]domain.Wallet, error)
	IsWalletHasIndexedAccounts(ctx context.Context, walletID string) (bool, error)
	GetIndexedAccountsOfWallet(
		ctx context.Context, walletID string,
	) ([]domain.IndexedAccount, error)
	GetIndexedAccount(
		ctx context.Context, indexedAccountID string,
	) (*domain.IndexedAccount, error)
	// GetNetworkAccount returns the account derived from an indexed account
	// for a network and derive type.
	GetNetworkAccount(
		ctx context.Context,
		indexedAccountID, networkID string, deriveType domain.DeriveType,
	) (*domain.Account, error)
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	// GetSingletonAccountsOfWallet lists the accounts of a singleton wallet,
	// compatible ones with activeNetworkID first.
	GetSingletonAccountsOfWallet(
		ctx context.Context, walletID, activeNetworkID string,
	) ([]domain.Account, error)
	// ClearAccountCache drops any cached lookup so that accounts created by
	// another component become visible.
	ClearAccountCache()

	CreateHDWallet(
		ctx context.Context, params CreateHDWalletParams,
	) (*CreateWalletResult, error)
	CreateHWWallet(
		ctx context.Context, params CreateHWWalletParams,
	) (*CreateWalletResult, error)
	CreateHWHiddenWallet(
		ctx context.Context, params CreateHWWalletParams,
	) (*CreateWalletResult, error)
	CreateQrWallet(
		ctx context.Context, params CreateQrWalletParams,
	) (*CreateWalletResult, error)

	// RemoveWallet deletes a wallet. Hardware wallets can be turned back into
	// a mocked placeholder instead.
	RemoveWallet(ctx context.Context, walletID string, isRemoveToMocked bool) error
	// RemoveAccount deletes either an indexed account or a singleton account.
	RemoveAccount(
		ctx context.Context,
		indexedAccount *domain.IndexedAccount, account *domain.Account,
	) error
	// UpdateWalletsDeprecatedState marks as deprecated every hardware wallet
	// of a device except the one matching deviceID.
	UpdateWalletsDeprecatedState(ctx context.Context, connectID, deviceID string) error
}

// NetworkService resolves networks and derive type availability.
type NetworkService interface {
	GetNetwork(ctx context.Context, networkID string) (*domain.Network, error)
	IsDeriveTypeAvailableForNetwork(
		ctx context.Context, networkID string, deriveType domain.DeriveType,
	) (bool, error)
}

type NetworkDeriveType struct {
	NetworkID  string
	DeriveType domain.DeriveType
}

type FailedAccount struct {
	NetworkDeriveType
	Err error
}

type AddDefaultNetworkAccountsParams struct {
	WalletID                  string
	IndexedAccountID          string
	SkipDeviceCancel          bool
	HideCheckingDeviceLoading bool
	// CustomNetworks are created on top of the default ones.
	CustomNetworks []NetworkDeriveType
}

// AddDefaultNetworkAccountsResult reports every network/derive type pair
// independently. A failed pair never aborts the others.
type AddDefaultNetworkAccountsResult struct {
	Added  []NetworkDeriveType
	Failed []FailedAccount
}

// BatchAccountCreator generates the default network accounts of a new wallet.
type BatchAccountCreator interface {
	AddDefaultNetworkAccounts(
		ctx context.Context, params AddDefaultNetworkAccountsParams,
	) (*AddDefaultNetworkAccountsResult, error)
}

type CreateHDWalletParams struct {
	Name     string
	Mnemonic string
}

type CreateHWWalletParams struct {
	Name   string
	Device domain.Device
	// PassphraseProtection asks the device for a hidden wallet.
	PassphraseProtection      bool
	IsAttachPinMode           bool
	IsMockedStandardHwWallet  bool
	SkipDeviceCancel          bool
	HideCheckingDeviceLoading bool
}

type CreateQrWalletParams struct {
	Name         string
	Device       *domain.Device
	IsOnboarding bool
}

type CreateWalletResult struct {
	Wallet           domain.Wallet
	IndexedAccount   *domain.IndexedAccount
	Device           *domain.Device
	IsOverrideWallet bool
	IsAttachPinMode  bool
}
