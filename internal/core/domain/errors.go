package domain

import "errors"

var (
	// ErrUnknownScene is returned when parsing a scene name not in the catalogue.
	ErrUnknownScene = errors.New("unknown scene")
	// ErrBothAccountKinds is returned when an indexed and a singleton account
	// are both given where only one is allowed.
	ErrBothAccountKinds = errors.New("indexedAccount and othersWalletAccount can't be set at the same time")
	// ErrNoAccountKind is returned when neither kind of account is given.
	ErrNoAccountKind = errors.New("indexedAccount or othersWalletAccount must be set")
	// ErrMissingWalletID ...
	ErrMissingWalletID = errors.New("walletId is required")
	// ErrMissingQrDevice is returned when creating a QR wallet without the
	// scanned device info.
	ErrMissingQrDevice = errors.New("qr wallet requires device info")
	// ErrInvalidAccountIndex ...
	ErrInvalidAccountIndex = errors.New("account index must be greater than or equal to 0")
	// ErrWalletNotFound ...
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrIndexedAccountNotFound ...
	ErrIndexedAccountNotFound = errors.New("indexed account not found")
	// ErrAccountNotFound ...
	ErrAccountNotFound = errors.New("account not found")
	// ErrNetworkNotFound ...
	ErrNetworkNotFound = errors.New("network not found")
	// ErrIncompatibleNetwork is returned when an account can't be used on any
	// network of the requested implementation.
	ErrIncompatibleNetwork = errors.New("account impl not matched to network")
	// ErrMissingChainID ...
	ErrMissingChainID = errors.New("network id has no chain id")
)

// IsNotFound returns whether err is one of the lookup misses that the
// resolver tolerates field by field.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrWalletNotFound) ||
		errors.Is(err, ErrIndexedAccountNotFound) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrNetworkNotFound)
}
