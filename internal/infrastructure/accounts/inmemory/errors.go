package inmemory

import "errors"

var (
	// ErrDeriveTypeNotAvailable is returned when an account is requested for
	// a derive type its network does not support.
	ErrDeriveTypeNotAvailable = errors.New("derive type not available for network")
	// ErrNotSingletonWallet ...
	ErrNotSingletonWallet = errors.New("wallet is not a singleton wallet")
	// ErrMissingDevice is returned when creating a hardware wallet without a
	// device id.
	ErrMissingDevice = errors.New("missing device id")
)
