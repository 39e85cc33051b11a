package domain

// WalletType tags the wallet variants. Behaviour is dispatched on the tag
// through the capability methods below.
type WalletType int

const (
	WalletTypeHD WalletType = iota
	WalletTypeHardware
	WalletTypeQR
	WalletTypeImported
	WalletTypeWatching
	WalletTypeExternal
)

const (
	WalletIDImported = "imported"
	WalletIDWatching = "watching"
	WalletIDExternal = "external"
)

// FocusedWalletOthers is the selector cursor value for the whole group of
// singleton wallets.
const FocusedWalletOthers = "$$others"

// FocusForWallet returns the focused wallet value that shows walletID.
func FocusForWallet(walletID string) string {
	if IsOthersWalletID(walletID) {
		return FocusedWalletOthers
	}
	return walletID
}

// OthersWalletIDs lists the singleton wallets in the order auto-select scans
// them.
var OthersWalletIDs = []string{
	WalletIDImported,
	WalletIDWatching,
	WalletIDExternal,
}

var singletonWalletTypes = map[string]WalletType{
	WalletIDImported: WalletTypeImported,
	WalletIDWatching: WalletTypeWatching,
	WalletIDExternal: WalletTypeExternal,
}

func (t WalletType) String() string {
	switch t {
	case WalletTypeHD:
		return "hd"
	case WalletTypeHardware:
		return "hw"
	case WalletTypeQR:
		return "qr"
	case WalletTypeImported:
		return WalletIDImported
	case WalletTypeWatching:
		return WalletIDWatching
	case WalletTypeExternal:
		return WalletIDExternal
	default:
		return "unknown"
	}
}

// OwnsIndexedAccounts returns whether accounts of the wallet are derived at
// an index.
func (t WalletType) OwnsIndexedAccounts() bool {
	return t == WalletTypeHD || t == WalletTypeHardware || t == WalletTypeQR
}

// IsSingleton returns whether the wallet is one of the flat list "others"
// wallets. There is exactly one wallet per singleton type.
func (t WalletType) IsSingleton() bool {
	return t == WalletTypeImported || t == WalletTypeWatching ||
		t == WalletTypeExternal
}

func (t WalletType) IsHardware() bool {
	return t == WalletTypeHardware
}

func (t WalletType) IsAirGapped() bool {
	return t == WalletTypeQR
}

// SingletonWalletType returns the type of a singleton wallet id.
func SingletonWalletType(walletID string) (WalletType, bool) {
	t, ok := singletonWalletTypes[walletID]
	return t, ok
}

// IsOthersWalletID returns whether the id names one of the singleton wallets.
func IsOthersWalletID(walletID string) bool {
	_, ok := singletonWalletTypes[walletID]
	return ok
}

// Device describes the hardware or air-gapped device backing a wallet.
type Device struct {
	ConnectID    string
	BLEConnectID string
	DeviceID     string
}

// Wallet is a resolved wallet.
type Wallet struct {
	ID             string
	Name           string
	Type           WalletType
	IsMocked       bool
	IsHidden       bool
	ParentWalletID string
	Deprecated     bool
	Device         *Device
}

// OwnsIndexedAccounts is a shortcut on the wallet type.
func (w Wallet) OwnsIndexedAccounts() bool {
	return w.Type.OwnsIndexedAccounts()
}

// IsOthers returns whether the wallet belongs to the "Others" group.
func (w Wallet) IsOthers() bool {
	return w.Type.IsSingleton()
}
