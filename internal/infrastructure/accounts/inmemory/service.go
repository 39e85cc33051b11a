package inmemory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/account-selector/internal/core/domain"
	"github.com/tdex-network/account-selector/internal/core/ports"
)

// Service is an in-memory wallet database. It implements the account,
// network and batch account creation ports of the selector.
type Service struct {
	lock *sync.RWMutex

	networks        map[string]networkInfo
	defaultAccounts []ports.NetworkDeriveType

	wallets     map[string]domain.Wallet
	walletOrder []string
	indexed     map[string]domain.IndexedAccount
	accounts    map[string]domain.Account
	// accountOrder keeps singleton accounts in insertion order.
	accountOrder []string

	hdCount  int
	failures map[string]error
}

func NewService() *Service {
	svc := &Service{
		lock:     &sync.RWMutex{},
		networks: make(map[string]networkInfo),
		wallets:  make(map[string]domain.Wallet),
		indexed:  make(map[string]domain.IndexedAccount),
		accounts: make(map[string]domain.Account),
		failures: make(map[string]error),
	}

	for _, info := range defaultNetworks() {
		svc.networks[info.network.ID] = info
		if domain.IsAllNetworks(info.network.ID) {
			continue
		}
		svc.defaultAccounts = append(svc.defaultAccounts, ports.NetworkDeriveType{
			NetworkID:  info.network.ID,
			DeriveType: domain.DefaultDeriveType,
		})
	}

	for _, walletID := range domain.OthersWalletIDs {
		walletType, _ := domain.SingletonWalletType(walletID)
		svc.addWallet(domain.Wallet{
			ID:   walletID,
			Name: walletID,
			Type: walletType,
		})
	}
	return svc
}

func (s *Service) GetWallet(
	_ context.Context, walletID string,
) (*domain.Wallet, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	wallet, err := s.getWallet(walletID)
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (s *Service) GetAllHdHwQrWallets(_ context.Context) ([]domain.Wallet, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	wallets := make([]domain.Wallet, 0, len(s.walletOrder))
	for _, id := range s.walletOrder {
		if w := s.wallets[id]; w.OwnsIndexedAccounts() {
			wallets = append(wallets, w)
		}
	}
	return wallets, nil
}

func (s *Service) IsWalletHasIndexedAccounts(
	_ context.Context, walletID string,
) (bool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if _, err := s.getWallet(walletID); err != nil {
		return false, err
	}
	return len(s.indexedAccountsOf(walletID)) > 0, nil
}

func (s *Service) GetIndexedAccountsOfWallet(
	_ context.Context, walletID string,
) ([]domain.IndexedAccount, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if _, err := s.getWallet(walletID); err != nil {
		return nil, err
	}
	return s.indexedAccountsOf(walletID), nil
}

func (s *Service) GetIndexedAccount(
	_ context.Context, indexedAccountID string,
) (*domain.IndexedAccount, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	indexed, ok := s.indexed[indexedAccountID]
	if !ok {
		return nil, fmt.Errorf(
			"%w: %s", domain.ErrIndexedAccountNotFound, indexedAccountID,
		)
	}
	return &indexed, nil
}

func (s *Service) GetNetworkAccount(
	_ context.Context,
	indexedAccountID, networkID string, deriveType domain.DeriveType,
) (*domain.Account, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	id := networkAccountID(indexedAccountID, networkID, deriveType)
	account, ok := s.accounts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)
	}
	return &account, nil
}

func (s *Service) GetAccount(
	_ context.Context, accountID string,
) (*domain.Account, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
	}
	return &account, nil
}

func (s *Service) GetSingletonAccountsOfWallet(
	_ context.Context, walletID, activeNetworkID string,
) ([]domain.Account, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	wallet, err := s.getWallet(walletID)
	if err != nil {
		return nil, err
	}
	if !wallet.IsOthers() {
		return nil, fmt.Errorf("%w: %s", ErrNotSingletonWallet, walletID)
	}

	var compatible, others []domain.Account
	for _, id := range s.accountOrder {
		account := s.accounts[id]
		if account.WalletID() != walletID {
			continue
		}
		if activeNetworkID != "" && account.SupportsNetwork(activeNetworkID) {
			compatible = append(compatible, account)
			continue
		}
		others = append(others, account)
	}
	return append(compatible, others...), nil
}

// ClearAccountCache is a no-op: lookups always hit the maps.
func (s *Service) ClearAccountCache() {}

// AddSingletonAccount adds an account to one of the singleton wallets.
// Accounts of evm networks are usable on every evm chain.
func (s *Service) AddSingletonAccount(
	_ context.Context, walletID, networkID, address string,
) (*domain.Account, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if !domain.IsOthersWalletID(walletID) {
		return nil, fmt.Errorf("%w: %s", ErrNotSingletonWallet, walletID)
	}
	info, ok := s.networks[networkID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNetworkNotFound, networkID)
	}

	account := domain.Account{
		ID: domain.BuildAccountID(
			walletID, fmt.Sprintf("%s--%s", info.network.Impl, address),
		),
		Name:            address,
		Impl:            info.network.Impl,
		CreateAtNetwork: networkID,
		DeriveType:      domain.DefaultDeriveType,
		Address:         address,
	}
	if info.network.Impl != "evm" {
		account.Networks = []string{networkID}
	}
	if _, ok := s.accounts[account.ID]; !ok {
		s.accountOrder = append(s.accountOrder, account.ID)
	}
	s.accounts[account.ID] = account
	return &account, nil
}

// AddIndexedAccount derives the next indexed account of a wallet.
func (s *Service) AddIndexedAccount(
	_ context.Context, walletID string,
) (*domain.IndexedAccount, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	wallet, err := s.getWallet(walletID)
	if err != nil {
		return nil, err
	}
	if !wallet.OwnsIndexedAccounts() {
		return nil, fmt.Errorf("wallet %s has no indexed accounts", walletID)
	}

	next := 0
	for _, indexed := range s.indexedAccountsOf(walletID) {
		if indexed.Index >= next {
			next = indexed.Index + 1
		}
	}
	return s.addIndexedAccount(walletID, next)
}

func (s *Service) CreateHDWallet(
	_ context.Context, params ports.CreateHDWalletParams,
) (*ports.CreateWalletResult, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.hdCount++
	name := params.Name
	if name == "" {
		name = fmt.Sprintf("Wallet %d", s.hdCount)
	}
	wallet := domain.Wallet{
		ID:   fmt.Sprintf("hd-%d", s.hdCount),
		Name: name,
		Type: domain.WalletTypeHD,
	}
	s.addWallet(wallet)

	indexed, err := s.addIndexedAccount(wallet.ID, 0)
	if err != nil {
		return nil, err
	}
	return &ports.CreateWalletResult{Wallet: wallet, IndexedAccount: indexed}, nil
}

func (s *Service) CreateHWWallet(
	_ context.Context, params ports.CreateHWWalletParams,
) (*ports.CreateWalletResult, error) {
	return s.createHWWallet(params, false)
}

func (s *Service) CreateHWHiddenWallet(
	_ context.Context, params ports.CreateHWWalletParams,
) (*ports.CreateWalletResult, error) {
	return s.createHWWallet(params, true)
}

func (s *Service) createHWWallet(
	params ports.CreateHWWalletParams, hidden bool,
) (*ports.CreateWalletResult, error) {
	if params.Device.DeviceID == "" {
		return nil, ErrMissingDevice
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	device := params.Device
	mocked := params.IsMockedStandardHwWallet && !hidden

	// A standard wallet is unique per device: creating it again restores the
	// existing one.
	if !hidden {
		if existing, ok := s.standardWalletOfDevice(device.DeviceID); ok {
			if existing.IsMocked && !mocked {
				existing.IsMocked = false
				s.wallets[existing.ID] = existing
			}
			result := &ports.CreateWalletResult{
				Wallet:           existing,
				Device:           &device,
				IsOverrideWallet: true,
			}
			if !existing.IsMocked {
				indexed, err := s.ensureFirstIndexedAccount(existing.ID)
				if err != nil {
					return nil, err
				}
				result.IndexedAccount = indexed
			}
			return result, nil
		}
	}

	name := params.Name
	if name == "" {
		name = "Hardware Wallet"
		if hidden {
			name = "Hidden Wallet"
		}
	}
	wallet := domain.Wallet{
		ID:       "hw-" + uuid.New().String(),
		Name:     name,
		Type:     domain.WalletTypeHardware,
		IsMocked: mocked,
		IsHidden: hidden,
		Device:   &device,
	}
	if hidden {
		if parent, ok := s.standardWalletOfDevice(device.DeviceID); ok {
			wallet.ParentWalletID = parent.ID
		}
	}
	s.addWallet(wallet)

	if !hidden {
		s.adoptHiddenWallets(wallet)
	}

	result := &ports.CreateWalletResult{
		Wallet:          wallet,
		Device:          &device,
		IsAttachPinMode: params.IsAttachPinMode,
	}
	if !mocked {
		indexed, err := s.addIndexedAccount(wallet.ID, 0)
		if err != nil {
			return nil, err
		}
		result.IndexedAccount = indexed
	}
	return result, nil
}

func (s *Service) CreateQrWallet(
	_ context.Context, params ports.CreateQrWalletParams,
) (*ports.CreateWalletResult, error) {
	if params.Device == nil {
		return nil, domain.ErrMissingQrDevice
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	name := params.Name
	if name == "" {
		name = "QR Wallet"
	}
	device := *params.Device
	wallet := domain.Wallet{
		ID:     "qr-" + uuid.New().String(),
		Name:   name,
		Type:   domain.WalletTypeQR,
		Device: &device,
	}
	s.addWallet(wallet)

	indexed, err := s.addIndexedAccount(wallet.ID, 0)
	if err != nil {
		return nil, err
	}
	return &ports.CreateWalletResult{
		Wallet:         wallet,
		IndexedAccount: indexed,
		Device:         &device,
	}, nil
}

func (s *Service) RemoveWallet(
	_ context.Context, walletID string, isRemoveToMocked bool,
) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	wallet, err := s.getWallet(walletID)
	if err != nil {
		return err
	}

	// Singleton wallets always exist: removing one drops its accounts.
	if wallet.IsOthers() {
		s.removeAccountsOfWallet(walletID)
		return nil
	}

	s.removeAccountsOfWallet(walletID)
	if isRemoveToMocked && wallet.Type.IsHardware() && !wallet.IsHidden {
		wallet.IsMocked = true
		s.wallets[walletID] = wallet
		return nil
	}

	for _, id := range append([]string{}, s.walletOrder...) {
		if s.wallets[id].ParentWalletID == walletID {
			s.removeAccountsOfWallet(id)
			s.deleteWallet(id)
		}
	}
	s.deleteWallet(walletID)
	return nil
}

func (s *Service) RemoveAccount(
	_ context.Context,
	indexedAccount *domain.IndexedAccount, account *domain.Account,
) error {
	if indexedAccount != nil && account != nil {
		return domain.ErrBothAccountKinds
	}
	if indexedAccount == nil && account == nil {
		return domain.ErrNoAccountKind
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if indexedAccount != nil {
		if _, ok := s.indexed[indexedAccount.ID]; !ok {
			return fmt.Errorf(
				"%w: %s", domain.ErrIndexedAccountNotFound, indexedAccount.ID,
			)
		}
		delete(s.indexed, indexedAccount.ID)
		for id, a := range s.accounts {
			if a.IndexedAccountID == indexedAccount.ID {
				s.deleteAccount(id)
			}
		}
		return nil
	}

	if _, ok := s.accounts[account.ID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, account.ID)
	}
	s.deleteAccount(account.ID)
	return nil
}

func (s *Service) UpdateWalletsDeprecatedState(
	_ context.Context, connectID, deviceID string,
) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	for id, wallet := range s.wallets {
		if !wallet.Type.IsHardware() || wallet.Device == nil ||
			wallet.Device.ConnectID != connectID {
			continue
		}
		deprecated := wallet.Device.DeviceID != deviceID
		if deprecated != wallet.Deprecated {
			wallet.Deprecated = deprecated
			s.wallets[id] = wallet
			log.WithFields(log.Fields{
				"wallet":     id,
				"deprecated": deprecated,
			}).Debug("wallet deprecation changed")
		}
	}
	return nil
}

func (s *Service) getWallet(walletID string) (domain.Wallet, error) {
	wallet, ok := s.wallets[walletID]
	if !ok {
		return domain.Wallet{}, fmt.Errorf(
			"%w: %s", domain.ErrWalletNotFound, walletID,
		)
	}
	return wallet, nil
}

func (s *Service) addWallet(wallet domain.Wallet) {
	if _, ok := s.wallets[wallet.ID]; !ok {
		s.walletOrder = append(s.walletOrder, wallet.ID)
	}
	s.wallets[wallet.ID] = wallet
}

func (s *Service) deleteWallet(walletID string) {
	delete(s.wallets, walletID)
	for i, id := range s.walletOrder {
		if id == walletID {
			s.walletOrder = append(s.walletOrder[:i], s.walletOrder[i+1:]...)
			return
		}
	}
}

func (s *Service) deleteAccount(accountID string) {
	delete(s.accounts, accountID)
	for i, id := range s.accountOrder {
		if id == accountID {
			s.accountOrder = append(s.accountOrder[:i], s.accountOrder[i+1:]...)
			return
		}
	}
}

func (s *Service) removeAccountsOfWallet(walletID string) {
	for id, indexed := range s.indexed {
		if indexed.WalletID == walletID {
			delete(s.indexed, id)
		}
	}
	for id, account := range s.accounts {
		if account.WalletID() == walletID {
			s.deleteAccount(id)
		}
	}
}

func (s *Service) indexedAccountsOf(walletID string) []domain.IndexedAccount {
	var list []domain.IndexedAccount
	for _, indexed := range s.indexed {
		if indexed.WalletID == walletID {
			list = append(list, indexed)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Index < list[j].Index })
	return list
}

func (s *Service) addIndexedAccount(
	walletID string, index int,
) (*domain.IndexedAccount, error) {
	id, err := domain.BuildIndexedAccountID(walletID, index)
	if err != nil {
		return nil, err
	}
	indexed := domain.IndexedAccount{
		ID:       id,
		WalletID: walletID,
		Index:    index,
		Name:     fmt.Sprintf("Account #%d", index+1),
	}
	s.indexed[id] = indexed
	return &indexed, nil
}

func (s *Service) ensureFirstIndexedAccount(
	walletID string,
) (*domain.IndexedAccount, error) {
	if list := s.indexedAccountsOf(walletID); len(list) > 0 {
		return &list[0], nil
	}
	return s.addIndexedAccount(walletID, 0)
}

func (s *Service) standardWalletOfDevice(deviceID string) (domain.Wallet, bool) {
	for _, id := range s.walletOrder {
		w := s.wallets[id]
		if w.Type.IsHardware() && !w.IsHidden && w.Device != nil &&
			w.Device.DeviceID == deviceID {
			return w, true
		}
	}
	return domain.Wallet{}, false
}

func (s *Service) adoptHiddenWallets(parent domain.Wallet) {
	for id, w := range s.wallets {
		if w.IsHidden && w.ParentWalletID == "" && w.Device != nil &&
			w.Device.DeviceID == parent.Device.DeviceID {
			w.ParentWalletID = parent.ID
			s.wallets[id] = w
		}
	}
}

func networkAccountID(
	indexedAccountID, networkID string, deriveType domain.DeriveType,
) string {
	return strings.Join(
		[]string{indexedAccountID, networkID, string(deriveType)}, "--",
	)
}
