package inmemory

import (
	"context"
	"fmt"

	"github.com/tdex-network/account-selector/internal/core/domain"
	"github.com/tdex-network/account-selector/internal/core/ports"
)

// FailAccountCreation makes every later account creation on networkID fail
// with err. A nil err clears the failure.
func (s *Service) FailAccountCreation(networkID string, err error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err == nil {
		delete(s.failures, networkID)
		return
	}
	s.failures[networkID] = err
}

// AddDefaultNetworkAccounts derives, for the given indexed account or every
// indexed account of the wallet, one account per default network plus the
// custom ones. Each pair succeeds or fails on its own.
func (s *Service) AddDefaultNetworkAccounts(
	ctx context.Context, params ports.AddDefaultNetworkAccountsParams,
) (*ports.AddDefaultNetworkAccountsResult, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	wallet, err := s.getWallet(params.WalletID)
	if err != nil {
		return nil, err
	}
	result := &ports.AddDefaultNetworkAccountsResult{}
	if wallet.IsMocked || !wallet.OwnsIndexedAccounts() {
		return result, nil
	}

	indexedAccounts := s.indexedAccountsOf(wallet.ID)
	if params.IndexedAccountID != "" {
		indexed, ok := s.indexed[params.IndexedAccountID]
		if !ok || indexed.WalletID != wallet.ID {
			return nil, fmt.Errorf(
				"%w: %s", domain.ErrIndexedAccountNotFound, params.IndexedAccountID,
			)
		}
		indexedAccounts = []domain.IndexedAccount{indexed}
	}

	for _, pair := range s.networkDeriveTypes(params.CustomNetworks) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.createNetworkAccounts(indexedAccounts, pair); err != nil {
			result.Failed = append(result.Failed, ports.FailedAccount{
				NetworkDeriveType: pair,
				Err:               err,
			})
			continue
		}
		result.Added = append(result.Added, pair)
	}
	return result, nil
}

func (s *Service) networkDeriveTypes(
	custom []ports.NetworkDeriveType,
) []ports.NetworkDeriveType {
	pairs := append([]ports.NetworkDeriveType{}, s.defaultAccounts...)
	for _, c := range custom {
		if c.DeriveType == "" {
			c.DeriveType = domain.DefaultDeriveType
		}
		found := false
		for _, p := range pairs {
			if p == c {
				found = true
				break
			}
		}
		if !found {
			pairs = append(pairs, c)
		}
	}
	return pairs
}

func (s *Service) createNetworkAccounts(
	indexedAccounts []domain.IndexedAccount, pair ports.NetworkDeriveType,
) error {
	if err := s.failures[pair.NetworkID]; err != nil {
		return err
	}
	info, ok := s.networks[pair.NetworkID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNetworkNotFound, pair.NetworkID)
	}
	if !containsDeriveType(info.deriveTypes, pair.DeriveType) {
		return fmt.Errorf(
			"%w: %s on %s", ErrDeriveTypeNotAvailable, pair.DeriveType, pair.NetworkID,
		)
	}

	for _, indexed := range indexedAccounts {
		id := networkAccountID(indexed.ID, pair.NetworkID, pair.DeriveType)
		s.accounts[id] = domain.Account{
			ID:               id,
			Name:             indexed.Name,
			Impl:             info.network.Impl,
			CreateAtNetwork:  pair.NetworkID,
			IndexedAccountID: indexed.ID,
			DeriveType:       pair.DeriveType,
		}
	}
	return nil
}
