package inmemory

import (
	"context"
	"fmt"

	"github.com/tdex-network/account-selector/internal/core/domain"
	"github.com/tdex-network/account-selector/internal/core/ports"
)

type networkInfo struct {
	network     domain.Network
	deriveTypes []domain.DeriveType
}

func defaultNetworks() []networkInfo {
	return []networkInfo{
		{
			network:     domain.Network{ID: "evm--1", Name: "Ethereum", Impl: "evm", ChainID: "1"},
			deriveTypes: []domain.DeriveType{domain.DefaultDeriveType, "ledgerLive"},
		},
		{
			network:     domain.Network{ID: "btc--0", Name: "Bitcoin", Impl: "btc", ChainID: "0"},
			deriveTypes: []domain.DeriveType{domain.DefaultDeriveType, "BIP44", "BIP86"},
		},
		{
			network:     domain.Network{ID: "sol--101", Name: "Solana", Impl: "sol", ChainID: "101"},
			deriveTypes: []domain.DeriveType{domain.DefaultDeriveType, "ledgerLive"},
		},
		{
			network: domain.Network{
				ID: domain.AllNetworksID, Name: "All Networks",
				Impl: domain.AllNetworksImpl, ChainID: "0",
			},
			deriveTypes: []domain.DeriveType{domain.DefaultDeriveType},
		},
	}
}

// AddNetwork registers a network with the derive types it supports. Networks
// added this way are not part of the default network accounts.
func (s *Service) AddNetwork(
	network domain.Network, deriveTypes ...domain.DeriveType,
) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if len(deriveTypes) == 0 {
		deriveTypes = []domain.DeriveType{domain.DefaultDeriveType}
	}
	s.networks[network.ID] = networkInfo{network, deriveTypes}
}

func (s *Service) GetNetwork(
	_ context.Context, networkID string,
) (*domain.Network, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	info, ok := s.networks[networkID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNetworkNotFound, networkID)
	}
	network := info.network
	return &network, nil
}

func (s *Service) IsDeriveTypeAvailableForNetwork(
	_ context.Context, networkID string, deriveType domain.DeriveType,
) (bool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	info, ok := s.networks[networkID]
	if !ok {
		return false, fmt.Errorf("%w: %s", domain.ErrNetworkNotFound, networkID)
	}
	return containsDeriveType(info.deriveTypes, deriveType), nil
}

// DefaultNetworkAccounts returns the network and derive type pairs created
// for every new indexed account.
func (s *Service) DefaultNetworkAccounts() []ports.NetworkDeriveType {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return append([]ports.NetworkDeriveType{}, s.defaultAccounts...)
}

func containsDeriveType(list []domain.DeriveType, deriveType domain.DeriveType) bool {
	for _, v := range list {
		if v == deriveType {
			return true
		}
	}
	return false
}
