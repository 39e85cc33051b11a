package inmemory

import (
	"context"
	"sync"

	"github.com/tdex-network/account-selector/internal/core/domain"
)

// DeriveTypeRepositoryImpl represents an in memory storage
type DeriveTypeRepositoryImpl struct {
	table domain.GlobalDeriveTypes

	lock *sync.RWMutex
}

func NewDeriveTypeRepositoryImpl() *DeriveTypeRepositoryImpl {
	return &DeriveTypeRepositoryImpl{
		table: domain.GlobalDeriveTypes{},
		lock:  &sync.RWMutex{},
	}
}

func (r *DeriveTypeRepositoryImpl) GetGlobalDeriveTypes(
	_ context.Context,
) (domain.GlobalDeriveTypes, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	table := make(domain.GlobalDeriveTypes, len(r.table))
	for scope, byNetwork := range r.table {
		for networkID, deriveType := range byNetwork {
			table.Set(scope, networkID, deriveType)
		}
	}
	return table, nil
}

func (r *DeriveTypeRepositoryImpl) SaveGlobalDeriveType(
	_ context.Context,
	scope domain.DeriveTypeScope, networkID string, deriveType domain.DeriveType,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.table.Set(scope, networkID, deriveType)
	return nil
}
