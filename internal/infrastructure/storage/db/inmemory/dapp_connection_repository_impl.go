package inmemory

import (
	"context"
	"sync"

	"github.com/tdex-network/account-selector/internal/core/domain"
)

// DappConnectionRepositoryImpl represents an in memory storage
type DappConnectionRepositoryImpl struct {
	connections map[string]domain.SelectedAccountsMap

	lock *sync.RWMutex
}

func NewDappConnectionRepositoryImpl() *DappConnectionRepositoryImpl {
	return &DappConnectionRepositoryImpl{
		connections: map[string]domain.SelectedAccountsMap{},
		lock:        &sync.RWMutex{},
	}
}

func (r *DappConnectionRepositoryImpl) GetAccountSelectorMap(
	_ context.Context, url string,
) (domain.SelectedAccountsMap, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.connections[url].Clone(), nil
}

func (r *DappConnectionRepositoryImpl) SaveConnection(
	_ context.Context, url string, accounts domain.SelectedAccountsMap,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.connections[url] = accounts.Clone()
	return nil
}
