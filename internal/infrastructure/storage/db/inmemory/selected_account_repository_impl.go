package inmemory

import (
	"context"
	"sync"

	"github.com/tdex-network/account-selector/internal/core/domain"
)

type sceneKey struct {
	name domain.SceneName
	url  string
}

func keyOf(name domain.SceneName, url string) sceneKey {
	if !name.IsURLScoped() {
		url = ""
	}
	return sceneKey{name, url}
}

// SelectedAccountRepositoryImpl represents an in memory storage
type SelectedAccountRepositoryImpl struct {
	accounts map[sceneKey]domain.SelectedAccountsMap

	lock *sync.RWMutex
}

// NewSelectedAccountRepositoryImpl returns a new empty
// SelectedAccountRepositoryImpl
func NewSelectedAccountRepositoryImpl() *SelectedAccountRepositoryImpl {
	return &SelectedAccountRepositoryImpl{
		accounts: map[sceneKey]domain.SelectedAccountsMap{},
		lock:     &sync.RWMutex{},
	}
}

func (r *SelectedAccountRepositoryImpl) GetSelectedAccount(
	_ context.Context, scene domain.Scene,
) (*domain.SelectedAccount, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	account, ok := r.accounts[keyOf(scene.Name, scene.URL)][scene.Num]
	if !ok {
		return nil, nil
	}
	return &account, nil
}

func (r *SelectedAccountRepositoryImpl) GetSelectedAccountsMap(
	_ context.Context, sceneName domain.SceneName, sceneURL string,
) (domain.SelectedAccountsMap, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	m := r.accounts[keyOf(sceneName, sceneURL)].Clone()
	if m == nil {
		m = make(domain.SelectedAccountsMap)
	}
	return m, nil
}

func (r *SelectedAccountRepositoryImpl) SaveSelectedAccount(
	_ context.Context, scene domain.Scene, account domain.SelectedAccount,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	key := keyOf(scene.Name, scene.URL)
	if r.accounts[key] == nil {
		r.accounts[key] = make(domain.SelectedAccountsMap)
	}
	r.accounts[key][scene.Num] = account
	return nil
}
