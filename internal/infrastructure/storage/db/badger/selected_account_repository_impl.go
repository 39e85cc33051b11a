package dbbadger

import (
	"context"
	"fmt"

	"github.com/tdex-network/account-selector/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type selectedAccountRecord struct {
	SceneName string
	SceneURL  string
	Num       int
	Account   domain.SelectedAccount
}

type selectedAccountRepositoryImpl struct {
	store *badgerhold.Store
}

func NewSelectedAccountRepositoryImpl(
	store *badgerhold.Store,
) domain.SelectedAccountRepository {
	return &selectedAccountRepositoryImpl{store}
}

func (r *selectedAccountRepositoryImpl) GetSelectedAccount(
	_ context.Context, scene domain.Scene,
) (*domain.SelectedAccount, error) {
	var record selectedAccountRecord
	if err := r.store.Get(selectedAccountKey(scene), &record); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record.Account, nil
}

func (r *selectedAccountRepositoryImpl) GetSelectedAccountsMap(
	_ context.Context, sceneName domain.SceneName, sceneURL string,
) (domain.SelectedAccountsMap, error) {
	query := badgerhold.Where("SceneName").Eq(string(sceneName)).
		And("SceneURL").Eq(sceneURLOf(sceneName, sceneURL))

	var records []selectedAccountRecord
	if err := r.store.Find(&records, query); err != nil {
		return nil, err
	}

	m := make(domain.SelectedAccountsMap, len(records))
	for _, record := range records {
		m[record.Num] = record.Account
	}
	return m, nil
}

func (r *selectedAccountRepositoryImpl) SaveSelectedAccount(
	_ context.Context, scene domain.Scene, account domain.SelectedAccount,
) error {
	record := selectedAccountRecord{
		SceneName: string(scene.Name),
		SceneURL:  sceneURLOf(scene.Name, scene.URL),
		Num:       scene.Num,
		Account:   account,
	}
	return r.store.Upsert(selectedAccountKey(scene), &record)
}

func sceneURLOf(name domain.SceneName, url string) string {
	if !name.IsURLScoped() {
		return ""
	}
	return url
}

func selectedAccountKey(scene domain.Scene) string {
	return fmt.Sprintf(
		"%s|%s|%d", scene.Name, sceneURLOf(scene.Name, scene.URL), scene.Num,
	)
}
