package dbbadger

import (
	"context"

	"github.com/tdex-network/account-selector/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type dappConnectionRecord struct {
	URL      string
	Accounts map[int]domain.SelectedAccount
}

type dappConnectionRepositoryImpl struct {
	store *badgerhold.Store
}

func NewDappConnectionRepositoryImpl(
	store *badgerhold.Store,
) domain.DappConnectionRepository {
	return &dappConnectionRepositoryImpl{store}
}

func (r *dappConnectionRepositoryImpl) GetAccountSelectorMap(
	_ context.Context, url string,
) (domain.SelectedAccountsMap, error) {
	var record dappConnectionRecord
	if err := r.store.Get(url, &record); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return domain.SelectedAccountsMap(record.Accounts), nil
}

func (r *dappConnectionRepositoryImpl) SaveConnection(
	_ context.Context, url string, accounts domain.SelectedAccountsMap,
) error {
	record := dappConnectionRecord{
		URL:      url,
		Accounts: map[int]domain.SelectedAccount(accounts.Clone()),
	}
	return r.store.Upsert(url, &record)
}
