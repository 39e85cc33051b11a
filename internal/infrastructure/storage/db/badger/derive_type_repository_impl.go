package dbbadger

import (
	"context"

	"github.com/tdex-network/account-selector/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type deriveTypeRecord struct {
	Scope      string
	NetworkID  string
	DeriveType string
}

type deriveTypeRepositoryImpl struct {
	store *badgerhold.Store
}

func NewDeriveTypeRepositoryImpl(
	store *badgerhold.Store,
) domain.DeriveTypeRepository {
	return &deriveTypeRepositoryImpl{store}
}

func (r *deriveTypeRepositoryImpl) GetGlobalDeriveTypes(
	_ context.Context,
) (domain.GlobalDeriveTypes, error) {
	var records []deriveTypeRecord
	if err := r.store.Find(&records, nil); err != nil {
		return nil, err
	}

	table := make(domain.GlobalDeriveTypes)
	for _, record := range records {
		table.Set(
			domain.DeriveTypeScope(record.Scope), record.NetworkID,
			domain.DeriveType(record.DeriveType),
		)
	}
	return table, nil
}

func (r *deriveTypeRepositoryImpl) SaveGlobalDeriveType(
	_ context.Context,
	scope domain.DeriveTypeScope, networkID string, deriveType domain.DeriveType,
) error {
	record := deriveTypeRecord{
		Scope:      string(scope),
		NetworkID:  networkID,
		DeriveType: string(deriveType),
	}
	return r.store.Upsert(string(scope)+"|"+networkID, &record)
}
