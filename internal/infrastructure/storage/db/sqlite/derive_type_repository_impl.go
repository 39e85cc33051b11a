package sqlitedb

import (
	"context"
	"database/sql"

	"github.com/tdex-network/account-selector/internal/core/domain"
)

const (
	getGlobalDeriveTypesQuery = "SELECT scope, network_id, derive_type " +
		"FROM global_derive_type"

	upsertGlobalDeriveTypeQuery = "INSERT INTO global_derive_type " +
		"(scope, network_id, derive_type) VALUES (?, ?, ?) " +
		"ON CONFLICT (scope, network_id) DO UPDATE SET " +
		"derive_type = excluded.derive_type"
)

type deriveTypeRepositoryImpl struct {
	db *sql.DB
}

func NewDeriveTypeRepositoryImpl(db *sql.DB) domain.DeriveTypeRepository {
	return &deriveTypeRepositoryImpl{db}
}

func (r *deriveTypeRepositoryImpl) GetGlobalDeriveTypes(
	ctx context.Context,
) (domain.GlobalDeriveTypes, error) {
	rows, err := r.db.QueryContext(ctx, getGlobalDeriveTypesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	table := make(domain.GlobalDeriveTypes)
	for rows.Next() {
		var scope, networkID, deriveType string
		if err := rows.Scan(&scope, &networkID, &deriveType); err != nil {
			return nil, err
		}
		table.Set(
			domain.DeriveTypeScope(scope), networkID, domain.DeriveType(deriveType),
		)
	}
	return table, rows.Err()
}

func (r *deriveTypeRepositoryImpl) SaveGlobalDeriveType(
	ctx context.Context,
	scope domain.DeriveTypeScope, networkID string, deriveType domain.DeriveType,
) error {
	_, err := r.db.ExecContext(
		ctx, upsertGlobalDeriveTypeQuery,
		string(scope), networkID, string(deriveType),
	)
	return err
}
