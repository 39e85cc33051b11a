package sqlitedb

import (
	"context"
	"database/sql"

	"github.com/tdex-network/account-selector/internal/core/domain"
)

const (
	getDappConnectionQuery = "SELECT num, " + selectedAccountColumns +
		" FROM dapp_connection WHERE url = ?"

	deleteDappConnectionQuery = "DELETE FROM dapp_connection WHERE url = ?"

	insertDappConnectionQuery = "INSERT INTO dapp_connection (url, num, " +
		selectedAccountColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?)"
)

type dappConnectionRepositoryImpl struct {
	db     *sql.DB
	execTx func(context.Context, func(*sql.Tx) error) error
}

func NewDappConnectionRepositoryImpl(
	db *sql.DB, execTx func(context.Context, func(*sql.Tx) error) error,
) domain.DappConnectionRepository {
	return &dappConnectionRepositoryImpl{db, execTx}
}

func (r *dappConnectionRepositoryImpl) GetAccountSelectorMap(
	ctx context.Context, url string,
) (domain.SelectedAccountsMap, error) {
	rows, err := r.db.QueryContext(ctx, getDappConnectionQuery, url)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	m, err := scanSelectedAccountsMap(rows)
	if err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, nil
	}
	return m, nil
}

// SaveConnection replaces every slot stored for the url.
func (r *dappConnectionRepositoryImpl) SaveConnection(
	ctx context.Context, url string, accounts domain.SelectedAccountsMap,
) error {
	return r.execTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteDappConnectionQuery, url); err != nil {
			return err
		}
		for num, account := range accounts {
			if _, err := tx.ExecContext(
				ctx, insertDappConnectionQuery, url, num,
				account.WalletID, account.IndexedAccountID,
				account.OthersWalletAccountID, account.NetworkID,
				string(account.DeriveType), account.FocusedWallet,
			); err != nil {
				return err
			}
		}
		return nil
	})
}
