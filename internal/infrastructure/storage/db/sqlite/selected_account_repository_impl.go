package sqlitedb

import (
	"context"
	"database/sql"

	"github.com/tdex-network/account-selector/internal/core/domain"
)

const (
	selectedAccountColumns = "wallet_id, indexed_account_id, " +
		"others_wallet_account_id, network_id, derive_type, focused_wallet"

	getSelectedAccountQuery = "SELECT " + selectedAccountColumns +
		" FROM selected_account WHERE scene_name = ? AND scene_url = ? AND num = ?"

	getSelectedAccountsQuery = "SELECT num, " + selectedAccountColumns +
		" FROM selected_account WHERE scene_name = ? AND scene_url = ?"

	upsertSelectedAccountQuery = "INSERT INTO selected_account (" +
		"scene_name, scene_url, num, " + selectedAccountColumns +
		") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) " +
		"ON CONFLICT (scene_name, scene_url, num) DO UPDATE SET " +
		"wallet_id = excluded.wallet_id, " +
		"indexed_account_id = excluded.indexed_account_id, " +
		"others_wallet_account_id = excluded.others_wallet_account_id, " +
		"network_id = excluded.network_id, " +
		"derive_type = excluded.derive_type, " +
		"focused_wallet = excluded.focused_wallet"
)

type selectedAccountRepositoryImpl struct {
	db *sql.DB
}

func NewSelectedAccountRepositoryImpl(db *sql.DB) domain.SelectedAccountRepository {
	return &selectedAccountRepositoryImpl{db}
}

func (r *selectedAccountRepositoryImpl) GetSelectedAccount(
	ctx context.Context, scene domain.Scene,
) (*domain.SelectedAccount, error) {
	row := r.db.QueryRowContext(
		ctx, getSelectedAccountQuery,
		string(scene.Name), sceneURLOf(scene.Name, scene.URL), scene.Num,
	)

	var account domain.SelectedAccount
	if err := scanSelectedAccount(row, &account); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *selectedAccountRepositoryImpl) GetSelectedAccountsMap(
	ctx context.Context, sceneName domain.SceneName, sceneURL string,
) (domain.SelectedAccountsMap, error) {
	rows, err := r.db.QueryContext(
		ctx, getSelectedAccountsQuery,
		string(sceneName), sceneURLOf(sceneName, sceneURL),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSelectedAccountsMap(rows)
}

func (r *selectedAccountRepositoryImpl) SaveSelectedAccount(
	ctx context.Context, scene domain.Scene, account domain.SelectedAccount,
) error {
	_, err := r.db.ExecContext(
		ctx, upsertSelectedAccountQuery,
		string(scene.Name), sceneURLOf(scene.Name, scene.URL), scene.Num,
		account.WalletID, account.IndexedAccountID,
		account.OthersWalletAccountID, account.NetworkID,
		string(account.DeriveType), account.FocusedWallet,
	)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSelectedAccount(row scanner, account *domain.SelectedAccount) error {
	var deriveType string
	if err := row.Scan(
		&account.WalletID, &account.IndexedAccountID,
		&account.OthersWalletAccountID, &account.NetworkID,
		&deriveType, &account.FocusedWallet,
	); err != nil {
		return err
	}
	account.DeriveType = domain.DeriveType(deriveType)
	return nil
}

func scanSelectedAccountsMap(rows *sql.Rows) (domain.SelectedAccountsMap, error) {
	m := make(domain.SelectedAccountsMap)
	for rows.Next() {
		var (
			num        int
			account    domain.SelectedAccount
			deriveType string
		)
		if err := rows.Scan(
			&num, &account.WalletID, &account.IndexedAccountID,
			&account.OthersWalletAccountID, &account.NetworkID,
			&deriveType, &account.FocusedWallet,
		); err != nil {
			return nil, err
		}
		account.DeriveType = domain.DeriveType(deriveType)
		m[num] = account
	}
	return m, rows.Err()
}

func sceneURLOf(name domain.SceneName, url string) string {
	if !name.IsURLScoped() {
		return ""
	}
	return url
}
