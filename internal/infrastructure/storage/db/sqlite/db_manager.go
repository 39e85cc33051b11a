package sqlitedb

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/account-selector/internal/core/domain"
	"github.com/tdex-network/account-selector/internal/core/ports"
)

const (
	sqliteDriver       = "sqlite3"
	dataSourceTemplate = "file:%s?_busy_timeout=5000"
)

//go:embed migrations/*.sql
var migrations embed.FS

type repoManager struct {
	db *sql.DB

	selectedAccountRepository domain.SelectedAccountRepository
	deriveTypeRepository      domain.DeriveTypeRepository
	dappConnectionRepository  domain.DappConnectionRepository
}

// NewRepoManager opens the sqlite database at dbPath and brings its schema
// up to date.
func NewRepoManager(dbPath string) (ports.RepoManager, error) {
	db, err := connect(dbPath)
	if err != nil {
		return nil, err
	}

	if err := migrateDb(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating db: %w", err)
	}

	rm := &repoManager{db: db}
	rm.selectedAccountRepository = NewSelectedAccountRepositoryImpl(db)
	rm.deriveTypeRepository = NewDeriveTypeRepositoryImpl(db)
	rm.dappConnectionRepository = NewDappConnectionRepositoryImpl(db, rm.execTx)

	return rm, nil
}

func (r *repoManager) SelectedAccountRepository() domain.SelectedAccountRepository {
	return r.selectedAccountRepository
}

func (r *repoManager) DeriveTypeRepository() domain.DeriveTypeRepository {
	return r.deriveTypeRepository
}

func (r *repoManager) DappConnectionRepository() domain.DappConnectionRepository {
	return r.dappConnectionRepository
}

func (r *repoManager) Close() {
	if err := r.db.Close(); err != nil {
		log.WithError(err).Warn("failed to close db")
	}
}

func (r *repoManager) execTx(
	ctx context.Context, txBody func(*sql.Tx) error,
) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// Rollback is a no-op once the tx is committed.
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			log.Errorf("unable to rollback db tx: %v", err)
		}
	}()

	if err := txBody(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func connect(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriver, fmt.Sprintf(dataSourceTemplate, dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	return db, nil
}

func migrateDb(db *sql.DB) error {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return err
	}
	defer source.Close()

	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, sqliteDriver, driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
