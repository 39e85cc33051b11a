package dbbadger

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/account-selector/internal/core/domain"
	"github.com/tdex-network/account-selector/internal/core/ports"
	"github.com/timshannon/badgerhold/v4"
)

type repoManager struct {
	store *badgerhold.Store

	selectedAccountRepository domain.SelectedAccountRepository
	deriveTypeRepository      domain.DeriveTypeRepository
	dappConnectionRepository  domain.DappConnectionRepository
}

// NewRepoManager opens (or creates if not exists) the badger store on disk.
// An empty base dir opens an in-memory store.
func NewRepoManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	var dbDir string
	if len(baseDbDir) > 0 {
		dbDir = filepath.Join(baseDbDir, "selector")
	}

	store, err := createDb(dbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening selector db: %w", err)
	}

	return &repoManager{
		store:                     store,
		selectedAccountRepository: NewSelectedAccountRepositoryImpl(store),
		deriveTypeRepository:      NewDeriveTypeRepositoryImpl(store),
		dappConnectionRepository:  NewDappConnectionRepositoryImpl(store),
	}, nil
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
	r.store.Close()
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	if !isInMemory {
		ticker := time.NewTicker(30 * time.Minute)

		go func() {
			for {
				<-ticker.C
				if err := db.Badger().RunValueLogGC(0.5); err != nil &&
					err != badger.ErrNoRewrite {
					log.Error(err)
				}
			}
		}()
	}

	return db, nil
}
