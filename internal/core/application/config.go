package application

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/account-selector/internal/core/application/pubsub"
	"github.com/tdex-network/account-selector/internal/core/application/selector"
	"github.com/tdex-network/account-selector/internal/core/ports"
	"github.com/tdex-network/account-selector/internal/infrastructure/metrics"
	eventbus "github.com/tdex-network/account-selector/internal/infrastructure/pubsub"
	dbbadger "github.com/tdex-network/account-selector/internal/infrastructure/storage/db/badger"
	dbinmemory "github.com/tdex-network/account-selector/internal/infrastructure/storage/db/inmemory"
	sqlitedb "github.com/tdex-network/account-selector/internal/infrastructure/storage/db/sqlite"
)

const (
	DBBadger   = "badger"
	DBSqlite   = "sqlite"
	DBInMemory = "inmemory"
)

var (
	SupportedDBType = map[string]struct{}{
		DBBadger:   {},
		DBSqlite:   {},
		DBInMemory: {},
	}
)

type Config struct {
	DBType string
	// DBConfig is the base directory for badger and the database file for
	// sqlite. It is ignored by the inmemory type.
	DBConfig interface{}

	AccountService      ports.AccountService
	NetworkService      ports.NetworkService
	BatchAccountCreator ports.BatchAccountCreator
	Navigator           ports.Navigator
	Notifier            ports.Notifier
	KnownErrorMatcher   ports.KnownErrorMatcher
	// MetricsRegisterer enables the prometheus collectors when set.
	MetricsRegisterer prometheus.Registerer

	Selector selector.Config

	repo     ports.RepoManager
	pubsub   *pubsub.Service
	selector *selector.Service
}

func (c *Config) Validate() error {
	if _, ok := SupportedDBType[c.DBType]; !ok {
		return fmt.Errorf("unsupported db type %s", c.DBType)
	}
	if _, err := c.repoManager(); err != nil {
		return err
	}
	if _, err := c.selectorService(); err != nil {
		return err
	}
	return nil
}

func (c *Config) RepoManager() ports.RepoManager {
	svc, _ := c.repoManager()
	return svc
}

func (c *Config) PubSubService() *pubsub.Service {
	svc, _ := c.pubsubService()
	return svc
}

func (c *Config) SelectorService() *selector.Service {
	svc, _ := c.selectorService()
	return svc
}

func (c *Config) repoManager() (ports.RepoManager, error) {
	if c.repo == nil {
		switch c.DBType {
		case DBBadger:
			datadir, _ := c.DBConfig.(string)
			repoManager, err := dbbadger.NewRepoManager(datadir, log.New())
			if err != nil {
				return nil, err
			}
			c.repo = repoManager
		case DBSqlite:
			dbPath, ok := c.DBConfig.(string)
			if !ok || dbPath == "" {
				return nil, fmt.Errorf("missing sqlite db path")
			}
			repoManager, err := sqlitedb.NewRepoManager(dbPath)
			if err != nil {
				return nil, err
			}
			c.repo = repoManager
		case DBInMemory:
			c.repo = dbinmemory.NewRepoManager()
		default:
			return nil, fmt.Errorf("unsupported db type %s", c.DBType)
		}
	}
	return c.repo, nil
}

func (c *Config) pubsubService() (*pubsub.Service, error) {
	if c.pubsub == nil {
		c.pubsub = pubsub.NewService(eventbus.NewService())
	}
	return c.pubsub, nil
}

func (c *Config) selectorService() (*selector.Service, error) {
	if c.selector == nil {
		repo, err := c.repoManager()
		if err != nil {
			return nil, err
		}
		pubsub, _ := c.pubsubService()

		var selectorMetrics ports.SelectorMetrics
		if c.MetricsRegisterer != nil {
			if selectorMetrics, err = metrics.NewSelectorMetrics(
				c.MetricsRegisterer,
			); err != nil {
				return nil, err
			}
		}

		svc, err := selector.NewService(selector.ServiceOpts{
			AccountService:      c.AccountService,
			NetworkService:      c.NetworkService,
			BatchAccountCreator: c.BatchAccountCreator,
			RepoManager:         repo,
			PubSub:              pubsub,
			Navigator:           c.Navigator,
			Notifier:            c.Notifier,
			KnownErrorMatcher:   c.KnownErrorMatcher,
			Metrics:             selectorMetrics,
			Config:              c.Selector,
		})
		if err != nil {
			return nil, err
		}
		c.selector = svc
	}
	return c.selector, nil
}
