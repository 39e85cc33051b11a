package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/account-selector/internal/config"
	"github.com/tdex-network/account-selector/internal/core/application"
	"github.com/tdex-network/account-selector/internal/core/application/selector"
	"github.com/tdex-network/account-selector/internal/core/domain"
	"github.com/tdex-network/account-selector/internal/core/ports"
	accounts "github.com/tdex-network/account-selector/internal/infrastructure/accounts/inmemory"
	"github.com/tdex-network/account-selector/internal/infrastructure/metrics"
	"github.com/urfave/cli/v2"
)

var (
	sceneFlag = cli.StringFlag{
		Name:  "scene",
		Usage: "the scene name: home, swap, discover, homeUrlAccount, addressInput, settings or accountManager",
		Value: string(domain.SceneHome),
	}
	urlFlag = cli.StringFlag{
		Name:  "url",
		Usage: "the dapp url of a discover scene",
	}
	numFlag = cli.IntFlag{
		Name:  "num",
		Usage: "the selection slot of the scene",
		Value: 0,
	}
)

type engine struct {
	app      *application.Config
	accounts *accounts.Service
	registry *prometheus.Registry
	cancel   context.CancelFunc
}

// newEngine wires the selector on top of the configured database. The
// account service is always the in-memory one.
func newEngine(dbType string, cfg selector.Config) (*engine, error) {
	acc := accounts.NewService()
	app := &application.Config{
		DBType:              dbType,
		DBConfig:            dbConfig(dbType),
		AccountService:      acc,
		NetworkService:      acc,
		BatchAccountCreator: acc,
		Selector:            cfg,
	}

	e := &engine{app: app, accounts: acc, cancel: func() {}}
	if config.GetBool(config.MetricsEnabledKey) {
		e.registry = prometheus.NewRegistry()
		e.registry.MustRegister(
			prometheus.NewGoCollector(),
			prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		)
		app.MetricsRegisterer = e.registry

		ctx, cancel := context.WithCancel(context.Background())
		e.cancel = cancel
		metrics.EnableRuntimeStatistics(
			ctx, config.GetDuration(config.StatsIntervalKey),
		)
	}

	if err := app.Validate(); err != nil {
		e.cancel()
		return nil, err
	}
	return e, nil
}

func dbConfig(dbType string) interface{} {
	switch dbType {
	case application.DBBadger:
		return config.GetDbDir()
	case application.DBSqlite:
		return filepath.Join(config.GetDbDir(), "selector.db")
	default:
		return nil
	}
}

func (e *engine) repo() ports.RepoManager {
	return e.app.RepoManager()
}

// close dumps the collected metrics, if enabled, and releases the database.
func (e *engine) close() {
	e.cancel()
	if e.registry != nil {
		path := filepath.Join(
			config.GetDatadir(), config.StatsLocation,
			time.Now().Format("20060102")+".prom",
		)
		if err := metrics.Dump(e.registry, path); err != nil {
			log.WithError(err).Warn("failed to dump metrics")
		}
	}
	e.repo().Close()
}

func sceneFromFlags(ctx *cli.Context) (domain.SceneName, string, error) {
	name, err := domain.ParseSceneName(ctx.String(sceneFlag.Name))
	if err != nil {
		return "", "", err
	}
	url := ctx.String(urlFlag.Name)
	if !name.IsURLScoped() {
		url = ""
	}
	return name, url, nil
}
