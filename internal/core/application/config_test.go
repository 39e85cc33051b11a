package application_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/account-selector/internal/core/application"
	"github.com/tdex-network/account-selector/internal/core/application/selector"
	"github.com/tdex-network/account-selector/internal/core/domain"
	accounts "github.com/tdex-network/account-selector/internal/infrastructure/accounts/inmemory"
)

func TestConfig(t *testing.T) {
	tests := []struct {
		name     string
		dbType   string
		dbConfig func(t *testing.T) interface{}
	}{
		{
			name:     "inmemory",
			dbType:   application.DBInMemory,
			dbConfig: func(*testing.T) interface{} { return nil },
		},
		{
			name:     "badger",
			dbType:   application.DBBadger,
			dbConfig: func(*testing.T) interface{} { return "" },
		},
		{
			name:   "sqlite",
			dbType: application.DBSqlite,
			dbConfig: func(t *testing.T) interface{} {
				return filepath.Join(t.TempDir(), "selector.db")
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			acc := accounts.NewService()
			cfg := &application.Config{
				DBType:              tt.dbType,
				DBConfig:            tt.dbConfig(t),
				AccountService:      acc,
				NetworkService:      acc,
				BatchAccountCreator: acc,
				MetricsRegisterer:   prometheus.NewRegistry(),
				Selector:            selector.DefaultConfig(),
			}
			require.NoError(t, cfg.Validate())

			svc := cfg.SelectorService()
			require.NotNil(t, svc)
			require.Same(t, svc, cfg.SelectorService())

			repo := cfg.RepoManager()
			require.NotNil(t, repo)
			selected, err := repo.SelectedAccountRepository().GetSelectedAccount(
				context.Background(), domain.HomeScene,
			)
			require.NoError(t, err)
			require.Nil(t, selected)
		})
	}
}

func TestConfigInvalid(t *testing.T) {
	acc := accounts.NewService()

	t.Run("db_type", func(t *testing.T) {
		cfg := &application.Config{
			DBType:              "postgres",
			AccountService:      acc,
			NetworkService:      acc,
			BatchAccountCreator: acc,
		}
		require.Error(t, cfg.Validate())
	})

	t.Run("sqlite_path", func(t *testing.T) {
		cfg := &application.Config{
			DBType:              application.DBSqlite,
			AccountService:      acc,
			NetworkService:      acc,
			BatchAccountCreator: acc,
		}
		require.Error(t, cfg.Validate())
	})

	t.Run("account_service", func(t *testing.T) {
		cfg := &application.Config{DBType: application.DBInMemory}
		require.Error(t, cfg.Validate())
	})
}
