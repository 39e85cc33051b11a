package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"
	"github.com/tdex-network/account-selector/internal/core/application"
	"github.com/tdex-network/account-selector/internal/core/application/selector"
)

const (
	// DatadirKey is the local data directory to store the selections in
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"
	// WebDappModeKey pins every scene but swap to the all-networks view
	WebDappModeKey = "WEB_DAPP_MODE"
	// DefaultNetworkIDKey is the network assigned by auto-select to a slot
	// without one
	DefaultNetworkIDKey = "DEFAULT_NETWORK_ID"
	// AutoSelectSettleDelayKey is waited before auto-select looks at a slot
	AutoSelectSettleDelayKey = "AUTO_SELECT_SETTLE_DELAY"
	// HwAccountSettleDelayKey is waited before auto-select scans the wallets
	HwAccountSettleDelayKey = "HW_ACCOUNT_SETTLE_DELAY"
	// FinalizeStepDelayKey is waited after each wallet setup progress event
	FinalizeStepDelayKey = "FINALIZE_STEP_DELAY"
	// FinalizeMinDurationKey is the least time a wallet setup phase is shown
	FinalizeMinDurationKey = "FINALIZE_MIN_DURATION"
	// FinalizeReadyDelayKey is waited after the wallet setup is ready
	FinalizeReadyDelayKey = "FINALIZE_READY_DELAY"
	// MetricsEnabledKey enables the prometheus collectors of the engine
	MetricsEnabledKey = "METRICS_ENABLED"
	// StatsIntervalKey defines interval for logging runtime statistics
	StatsIntervalKey = "STATS_INTERVAL"

	DbLocation    = "db"
	StatsLocation = "stats"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("account-selector", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("SELECTOR")
	vip.AutomaticEnv()

	defaults := selector.DefaultConfig()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DBTypeKey, application.DBBadger)
	vip.SetDefault(WebDappModeKey, false)
	vip.SetDefault(DefaultNetworkIDKey, defaults.DefaultNetworkID)
	vip.SetDefault(AutoSelectSettleDelayKey, defaults.AutoSelectSettleDelay)
	vip.SetDefault(HwAccountSettleDelayKey, defaults.HwAccountSettleDelay)
	vip.SetDefault(FinalizeStepDelayKey, defaults.Pacing.StepDelay)
	vip.SetDefault(FinalizeMinDurationKey, defaults.Pacing.MinDuration)
	vip.SetDefault(FinalizeReadyDelayKey, defaults.Pacing.ReadyDelay)
	vip.SetDefault(MetricsEnabledKey, false)
	vip.SetDefault(StatsIntervalKey, 600*time.Second)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

// Set overrides a config value, ie. with the one of a command line flag.
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetDbDir returns where the selected database keeps its files.
func GetDbDir() string {
	return filepath.Join(GetDatadir(), DbLocation)
}

// GetSelectorConfig returns the engine settings.
func GetSelectorConfig() selector.Config {
	return selector.Config{
		WebDappMode:           GetBool(WebDappModeKey),
		DefaultNetworkID:      GetString(DefaultNetworkIDKey),
		AutoSelectSettleDelay: GetDuration(AutoSelectSettleDelayKey),
		HwAccountSettleDelay:  GetDuration(HwAccountSettleDelayKey),
		Pacing: selector.Pacing{
			StepDelay:   GetDuration(FinalizeStepDelayKey),
			MinDuration: GetDuration(FinalizeMinDurationKey),
			ReadyDelay:  GetDuration(FinalizeReadyDelayKey),
		},
	}
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	dbType := GetString(DBTypeKey)
	if _, ok := application.SupportedDBType[dbType]; !ok {
		return fmt.Errorf("unsupported db type %s", dbType)
	}

	for _, key := range []string{
		AutoSelectSettleDelayKey, HwAccountSettleDelayKey,
		FinalizeStepDelayKey, FinalizeMinDurationKey, FinalizeReadyDelayKey,
	} {
		if GetDuration(key) < 0 {
			return fmt.Errorf("%s must not be negative", key)
		}
	}

	if GetBool(MetricsEnabledKey) && GetDuration(StatsIntervalKey) <= 0 {
		return fmt.Errorf("%s must be positive", StatsIntervalKey)
	}

	return nil
}

func initDatadir() error {
	if GetString(DBTypeKey) == application.DBInMemory {
		return nil
	}
	if err := makeDirectoryIfNotExists(GetDbDir()); err != nil {
		return err
	}

	if GetBool(MetricsEnabledKey) {
		if err := makeDirectoryIfNotExists(
			filepath.Join(GetDatadir(), StatsLocation),
		); err != nil {
			return err
		}
	}
	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
