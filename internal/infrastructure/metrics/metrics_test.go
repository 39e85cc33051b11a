package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/account-selector/internal/core/domain"
	"github.com/tdex-network/account-selector/internal/infrastructure/metrics"
)

func TestSelectorMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.NewSelectorMetrics(reg)
	require.NoError(t, err)

	m.IncUpdate(domain.SceneHome, true)
	m.IncUpdate(domain.SceneHome, true)
	m.IncUpdate(domain.SceneHome, false)
	m.IncAutoSelect(domain.SceneSwap, "selected")
	m.ObserveLockWait("saveToStorage", time.Millisecond)

	count, err := testutil.GatherAndCount(reg, "account_selector_selected_account_updates_total")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(reg, "account_selector_lock_wait_seconds")
	require.NoError(t, err)
	require.Equal(t, 1, count)

	// Registering twice on the same registry fails.
	_, err = metrics.NewSelectorMetrics(reg)
	require.Error(t, err)

	t.Run("dump", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stats")
		require.NoError(t, metrics.Dump(reg, path))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Contains(t, string(content), "account_selector_auto_select_total")
	})
}
