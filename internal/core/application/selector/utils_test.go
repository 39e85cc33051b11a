package selector_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/account-selector/internal/core/application/pubsub"
	"github.com/tdex-network/account-selector/internal/core/application/selector"
	"github.com/tdex-network/account-selector/internal/core/domain"
	"github.com/tdex-network/account-selector/internal/core/ports"
	accounts "github.com/tdex-network/account-selector/internal/infrastructure/accounts/inmemory"
	eventbus "github.com/tdex-network/account-selector/internal/infrastructure/pubsub"
	dbinmemory "github.com/tdex-network/account-selector/internal/infrastructure/storage/db/inmemory"
)

const (
	waitFor = 2 * time.Second
	tick    = 10 * time.Millisecond
)

var ctx = context.Background()

type testEnv struct {
	svc      *selector.Service
	accounts *accounts.Service
	repo     ports.RepoManager
	events   *eventRecorder
}

type envOption func(*selector.ServiceOpts)

func withNotifier(n ports.Notifier) envOption {
	return func(o *selector.ServiceOpts) { o.Notifier = n }
}

func withNavigator(n ports.Navigator) envOption {
	return func(o *selector.ServiceOpts) { o.Navigator = n }
}

func withMatcher(m ports.KnownErrorMatcher) envOption {
	return func(o *selector.ServiceOpts) { o.KnownErrorMatcher = m }
}

func withWebDappMode() envOption {
	return func(o *selector.ServiceOpts) { o.Config.WebDappMode = true }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	bus := eventbus.NewService()
	accountSvc := accounts.NewService()
	repo := dbinmemory.NewRepoManager()

	serviceOpts := selector.ServiceOpts{
		AccountService:      accountSvc,
		NetworkService:      accountSvc,
		BatchAccountCreator: accountSvc,
		RepoManager:         repo,
		PubSub:              pubsub.NewService(bus),
		Config:              selector.Config{DefaultNetworkID: "evm--1"},
	}
	for _, opt := range opts {
		opt(&serviceOpts)
	}

	svc, err := selector.NewService(serviceOpts)
	require.NoError(t, err)

	return &testEnv{
		svc:      svc,
		accounts: accountSvc,
		repo:     repo,
		events:   newEventRecorder(bus),
	}
}

// startScene starts a scene and waits for its first slot to settle.
func (e *testEnv) startScene(
	t *testing.T, name domain.SceneName, url string,
) *selector.Scene {
	t.Helper()

	scene := e.svc.NewScene(name, url)
	require.NoError(t, scene.Start(ctx))
	t.Cleanup(scene.Stop)

	waitSettled(t, scene, 0)
	return scene
}

func (e *testEnv) createHDWallet(t *testing.T) *ports.CreateWalletResult {
	t.Helper()

	res, err := e.accounts.CreateHDWallet(ctx, ports.CreateHDWalletParams{})
	require.NoError(t, err)
	_, err = e.accounts.AddDefaultNetworkAccounts(ctx, ports.AddDefaultNetworkAccountsParams{
		WalletID: res.Wallet.ID,
	})
	require.NoError(t, err)
	return res
}

func (e *testEnv) stored(t *testing.T, scene domain.Scene) *domain.SelectedAccount {
	t.Helper()

	stored, err := e.repo.SelectedAccountRepository().GetSelectedAccount(ctx, scene)
	require.NoError(t, err)
	return stored
}

// waitSettled waits until the slot has a network and a resolution cached.
func waitSettled(t *testing.T, scene *selector.Scene, num int) {
	t.Helper()

	require.Eventually(t, func() bool {
		return scene.GetSelectedAccount(num).NetworkID != "" &&
			scene.GetActiveAccountInfo(num).Ready
	}, waitFor, tick)
}

func waitSelected(
	t *testing.T, scene *selector.Scene, num int, walletID, accountID string,
) {
	t.Helper()

	require.Eventually(t, func() bool {
		selected := scene.GetSelectedAccount(num)
		if selected.WalletID != walletID {
			return false
		}
		if accountID != "" && selected.IndexedAccountID != accountID &&
			selected.OthersWalletAccountID != accountID {
			return false
		}
		return scene.GetActiveAccountInfo(num).Ready
	}, waitFor, tick)
}

type eventRecorder struct {
	lock   sync.Mutex
	events []domain.Event
}

func newEventRecorder(bus ports.EventBus) *eventRecorder {
	r := &eventRecorder{}
	bus.Subscribe(ports.AnyTopic, r.record)
	return r
}

func (r *eventRecorder) record(event domain.Event) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.events = append(r.events, event)
}

func (r *eventRecorder) reset() {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.events = nil
}

func (r *eventRecorder) of(topic domain.Topic) []domain.Event {
	r.lock.Lock()
	defer r.lock.Unlock()

	var list []domain.Event
	for _, e := range r.events {
		if e.Topic() == topic {
			list = append(list, e)
		}
	}
	return list
}

func (r *eventRecorder) steps() []domain.FinalizeWalletSetupStep {
	var steps []domain.FinalizeWalletSetupStep
	for _, e := range r.of(domain.TopicFinalizeWalletSetupStep) {
		steps = append(steps, e.(domain.FinalizeWalletSetupStepEvent).Step)
	}
	return steps
}

// selectionUpdatesFrom counts the SelectedAccountUpdate events published by
// scenes with the given name.
func (r *eventRecorder) selectionUpdatesFrom(name domain.SceneName) int {
	count := 0
	for _, e := range r.of(domain.TopicSelectedAccountUpdate) {
		if e.(domain.SelectedAccountUpdateEvent).Origin.Scene.Name == name {
			count++
		}
	}
	return count
}

func hwParams(mocked bool) ports.CreateHWWalletParams {
	return ports.CreateHWWalletParams{
		Device:                   domain.Device{ConnectID: "c1", DeviceID: "d1"},
		IsMockedStandardHwWallet: mocked,
	}
}
