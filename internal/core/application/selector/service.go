package selector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tdex-network/account-selector/internal/core/application/pubsub"
	"github.com/tdex-network/account-selector/internal/core/domain"
	"github.com/tdex-network/account-selector/internal/core/ports"
)

type ServiceOpts struct {
	AccountService      ports.AccountService
	NetworkService      ports.NetworkService
	BatchAccountCreator ports.BatchAccountCreator
	RepoManager         ports.RepoManager
	PubSub              *pubsub.Service

	// Optional collaborators.
	Navigator         ports.Navigator
	Notifier          ports.Notifier
	KnownErrorMatcher ports.KnownErrorMatcher
	Metrics           ports.SelectorMetrics

	Config Config
}

// Service owns the collaborators and the locks shared by every scene of the
// process. Scenes are created through NewScene.
type Service struct {
	account  ports.AccountService
	network  ports.NetworkService
	batch    ports.BatchAccountCreator
	repo     ports.RepoManager
	pubsub   *pubsub.Service
	nav      ports.Navigator
	notifier ports.Notifier
	matcher  ports.KnownErrorMatcher
	metrics  ports.SelectorMetrics
	cfg      Config

	locks locks

	scenesLock *sync.RWMutex
	scenes     map[string]*Scene
}

func NewService(opts ServiceOpts) (*Service, error) {
	if opts.AccountService == nil {
		return nil, fmt.Errorf("missing account service")
	}
	if opts.NetworkService == nil {
		return nil, fmt.Errorf("missing network service")
	}
	if opts.BatchAccountCreator == nil {
		return nil, fmt.Errorf("missing batch account creator")
	}
	if opts.RepoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if opts.PubSub == nil {
		return nil, fmt.Errorf("missing pubsub service")
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = noopNotifier{}
	}
	matcher := opts.KnownErrorMatcher
	if matcher == nil {
		matcher = noopMatcher{}
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &Service{
		account:    opts.AccountService,
		network:    opts.NetworkService,
		batch:      opts.BatchAccountCreator,
		repo:       opts.RepoManager,
		pubsub:     opts.PubSub,
		nav:        opts.Navigator,
		notifier:   notifier,
		matcher:    matcher,
		metrics:    metrics,
		cfg:        opts.Config,
		locks:      newLocks(metrics),
		scenesLock: &sync.RWMutex{},
		scenes:     make(map[string]*Scene),
	}, nil
}

// NewScene returns a scene bound to this service. The scene does nothing
// until started. Without explicit slots the scene uses the default ones of
// its name.
func (s *Service) NewScene(
	name domain.SceneName, url string, slots ...int,
) *Scene {
	if !name.IsURLScoped() {
		url = ""
	}
	if len(slots) == 0 {
		slots = name.DefaultSlots()
	}
	return &Scene{
		svc:        s,
		name:       name,
		url:        url,
		slots:      slots,
		instanceID: uuid.New().String(),
		store:      newStore(),
	}
}

// Scenes returns the started scenes.
func (s *Service) Scenes() []*Scene {
	s.scenesLock.RLock()
	defer s.scenesLock.RUnlock()

	list := make([]*Scene, 0, len(s.scenes))
	for _, sc := range s.scenes {
		list = append(list, sc)
	}
	return list
}

// RefreshAll schedules every slot of every started scene for resolution, the
// way a wallet or account change does.
func (s *Service) RefreshAll() {
	for _, sc := range s.Scenes() {
		sc.store.touch(append(sc.store.Slots(), sc.slots...)...)
	}
}

// GlobalDeriveTypes returns the persisted derive type preference table.
func (s *Service) GlobalDeriveTypes(
	ctx context.Context,
) (domain.GlobalDeriveTypes, error) {
	return s.repo.DeriveTypeRepository().GetGlobalDeriveTypes(ctx)
}

func (s *Service) findScene(scene domain.Scene) *Scene {
	s.scenesLock.RLock()
	defer s.scenesLock.RUnlock()

	for _, sc := range s.scenes {
		if sc.Identity(scene.Num).Equal(scene) {
			return sc
		}
	}
	return nil
}

func (s *Service) register(sc *Scene) {
	s.scenesLock.Lock()
	defer s.scenesLock.Unlock()

	s.scenes[sc.instanceID] = sc
}

func (s *Service) unregister(sc *Scene) {
	s.scenesLock.Lock()
	defer s.scenesLock.Unlock()

	delete(s.scenes, sc.instanceID)
}

type noopNotifier struct{}

func (noopNotifier) NotifyError(string, error) {}
func (noopNotifier) ShowCheckingDevice(string) func() { return func() {} }

type noopMatcher struct{}

func (noopMatcher) ShowDialogIfErrorMatched(context.Context, error) {}

type noopMetrics struct{}

func (noopMetrics) ObserveLockWait(string, time.Duration) {}
func (noopMetrics) IncUpdate(domain.SceneName, bool) {}
func (noopMetrics) IncAutoSelect(domain.SceneName, string) {}
