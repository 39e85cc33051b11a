package selector

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/account-selector/internal/core/domain"
)

// Scene is a mounted UI context owning its selection slots. Every operation
// of the engine is scoped to a scene.
type Scene struct {
	svc        *Service
	name       domain.SceneName
	url        string
	slots      []int
	instanceID string
	store      *Store

	lock         sync.Mutex
	started      bool
	cancel       context.CancelFunc
	done         chan struct{}
	unsubscribes []func()
}

func (s *Scene) Name() domain.SceneName { return s.name }
func (s *Scene) URL() string             { return s.url }
func (s *Scene) InstanceID() string      { return s.instanceID }
func (s *Scene) Store() *Store           { return s.store }

// Identity returns the identity of one of the scene slots.
func (s *Scene) Identity(num int) domain.Scene {
	return domain.Scene{Name: s.name, URL: s.url, Num: num}
}

func (s *Scene) origin(num int) domain.Origin {
	return domain.Origin{Scene: s.Identity(num), InstanceID: s.instanceID}
}

func (s *Scene) logger(num int) *log.Entry {
	return log.WithFields(log.Fields{
		"scene": s.name,
		"url":   s.url,
		"num":   num,
	})
}

// GetSelectedAccount returns the current selection of a slot.
func (s *Scene) GetSelectedAccount(num int) domain.SelectedAccount {
	return s.store.Get(num)
}

// GetActiveAccountInfo returns the cached resolution of a slot.
func (s *Scene) GetActiveAccountInfo(num int) domain.ActiveAccountInfo {
	return s.store.ActiveAccountInfo(num)
}

// Start loads the scene from storage, subscribes to the events of the other
// scenes and starts the effects loop. The loop runs until Stop is called or
// ctx is done.
func (s *Scene) Start(ctx context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.started {
		return ErrSceneAlreadyStarted
	}

	s.unsubscribes = []func(){
		s.svc.pubsub.OnSelectedAccountUpdate(
			func(e domain.SelectedAccountUpdateEvent) {
				if err := s.SyncHomeAndSwapSelectedAccount(ctx, e); err != nil {
					s.logger(0).WithError(err).Warn("failed to sync selected account")
				}
			},
		),
		s.svc.pubsub.OnGlobalDeriveTypeUpdate(
			func(e domain.GlobalDeriveTypeUpdateEvent) {
				s.onGlobalDeriveTypeUpdate(ctx, e)
			},
		),
	}

	if err := s.InitFromStorage(ctx); err != nil {
		s.unsubscribe()
		return err
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.started = true
	s.svc.register(s)

	go s.runEffects(loopCtx)
	return nil
}

// Stop unsubscribes the scene and waits for the effects loop to return.
func (s *Scene) Stop() {
	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.started {
		return
	}
	s.svc.unregister(s)
	s.unsubscribe()
	s.cancel()
	<-s.done
	s.started = false
}

// Refresh schedules the slot for resolution, persistence and auto-select.
func (s *Scene) Refresh(num int) {
	s.store.touch(num)
}

func (s *Scene) unsubscribe() {
	for _, unsub := range s.unsubscribes {
		unsub()
	}
	s.unsubscribes = nil
}

// runEffects reacts to every committed change of a slot: it resolves the
// selection, persists it and repairs it when it can't be resolved.
func (s *Scene) runEffects(ctx context.Context) {
	defer close(s.done)

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.store.notify:
		}

		for _, num := range s.store.drainDirty() {
			if ctx.Err() != nil {
				return
			}
			s.runSlotEffects(ctx, num)
		}
	}
}

func (s *Scene) runSlotEffects(ctx context.Context, num int) {
	logger := s.logger(num)

	info, err := s.ReloadActiveAccountInfo(ctx, num)
	if err != nil {
		logger.WithError(err).Debug("reload interrupted")
		return
	}
	if err := s.SaveToStorage(ctx, num); err != nil {
		logger.WithError(err).Warn("failed to save selected account")
	}
	if info.IsUsable() {
		return
	}
	if err := s.AutoSelectNextAccount(ctx, num, domain.TriggerNone); err != nil {
		logger.WithError(err).Warn("failed to auto select account")
	}
}
