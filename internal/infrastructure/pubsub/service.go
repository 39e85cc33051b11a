package pubsub

import (
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/account-selector/internal/core/domain"
	"github.com/tdex-network/account-selector/internal/core/ports"
)

type service struct {
	lock *sync.RWMutex
	subs map[domain.Topic]subscriptions
}

// NewService returns an in-process event bus. Handlers run synchronously on
// the goroutine of the publisher, in subscription order.
func NewService() ports.EventBus {
	return &service{
		lock: &sync.RWMutex{},
		subs: make(map[domain.Topic]subscriptions),
	}
}

func (s *service) Subscribe(
	topic domain.Topic, handler ports.EventHandler,
) func() {
	sub := newSubscription(topic, handler)

	s.lock.Lock()
	s.subs[topic] = append(s.subs[topic], sub)
	s.lock.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.lock.Lock()
			defer s.lock.Unlock()

			s.subs[topic] = s.subs[topic].without(sub.id)
			if len(s.subs[topic]) == 0 {
				delete(s.subs, topic)
			}
		})
	}
}

func (s *service) Publish(event domain.Event) {
	subs := s.listSubscriptionsForTopic(event.Topic())
	log.WithFields(log.Fields{
		"topic":       event.Topic(),
		"subscribers": len(subs),
	}).Trace("publishing event")

	for _, sub := range subs {
		s.dispatch(sub, event)
	}
}

// listSubscriptionsForTopic returns a snapshot, so that handlers can
// subscribe or unsubscribe without deadlocking.
func (s *service) listSubscriptionsForTopic(topic domain.Topic) subscriptions {
	s.lock.RLock()
	defer s.lock.RUnlock()

	subs := make(subscriptions, 0, len(s.subs[topic])+len(s.subs[ports.AnyTopic]))
	subs = append(subs, s.subs[topic]...)
	if topic != ports.AnyTopic {
		subs = append(subs, s.subs[ports.AnyTopic]...)
	}
	return subs
}

// dispatch isolates the publisher from a panicking handler. Delivery is best
// effort.
func (s *service) dispatch(sub subscription, event domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(log.Fields{
				"topic":        event.Topic(),
				"subscription": sub.id,
			}).Errorf("event handler panicked: %v", r)
		}
	}()
	sub.handler(event)
}
