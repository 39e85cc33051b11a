package pubsub

import (
	"github.com/google/uuid"
	"github.com/tdex-network/account-selector/internal/core/domain"
	"github.com/tdex-network/account-selector/internal/core/ports"
)

type subscription struct {
	id      string
	topic   domain.Topic
	handler ports.EventHandler
}

func newSubscription(topic domain.Topic, handler ports.EventHandler) subscription {
	return subscription{uuid.New().String(), topic, handler}
}

type subscriptions []subscription

func (s subscriptions) without(id string) subscriptions {
	subs := make(subscriptions, 0, len(s))
	for _, sub := range s {
		if sub.id != id {
			subs = append(subs, sub)
		}
	}
	return subs
}
