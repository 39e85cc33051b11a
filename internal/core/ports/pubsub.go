package ports

import "github.com/tdex-network/account-selector/internal/core/domain"

// AnyTopic subscribes a handler to every event.
const AnyTopic domain.Topic = "*"

type EventHandler func(event domain.Event)

// EventBus defines the methods of the process-wide in-process event bus.
// Delivery is synchronous and best effort: missed events are not replayed.
type EventBus interface {
	// Publish dispatches the event to every handler subscribed to its topic
	// before returning.
	Publish(event domain.Event)
	// Subscribe registers a handler for a topic. The returned function removes
	// the subscription.
	Subscribe(topic domain.Topic, handler EventHandler) (unsubscribe func())
}
