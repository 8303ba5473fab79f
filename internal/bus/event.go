package bus

import "time"

// Event represents a domain event published on the bus.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}

// Event kinds published by the client. Subscribers filter by namespace
// prefix, e.g. "cart." receives every cart event.
const (
	KindConversationsUpdated = "chat.conversations_updated"
	KindMessagesUpdated      = "chat.messages_updated"
	KindNotifyCount          = "notify.count"
	KindNotifyList           = "notify.list"
	KindCartCount            = "cart.count"
)
