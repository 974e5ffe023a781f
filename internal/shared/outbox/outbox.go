package outbox

// Row statuses shared by the storage adapters and the worker relay. A row
// that fails to publish stays pending and is retried on the next poll.
const (
	StatusPending   = "pending"
	StatusPublished = "published"
)

// Outbox row persisted alongside the state change it announces. The worker
// relay reads pending rows and publishes them to the event bus.
type Message struct {
	ID        string
	EventType string
	Payload   []byte
	Status    string
}
