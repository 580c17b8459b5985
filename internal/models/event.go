package models

// TodoEvent is published to Kafka after every successful todo mutation.
type TodoEvent struct {
	EventID   string `json:"event_id"`  // Unique event identifier
	Timestamp int64  `json:"timestamp"` // Unix timestamp of the mutation
	Operation string `json:"operation"` // "created", "updated" or "deleted"
	TodoID    int64  `json:"todo_id"`
	UserID    int64  `json:"user_id"`
}
