package queue

import "context"

// Job consumes queue messages of one type. Every registered job whose
// Type matches a published message receives its own copy of the payload.
type Job interface {
	// Name identifies the job in logs.
	Name() string

	// Type is the message type this job subscribes to.
	Type() string

	// Handle processes one payload. A returned error triggers a retry
	// up to the queue's retry limit.
	Handle(ctx context.Context, payload interface{}) error
}
