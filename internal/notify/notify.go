// Package notify models the operator notification as an outbound event queue
// with a pluggable delivery collaborator. Delivery is fire-and-forget: it is
// never retried, never acknowledged, and can never fail the customer
// transaction that emitted the event.
package notify

import (
	"context"
	"time"

	applog "platano/internal/log"
)

// Event is emitted on every search miss and photo inquiry.
type Event struct {
	RequesterID   int64     `json:"requester_id"`
	RequesterName string    `json:"requester_name"`
	Handle        string    `json:"handle,omitempty"`
	Term          string    `json:"term"`
	Caption       string    `json:"caption,omitempty"`
	PhotoRef      string    `json:"photo_ref,omitempty"`
	At            time.Time `json:"at"`
}

// Emitter is what the catalog service depends on.
type Emitter interface {
	Emit(e Event)
}

// Deliverer carries events to the operator channel.
type Deliverer interface {
	Deliver(e Event) error
}

// Queue is a bounded, channel-backed outbound queue.
type Queue struct {
	ch chan Event
}

func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 256
	}
	return &Queue{ch: make(chan Event, size)}
}

// Emit never blocks; on a full queue the event is dropped and logged.
func (q *Queue) Emit(e Event) {
	select {
	case q.ch <- e:
	default:
		applog.Security(nil, "notify.queue.full", map[string]any{"term": e.Term})
	}
}

// Start runs the delivery loop until ctx is cancelled. Delivery errors are
// logged and the event is discarded.
func (q *Queue) Start(ctx context.Context, d Deliverer) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case e := <-q.ch:
				if err := d.Deliver(e); err != nil {
					applog.Error(nil, "notify.deliver.fail", err, map[string]any{"term": e.Term})
				}
			}
		}
	}()
}
