package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/showcase/pkg/logging"

	"github.com/Skotchmaster/showcase/internal/events"
)

const publishTimeout = 5 * time.Second

// Notifier publishes events on one topic. Publish failures are logged, never returned.
// With Async set the caller does not wait for the publisher at all.
type Notifier struct {
	Events events.Publisher
	Topic  string
	Async  bool
}

func (n Notifier) publish(ctx context.Context, key string, event any) {
	if n.Events == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	if n.Async {
		go n.send(ctx, key, event)
		return
	}
	n.send(ctx, key, event)
}

func (n Notifier) send(ctx context.Context, key string, event any) {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := n.Events.PublishEvent(ctx, n.Topic, key, event); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "topic", n.Topic, "error", err)
	}
}
