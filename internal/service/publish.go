package service

import (
	"context"
	"time"

	"resource-hub-go/pkg/events"
	"resource-hub-go/pkg/log"
)

const publishTimeout = 5 * time.Second

// publish delivers ev after a commit. Failures are logged and never reach the caller:
// the audit row written in the transaction is the record of truth.
func publish(ctx context.Context, p events.Publisher, ev events.Event) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := p.Publish(ctx, ev); err != nil {
		log.Warnw("publish event failed", "type", ev.Type, "entity_id", ev.EntityID, "error", err)
	}
}
