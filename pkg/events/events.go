// Package events defines the domain events emitted after a write commits.
package events

import (
	"context"
	"time"
)

// Event types.
const (
	TypeUserCreated      = "user.created"
	TypeResourceUploaded = "resource.uploaded"
	TypeCategoryCreated  = "category.created"
)

// Event 描述一次已提交的创建操作。审计表才是事实来源，事件只用于下游索引。
type Event struct {
	Type       string    `json:"type"`
	Entity     string    `json:"entity"`
	EntityID   int64     `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// New builds an event stamped with the current UTC time.
func New(eventType, entity string, entityID int64) Event {
	return Event{Type: eventType, Entity: entity, EntityID: entityID, OccurredAt: time.Now().UTC()}
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Handler consumes events.
type Handler interface {
	Handle(ctx context.Context, ev Event) error
}

type discard struct{}

func (discard) Publish(context.Context, Event) error { return nil }

// Discard drops every event.
var Discard Publisher = discard{}
