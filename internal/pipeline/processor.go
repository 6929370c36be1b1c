// Package pipeline 定义了资源上传后的索引流程。
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"resource-hub-go/internal/model"
	"resource-hub-go/internal/repository"
	"resource-hub-go/pkg/events"
	"resource-hub-go/pkg/log"
)

// Indexer writes resource documents into the search index.
type Indexer interface {
	IndexResource(ctx context.Context, doc model.ResourceDocument) error
}

// Processor 消费领域事件，把新上传的资源写入搜索索引。
// It is an events.Handler for the Kafka consumer and an events.Publisher
// when events are processed inline without a broker.
type Processor struct {
	resources repository.ResourceRepository
	indexer   Indexer
}

// NewProcessor 创建一个新的 Processor 实例。
func NewProcessor(resources repository.ResourceRepository, indexer Indexer) *Processor {
	return &Processor{resources: resources, indexer: indexer}
}

// Handle indexes the resource referenced by a resource.uploaded event.
// Other event types are ignored.
func (p *Processor) Handle(ctx context.Context, ev events.Event) error {
	if ev.Type != events.TypeResourceUploaded {
		return nil
	}

	item, err := p.resources.FindListItemByID(ctx, ev.EntityID)
	if errors.Is(err, repository.ErrNotFound) {
		log.Warnw("[Processor] 资源不存在，跳过索引", "resource_id", ev.EntityID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load resource %d: %w", ev.EntityID, err)
	}

	if err := p.indexer.IndexResource(ctx, model.NewResourceDocument(item)); err != nil {
		return fmt.Errorf("index resource %d: %w", ev.EntityID, err)
	}
	log.Infow("[Processor] 资源已写入索引", "resource_id", item.ID, "name", item.OriginalName)
	return nil
}

// Publish handles the event synchronously.
func (p *Processor) Publish(ctx context.Context, ev events.Event) error {
	return p.Handle(ctx, ev)
}
