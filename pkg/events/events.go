// Package events announces catalog changes to other services.
package events

import (
	"context"
	"time"
)

type Type string

const (
	TypeCreated Type = "created"
	TypeUpdated Type = "updated"
	TypeDeleted Type = "deleted"
)

type Entity string

const (
	EntityCategory Entity = "category"
	EntityProduct  Entity = "product"
	EntityReview   Entity = "review"
)

type CatalogEvent struct {
	Type       Type      `json:"type"`
	Entity     Entity    `json:"entity"`
	ID         string    `json:"id"`
	Slug       string    `json:"slug,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewCatalogEvent(t Type, entity Entity, id, slug string) CatalogEvent {
	return CatalogEvent{
		Type:       t,
		Entity:     entity,
		ID:         id,
		Slug:       slug,
		OccurredAt: time.Now().UTC(),
	}
}

// Key routes every event for one record to the same partition.
func (e CatalogEvent) Key() string {
	return string(e.Entity) + ":" + e.ID
}

func (e CatalogEvent) Name() string {
	return string(e.Entity) + "." + string(e.Type)
}

type Publisher interface {
	Publish(ctx context.Context, event CatalogEvent) error
	Close() error
}

// NoopPublisher drops events. It is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, CatalogEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
