package events

import (
	"context"
	"log"
)

const TopicOrderPlaced = "order.placed"

type Publisher interface {
	Publish(ctx context.Context, topic string, data any) error
	Close()
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(_ context.Context, topic string, _ any) error {
	log.Printf("events disabled, dropping %s", topic)
	return nil
}

func (NopPublisher) Close() {}
