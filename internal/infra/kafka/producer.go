package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"farmer-market/internal/infra/events"

	"github.com/segmentio/kafka-go"
)

var _ events.Publisher = (*Producer)(nil)

// Producer writes events to one topic per event name through a buffered
// inbox drained by a single goroutine.
type Producer struct {
	w       *kafka.Writer
	inbox   chan kafka.Message
	closeCh chan struct{}
}

func NewProducer(brokers []string, buf int) *Producer {
	p := &Producer{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
		},
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
	}
	go p.loop()
	return p
}

func (p *Producer) loop() {
	defer close(p.closeCh)
	for m := range p.inbox {
		if err := p.w.WriteMessages(context.Background(), m); err != nil {
			log.Printf("kafka write %s: %v", m.Topic, err)
		}
	}
	if err := p.w.Close(); err != nil {
		log.Printf("kafka writer close: %v", err)
	}
}

func (p *Producer) Publish(ctx context.Context, topic string, data any) error {
	value, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", topic, err)
	}
	msg := kafka.Message{
		Topic: topic,
		Key:   partitionKey(data),
		Value: value,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(topic)},
		},
	}
	select {
	case p.inbox <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close flushes buffered messages and waits for the writer to finish.
func (p *Producer) Close() {
	close(p.inbox)
	<-p.closeCh
}

type keyed interface {
	PartitionKey() []byte
}

func partitionKey(data any) []byte {
	if k, ok := data.(keyed); ok {
		return k.PartitionKey()
	}
	return nil
}
