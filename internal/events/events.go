// Package events publishes shipment domain events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

const publishTimeout = 5 * time.Second

// inflight counts Emit calls that have not finished yet.
var inflight sync.WaitGroup

type Type string

const (
	ShipmentCreated  Type = "shipment.created"
	ShipmentUpdated  Type = "shipment.updated"
	ShipmentDeleted  Type = "shipment.deleted"
	ShipmentImported Type = "shipment.imported"
)

type Event struct {
	Type          Type      `json:"type"`
	ShipmentID    string    `json:"shipmentId"`
	GroupID       int64     `json:"groupId"`
	Status        string    `json:"status,omitempty"`
	TotalWeight   float64   `json:"totalWeight"`
	TotalVolume   float64   `json:"totalVolume"`
	TotalQuantity float64   `json:"totalQuantity"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// Writer is the part of kafka.Writer the publisher uses.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

type KafkaPublisher struct {
	writer Writer
}

func NewKafkaPublisher(broker, topic string) *KafkaPublisher {
	return NewKafkaPublisherWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	})
}

func NewKafkaPublisherWithWriter(w Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

// Publish writes e keyed by shipment id, so events of one shipment stay
// ordered within a partition.
func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", e.Type, err)
	}
	msg := kafka.Message{
		Key:   []byte(e.ShipmentID),
		Value: b,
		Time:  e.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(e.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s event: %w", e.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }

// Emit publishes e in the background. Failures are logged, never returned.
// The returned channel is closed once the attempt finished.
func Emit(p Publisher, e Event) <-chan struct{} {
	done := make(chan struct{})
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	inflight.Add(1)
	go func() {
		defer inflight.Done()
		defer close(done)
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := p.Publish(ctx, e); err != nil {
			log.Printf("[WARN] publishing %s for shipment %s: %v", e.Type, e.ShipmentID, err)
		}
	}()
	return done
}

// Wait blocks until every pending Emit has finished or ctx is done.
func Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
