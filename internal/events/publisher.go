// Package events publishes storefront activity to kafka. Publishing is
// fire-and-forget: a broker outage must never fail or delay a cart
// mutation.
package events

import (
	"context"
	"encoding/json"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/segmentio/kafka-go"
	"go.uber.org/fx"

	"github.com/nguyentranbao-ct/storefront/internal/config"
)

const (
	EventCartItemAdded       = "cart.item_added"
	EventCartItemRemoved     = "cart.item_removed"
	EventCartQuantityUpdated = "cart.quantity_updated"
	EventCartCleared         = "cart.cleared"
	EventWishlistToggled     = "wishlist.toggled"
	EventAuthLogin           = "auth.login"
	EventAuthLogout          = "auth.logout"
)

type Envelope struct {
	Type string         `json:"type"`
	At   time.Time      `json:"at"`
	Data map[string]any `json:"data,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, eventType string, data map[string]any)
}

// NewPublisher returns a kafka-backed publisher, or a noop one when
// kafka is disabled in configuration.
func NewPublisher(lc fx.Lifecycle, conf *config.Config) Publisher {
	if !conf.Kafka.Enabled {
		return NewNoop()
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(conf.Kafka.Brokers...),
		Topic:                  conf.Kafka.Topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return writer.Close()
		},
	})

	return &kafkaPublisher{writer: writer}
}

type kafkaPublisher struct {
	writer *kafka.Writer
}

func (p *kafkaPublisher) Publish(ctx context.Context, eventType string, data map[string]any) {
	envelope := Envelope{
		Type: eventType,
		At:   time.Now(),
		Data: data,
	}
	value, err := json.Marshal(envelope)
	if err != nil {
		log.Errorw(ctx, "marshal activity event", "type", eventType, "error", err)
		return
	}

	// detached from the request context so a slow broker cannot hold
	// up the caller
	go func() {
		writeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		msg := kafka.Message{
			Key:   []byte(eventType),
			Value: value,
		}
		if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
			log.Errorw(writeCtx, "publish activity event", "type", eventType, "error", err)
		}
	}()
}

// NewNoop returns a publisher that drops every event.
func NewNoop() Publisher {
	return noopPublisher{}
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, map[string]any) {}
