// Package events publishes order lifecycle events to Kafka for
// downstream consumers (notifications, analytics).
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/talkincode/qkart/internal/domain"
)

// OrderLine is one purchased line item inside an OrderPlaced event
type OrderLine struct {
	ProductID int64   `json:"product_id,string"`
	Name      string  `json:"name"`
	Cost      float64 `json:"cost"`
	Quantity  int     `json:"quantity"`
}

// OrderPlaced is emitted once per successful checkout
type OrderPlaced struct {
	UserID   int64       `json:"user_id,string"`
	Email    string      `json:"email"`
	Total    float64     `json:"total"`
	Items    []OrderLine `json:"items"`
	PlacedAt time.Time   `json:"placed_at"`
}

// KafkaPublisher writes order events to a single topic
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &KafkaPublisher{writer: writer}
}

// PublishOrderPlaced emits the checkout event keyed by user email so
// one user's orders stay ordered within a partition
func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, user *domain.User, items []domain.CartItem, total float64) error {
	event := OrderPlaced{
		UserID:   user.ID,
		Email:    user.Email,
		Total:    total,
		PlacedAt: time.Now(),
	}
	for _, item := range items {
		event.Items = append(event.Items, OrderLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Cost:      item.Cost,
			Quantity:  item.Quantity,
		})
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(user.Email),
		Value: data,
		Time:  time.Now(),
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
