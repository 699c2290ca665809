package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/alterach/pos-app/internal/transaction"
)

// Publisher emits POS events on the topic exchange. It satisfies the
// checkout service's EventPublisher.
type Publisher struct {
	ch *amqp.Channel
}

// Connect dials the broker and returns a ready publisher plus a close
// function covering both the channel and the connection.
func Connect(url string) (*Publisher, func(), error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	p, err := NewPublisher(conn)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	closeAll := func() {
		_ = p.Close()
		_ = conn.Close()
	}
	return p, closeAll, nil
}

func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// Declare the exchange so publish never fails due to missing infra.
	err = ch.ExchangeDeclare(EventsExchange, "topic", true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("declare %s: %w", EventsExchange, err)
	}

	return &Publisher{ch: ch}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) PublishTransactionCompleted(ctx context.Context, t transaction.Transaction) error {
	env := BuildTransactionCompleted(t)

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal TransactionCompleted: %w", err)
	}
	return p.publishJSON(ctx, TransactionCompletedRoutingKey, body)
}

func (p *Publisher) PublishStockDepleted(ctx context.Context, productID, name string) error {
	env := Envelope[StockDepletedPayload]{
		EventName:    "StockDepleted",
		EventVersion: 1,
		EventID:      uuid.NewString(),
		Producer:     producerName,
		PartitionKey: productID,
		OccurredAt:   time.Now().UTC(),
		Payload:      StockDepletedPayload{ProductID: productID, Name: name},
	}

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal StockDepleted: %w", err)
	}
	return p.publishJSON(ctx, StockDepletedRoutingKey, body)
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishTransactionCompleted(ctx context.Context, t transaction.Transaction) error {
	return nil
}

func (NopPublisher) PublishStockDepleted(ctx context.Context, productID, name string) error {
	return nil
}
