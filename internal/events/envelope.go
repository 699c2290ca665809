package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/alterach/pos-app/internal/cart"
	"github.com/alterach/pos-app/internal/transaction"
)

const (
	EventsExchange = "pos.events"

	TransactionCompletedRoutingKey = "transaction.completed.v1"
	StockDepletedRoutingKey        = "stock.depleted.v1"

	producerName = "pos-app"
)

// Envelope is the common wrapper for all published events. It is generic
// so each event keeps a strongly typed payload.
type Envelope[T any] struct {
	EventName    string    `json:"eventName"`
	EventVersion int       `json:"eventVersion"`
	EventID      string    `json:"eventId"`
	Producer     string    `json:"producer"`
	PartitionKey string    `json:"partitionKey"`
	OccurredAt   time.Time `json:"occurredAt"`
	Payload      T         `json:"payload"`
}

type TransactionItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
}

type TransactionCompletedPayload struct {
	TransactionID string             `json:"transactionId"`
	Items         []TransactionItem  `json:"items"`
	Subtotal      int64              `json:"subtotal"`
	TaxAmount     int64              `json:"taxAmount"`
	Total         int64              `json:"total"`
	PaymentMethod cart.PaymentMethod `json:"paymentMethod"`
	CustomerID    string             `json:"customerId,omitempty"`
	OccurredAt    time.Time          `json:"occurredAt"`
}

type StockDepletedPayload struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
}

// BuildTransactionCompleted wraps a finalized sale in the event envelope.
// The transaction id doubles as the partition key so replays stay ordered
// per sale.
func BuildTransactionCompleted(t transaction.Transaction) Envelope[TransactionCompletedPayload] {
	payload := TransactionCompletedPayload{
		TransactionID: t.ID,
		Subtotal:      t.Subtotal,
		TaxAmount:     t.TaxAmount,
		Total:         t.Total,
		PaymentMethod: t.PaymentMethod,
		CustomerID:    t.CustomerID,
		OccurredAt:    t.CreatedAt,
	}
	for _, it := range t.Items {
		payload.Items = append(payload.Items, TransactionItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}

	return Envelope[TransactionCompletedPayload]{
		EventName:    "TransactionCompleted",
		EventVersion: 1,
		EventID:      uuid.NewString(),
		Producer:     producerName,
		PartitionKey: t.ID,
		OccurredAt:   time.Now().UTC(),
		Payload:      payload,
	}
}
