// Package logging emits one JSON line per domain event so sales can be
// traced through the terminal's log stream.
package logging

import (
	"encoding/json"
	"log"
	"time"
)

type Fields struct {
	Service       string `json:"service"`
	CorrelationID string `json:"correlation_id,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
	ProductID     string `json:"product_id,omitempty"`
	Step          string `json:"step,omitempty"`
	Status        string `json:"status,omitempty"`
	AmountIDR     int64  `json:"amount_idr,omitempty"`
	Message       string `json:"message,omitempty"`
}

func Log(fields Fields) {
	payload := map[string]any{
		"service":        fields.Service,
		"correlation_id": fields.CorrelationID,
		"transaction_id": fields.TransactionID,
		"product_id":     fields.ProductID,
		"step":           fields.Step,
		"status":         fields.Status,
		"amount_idr":     fields.AmountIDR,
		"message":        fields.Message,
		"timestamp":      time.Now().UTC().Format(time.RFC3339Nano),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("{\"service\":%q,\"status\":\"log_error\",\"error\":%q}", fields.Service, err.Error())
		return
	}
	log.Print(string(data))
}
