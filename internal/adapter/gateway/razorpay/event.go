package razorpay

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MikeRez0/inarashop/internal/core/domain"
)

type webhookBody struct {
	Event   string `json:"event"`
	Payload struct {
		Payment *struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
		Order *struct {
			Entity struct {
				ID string `json:"id"`
			} `json:"entity"`
		} `json:"order"`
	} `json:"payload"`
}

// ParseEvent extracts the remote order and payment ids from a webhook body.
func ParseEvent(body []byte) (*domain.GatewayEvent, error) {
	var wb webhookBody
	if err := json.Unmarshal(body, &wb); err != nil {
		return nil, fmt.Errorf("error on webhook decode: %w", err)
	}
	if wb.Event == "" {
		return nil, errors.New("webhook has no event type")
	}

	event := &domain.GatewayEvent{Type: domain.GatewayEventType(wb.Event)}
	if p := wb.Payload.Payment; p != nil {
		event.PaymentID = p.Entity.ID
		event.PaymentOrderID = p.Entity.OrderID
	}
	if o := wb.Payload.Order; o != nil && o.Entity.ID != "" {
		event.PaymentOrderID = o.Entity.ID
	}

	switch event.Type {
	case domain.GatewayEventPaymentCaptured, domain.GatewayEventOrderPaid:
		if event.PaymentID == "" {
			return nil, fmt.Errorf("%s event has no payment id", event.Type)
		}
		fallthrough
	case domain.GatewayEventPaymentFailed:
		if event.PaymentOrderID == "" {
			return nil, fmt.Errorf("%s event has no order id", event.Type)
		}
	}

	return event, nil
}
