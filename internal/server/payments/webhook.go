package payments

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Webhook event names acted upon.
const (
	EventPaymentCaptured = "payment.captured"
	EventPaymentFailed   = "payment.failed"
	EventOrderPaid       = "order.paid"
)

// SignatureHeader carries the webhook HMAC.
const SignatureHeader = "X-Razorpay-Signature"

// Event is the part of a webhook payload the service needs.
type Event struct {
	Type      string
	OrderID   string
	PaymentID string
	Amount    int64
}

// Paid reports whether the event confirms a successful payment.
func (e Event) Paid() bool {
	return e.Type == EventPaymentCaptured || e.Type == EventOrderPaid
}

// ParseWebhook extracts the event type and the order/payment ids. The payment
// entity carries both ids; order.paid events also carry the order entity.
func ParseWebhook(body []byte) (Event, error) {
	if !gjson.ValidBytes(body) {
		return Event{}, fmt.Errorf("payments: webhook body is not valid json")
	}
	doc := gjson.ParseBytes(body)

	ev := Event{
		Type:      doc.Get("event").String(),
		PaymentID: doc.Get("payload.payment.entity.id").String(),
		OrderID:   doc.Get("payload.payment.entity.order_id").String(),
		Amount:    doc.Get("payload.payment.entity.amount").Int(),
	}
	if ev.OrderID == "" {
		ev.OrderID = doc.Get("payload.order.entity.id").String()
	}
	if ev.Type == "" {
		return Event{}, fmt.Errorf("payments: webhook without event type")
	}
	return ev, nil
}
