// Package notify hands a placed order to an outbound channel. Nothing is
// reported back; delivery is never confirmed.
package notify

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"cafe-ordering/models"

	"github.com/rs/zerolog"
)

const noSpecialRequest = "No special request for this order"

// OrderMessage is the payload handed to a Notifier.
type OrderMessage struct {
	OrderID        string             `json:"order_id"`
	GuestName      string             `json:"guest_name"`
	Items          []models.OrderLine `json:"items"`
	Total          float64            `json:"total"`
	SpecialRequest string             `json:"special_request"`
	CreatedAt      time.Time          `json:"created_at"`
}

func NewOrderMessage(o models.Order, guestName string) OrderMessage {
	if guestName == "" {
		guestName = "Guest"
	}
	return OrderMessage{
		OrderID:        o.ID,
		GuestName:      guestName,
		Items:          o.Items,
		Total:          o.Total,
		SpecialRequest: o.SpecialRequest,
		CreatedAt:      o.CreatedAt,
	}
}

// Text renders the message a human reads on the receiving end.
func (m OrderMessage) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Guest Name : %s\n\nItems:\n", m.GuestName)
	for i, it := range m.Items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s x %d", it.Name, it.Quantity)
	}
	req := strings.TrimSpace(m.SpecialRequest)
	if req == "" {
		req = noSpecialRequest
	}
	fmt.Fprintf(&b, "\n\nSpecial Request: %s", req)
	return b.String()
}

// Link builds the wa.me send-intent URL pre-filled with text. An empty
// phone lets the client pick the recipient.
func Link(phone, text string) string {
	phone = strings.TrimPrefix(strings.TrimSpace(phone), "+")
	return "https://wa.me/" + url.PathEscape(phone) + "?text=" + strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

type Notifier interface {
	Notify(ctx context.Context, msg OrderMessage) error
}

// LogNotifier writes the message to the log. It is used when no broker is
// configured.
type LogNotifier struct {
	Log zerolog.Logger
}

func (n LogNotifier) Notify(ctx context.Context, msg OrderMessage) error {
	n.Log.Info().
		Str("order_id", msg.OrderID).
		Str("guest", msg.GuestName).
		Int("items", len(msg.Items)).
		Float64("total", msg.Total).
		Msg("order message composed")
	return nil
}
