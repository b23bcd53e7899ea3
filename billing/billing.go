// Package billing totals a guest's orders and renders the bill.
package billing

import (
	"context"
	"math"
	"sort"
	"time"

	"cafe-ordering/apperr"
	"cafe-ordering/models"
)

// SurchargeRate is the fixed tax added on top of the bill total.
const SurchargeRate = 0.05

type Store interface {
	ListOrdersByGuest(ctx context.Context, guestID string) ([]models.Order, error)
	GetGuest(ctx context.Context, id string) (models.Guest, error)
}

type Row struct {
	OrderID   string    `json:"order_id"`
	Item      string    `json:"item"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	OrderedAt time.Time `json:"ordered_at"`
	Amount    float64   `json:"amount"`
}

type Summary struct {
	GuestID    string  `json:"guest_id"`
	GuestName  string  `json:"guest_name"`
	Orders     int     `json:"orders"`
	Rows       []Row   `json:"rows"`
	Total      float64 `json:"total"`
	Surcharge  float64 `json:"surcharge"`
	GrandTotal float64 `json:"grand_total"`
}

type Biller struct {
	store Store
}

func New(store Store) *Biller {
	return &Biller{store: store}
}

// ForGuest collects every order of the guest, whatever its status, oldest
// first. An unknown guest or one without orders yields an empty summary.
func (b *Biller) ForGuest(ctx context.Context, guestID string) (Summary, error) {
	orders, err := b.store.ListOrdersByGuest(ctx, guestID)
	if err != nil && !apperr.IsNotFound(err) {
		return Summary{}, apperr.Wrap("billing.ForGuest", err)
	}
	name := "Guest"
	if g, err := b.store.GetGuest(ctx, guestID); err == nil {
		name = g.Name
	} else if !apperr.IsNotFound(err) {
		return Summary{}, apperr.Wrap("billing.ForGuest", err)
	}
	s := Summarize(orders)
	s.GuestID = guestID
	s.GuestName = name
	return s, nil
}

// Summarize flattens orders to one row per line and computes the totals.
func Summarize(orders []models.Order) Summary {
	sorted := append([]models.Order(nil), orders...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.Before(sorted[j].CreatedAt) })

	s := Summary{Orders: len(sorted), Rows: []Row{}}
	for _, o := range sorted {
		for _, l := range o.Items {
			s.Rows = append(s.Rows, Row{
				OrderID:   o.ID,
				Item:      l.Name,
				Quantity:  l.Quantity,
				Price:     l.Price,
				OrderedAt: o.CreatedAt,
				Amount:    l.Amount(),
			})
		}
		s.Total += o.Total
	}
	s.Surcharge = Round2(s.Total * SurchargeRate)
	s.GrandTotal = Round2(s.Total + s.Surcharge)
	return s
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
