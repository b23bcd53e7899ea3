package models

import "time"

type OrderStatus string

const (
	StatusPending OrderStatus = "pending"
	StatusServed  OrderStatus = "served"
)

// OrderLine is a copy of the item taken at submission time and does not
// follow later menu edits.
type OrderLine struct {
	ItemID   string  `bson:"item_id" json:"item_id"`
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`
	Quantity int     `bson:"quantity" json:"quantity"`
}

func (l OrderLine) Amount() float64 { return l.Price * float64(l.Quantity) }

type Order struct {
	ID             string      `bson:"_id" json:"id"`
	GuestID        string      `bson:"guest_id" json:"guest_id"`
	Items          []OrderLine `bson:"items" json:"items"`
	Total          float64     `bson:"total" json:"total"`
	Status         OrderStatus `bson:"status" json:"status"`
	CreatedAt      time.Time   `bson:"created_at" json:"created_at"`
	SpecialRequest string      `bson:"special_request" json:"special_request"`
	CreatedBy      string      `bson:"created_by" json:"created_by"`
}

type AnalyticsCounter struct {
	ItemID      string    `bson:"_id" json:"item_id"`
	Name        string    `bson:"name" json:"name"`
	OrderCount  int       `bson:"order_count" json:"order_count"`
	LastOrdered time.Time `bson:"last_ordered" json:"last_ordered"`
}
