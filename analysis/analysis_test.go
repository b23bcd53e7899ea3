package analysis

import (
	"testing"
	"time"

	"cafe-ordering/models"

	"github.com/stretchr/testify/assert"
)

func order(at time.Time, total float64, lines ...models.OrderLine) models.Order {
	return models.Order{CreatedAt: at, Total: total, Items: lines}
}

func TestMonthly(t *testing.T) {
	oct := time.Date(2026, time.October, 3, 10, 0, 0, 0, time.UTC)
	orders := []models.Order{
		order(oct, 70,
			models.OrderLine{Name: "Tea", Price: 20, Quantity: 2},
			models.OrderLine{Name: "Toast", Price: 30, Quantity: 1}),
		order(oct.AddDate(0, 0, 5), 90,
			models.OrderLine{Name: "Toast", Price: 30, Quantity: 3}),
		order(oct.AddDate(0, 0, 7), 20,
			models.OrderLine{Name: "Coffee", Price: 20, Quantity: 1}),
		order(oct.AddDate(0, -1, 0), 500,
			models.OrderLine{Name: "Pizza", Price: 250, Quantity: 2}),
		order(oct.AddDate(-1, 0, 0), 20,
			models.OrderLine{Name: "Tea", Price: 20, Quantity: 1}),
	}

	r := Monthly(orders, time.October, 2026, time.UTC)
	assert.Equal(t, 3, r.TotalOrders)
	assert.Equal(t, 180.0, r.Revenue)
	assert.Equal(t, []ItemCount{
		{Name: "Toast", Quantity: 4},
		{Name: "Tea", Quantity: 2},
		{Name: "Coffee", Quantity: 1},
	}, r.MostOrdered)
}

func TestMonthlyUsesLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	// 20:00 UTC on 31 Oct is already 1 Nov in IST
	late := time.Date(2026, time.October, 31, 20, 0, 0, 0, time.UTC)
	orders := []models.Order{order(late, 10, models.OrderLine{Name: "Tea", Quantity: 1})}

	assert.Equal(t, 1, Monthly(orders, time.October, 2026, time.UTC).TotalOrders)
	assert.Equal(t, 0, Monthly(orders, time.October, 2026, ist).TotalOrders)
	assert.Equal(t, 1, Monthly(orders, time.November, 2026, ist).TotalOrders)
}

func TestMonthlyEmpty(t *testing.T) {
	r := Monthly(nil, time.January, 2026, time.UTC)
	assert.Zero(t, r.TotalOrders)
	assert.NotNil(t, r.MostOrdered)
}

func TestYears(t *testing.T) {
	orders := []models.Order{
		order(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC), 0),
		order(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), 0),
		order(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), 0),
		{},
	}
	assert.Equal(t, []int{2026, 2025}, Years(orders, time.UTC))
}
