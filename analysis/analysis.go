// Package analysis builds the monthly sales report.
package analysis

import (
	"sort"
	"time"

	"cafe-ordering/models"
)

type ItemCount struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type Report struct {
	Month       time.Month  `json:"month"`
	Year        int         `json:"year"`
	TotalOrders int         `json:"total_orders"`
	Revenue     float64     `json:"revenue"`
	MostOrdered []ItemCount `json:"most_ordered"`
}

// Monthly reports the orders created in month/year, evaluated in loc.
// Quantities are summed per item name; the list is sorted by quantity,
// highest first, then by name.
func Monthly(orders []models.Order, month time.Month, year int, loc *time.Location) Report {
	if loc == nil {
		loc = time.Local
	}
	r := Report{Month: month, Year: year, MostOrdered: []ItemCount{}}
	freq := map[string]int{}
	for _, o := range orders {
		if o.CreatedAt.IsZero() {
			continue
		}
		at := o.CreatedAt.In(loc)
		if at.Month() != month || at.Year() != year {
			continue
		}
		r.TotalOrders++
		r.Revenue += o.Total
		for _, l := range o.Items {
			freq[l.Name] += l.Quantity
		}
	}
	for name, qty := range freq {
		r.MostOrdered = append(r.MostOrdered, ItemCount{Name: name, Quantity: qty})
	}
	sort.Slice(r.MostOrdered, func(i, j int) bool {
		a, b := r.MostOrdered[i], r.MostOrdered[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		return a.Name < b.Name
	})
	return r
}

// Years lists the distinct years that have orders, newest first.
func Years(orders []models.Order, loc *time.Location) []int {
	if loc == nil {
		loc = time.Local
	}
	seen := map[int]bool{}
	years := []int{}
	for _, o := range orders {
		if o.CreatedAt.IsZero() {
			continue
		}
		y := o.CreatedAt.In(loc).Year()
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
