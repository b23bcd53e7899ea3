package models

import "strings"

type Category string

const (
	Breakfast      Category = "breakfast"
	Extras         Category = "extras"
	HotBeverages   Category = "hot beverages"
	ColdBeverages  Category = "cold beverages"
	Sandwiches     Category = "sandwiches"
	VegMunchies    Category = "veg munchies"
	NonVegMunchies Category = "non-veg munchies"
	IndianMains    Category = "indian mains"
	Chinese        Category = "chinese"
	Pizza          Category = "pizza"
	Pasta          Category = "pasta"
	Burger         Category = "burger"
	Shakes         Category = "shakes"
	Desserts       Category = "desserts"
	Cafe           Category = "cafe"
)

// Categories lists every category in menu display order.
var Categories = []Category{
	Breakfast, Extras, HotBeverages, ColdBeverages, Sandwiches,
	VegMunchies, NonVegMunchies, IndianMains, Chinese, Pizza,
	Pasta, Burger, Shakes, Desserts, Cafe,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory normalises case and surrounding space and rejects names
// outside the closed set.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}
