// Package catalog reads and administers the menu. It keeps no local cache;
// every read goes to the store.
package catalog

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"cafe-ordering/apperr"
	"cafe-ordering/models"

	"github.com/rs/zerolog"
)

type Store interface {
	ListMenuItems(ctx context.Context, f models.MenuFilter) ([]models.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (models.MenuItem, error)
	InsertMenuItem(ctx context.Context, item models.MenuItem) error
	SetMenuItemAvailability(ctx context.Context, id string, available bool) error
	DeleteMenuItem(ctx context.Context, id string) error
}

type Catalog struct {
	store Store
	log   zerolog.Logger
	now   func() time.Time
}

func New(store Store, log zerolog.Logger) *Catalog {
	return &Catalog{store: store, log: log.With().Str("component", "catalog").Logger(), now: time.Now}
}

func (c *Catalog) ListAll(ctx context.Context) ([]models.MenuItem, error) {
	return c.store.ListMenuItems(ctx, models.MenuFilter{})
}

// ListByCategory returns the available items of category for the ordering
// view.
func (c *Catalog) ListByCategory(ctx context.Context, category string) ([]models.MenuItem, error) {
	cat, ok := models.ParseCategory(category)
	if !ok {
		return nil, apperr.Validationf("catalog.ListByCategory", "unknown category %q", category)
	}
	return c.store.ListMenuItems(ctx, models.MenuFilter{Category: &cat, AvailableOnly: true})
}

func (c *Catalog) Get(ctx context.Context, id string) (models.MenuItem, error) {
	return c.store.GetMenuItem(ctx, id)
}

// AddItem validates and stores a new available item. Price must parse to a
// non-negative number; an empty category falls back to breakfast.
func (c *Catalog) AddItem(ctx context.Context, in models.NewMenuItem) (models.MenuItem, error) {
	const op = "catalog.AddItem"
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.MenuItem{}, apperr.Validationf(op, "name is required")
	}
	raw := strings.TrimSpace(in.Price)
	if raw == "" {
		return models.MenuItem{}, apperr.Validationf(op, "price is required")
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return models.MenuItem{}, apperr.Validationf(op, "price must be a non-negative number, got %q", in.Price)
	}
	cat := models.Breakfast
	if strings.TrimSpace(in.Category) != "" {
		var ok bool
		if cat, ok = models.ParseCategory(in.Category); !ok {
			return models.MenuItem{}, apperr.Validationf(op, "unknown category %q", in.Category)
		}
	}

	item := models.MenuItem{
		ID:        models.NewID(),
		Name:      name,
		Price:     price,
		Category:  cat,
		Available: true,
		CreatedAt: c.now().UTC(),
	}
	if err := c.store.InsertMenuItem(ctx, item); err != nil {
		return models.MenuItem{}, apperr.Wrap(op, err)
	}
	return item, nil
}

func (c *Catalog) SetAvailability(ctx context.Context, id string, available bool) error {
	return apperr.Wrap("catalog.SetAvailability", c.store.SetMenuItemAvailability(ctx, id, available))
}

func (c *Catalog) DeleteItem(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return apperr.ErrConfirmationRequired
	}
	return apperr.Wrap("catalog.DeleteItem", c.store.DeleteMenuItem(ctx, id))
}

// CategoryDeletion reports a bulk category delete. Failed holds the ids
// whose delete returned an error; those items are still in the store.
type CategoryDeletion struct {
	Category models.Category `json:"category"`
	Matched  int             `json:"matched"`
	Deleted  int             `json:"deleted"`
	Failed   []string        `json:"failed,omitempty"`
}

// DeleteCategory deletes every item of category, one document at a time.
// Every delete is attempted even after a failure and there is no rollback,
// so a partial failure leaves the remaining items in place.
func (c *Catalog) DeleteCategory(ctx context.Context, category string, confirmed bool) (CategoryDeletion, error) {
	const op = "catalog.DeleteCategory"
	cat, ok := models.ParseCategory(category)
	if !ok {
		return CategoryDeletion{}, apperr.Validationf(op, "unknown category %q", category)
	}
	if !confirmed {
		return CategoryDeletion{}, apperr.ErrConfirmationRequired
	}

	items, err := c.store.ListMenuItems(ctx, models.MenuFilter{Category: &cat})
	if err != nil {
		return CategoryDeletion{}, apperr.Wrap(op, err)
	}

	res := CategoryDeletion{Category: cat, Matched: len(items)}
	var errs []error
	for _, it := range items {
		if err := c.store.DeleteMenuItem(ctx, it.ID); err != nil {
			res.Failed = append(res.Failed, it.ID)
			errs = append(errs, err)
			continue
		}
		res.Deleted++
	}
	if len(errs) > 0 {
		c.log.Warn().
			Str("category", string(cat)).
			Int("deleted", res.Deleted).
			Strs("failed", res.Failed).
			Msg("category delete left items behind")
		return res, apperr.Remote(op, errors.Join(errs...))
	}
	return res, nil
}

type CategoryCount struct {
	Category models.Category `json:"category"`
	Items    int             `json:"items"`
}

// CategoryCounts lists every category with its number of items, including
// empty ones.
func (c *Catalog) CategoryCounts(ctx context.Context) ([]CategoryCount, error) {
	items, err := c.store.ListMenuItems(ctx, models.MenuFilter{})
	if err != nil {
		return nil, apperr.Wrap("catalog.CategoryCounts", err)
	}
	counts := make(map[models.Category]int, len(models.Categories))
	for _, it := range items {
		counts[it.Category]++
	}
	out := make([]CategoryCount, 0, len(models.Categories))
	for _, cat := range models.Categories {
		out = append(out, CategoryCount{Category: cat, Items: counts[cat]})
	}
	return out, nil
}
