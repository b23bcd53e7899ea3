// Package guests manages checked-in guests.
package guests

import (
	"context"
	"strings"
	"time"

	"cafe-ordering/apperr"
	"cafe-ordering/models"
)

type Store interface {
	ListGuests(ctx context.Context) ([]models.Guest, error)
	GetGuest(ctx context.Context, id string) (models.Guest, error)
	InsertGuest(ctx context.Context, g models.Guest) error
	SetGuestActive(ctx context.Context, id string, active bool) error
	DeleteGuest(ctx context.Context, id string) error
}

type Directory struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Directory {
	return &Directory{store: store, now: time.Now}
}

func (d *Directory) List(ctx context.Context) ([]models.Guest, error) {
	return d.store.ListGuests(ctx)
}

// ListActive returns guests that have not checked out.
func (d *Directory) ListActive(ctx context.Context) ([]models.Guest, error) {
	all, err := d.store.ListGuests(ctx)
	if err != nil {
		return nil, err
	}
	active := all[:0]
	for _, g := range all {
		if g.Active {
			active = append(active, g)
		}
	}
	return active, nil
}

func (d *Directory) Get(ctx context.Context, id string) (models.Guest, error) {
	return d.store.GetGuest(ctx, id)
}

func (d *Directory) Add(ctx context.Context, name, phone string) (models.Guest, error) {
	name, phone = strings.TrimSpace(name), strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return models.Guest{}, apperr.Validationf("guests.Add", "please fill all fields")
	}
	g := models.Guest{
		ID:        models.NewID(),
		Name:      name,
		Phone:     phone,
		Active:    true,
		CreatedAt: d.now().UTC(),
	}
	if err := d.store.InsertGuest(ctx, g); err != nil {
		return models.Guest{}, apperr.Wrap("guests.Add", err)
	}
	return g, nil
}

// Remove erases the guest record. Their orders stay in the store.
func (d *Directory) Remove(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return apperr.ErrConfirmationRequired
	}
	return apperr.Wrap("guests.Remove", d.store.DeleteGuest(ctx, id))
}

// Checkout marks the guest inactive and keeps the record for billing.
func (d *Directory) Checkout(ctx context.Context, id string) error {
	return apperr.Wrap("guests.Checkout", d.store.SetGuestActive(ctx, id, false))
}
