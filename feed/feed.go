// Package feed keeps connected clients up to date with the list of pending
// orders. Each push carries the whole list, oldest first; clients replace
// what they had.
package feed

import (
	"context"

	"cafe-ordering/apperr"
	"cafe-ordering/models"

	"github.com/rs/zerolog"
)

const EventOrders = "orders"

type Store interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
	SetOrderStatus(ctx context.Context, id string, status models.OrderStatus) error
	DeleteOrder(ctx context.Context, id string) error
}

type Feed struct {
	store   Store
	hub     *Hub
	log     zerolog.Logger
	trigger chan struct{}
}

func New(store Store, hub *Hub, log zerolog.Logger) *Feed {
	return &Feed{
		store:   store,
		hub:     hub,
		log:     log.With().Str("component", "feed").Logger(),
		trigger: make(chan struct{}, 1),
	}
}

// Changed schedules a refresh. Calls made while one is already pending
// collapse into it.
func (f *Feed) Changed() {
	select {
	case f.trigger <- struct{}{}:
	default:
	}
}

// Pending reads every order and keeps the pending ones, preserving the
// store's creation order.
func (f *Feed) Pending(ctx context.Context) ([]models.Order, error) {
	all, err := f.store.ListOrders(ctx)
	if err != nil {
		return nil, apperr.Wrap("feed.Pending", err)
	}
	pending := make([]models.Order, 0, len(all))
	for _, o := range all {
		if o.Status == models.StatusPending {
			pending = append(pending, o)
		}
	}
	return pending, nil
}

// Refresh pushes the current pending list to every client.
func (f *Feed) Refresh(ctx context.Context) error {
	pending, err := f.Pending(ctx)
	if err != nil {
		return err
	}
	f.hub.Broadcast(Message{Event: EventOrders, Payload: pending})
	return nil
}

// Run refreshes once, then again on every Changed call and every signal
// from watch, until ctx ends. watch may be nil.
func (f *Feed) Run(ctx context.Context, watch <-chan struct{}) {
	f.refreshLogged(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-f.trigger:
			f.refreshLogged(ctx)
		case _, ok := <-watch:
			if !ok {
				f.log.Warn().Msg("order change stream closed, falling back to local changes")
				watch = nil
				continue
			}
			f.refreshLogged(ctx)
		}
	}
}

func (f *Feed) refreshLogged(ctx context.Context) {
	if err := f.Refresh(ctx); err != nil && ctx.Err() == nil {
		f.log.Error().Err(err).Msg("refresh live orders")
	}
}

// Subscribe adds c to the feed; it receives the current list shortly
// after.
func (f *Feed) Subscribe(c Conn) {
	f.hub.Add(c)
	f.Changed()
}

func (f *Feed) Unsubscribe(c Conn) {
	f.hub.Remove(c)
}

// MarkServed moves an order to served. Repeating it leaves the order
// served.
func (f *Feed) MarkServed(ctx context.Context, orderID string, confirmed bool) error {
	if !confirmed {
		return apperr.ErrConfirmationRequired
	}
	if err := f.store.SetOrderStatus(ctx, orderID, models.StatusServed); err != nil {
		return apperr.Wrap("feed.MarkServed", err)
	}
	f.Changed()
	return nil
}

// Delete removes the order record. There is no undo.
func (f *Feed) Delete(ctx context.Context, orderID string, confirmed bool) error {
	if !confirmed {
		return apperr.ErrConfirmationRequired
	}
	if err := f.store.DeleteOrder(ctx, orderID); err != nil {
		return apperr.Wrap("feed.Delete", err)
	}
	f.Changed()
	return nil
}
