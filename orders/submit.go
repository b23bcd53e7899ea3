// Package orders turns an ordering session into a stored order.
package orders

import (
	"context"
	"time"

	"cafe-ordering/apperr"
	"cafe-ordering/cart"
	"cafe-ordering/models"
	"cafe-ordering/notify"

	"github.com/rs/zerolog"
)

type Store interface {
	InsertOrder(ctx context.Context, o models.Order) error
	GetOrder(ctx context.Context, id string) (models.Order, error)
}

type Analytics interface {
	IncrementItem(ctx context.Context, itemID, name string, at time.Time) error
}

type GuestLookup interface {
	GetGuest(ctx context.Context, id string) (models.Guest, error)
}

// ChangeNotifier is told whenever the set of orders changed.
type ChangeNotifier interface {
	Changed()
}

// Background runs best-effort tasks whose failure must not reach the
// caller.
type Background interface {
	Go(task string, fn func(ctx context.Context) error)
}

type Submitter struct {
	store       Store
	analytics   Analytics
	guests      GuestLookup
	notifier    notify.Notifier
	changes     ChangeNotifier
	bg          Background
	log         zerolog.Logger
	notifyPhone string
	now         func() time.Time
}

type Deps struct {
	Store       Store
	Analytics   Analytics
	Guests      GuestLookup
	Notifier    notify.Notifier
	Changes     ChangeNotifier
	Background  Background
	Log         zerolog.Logger
	NotifyPhone string
}

func NewSubmitter(d Deps) *Submitter {
	return &Submitter{
		store:       d.Store,
		analytics:   d.Analytics,
		guests:      d.Guests,
		notifier:    d.Notifier,
		changes:     d.Changes,
		bg:          d.Background,
		log:         d.Log.With().Str("component", "orders").Logger(),
		notifyPhone: d.NotifyPhone,
		now:         time.Now,
	}
}

// Receipt is returned for a stored order. Link is the send intent the
// client opens to hand the message off.
type Receipt struct {
	Order   models.Order `json:"order"`
	Message string       `json:"message"`
	Link    string       `json:"link"`
}

type options struct {
	specialRequest *string
}

type Option func(*options)

// WithSpecialRequest replaces the session's special request for this order
// only. The session text is untouched when the submission is rejected.
func WithSpecialRequest(text string) Option {
	return func(o *options) { o.specialRequest = &text }
}

// Submit checks, in order, that a staff member is signed in, a guest is
// selected and the cart is not empty; each failure returns before anything
// is written. On success the order is stored, the submitted lines leave the
// session and analytics and messaging run in the background. When the store
// rejects the order the session is left untouched so the user can retry.
func (s *Submitter) Submit(ctx context.Context, userID string, sess *cart.Session, opts ...Option) (Receipt, error) {
	const op = "orders.Submit"
	if userID == "" || sess == nil {
		return Receipt{}, apperr.ErrUnauthenticated
	}

	snap, err := sess.BeginSubmit()
	if err != nil {
		return Receipt{}, err
	}
	var submitted *cart.Snapshot
	defer func() { sess.EndSubmit(submitted) }()

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	request := snap.SpecialRequest
	if o.specialRequest != nil {
		request = *o.specialRequest
	}

	if snap.GuestID == "" {
		return Receipt{}, apperr.ErrMissingGuest
	}
	if len(snap.Lines) == 0 {
		return Receipt{}, apperr.ErrEmptyCart
	}

	order := models.Order{
		ID:             models.NewID(),
		GuestID:        snap.GuestID,
		Items:          orderLines(snap.Lines),
		Total:          snap.Total,
		Status:         models.StatusPending,
		CreatedAt:      s.now().UTC(),
		SpecialRequest: request,
		CreatedBy:      userID,
	}
	if err := s.store.InsertOrder(ctx, order); err != nil {
		s.log.Error().Err(err).Str("guest_id", order.GuestID).Msg("order was not created")
		return Receipt{}, apperr.Remote(op, err)
	}
	submitted = &snap

	s.log.Debug().
		Str("order_id", order.ID).
		Str("guest_id", order.GuestID).
		Str("created_by", userID).
		Float64("total", order.Total).
		Msg("order placed")

	for _, line := range order.Items {
		line := line
		at := order.CreatedAt
		s.bg.Go("analytics:"+line.ItemID, func(ctx context.Context) error {
			return s.analytics.IncrementItem(ctx, line.ItemID, line.Name, at)
		})
	}
	if s.changes != nil {
		s.changes.Changed()
	}

	msg := notify.NewOrderMessage(order, s.guestName(ctx, order.GuestID))
	s.bg.Go("notify:"+order.ID, func(ctx context.Context) error {
		return s.notifier.Notify(ctx, msg)
	})

	text := msg.Text()
	return Receipt{Order: order, Message: text, Link: notify.Link(s.notifyPhone, text)}, nil
}

func (s *Submitter) guestName(ctx context.Context, guestID string) string {
	g, err := s.guests.GetGuest(ctx, guestID)
	if err != nil {
		s.log.Debug().Err(err).Str("guest_id", guestID).Msg("guest lookup for message failed")
		return ""
	}
	return g.Name
}

// Get returns a single order for the bill view.
func (s *Submitter) Get(ctx context.Context, id string) (models.Order, error) {
	return s.store.GetOrder(ctx, id)
}

func orderLines(lines []cart.Line) []models.OrderLine {
	out := make([]models.OrderLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, models.OrderLine{ItemID: l.ItemID, Name: l.Name, Price: l.Price, Quantity: l.Quantity})
	}
	return out
}
