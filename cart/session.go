package cart

import (
	"sync"

	"cafe-ordering/apperr"
)

// Session is the ordering state of one signed-in staff member: the cart,
// the selected guest and the special-request text.
type Session struct {
	UserID string

	mu             sync.Mutex
	cart           *Cart
	guestID        string
	specialRequest string
	submitting     bool
}

func NewSession(userID string) *Session {
	return &Session{UserID: userID, cart: New()}
}

// Snapshot is a read-only copy of a session.
type Snapshot struct {
	Lines          []Line  `json:"lines"`
	Total          float64 `json:"total"`
	GuestID        string  `json:"guest_id"`
	SpecialRequest string  `json:"special_request"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Lines:          s.cart.Lines(),
		Total:          s.cart.Total(),
		GuestID:        s.guestID,
		SpecialRequest: s.specialRequest,
	}
}

// Update runs fn with exclusive access to the cart and returns the
// resulting snapshot.
func (s *Session) Update(fn func(c *Cart)) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.cart)
	return s.snapshotLocked()
}

func (s *Session) SelectGuest(guestID string) {
	s.mu.Lock()
	s.guestID = guestID
	s.mu.Unlock()
}

func (s *Session) SetSpecialRequest(text string) {
	s.mu.Lock()
	s.specialRequest = text
	s.mu.Unlock()
}

// BeginSubmit marks a submission as in flight and returns the state to
// submit. Only one submission per session may be in flight; EndSubmit
// must follow.
func (s *Session) BeginSubmit() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return Snapshot{}, apperr.ErrSubmissionInProgress
	}
	s.submitting = true
	return s.snapshotLocked(), nil
}

// EndSubmit clears the in-flight mark. A nil submitted leaves the session
// as it is. Otherwise the submitted quantities are taken out of the cart,
// so items added while the order was being stored stay behind, and the
// guest and special request are cleared unless they were changed
// meanwhile.
func (s *Session) EndSubmit(submitted *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if submitted == nil {
		return
	}
	for _, l := range submitted.Lines {
		s.cart.Subtract(l.ItemID, l.Quantity)
	}
	if s.guestID == submitted.GuestID {
		s.guestID = ""
	}
	if s.specialRequest == submitted.SpecialRequest {
		s.specialRequest = ""
	}
}

// Registry maps staff user ids to their ordering session.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Get returns the session for userID, creating it on first use.
func (r *Registry) Get(userID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[userID]
	if !ok {
		s = NewSession(userID)
		r.sessions[userID] = s
	}
	return s
}

// Drop tears down the session, discarding its cart.
func (r *Registry) Drop(userID string) {
	r.mu.Lock()
	delete(r.sessions, userID)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
