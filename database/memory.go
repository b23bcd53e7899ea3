package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"cafe-ordering/apperr"
	"cafe-ordering/models"
)

// Memory is an in-process store with the same method set as Store. It
// backs the MEMORY_STORE dev mode and the tests. Slices are kept in
// insertion order.
type Memory struct {
	mu        sync.Mutex
	guests    []models.Guest
	menu      []models.MenuItem
	orders    []models.Order
	analytics map[string]models.AnalyticsCounter
	users     []models.User
	watchers  map[chan struct{}]struct{}
}

func NewMemory() *Memory {
	return &Memory{
		analytics: make(map[string]models.AnalyticsCounter),
		watchers:  make(map[chan struct{}]struct{}),
	}
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, it := range items {
		if match(it) {
			return i
		}
	}
	return -1
}

// Guests

func (m *Memory) ListGuests(ctx context.Context) ([]models.Guest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Guest{}, m.guests...), nil
}

func (m *Memory) GetGuest(ctx context.Context, id string) (models.Guest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := indexOf(m.guests, func(g models.Guest) bool { return g.ID == id }); i >= 0 {
		return m.guests[i], nil
	}
	return models.Guest{}, apperr.NotFoundf("database.GetGuest", "guest was not found")
}

func (m *Memory) InsertGuest(ctx context.Context, g models.Guest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.guests = append(m.guests, g)
	return nil
}

func (m *Memory) SetGuestActive(ctx context.Context, id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.guests, func(g models.Guest) bool { return g.ID == id })
	if i < 0 {
		return apperr.NotFoundf("database.SetGuestActive", "guest was not found")
	}
	m.guests[i].Active = active
	return nil
}

func (m *Memory) DeleteGuest(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.guests, func(g models.Guest) bool { return g.ID == id })
	if i < 0 {
		return apperr.NotFoundf("database.DeleteGuest", "guest was not found")
	}
	m.guests = append(m.guests[:i], m.guests[i+1:]...)
	return nil
}

// Menu

func (m *Memory) ListMenuItems(ctx context.Context, f models.MenuFilter) ([]models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.MenuItem{}
	for _, it := range m.menu {
		if f.Category != nil && it.Category != *f.Category {
			continue
		}
		if f.AvailableOnly && !it.Available {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

func (m *Memory) GetMenuItem(ctx context.Context, id string) (models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := indexOf(m.menu, func(it models.MenuItem) bool { return it.ID == id }); i >= 0 {
		return m.menu[i], nil
	}
	return models.MenuItem{}, apperr.NotFoundf("database.GetMenuItem", "menu item was not found")
}

func (m *Memory) InsertMenuItem(ctx context.Context, item models.MenuItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.menu = append(m.menu, item)
	return nil
}

func (m *Memory) SetMenuItemAvailability(ctx context.Context, id string, available bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.menu, func(it models.MenuItem) bool { return it.ID == id })
	if i < 0 {
		return apperr.NotFoundf("database.SetMenuItemAvailability", "menu item was not found")
	}
	m.menu[i].Available = available
	return nil
}

func (m *Memory) DeleteMenuItem(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.menu, func(it models.MenuItem) bool { return it.ID == id })
	if i < 0 {
		return apperr.NotFoundf("database.DeleteMenuItem", "menu item was not found")
	}
	m.menu = append(m.menu[:i], m.menu[i+1:]...)
	return nil
}

// Orders

func copyOrder(o models.Order) models.Order {
	o.Items = append([]models.OrderLine{}, o.Items...)
	return o
}

func (m *Memory) InsertOrder(ctx context.Context, o models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, copyOrder(o))
	m.signalLocked()
	return nil
}

func (m *Memory) GetOrder(ctx context.Context, id string) (models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := indexOf(m.orders, func(o models.Order) bool { return o.ID == id }); i >= 0 {
		return copyOrder(m.orders[i]), nil
	}
	return models.Order{}, apperr.NotFoundf("database.GetOrder", "order was not found")
}

func (m *Memory) ListOrders(ctx context.Context) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, copyOrder(o))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) ListOrdersByGuest(ctx context.Context, guestID string) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Order{}
	for _, o := range m.orders {
		if o.GuestID == guestID {
			out = append(out, copyOrder(o))
		}
	}
	return out, nil
}

func (m *Memory) SetOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.orders, func(o models.Order) bool { return o.ID == id })
	if i < 0 {
		return apperr.NotFoundf("database.SetOrderStatus", "order was not found")
	}
	m.orders[i].Status = status
	m.signalLocked()
	return nil
}

func (m *Memory) DeleteOrder(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.orders, func(o models.Order) bool { return o.ID == id })
	if i < 0 {
		return apperr.NotFoundf("database.DeleteOrder", "order was not found")
	}
	m.orders = append(m.orders[:i], m.orders[i+1:]...)
	m.signalLocked()
	return nil
}

// WatchOrders signals after every order write until ctx ends.
func (m *Memory) WatchOrders(ctx context.Context) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)
	m.mu.Lock()
	m.watchers[ch] = struct{}{}
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.watchers, ch)
		close(ch)
		m.mu.Unlock()
	}()
	return ch, nil
}

func (m *Memory) signalLocked() {
	for ch := range m.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Analytics

func (m *Memory) IncrementItem(ctx context.Context, itemID, name string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := m.analytics[itemID]
	c.ItemID = itemID
	c.Name = name
	c.OrderCount++
	c.LastOrdered = at
	m.analytics[itemID] = c
	return nil
}

func (m *Memory) ListAnalytics(ctx context.Context) ([]models.AnalyticsCounter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.AnalyticsCounter, 0, len(m.analytics))
	for _, c := range m.analytics {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderCount != out[j].OrderCount {
			return out[i].OrderCount > out[j].OrderCount
		}
		return out[i].ItemID < out[j].ItemID
	})
	return out, nil
}

// Users

func (m *Memory) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.users, func(u models.User) bool { return u.Email != nil && *u.Email == email })
	if i < 0 {
		return models.User{}, apperr.NotFoundf("database.FindUserByEmail", "user was not found")
	}
	return m.users[i], nil
}

func (m *Memory) UserExists(ctx context.Context, email, phone string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.users, func(u models.User) bool {
		return (u.Email != nil && *u.Email == email) || (u.Phone != nil && *u.Phone == phone)
	})
	return i >= 0, nil
}

func (m *Memory) InsertUser(ctx context.Context, u models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append(m.users, u)
	return nil
}

func (m *Memory) UpdateTokens(ctx context.Context, userID, token, refreshToken string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.users, func(u models.User) bool { return u.ID == userID })
	if i < 0 {
		return apperr.NotFoundf("database.UpdateTokens", "user was not found")
	}
	m.users[i].Token = &token
	m.users[i].RefreshToken = &refreshToken
	m.users[i].UpdatedAt = at
	return nil
}
