package feed

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"cafe-ordering/apperr"
	"cafe-ordering/database"
	"cafe-ordering/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu       sync.Mutex
	messages [][]byte
	fail     bool
	closed   bool
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("broken pipe")
	}
	c.messages = append(c.messages, append([]byte(nil), data...))
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

func (c *fakeConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

func (c *fakeConn) last(t *testing.T) []models.Order {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	require.NotEmpty(t, c.messages)
	var msg struct {
		Event   string         `json:"event"`
		Payload []models.Order `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(c.messages[len(c.messages)-1], &msg))
	assert.Equal(t, EventOrders, msg.Event)
	return msg.Payload
}

func seedOrders(t *testing.T, m *database.Memory) {
	t.Helper()
	base := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	ctx := context.Background()
	// inserted out of creation order on purpose
	require.NoError(t, m.InsertOrder(ctx, models.Order{ID: "o3", Status: models.StatusPending, CreatedAt: base.Add(3 * time.Minute)}))
	require.NoError(t, m.InsertOrder(ctx, models.Order{ID: "o1", Status: models.StatusPending, CreatedAt: base.Add(1 * time.Minute)}))
	require.NoError(t, m.InsertOrder(ctx, models.Order{ID: "o2", Status: models.StatusServed, CreatedAt: base.Add(2 * time.Minute)}))
}

func ids(orders []models.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func newFeed(m *database.Memory) *Feed {
	lg := zerolog.New(io.Discard)
	return New(m, NewHub(lg), lg)
}

func TestRefreshPushesPendingInCreationOrder(t *testing.T) {
	m := database.NewMemory()
	seedOrders(t, m)
	f := newFeed(m)
	c := &fakeConn{}
	f.hub.Add(c)

	require.NoError(t, f.Refresh(context.Background()))
	assert.Equal(t, []string{"o1", "o3"}, ids(c.last(t)))
}

func TestMarkServedIsIdempotent(t *testing.T) {
	m := database.NewMemory()
	seedOrders(t, m)
	f := newFeed(m)
	ctx := context.Background()

	assert.ErrorIs(t, f.MarkServed(ctx, "o1", false), apperr.ErrConfirmationRequired)

	require.NoError(t, f.MarkServed(ctx, "o1", true))
	require.NoError(t, f.MarkServed(ctx, "o1", true))

	o, err := m.GetOrder(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusServed, o.Status)

	pending, err := f.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"o3"}, ids(pending))
}

func TestDelete(t *testing.T) {
	m := database.NewMemory()
	seedOrders(t, m)
	f := newFeed(m)
	ctx := context.Background()

	assert.ErrorIs(t, f.Delete(ctx, "o3", false), apperr.ErrConfirmationRequired)
	require.NoError(t, f.Delete(ctx, "o3", true))
	assert.True(t, apperr.IsNotFound(f.Delete(ctx, "o3", true)))

	pending, err := f.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"o1"}, ids(pending))
}

func TestHubDropsFailingClients(t *testing.T) {
	h := NewHub(zerolog.New(io.Discard))
	good, bad := &fakeConn{}, &fakeConn{fail: true}
	h.Add(good)
	h.Add(bad)

	h.Broadcast(Message{Event: EventOrders, Payload: []models.Order{}})

	assert.Equal(t, 1, h.Len())
	assert.True(t, bad.closed)
	assert.Equal(t, 1, good.count())
}

func TestRunReactsToChangesAndWatch(t *testing.T) {
	m := database.NewMemory()
	f := newFeed(m)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watch := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		f.Run(ctx, watch)
		close(done)
	}()

	c := &fakeConn{}
	f.Subscribe(c)
	require.Eventually(t, func() bool { return c.count() >= 1 }, time.Second, 5*time.Millisecond)
	assert.Empty(t, c.last(t))

	// a write made by another process arrives through the watch channel
	require.NoError(t, m.InsertOrder(context.Background(), models.Order{ID: "remote", Status: models.StatusPending, CreatedAt: time.Now()}))
	watch <- struct{}{}
	require.Eventually(t, func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return len(c.messages) > 0 && json.Valid(c.messages[len(c.messages)-1]) &&
			string(c.messages[len(c.messages)-1]) != `{"event":"orders","payload":[]}`
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"remote"}, ids(c.last(t)))

	close(watch)
	require.NoError(t, f.MarkServed(context.Background(), "remote", true))
	require.Eventually(t, func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return string(c.messages[len(c.messages)-1]) == `{"event":"orders","payload":[]}`
	}, time.Second, 5*time.Millisecond)

	f.Unsubscribe(c)
	assert.Zero(t, f.hub.Len())

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
}
