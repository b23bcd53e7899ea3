package billing

import (
	"bytes"
	"context"
	"testing"
	"time"

	"cafe-ordering/database"
	"cafe-ordering/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guestOrders() []models.Order {
	base := time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC)
	return []models.Order{
		{
			ID: "late", GuestID: "G1", Status: models.StatusPending, CreatedAt: base.Add(26 * time.Hour),
			Items: []models.OrderLine{{ItemID: "pizza", Name: "Margherita", Price: 250, Quantity: 1}},
			Total: 250,
		},
		{
			ID: "early", GuestID: "G1", Status: models.StatusServed, CreatedAt: base,
			Items: []models.OrderLine{
				{ItemID: "tea", Name: "Tea", Price: 20, Quantity: 2},
				{ItemID: "toast", Name: "Toast", Price: 30, Quantity: 1},
			},
			Total: 70,
		},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(guestOrders())

	assert.Equal(t, 2, s.Orders)
	require.Len(t, s.Rows, 3)
	assert.Equal(t, "early", s.Rows[0].OrderID)
	assert.Equal(t, 40.0, s.Rows[0].Amount)
	assert.Equal(t, "late", s.Rows[2].OrderID)
	assert.Equal(t, 320.0, s.Total)
	assert.Equal(t, 16.0, s.Surcharge)
	assert.Equal(t, 336.0, s.GrandTotal)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Total)
	assert.Zero(t, s.GrandTotal)
	assert.NotNil(t, s.Rows)
}

func TestForGuest(t *testing.T) {
	ctx := context.Background()
	m := database.NewMemory()
	require.NoError(t, m.InsertGuest(ctx, models.Guest{ID: "G1", Name: "Asha", Active: true}))
	for _, o := range guestOrders() {
		require.NoError(t, m.InsertOrder(ctx, o))
	}
	require.NoError(t, m.InsertOrder(ctx, models.Order{ID: "other", GuestID: "G2", Total: 999}))

	s, err := New(m).ForGuest(ctx, "G1")
	require.NoError(t, err)
	assert.Equal(t, "Asha", s.GuestName)
	assert.Equal(t, 320.0, s.Total)

	empty, err := New(m).ForGuest(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, "Guest", empty.GuestName)
	assert.Zero(t, empty.Orders)
	assert.Empty(t, empty.Rows)
}

func TestRenderPDF(t *testing.T) {
	s := Summarize(guestOrders())
	s.GuestName = "Asha"

	var buf bytes.Buffer
	require.NoError(t, RenderPDF(&buf, "The Cafe", s, time.UTC))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestQRCode(t *testing.T) {
	png, err := QRCode("https://cafe.example", "o1", 128)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
	assert.Equal(t, "https://cafe.example/bills/o1", BillURL("https://cafe.example", "o1"))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 3.5, Round2(3.4999999))
	assert.Equal(t, 0.35, Round2(7*SurchargeRate))
}
