package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cafe-ordering/database"
	"cafe-ordering/feed"
	"cafe-ordering/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillFilename(t *testing.T) {
	assert.Equal(t, "bill-Asha.pdf", billFilename("Asha"))
	assert.Equal(t, "bill-A_B_.pdf", billFilename(`A/B"`))
}

func TestConfirmed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for query, want := range map[string]bool{"": false, "?confirm=true": true, "?confirm=1": true, "?confirm=no": false} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodDelete, "/x"+query, nil)
		assert.Equal(t, want, confirmed(c), query)
	}
}

type feedMessage struct {
	Event   string         `json:"event"`
	Payload []models.Order `json:"payload"`
}

func TestWebSocketFeed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lg := zerolog.New(io.Discard)
	mem := database.NewMemory()
	f := feed.New(mem, feed.NewHub(lg), lg)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go f.Run(ctx, nil)

	fc := NewFeedController(f, []string{"http://ok.test"})
	r := gin.New()
	r.GET("/ws/orders", fc.HandleWebSocket())
	srv := httptest.NewServer(r)
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/orders"

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://evil.test"}})
	require.Error(t, err)
	if resp != nil {
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	}

	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://ok.test"}})
	require.NoError(t, err)
	defer conn.Close()

	read := func() feedMessage {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		var msg feedMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	}

	first := read()
	assert.Equal(t, feed.EventOrders, first.Event)
	assert.Empty(t, first.Payload)

	require.NoError(t, mem.InsertOrder(ctx, models.Order{ID: "o1", Status: models.StatusPending, CreatedAt: time.Now()}))
	f.Changed()
	// an earlier refresh may still be in flight
	next := read()
	for len(next.Payload) == 0 {
		next = read()
	}
	require.Len(t, next.Payload, 1)
	assert.Equal(t, "o1", next.Payload[0].ID)
}
