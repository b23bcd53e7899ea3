package controllers

import (
	"net/http"

	"cafe-ordering/feed"
	"cafe-ordering/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type FeedController struct {
	feed     *feed.Feed
	upgrader websocket.Upgrader
}

// NewFeedController accepts websocket handshakes from the given origins.
// With no origins every origin is accepted.
func NewFeedController(f *feed.Feed, origins []string) *FeedController {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return &FeedController{
		feed: f,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || origin == "" || allowed[origin]
			},
		},
	}
}

// HandleWebSocket subscribes the connection to the pending order feed until
// the client goes away. Inbound frames are read and discarded.
func (fc *FeedController) HandleWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := fc.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("websocket upgrade failed")
			return
		}
		defer conn.Close()

		fc.feed.Subscribe(conn)
		defer fc.feed.Unsubscribe(conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}
