package controllers

import (
	"net/http"

	"cafe-ordering/cart"
	"cafe-ordering/feed"
	"cafe-ordering/helpers"
	"cafe-ordering/middleware"
	"cafe-ordering/orders"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	sessions  *cart.Registry
	submitter *orders.Submitter
	feed      *feed.Feed
}

func NewOrderController(sessions *cart.Registry, submitter *orders.Submitter, f *feed.Feed) *OrderController {
	return &OrderController{sessions: sessions, submitter: submitter, feed: f}
}

type submitRequest struct {
	SpecialRequest *string `json:"special_request" validate:"omitempty,max=500"`
}

// CreateOrder submits the caller's cart. A special_request in the body
// replaces the one stored on the session for this order.
func (oc *OrderController) CreateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		uid := middleware.UserID(c)
		sess := oc.sessions.Get(uid)
		var opts []orders.Option
		if c.Request.ContentLength > 0 {
			var req submitRequest
			if err := bind(c, "orders.CreateOrder", &req); err != nil {
				helpers.RespondError(c, err)
				return
			}
			if req.SpecialRequest != nil {
				opts = append(opts, orders.WithSpecialRequest(*req.SpecialRequest))
			}
		}

		receipt, err := oc.submitter.Submit(ctx, uid, sess, opts...)
		if err != nil {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("order submission failed")
			helpers.RespondError(c, err)
			return
		}
		middleware.LoggerFrom(c).Info().
			Str("order_id", receipt.Order.ID).
			Str("guest_id", receipt.Order.GuestID).
			Float64("total", receipt.Order.Total).
			Msg("order placed")
		c.JSON(http.StatusCreated, receipt)
	}
}

func (oc *OrderController) GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		order, err := oc.submitter.Get(ctx, c.Param("order_id"))
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// LiveOrders returns the same pending snapshot the websocket feed pushes.
func (oc *OrderController) LiveOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		pending, err := oc.feed.Pending(ctx)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		listed(c, "Pending orders fetched successfully", pending)
	}
}

func (oc *OrderController) MarkServed() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		id := c.Param("order_id")
		if err := oc.feed.MarkServed(ctx, id, confirmed(c)); err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order_id": id, "status": "served"})
	}
}

func (oc *OrderController) DeleteOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		id := c.Param("order_id")
		if err := oc.feed.Delete(ctx, id, confirmed(c)); err != nil {
			helpers.RespondError(c, err)
			return
		}
		middleware.LoggerFrom(c).Info().Str("order_id", id).Msg("order deleted")
		c.JSON(http.StatusOK, gin.H{"order_id": id, "deleted": true})
	}
}
