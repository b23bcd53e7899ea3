package controllers

import (
	"net/http"

	"cafe-ordering/apperr"
	"cafe-ordering/cart"
	"cafe-ordering/catalog"
	"cafe-ordering/guests"
	"cafe-ordering/helpers"
	"cafe-ordering/middleware"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	sessions *cart.Registry
	menu     *catalog.Catalog
	guests   *guests.Directory
}

func NewCartController(sessions *cart.Registry, menu *catalog.Catalog, guests *guests.Directory) *CartController {
	return &CartController{sessions: sessions, menu: menu, guests: guests}
}

func (cc *CartController) session(c *gin.Context) *cart.Session {
	return cc.sessions.Get(middleware.UserID(c))
}

func (cc *CartController) GetCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, cc.session(c).Snapshot())
	}
}

type addItemRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

func (cc *CartController) AddItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		const op = "cart.AddItem"
		ctx, cancel := requestContext(c)
		defer cancel()

		var req addItemRequest
		if err := bind(c, op, &req); err != nil {
			helpers.RespondError(c, err)
			return
		}
		item, err := cc.menu.Get(ctx, req.ItemID)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		if !item.Available {
			helpers.RespondError(c, apperr.Validationf(op, "%s is not available", item.Name))
			return
		}
		snap := cc.session(c).Update(func(ct *cart.Cart) { ct.Add(item) })
		c.JSON(http.StatusOK, snap)
	}
}

func (cc *CartController) DecrementItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("item_id")
		snap := cc.session(c).Update(func(ct *cart.Cart) { ct.Decrement(id) })
		c.JSON(http.StatusOK, snap)
	}
}

func (cc *CartController) RemoveItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("item_id")
		snap := cc.session(c).Update(func(ct *cart.Cart) { ct.Remove(id) })
		c.JSON(http.StatusOK, snap)
	}
}

func (cc *CartController) ClearCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := cc.session(c).Update(func(ct *cart.Cart) { ct.Clear() })
		c.JSON(http.StatusOK, snap)
	}
}

type selectGuestRequest struct {
	GuestID string `json:"guest_id"`
}

// SelectGuest sets the guest the next order is placed for. An empty id
// clears the selection.
func (cc *CartController) SelectGuest() gin.HandlerFunc {
	return func(c *gin.Context) {
		const op = "cart.SelectGuest"
		ctx, cancel := requestContext(c)
		defer cancel()

		var req selectGuestRequest
		if err := bind(c, op, &req); err != nil {
			helpers.RespondError(c, err)
			return
		}
		sess := cc.session(c)
		if req.GuestID != "" {
			g, err := cc.guests.Get(ctx, req.GuestID)
			if err != nil {
				helpers.RespondError(c, err)
				return
			}
			if !g.Active {
				helpers.RespondError(c, apperr.Validationf(op, "%s has checked out", g.Name))
				return
			}
		}
		sess.SelectGuest(req.GuestID)
		c.JSON(http.StatusOK, sess.Snapshot())
	}
}

type specialRequestBody struct {
	SpecialRequest string `json:"special_request" validate:"max=500"`
}

func (cc *CartController) SetSpecialRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req specialRequestBody
		if err := bind(c, "cart.SetSpecialRequest", &req); err != nil {
			helpers.RespondError(c, err)
			return
		}
		sess := cc.session(c)
		sess.SetSpecialRequest(req.SpecialRequest)
		c.JSON(http.StatusOK, sess.Snapshot())
	}
}
