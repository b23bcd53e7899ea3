package controllers

import (
	"net/http"
	"strconv"

	"cafe-ordering/guests"
	"cafe-ordering/helpers"
	"cafe-ordering/models"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	guests *guests.Directory
}

func NewGuestController(d *guests.Directory) *GuestController {
	return &GuestController{guests: d}
}

func (gc *GuestController) GetGuests() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var (
			list []models.Guest
			err  error
		)
		if active, _ := strconv.ParseBool(c.Query("active")); active {
			list, err = gc.guests.ListActive(ctx)
		} else {
			list, err = gc.guests.List(ctx)
		}
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		listed(c, "Guests fetched successfully", list)
	}
}

type newGuestRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (gc *GuestController) CreateGuest() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		var req newGuestRequest
		if err := bind(c, "guests.CreateGuest", &req); err != nil {
			helpers.RespondError(c, err)
			return
		}
		g, err := gc.guests.Add(ctx, req.Name, req.Phone)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, g)
	}
}

func (gc *GuestController) DeleteGuest() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		id := c.Param("guest_id")
		if err := gc.guests.Remove(ctx, id, confirmed(c)); err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"guest_id": id, "deleted": true})
	}
}

func (gc *GuestController) CheckoutGuest() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		id := c.Param("guest_id")
		if err := gc.guests.Checkout(ctx, id); err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"guest_id": id, "is_active": false})
	}
}
