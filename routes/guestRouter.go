package routes

import (
	controller "cafe-ordering/controllers"

	"github.com/gin-gonic/gin"
)

func GuestRoutes(incomingRoutes gin.IRoutes, gc *controller.GuestController) {
	incomingRoutes.GET("/guests", gc.GetGuests())
	incomingRoutes.POST("/guests", gc.CreateGuest())
	incomingRoutes.DELETE("/guests/:guest_id", gc.DeleteGuest())
	incomingRoutes.PATCH("/guests/:guest_id/checkout", gc.CheckoutGuest())
}
