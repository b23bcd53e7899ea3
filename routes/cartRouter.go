package routes

import (
	controller "cafe-ordering/controllers"

	"github.com/gin-gonic/gin"
)

func CartRoutes(incomingRoutes gin.IRoutes, cc *controller.CartController) {
	incomingRoutes.GET("/cart", cc.GetCart())
	incomingRoutes.POST("/cart/items", cc.AddItem())
	incomingRoutes.POST("/cart/items/:item_id/decrement", cc.DecrementItem())
	incomingRoutes.DELETE("/cart/items/:item_id", cc.RemoveItem())
	incomingRoutes.DELETE("/cart", cc.ClearCart())
	incomingRoutes.PUT("/cart/guest", cc.SelectGuest())
	incomingRoutes.PUT("/cart/request", cc.SetSpecialRequest())
}
