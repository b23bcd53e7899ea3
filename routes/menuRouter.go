package routes

import (
	controller "cafe-ordering/controllers"

	"github.com/gin-gonic/gin"
)

func MenuRoutes(incomingRoutes gin.IRoutes, mc *controller.MenuController) {
	incomingRoutes.GET("/categories", mc.GetCategories())
	incomingRoutes.DELETE("/categories/:category", mc.DeleteCategory())
	incomingRoutes.GET("/menu", mc.GetMenu())
	incomingRoutes.GET("/menu/all", mc.GetAllMenuItems())
	incomingRoutes.POST("/menu", mc.CreateMenuItem())
	incomingRoutes.PATCH("/menu/:item_id/availability", mc.SetAvailability())
	incomingRoutes.DELETE("/menu/:item_id", mc.DeleteMenuItem())
}
