package routes

import (
	controller "cafe-ordering/controllers"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes gin.IRoutes, oc *controller.OrderController, fc *controller.FeedController) {
	incomingRoutes.POST("/orders", oc.CreateOrder())
	incomingRoutes.GET("/orders/live", oc.LiveOrders())
	incomingRoutes.GET("/orders/:order_id", oc.GetOrder())
	incomingRoutes.PATCH("/orders/:order_id/served", oc.MarkServed())
	incomingRoutes.DELETE("/orders/:order_id", oc.DeleteOrder())
	incomingRoutes.GET("/ws/orders", fc.HandleWebSocket())
}
