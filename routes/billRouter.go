package routes

import (
	controller "cafe-ordering/controllers"

	"github.com/gin-gonic/gin"
)

func BillRoutes(incomingRoutes gin.IRoutes, bc *controller.BillController, ac *controller.AnalysisController) {
	incomingRoutes.GET("/bills/:guest_id", bc.GetBill())
	incomingRoutes.GET("/bills/:guest_id/pdf", bc.DownloadBill())
	incomingRoutes.GET("/bills/orders/:order_id/qr", bc.OrderQRCode())
	incomingRoutes.GET("/analysis", ac.GetMonthly())
}
