package routes

import (
	controller "cafe-ordering/controllers"

	"github.com/gin-gonic/gin"
)

func UserRoutes(incomingRoutes gin.IRoutes, uc *controller.UserController) {
	incomingRoutes.POST("/users/signup", uc.SignUp())
	incomingRoutes.POST("/users/login", uc.Login())
}

// SessionRoutes need an authenticated caller.
func SessionRoutes(incomingRoutes gin.IRoutes, uc *controller.UserController) {
	incomingRoutes.POST("/users/logout", uc.Logout())
}
