package routes

import (
	"net/http"
	"time"

	controller "cafe-ordering/controllers"
	"cafe-ordering/helpers"
	"cafe-ordering/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Controllers struct {
	Users    *controller.UserController
	Cart     *controller.CartController
	Orders   *controller.OrderController
	Feed     *controller.FeedController
	Guests   *controller.GuestController
	Menu     *controller.MenuController
	Bills    *controller.BillController
	Analysis *controller.AnalysisController
}

// NewRouter mounts the public user routes, then every other route behind
// Authentication.
func NewRouter(ctrl Controllers, tokens *helpers.TokenMaker, log zerolog.Logger, origins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	corsConfig := cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	router.Use(cors.New(corsConfig))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Page not found"})
	})
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	UserRoutes(router, ctrl.Users)

	authed := router.Group("/", middleware.Authentication(tokens))
	SessionRoutes(authed, ctrl.Users)
	CartRoutes(authed, ctrl.Cart)
	OrderRoutes(authed, ctrl.Orders, ctrl.Feed)
	GuestRoutes(authed, ctrl.Guests)
	MenuRoutes(authed, ctrl.Menu)
	BillRoutes(authed, ctrl.Bills, ctrl.Analysis)
	return router
}
