package router

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/Josema-montano/FastFood-Admin/internal/broadcast"
	"github.com/Josema-montano/FastFood-Admin/internal/domain/model"
	"github.com/Josema-montano/FastFood-Admin/internal/server/http/handlers"
	"github.com/Josema-montano/FastFood-Admin/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.RestaurantFacade, hub *broadcast.Hub, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "Idempotency-Key")

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(cors.New(corsCfg))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	streamHandler := handlers.NewStreamHandler(hub, logger)

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)

	// Staff accounts are provisioned by administrators only. The first
	// admin comes from the ADMIN_LOGIN/ADMIN_PASSWORD bootstrap seed.
	auth.POST("/register",
		middleware.AuthRequired(facade),
		middleware.RequireRoles(model.RoleAdmin),
		authHandler.Register)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(facade))

	orders := protected.Group("/orders")
	orders.POST("", middleware.RequireRoles(model.RoleWaiter, model.RoleAdmin), orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.POST("/:id/transition", orderHandler.Transition)
	orders.GET("/:id/qr", orderHandler.QR)
	orders.POST("/:id/payment", middleware.RequireRoles(model.RoleWaiter, model.RoleAdmin), paymentHandler.Register)
	orders.GET("/:id/payment", paymentHandler.Get)

	protected.GET("/stream", streamHandler.Subscribe)

	return engine
}
