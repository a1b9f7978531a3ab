package router

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/darkahs/storefront/internal/server/http/handlers"
	"github.com/darkahs/storefront/internal/server/http/middleware"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, pinger Pinger, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	productHandler := handlers.NewProductHandler(facade)

	api := engine.Group("/api")

	user := api.Group("/user")
	loginLimit := middleware.LoginRateLimit()
	user.POST("/register", loginLimit, authHandler.Register)
	user.POST("/login", loginLimit, authHandler.Login)
	user.POST("/admin", loginLimit, authHandler.AdminLogin)

	order := api.Group("/order")
	order.POST("/verify", orderHandler.Verify)
	order.POST("/userorders", middleware.AuthRequired(facade), orderHandler.UserOrders)
	order.POST("/list", middleware.AdminRequired(facade), orderHandler.List)
	order.POST("/status", middleware.AdminRequired(facade), orderHandler.UpdateStatus)

	cart := api.Group("/cart")
	cart.Use(middleware.AuthRequired(facade))
	cart.POST("/add", cartHandler.Add)
	cart.POST("/update", cartHandler.Update)
	cart.POST("/get", cartHandler.Get)
	cart.POST("/clear", cartHandler.Clear)

	product := api.Group("/product")
	product.GET("/list", productHandler.List)
	product.POST("/single", productHandler.Single)
	product.POST("/add", middleware.AdminRequired(facade), productHandler.Add)
	product.POST("/update", middleware.AdminRequired(facade), productHandler.Update)
	product.POST("/remove", middleware.AdminRequired(facade), productHandler.Remove)

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/healthz", func(c *gin.Context) {
		if err := pinger.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return engine
}
