package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/mkruglov/marketbot/internal/server/http/handlers"
	"github.com/mkruglov/marketbot/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MarketFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	checkoutHandler := handlers.NewCheckoutHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	extrasHandler := handlers.NewExtrasHandler(facade)

	api := engine.Group("/api")
	api.POST("/user/register", authHandler.Register)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.GET("/user", authHandler.Me)
	authed.POST("/user/country", authHandler.SetCountry)
	authed.GET("/catalog", catalogHandler.Categories)
	authed.GET("/catalog/:category", catalogHandler.Products)
	authed.POST("/cart", cartHandler.Add)
	authed.GET("/cart", cartHandler.View)
	authed.POST("/wishlist", cartHandler.Wish)
	authed.GET("/wishlist", cartHandler.Wishlist)
	authed.POST("/checkout", checkoutHandler.Start)
	authed.POST("/checkout/message", checkoutHandler.Message)
	authed.DELETE("/checkout", checkoutHandler.Cancel)
	authed.GET("/orders", orderHandler.List)
	authed.GET("/orders/:id", orderHandler.Track)
	authed.GET("/orders/:id/address", orderHandler.Address)
	authed.POST("/coupon", extrasHandler.ApplyCoupon)
	authed.POST("/ratings", extrasHandler.SubmitRating)
	authed.GET("/ratings", extrasHandler.RatingSummary)
	authed.GET("/pgp/key", extrasHandler.PublicKey)

	return engine
}
