package server

import (
	"auction-house/internal/clock"
	auctionhandler "auction-house/services/auction/handler"
	sessionhandler "auction-house/services/session/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(sessions sessionhandler.SessionServiceInterface, auctions auctionhandler.AuctionServiceInterface, clk clock.Clock) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	sessionHandler := sessionhandler.NewSessionHandler(sessions)
	auctionHandler := auctionhandler.NewAuctionHandler(auctions, clk)

	auth := router.Group("/auth")
	{
		auth.POST("/login", sessionHandler.LoginHandler)
		auth.POST("/register", sessionHandler.RegisterHandler)
		auth.POST("/logout", sessionHandler.LogoutHandler)
		auth.GET("/session", sessionHandler.GetSessionHandler)
	}

	gate := SessionGateMiddleware(sessions)

	router.GET("/categories", gate, auctionHandler.ListCategoriesHandler)

	auctionRoutes := router.Group("/auctions", gate)
	{
		auctionRoutes.GET("", auctionHandler.ListAuctionsHandler)
		auctionRoutes.GET("/:auction_id", auctionHandler.GetAuctionHandler)
		auctionRoutes.GET("/:auction_id/bids", auctionHandler.ListBidsHandler)
		auctionRoutes.POST("/:auction_id/bids", auctionHandler.PlaceBidHandler)
		auctionRoutes.GET("/:auction_id/remaining", auctionHandler.RemainingTimeHandler)
	}

	return router
}
