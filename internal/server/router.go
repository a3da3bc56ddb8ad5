package server

import (
	auctionhandler "art-auction/services/auction/handler"
	biddinghandler "art-auction/services/bidding/handler"
	paymenthandler "art-auction/services/payment/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(
	auctionService auctionhandler.AuctionServiceInterface,
	bidService biddinghandler.BidServiceInterface,
	paymentService paymenthandler.PaymentServiceInterface,
) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := auctionhandler.NewAuctionHandler(auctionService)
	biddingHandler := biddinghandler.NewBiddingHandler(bidService)
	paymentHandler := paymenthandler.NewPaymentHandler(paymentService)

	auctions := router.Group("/auctions")
	{
		auctions.POST("", auctionHandler.CreateAuctionHandler)
		auctions.GET("", auctionHandler.ListAuctionsHandler)
		auctions.GET("/active", auctionHandler.ListActiveAuctionsHandler)
		auctions.GET("/latest", auctionHandler.LatestAuctionHandler)
		auctions.GET("/:auction_id", auctionHandler.GetAuctionHandler)
		auctions.PUT("/:auction_id/end", auctionHandler.EndAuctionHandler)
		auctions.PUT("/:auction_id/suspend", auctionHandler.SuspendAuctionHandler)
		auctions.PUT("/:auction_id/resume", auctionHandler.ResumeAuctionHandler)
		auctions.DELETE("/:auction_id", auctionHandler.DeleteAuctionHandler)

		auctions.POST("/:auction_id/bids", biddingHandler.PlaceBidHandler)
		auctions.GET("/:auction_id/bids", biddingHandler.GetAuctionBidsHandler)
		auctions.GET("/:auction_id/highest", biddingHandler.GetHighestBidHandler)

		auctions.POST("/:auction_id/shipping", paymentHandler.SetShippingHandler)
		auctions.POST("/:auction_id/payments", paymentHandler.InitiatePaymentHandler)
		auctions.POST("/:auction_id/payments/verify", paymentHandler.VerifyPaymentHandler)
	}

	payments := router.Group("/payments")
	{
		payments.PUT("/:payment_id/shipment", paymentHandler.ConfirmShipmentHandler)
		payments.PUT("/:payment_id/receipt", paymentHandler.ConfirmReceiptHandler)
	}

	users := router.Group("/users")
	{
		users.GET("/:user_id/bids", biddingHandler.GetUserBidsHandler)
		users.GET("/:user_id/shipping/default", paymentHandler.GetDefaultShippingHandler)
	}

	router.GET("/orders", paymentHandler.ListOrdersHandler)

	return router
}
