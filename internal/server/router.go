package server

import (
	biddingHandler "lostfound-registry/services/bidding/handler"
	itemsHandler "lostfound-registry/services/items/handler"
	matchingHandler "lostfound-registry/services/matching/handler"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services are the core operations exposed over HTTP
type Services struct {
	Items    itemsHandler.ItemServiceInterface
	Matching matchingHandler.MatchingServiceInterface
	Bidding  biddingHandler.BiddingServiceInterface
	Auctions biddingHandler.AuctionServiceInterface
	Metrics  prometheus.Gatherer
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(svc Services) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(IdentityMiddleware)      // caller identity from upstream headers
	router.Use(RequestLoggerMiddleware) // custom request logging

	itemHandler := itemsHandler.NewItemsHandler(svc.Items)
	matchHandler := matchingHandler.NewMatchingHandler(svc.Matching)
	bidHandler := biddingHandler.NewBiddingHandler(svc.Bidding)
	auctionHandler := biddingHandler.NewAuctionHandler(svc.Auctions)

	items := router.Group("/items")
	{
		items.POST("/lost", itemHandler.RegisterLostHandler)
		items.POST("/found", itemHandler.RegisterFoundHandler)
		items.GET("/:item_id", itemHandler.GetItemHandler)
		items.POST("/:item_id/transitions", itemHandler.TransitionHandler)
		items.POST("/:item_id/photos", itemHandler.AddPhotoHandler)
		items.POST("/:item_id/matches", matchHandler.GenerateCandidatesHandler)
	}

	matches := router.Group("/matches")
	{
		matches.GET("", matchHandler.ListMatchesHandler)
		matches.GET("/:match_id", matchHandler.GetMatchHandler)
		matches.POST("/:match_id/confirm", matchHandler.ConfirmMatchHandler)
		matches.POST("/:match_id/discard", matchHandler.DiscardMatchHandler)
	}

	lots := router.Group("/lots")
	{
		lots.POST("", auctionHandler.CreateLotHandler)
		lots.POST("/:lot_id/auctions", auctionHandler.ScheduleAuctionHandler)
	}

	auctions := router.Group("/auctions")
	{
		auctions.GET("/:auction_id", auctionHandler.GetAuctionHandler)
		auctions.POST("/:auction_id/bids", bidHandler.PlaceBidHandler)
		auctions.GET("/:auction_id/bids", bidHandler.GetBidsHandler)
		auctions.GET("/:auction_id/winning", bidHandler.GetWinningBidHandler)
		auctions.POST("/:auction_id/close", auctionHandler.CloseAuctionHandler)
		auctions.POST("/:auction_id/adjudicate", auctionHandler.AdjudicateHandler)
		auctions.POST("/:auction_id/handover", auctionHandler.HandoverHandler)
	}

	if svc.Metrics != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(svc.Metrics, promhttp.HandlerOpts{})))
	}

	return router
}
