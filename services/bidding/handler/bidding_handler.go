package handler

import (
	"context"
	"net/http"
	"time"

	model "art-auction/internal/models"
	"art-auction/services/helpers"
	"art-auction/utils"

	"github.com/gin-gonic/gin"
)

type BidServiceInterface interface {
	PlaceBid(ctx context.Context, auctionID, bidderID string, amount int64) (model.Bid, error)
	GetAuctionBids(auctionID string) ([]model.Bid, error)
	GetUserBids(bidderID string) ([]model.Bid, error)
	GetHighestBid(ctx context.Context, auctionID string) (int64, string, error)
}

type BiddingHandler struct {
	service BidServiceInterface
}

func NewBiddingHandler(service BidServiceInterface) *BiddingHandler {
	return &BiddingHandler{service: service}
}

// PlaceBidRequest is the payload for POST /auctions/:auction_id/bids.
type PlaceBidRequest struct {
	BidderID string `json:"bidder_id" binding:"required"`
	Amount   int64  `json:"amount" binding:"required,gt=0"`
}

// BidResponse is the wire form of a bid.
type BidResponse struct {
	BidID     string `json:"bid_id"`
	AuctionID string `json:"auction_id"`
	BidderID  string `json:"bidder_id"`
	Amount    int64  `json:"amount"`
	CreatedAt string `json:"created_at"`
}

func toBidResponse(bid model.Bid) BidResponse {
	return BidResponse{
		BidID:     bid.BidID,
		AuctionID: bid.AuctionID,
		BidderID:  bid.BidderID,
		Amount:    bid.Amount,
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// PlaceBidHandler handles POST /auctions/:auction_id/bids
func (h *BiddingHandler) PlaceBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	var req PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.service.PlaceBid(c.Request.Context(), auctionID, req.BidderID, req.Amount)
	if err != nil {
		helpers.RespondError(c, "PlaceBidHandler", err, map[string]any{
			"auction_id": auctionID,
			"bidder_id":  req.BidderID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, toBidResponse(bid), "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"bid_id":     bid.BidID,
		"auction_id": auctionID,
		"bidder_id":  req.BidderID,
		"amount":     bid.Amount,
	})
}

// GetAuctionBidsHandler handles GET /auctions/:auction_id/bids
func (h *BiddingHandler) GetAuctionBidsHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bids, err := h.service.GetAuctionBids(auctionID)
	if err != nil {
		status, _ := helpers.MapErrorToHTTP(err)
		if status != http.StatusOK {
			helpers.RespondError(c, "GetAuctionBidsHandler", err, map[string]any{"auction_id": auctionID})
			return
		}
	}

	resp := make([]BidResponse, 0, len(bids))
	for _, bid := range bids {
		resp = append(resp, toBidResponse(bid))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
	helpers.LogSuccess("GetAuctionBidsHandler", "bids retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"count":      len(resp),
	})
}

// GetUserBidsHandler handles GET /users/:user_id/bids
func (h *BiddingHandler) GetUserBidsHandler(c *gin.Context) {
	userID := c.Param("user_id")
	bids, err := h.service.GetUserBids(userID)
	if err != nil {
		helpers.RespondError(c, "GetUserBidsHandler", err, map[string]any{"user_id": userID})
		return
	}

	resp := make([]BidResponse, 0, len(bids))
	for _, bid := range bids {
		resp = append(resp, toBidResponse(bid))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "user bids retrieved successfully")
}

// GetHighestBidHandler handles GET /auctions/:auction_id/highest
func (h *BiddingHandler) GetHighestBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	amount, bidder, err := h.service.GetHighestBid(c.Request.Context(), auctionID)
	if err != nil {
		helpers.RespondError(c, "GetHighestBidHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{
		"auction_id":     auctionID,
		"highest_bid":    amount,
		"highest_bidder": bidder,
	}, "highest bid retrieved successfully")
}
