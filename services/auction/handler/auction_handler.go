package handler

import (
	"net/http"
	"time"

	model "art-auction/internal/models"
	"art-auction/services/helpers"
	"art-auction/utils"

	auction "art-auction/internal/auctionService"

	"github.com/gin-gonic/gin"
)

type AuctionServiceInterface interface {
	CreateAuction(in auction.CreateAuctionInput) (model.Auction, error)
	EndAuction(auctionID, sellerID string) error
	SuspendAuction(auctionID string) error
	ResumeAuction(auctionID string) error
	DeleteAuction(auctionID, sellerID string) error
	GetAuction(auctionID string) (model.Auction, error)
	ListActiveAuctions() ([]model.Auction, error)
	ListAuctions() ([]model.Auction, error)
	LatestAuction() (model.Auction, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// CreateAuctionRequest is the payload for POST /auctions. Amounts are minor
// units; times are RFC 3339.
type CreateAuctionRequest struct {
	ArtworkID      string            `json:"artwork_id" binding:"required"`
	SellerID       string            `json:"seller_id" binding:"required"`
	CategoryID     string            `json:"category_id" binding:"required"`
	StartingPrice  int64             `json:"starting_price" binding:"required,gt=0"`
	MaxBidLimit    int64             `json:"max_bid_limit"`
	StartingTime   time.Time         `json:"starting_time" binding:"required"`
	BiddingEndTime time.Time         `json:"bidding_end_time" binding:"required"`
	PayoutMethod   string            `json:"payout_method" binding:"required"`
	PayoutDetails  map[string]string `json:"payout_details" binding:"required"`
}

type endAuctionRequest struct {
	SellerID string `json:"seller_id" binding:"required"`
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	created, err := h.service.CreateAuction(auction.CreateAuctionInput{
		ArtworkID:      req.ArtworkID,
		SellerID:       req.SellerID,
		CategoryID:     req.CategoryID,
		StartingPrice:  req.StartingPrice,
		MaxBidLimit:    req.MaxBidLimit,
		StartingTime:   req.StartingTime,
		BiddingEndTime: req.BiddingEndTime,
		PayoutMethod:   model.PayoutMethod(req.PayoutMethod),
		PayoutDetails:  req.PayoutDetails,
	})
	if err != nil {
		helpers.RespondError(c, "CreateAuctionHandler", err, map[string]any{"artwork_id": req.ArtworkID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, created, "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": created.AuctionID,
		"seller_id":  created.SellerID,
	})
}

// EndAuctionHandler handles PUT /auctions/:auction_id/end
func (h *AuctionHandler) EndAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	var req endAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "EndAuctionHandler", err)
		return
	}

	if err := h.service.EndAuction(auctionID, req.SellerID); err != nil {
		helpers.RespondError(c, "EndAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "auction ended successfully")
	helpers.LogSuccess("EndAuctionHandler", "auction ended successfully", map[string]any{"auction_id": auctionID})
}

// SuspendAuctionHandler handles PUT /auctions/:auction_id/suspend
func (h *AuctionHandler) SuspendAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	if err := h.service.SuspendAuction(auctionID); err != nil {
		helpers.RespondError(c, "SuspendAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, nil, "auction suspended")
}

// ResumeAuctionHandler handles PUT /auctions/:auction_id/resume
func (h *AuctionHandler) ResumeAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	if err := h.service.ResumeAuction(auctionID); err != nil {
		helpers.RespondError(c, "ResumeAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, nil, "auction resumed")
}

// DeleteAuctionHandler handles DELETE /auctions/:auction_id?seller_id=...
func (h *AuctionHandler) DeleteAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	sellerID := c.Query("seller_id")

	if err := h.service.DeleteAuction(auctionID, sellerID); err != nil {
		helpers.RespondError(c, "DeleteAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "auction deleted successfully")
	helpers.LogSuccess("DeleteAuctionHandler", "auction deleted successfully", map[string]any{"auction_id": auctionID})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	found, err := h.service.GetAuction(auctionID)
	if err != nil {
		helpers.RespondError(c, "GetAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, found, "auction retrieved successfully")
}

// ListActiveAuctionsHandler handles GET /auctions/active
func (h *AuctionHandler) ListActiveAuctionsHandler(c *gin.Context) {
	auctions, err := h.service.ListActiveAuctions()
	if err != nil {
		helpers.RespondError(c, "ListActiveAuctionsHandler", err, nil)
		return
	}
	if auctions == nil {
		auctions = []model.Auction{}
	}
	utils.JSONResponse(c, http.StatusOK, auctions, "active auctions retrieved successfully")
}

// ListAuctionsHandler handles GET /auctions
func (h *AuctionHandler) ListAuctionsHandler(c *gin.Context) {
	auctions, err := h.service.ListAuctions()
	if err != nil {
		helpers.RespondError(c, "ListAuctionsHandler", err, nil)
		return
	}
	if auctions == nil {
		auctions = []model.Auction{}
	}
	utils.JSONResponse(c, http.StatusOK, auctions, "auctions retrieved successfully")
}

// LatestAuctionHandler handles GET /auctions/latest
func (h *AuctionHandler) LatestAuctionHandler(c *gin.Context) {
	latest, err := h.service.LatestAuction()
	if err != nil {
		helpers.RespondError(c, "LatestAuctionHandler", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusOK, latest, "latest auction retrieved successfully")
}
