package handler

import (
	"context"
	"net/http"

	model "art-auction/internal/models"
	payment "art-auction/internal/paymentService"
	"art-auction/services/helpers"
	"art-auction/utils"

	"github.com/gin-gonic/gin"
)

type PaymentServiceInterface interface {
	InitiatePayment(ctx context.Context, auctionID, buyerID, buyerEmail string) (model.Payment, string, error)
	VerifyPayment(ctx context.Context, auctionID, reference, actorID string) error
	ConfirmShipment(paymentID, actorID string) error
	ConfirmReceipt(ctx context.Context, paymentID, actorID string) error
	SetShippingDetails(in payment.CreateShippingInput) (model.Shipping, error)
	GetDefaultShipping(buyerID string) (model.Shipping, error)
	ListOrders() ([]model.Order, error)
}

type PaymentHandler struct {
	service PaymentServiceInterface
}

func NewPaymentHandler(service PaymentServiceInterface) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// Request DTOs
type InitiatePaymentRequest struct {
	BuyerID    string `json:"buyer_id" binding:"required"`
	BuyerEmail string `json:"buyer_email" binding:"required,email"`
}

type VerifyPaymentRequest struct {
	SellerID  string `json:"seller_id" binding:"required"`
	Reference string `json:"reference" binding:"required"`
}

type ConfirmShipmentRequest struct {
	SellerID string `json:"seller_id" binding:"required"`
}

type ConfirmReceiptRequest struct {
	BuyerID string `json:"buyer_id" binding:"required"`
}

type SetShippingRequest struct {
	BuyerID       string `json:"buyer_id" binding:"required"`
	Name          string `json:"name" binding:"required"`
	Address       string `json:"address" binding:"required"`
	City          string `json:"city" binding:"required"`
	PostalCode    string `json:"postal_code" binding:"required"`
	ContactNumber string `json:"contact_number" binding:"required"`
	IsDefault     bool   `json:"is_default"`
}

// InitiatePaymentHandler handles POST /auctions/:auction_id/payments
func (h *PaymentHandler) InitiatePaymentHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	var req InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "InitiatePaymentHandler", err)
		return
	}

	pay, redirectURL, err := h.service.InitiatePayment(c.Request.Context(), auctionID, req.BuyerID, req.BuyerEmail)
	if err != nil {
		helpers.RespondError(c, "InitiatePaymentHandler", err, map[string]any{
			"auction_id": auctionID,
			"buyer_id":   req.BuyerID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, gin.H{
		"payment_id":  pay.PaymentID,
		"reference":   pay.Reference,
		"amount":      pay.Amount,
		"payment_url": redirectURL,
	}, "payment link generated successfully")
	helpers.LogSuccess("InitiatePaymentHandler", "payment link generated successfully", map[string]any{
		"payment_id": pay.PaymentID,
		"auction_id": auctionID,
	})
}

// VerifyPaymentHandler handles POST /auctions/:auction_id/payments/verify
func (h *PaymentHandler) VerifyPaymentHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "VerifyPaymentHandler", err)
		return
	}

	if err := h.service.VerifyPayment(c.Request.Context(), auctionID, req.Reference, req.SellerID); err != nil {
		helpers.RespondError(c, "VerifyPaymentHandler", err, map[string]any{"auction_id": auctionID, "reference": req.Reference})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "payment verified successfully")
	helpers.LogSuccess("VerifyPaymentHandler", "payment verified successfully", map[string]any{"auction_id": auctionID})
}

// ConfirmShipmentHandler handles PUT /payments/:payment_id/shipment
func (h *PaymentHandler) ConfirmShipmentHandler(c *gin.Context) {
	paymentID := c.Param("payment_id")

	var req ConfirmShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "ConfirmShipmentHandler", err)
		return
	}

	if err := h.service.ConfirmShipment(paymentID, req.SellerID); err != nil {
		helpers.RespondError(c, "ConfirmShipmentHandler", err, map[string]any{"payment_id": paymentID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "shipment confirmed")
	helpers.LogSuccess("ConfirmShipmentHandler", "shipment confirmed", map[string]any{"payment_id": paymentID})
}

// ConfirmReceiptHandler handles PUT /payments/:payment_id/receipt
func (h *PaymentHandler) ConfirmReceiptHandler(c *gin.Context) {
	paymentID := c.Param("payment_id")

	var req ConfirmReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "ConfirmReceiptHandler", err)
		return
	}

	if err := h.service.ConfirmReceipt(c.Request.Context(), paymentID, req.BuyerID); err != nil {
		helpers.RespondError(c, "ConfirmReceiptHandler", err, map[string]any{"payment_id": paymentID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "receipt confirmed, funds released")
	helpers.LogSuccess("ConfirmReceiptHandler", "receipt confirmed", map[string]any{"payment_id": paymentID})
}

// SetShippingHandler handles POST /auctions/:auction_id/shipping
func (h *PaymentHandler) SetShippingHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	var req SetShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SetShippingHandler", err)
		return
	}

	shipping, err := h.service.SetShippingDetails(payment.CreateShippingInput{
		AuctionID:     auctionID,
		BuyerID:       req.BuyerID,
		Name:          req.Name,
		Address:       req.Address,
		City:          req.City,
		PostalCode:    req.PostalCode,
		ContactNumber: req.ContactNumber,
		IsDefault:     req.IsDefault,
	})
	if err != nil {
		helpers.RespondError(c, "SetShippingHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, shipping, "shipping details set successfully")
	helpers.LogSuccess("SetShippingHandler", "shipping details set successfully", map[string]any{
		"shipping_id": shipping.ShippingID,
		"auction_id":  auctionID,
	})
}

// GetDefaultShippingHandler handles GET /users/:user_id/shipping/default
func (h *PaymentHandler) GetDefaultShippingHandler(c *gin.Context) {
	userID := c.Param("user_id")
	shipping, err := h.service.GetDefaultShipping(userID)
	if err != nil {
		helpers.RespondError(c, "GetDefaultShippingHandler", err, map[string]any{"user_id": userID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, shipping, "default shipping details retrieved successfully")
}

// ListOrdersHandler handles GET /orders
func (h *PaymentHandler) ListOrdersHandler(c *gin.Context) {
	orders, err := h.service.ListOrders()
	if err != nil {
		helpers.RespondError(c, "ListOrdersHandler", err, nil)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	utils.JSONResponse(c, http.StatusOK, orders, "orders retrieved successfully")
}
