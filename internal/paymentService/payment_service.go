package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"art-auction/internal/auctionerrors"
	"art-auction/internal/clock"
	"art-auction/internal/models"
	"art-auction/internal/notifier"
	"art-auction/internal/paystack"
	"art-auction/internal/repository"
	"art-auction/utils"
)

// PaymentService drives the escrow state machine: the buyer pays the
// platform, the seller ships, the buyer confirms, and only then are funds
// transferred to the seller. Unshipped payments are refunded by the sweep.
type PaymentService struct {
	store       repository.Store
	processor   paystack.Client
	notifier    notifier.Notifier
	clock       clock.Clock
	currency    string
	gracePeriod time.Duration
}

// NewPaymentService creates a new PaymentService instance
func NewPaymentService(store repository.Store, processor paystack.Client, n notifier.Notifier, clk clock.Clock, currency string, gracePeriod time.Duration) *PaymentService {
	return &PaymentService{
		store:       store,
		processor:   processor,
		notifier:    n,
		clock:       clk,
		currency:    currency,
		gracePeriod: gracePeriod,
	}
}

// InitiatePayment opens a hosted payment session for the winning bidder and
// records the pending escrow payment. At most one payment exists per auction.
func (s *PaymentService) InitiatePayment(ctx context.Context, auctionID, buyerID, buyerEmail string) (models.Payment, string, error) {
	if auctionID == "" || buyerID == "" || buyerEmail == "" {
		return models.Payment{}, "", fmt.Errorf("service: %w - missing auctionID, buyerID or buyer email", auctionerrors.ErrValidation)
	}

	auction, err := s.store.GetAuction(auctionID)
	if err != nil {
		return models.Payment{}, "", fmt.Errorf("service: auction lookup failed: %w", err)
	}
	if auction.Status != models.AuctionCompleted {
		return models.Payment{}, "", fmt.Errorf("service: auction payment not available: %w", auctionerrors.ErrPrecondition)
	}
	if auction.HighestBidder != buyerID {
		return models.Payment{}, "", fmt.Errorf("service: %w - you are not the highest bidder", auctionerrors.ErrUnauthorized)
	}

	shipping, err := s.store.GetShippingByAuction(auctionID)
	if err != nil {
		return models.Payment{}, "", fmt.Errorf("service: no shipping details found for this auction: %w", auctionerrors.ErrPrecondition)
	}

	if _, err := s.store.GetPaymentByAuction(auctionID); err == nil {
		return models.Payment{}, "", fmt.Errorf("service: payment already initiated for auction %s: %w", auctionID, auctionerrors.ErrAlreadyExists)
	}

	session, err := s.processor.CreateSession(ctx, buyerEmail, auction.HighestBid, s.currency, map[string]string{
		"auction_id": auction.AuctionID,
		"buyer_id":   buyerID,
		"seller_id":  auction.SellerID,
	})
	if err != nil {
		return models.Payment{}, "", fmt.Errorf("service: failed to initiate payment: %w", err)
	}

	now := s.clock.Now()
	pay := models.Payment{
		PaymentID:     utils.GenerateID(),
		AuctionID:     auction.AuctionID,
		BuyerID:       buyerID,
		SellerID:      auction.SellerID,
		Amount:        auction.HighestBid,
		PayoutMethod:  auction.PayoutMethod,
		PayoutDetails: auction.PayoutDetails,
		Status:        models.PaymentPending,
		Reference:     session.Reference,
		ShippingID:    shipping.ShippingID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.CreatePayment(pay); err != nil {
		return models.Payment{}, "", fmt.Errorf("service: failed to record payment: %w", err)
	}

	s.notify(auction.SellerID, "Payment initiated", "The buyer has started payment. Verify on the site and ship the item once it clears.")

	utils.Info("payment session created", map[string]any{
		"payment_id": pay.PaymentID,
		"auction_id": auctionID,
		"reference":  pay.Reference,
	})
	return pay, session.RedirectURL, nil
}

// VerifyPayment confirms the transaction with the processor and, exactly
// once, creates the order. The reference is the processor's transaction
// handle from initiation. Repeat calls after success are no-ops.
func (s *PaymentService) VerifyPayment(ctx context.Context, auctionID, reference, actorID string) error {
	if reference == "" {
		return fmt.Errorf("service: %w - missing payment reference", auctionerrors.ErrValidation)
	}

	auction, err := s.store.GetAuction(auctionID)
	if err != nil {
		return fmt.Errorf("service: auction lookup failed: %w", err)
	}
	if auction.SellerID != actorID {
		return fmt.Errorf("service: %w - you are not the owner of this auction", auctionerrors.ErrUnauthorized)
	}

	pay, err := s.store.GetPaymentByReference(reference)
	if err != nil {
		return fmt.Errorf("service: payment lookup failed: %w", err)
	}
	if pay.AuctionID != auctionID {
		return fmt.Errorf("service: %w - reference %s does not belong to auction %s", auctionerrors.ErrValidation, reference, auctionID)
	}

	// Already verified: succeed without side effects.
	if pay.Status != models.PaymentPending {
		return nil
	}

	verification, err := s.processor.Verify(ctx, pay.Reference)
	if err != nil {
		return fmt.Errorf("service: failed to verify payment %s: %w", pay.Reference, err)
	}
	if !verification.Success {
		return fmt.Errorf("service: payment verification failed for reference %s: %w", pay.Reference, auctionerrors.ErrPrecondition)
	}
	if verification.Amount != pay.Amount || verification.Currency != s.currency {
		return fmt.Errorf("service: %w - reference %s settled %d %s, expected %d %s",
			auctionerrors.ErrPrecondition, pay.Reference, verification.Amount, verification.Currency, pay.Amount, s.currency)
	}

	ok, err := s.store.MarkPaymentPaid(pay.PaymentID)
	if err != nil {
		return fmt.Errorf("service: failed to mark payment paid: %w", err)
	}
	if !ok {
		return nil // a concurrent verification won the transition
	}

	if err := s.createOrderOnce(pay); err != nil {
		return err
	}

	s.notify(pay.SellerID, "Payment Received", "The buyer has paid. Please ship the artwork.")
	utils.Info("payment verified", map[string]any{"payment_id": pay.PaymentID, "reference": pay.Reference})
	return nil
}

// createOrderOnce creates the order for a verified payment, guarded against
// duplicates both by a pre-check and by the store's one-order-per-payment
// constraint.
func (s *PaymentService) createOrderOnce(pay models.Payment) error {
	if _, err := s.store.GetOrderByPayment(pay.PaymentID); err == nil {
		return nil
	}

	now := s.clock.Now()
	order := models.Order{
		OrderID:    utils.GenerateID(),
		AuctionID:  pay.AuctionID,
		BuyerID:    pay.BuyerID,
		PaymentID:  pay.PaymentID,
		ShippingID: s.resolveShipping(pay),
		Status:     models.OrderPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.CreateOrder(order); err != nil {
		if errors.Is(err, auctionerrors.ErrAlreadyExists) {
			return nil
		}
		return fmt.Errorf("service: failed to create order: %w", err)
	}
	return nil
}

// resolveShipping picks the buyer's default address when one exists, then
// the auction-linked record, then the most recently created one.
func (s *PaymentService) resolveShipping(pay models.Payment) string {
	if def, err := s.store.GetDefaultShipping(pay.BuyerID); err == nil {
		return def.ShippingID
	}
	if pay.ShippingID != "" {
		return pay.ShippingID
	}
	if all, err := s.store.ListShippingByBuyer(pay.BuyerID); err == nil && len(all) > 0 {
		return all[0].ShippingID
	}
	return ""
}

// ConfirmShipment records that the seller has shipped. Moves the payment to
// shipped and the order with it, then tells the buyer.
func (s *PaymentService) ConfirmShipment(paymentID, actorID string) error {
	pay, err := s.store.GetPayment(paymentID)
	if err != nil {
		return fmt.Errorf("service: payment lookup failed: %w", err)
	}
	if pay.SellerID != actorID {
		return fmt.Errorf("service: %w - only the seller can confirm shipment", auctionerrors.ErrUnauthorized)
	}

	ok, err := s.store.MarkPaymentShipped(paymentID)
	if err != nil {
		return fmt.Errorf("service: failed to confirm shipment: %w", err)
	}
	if !ok {
		return fmt.Errorf("service: payment %s is not awaiting shipment: %w", paymentID, auctionerrors.ErrPrecondition)
	}

	if order, err := s.store.GetOrderByPayment(paymentID); err == nil {
		if err := s.store.MarkOrderShipped(order.OrderID); err != nil {
			utils.Error("order shipped update failed", map[string]any{"order_id": order.OrderID, "error": err.Error()})
		}
	}

	s.notify(pay.BuyerID, "Artwork shipped", "Your purchase has been shipped.")
	utils.Info("shipment confirmed", map[string]any{"payment_id": paymentID})
	return nil
}

// ConfirmReceipt is the buyer's final confirmation. It resolves (or lazily
// creates and persists) the payout recipient, transfers the escrowed funds to
// the seller and only then marks the payment confirmed. A failed transfer
// leaves the payment untouched; the buyer can retry.
func (s *PaymentService) ConfirmReceipt(ctx context.Context, paymentID, actorID string) error {
	pay, err := s.store.GetPayment(paymentID)
	if err != nil {
		return fmt.Errorf("service: payment lookup failed: %w", err)
	}
	if pay.BuyerID != actorID {
		return fmt.Errorf("service: %w - only the buyer can confirm receipt", auctionerrors.ErrUnauthorized)
	}
	if pay.Status != models.PaymentShipped {
		return fmt.Errorf("service: payment %s is not awaiting receipt confirmation: %w", paymentID, auctionerrors.ErrPrecondition)
	}

	recipientCode := pay.RecipientCode
	if recipientCode == "" {
		recipientCode, err = s.createRecipient(ctx, pay)
		if err != nil {
			return err
		}
		if err := s.store.SetPaymentRecipient(paymentID, recipientCode); err != nil {
			return fmt.Errorf("service: failed to persist recipient code: %w", err)
		}
	}

	reason := fmt.Sprintf("Auction %s payout", pay.AuctionID)
	if err := s.processor.Transfer(ctx, recipientCode, pay.Amount, reason); err != nil {
		return fmt.Errorf("service: transfer to seller failed: %w", err)
	}

	ok, err := s.store.MarkPaymentConfirmed(paymentID)
	if err != nil {
		return fmt.Errorf("service: failed to mark payment confirmed: %w", err)
	}
	if !ok {
		return nil
	}

	s.notify(pay.SellerID, "Funds released", "The buyer confirmed receipt. Your payout is on the way.")
	utils.Info("receipt confirmed, funds transferred", map[string]any{"payment_id": paymentID, "recipient": recipientCode})
	return nil
}

// createRecipient registers the seller's payout destination with the
// processor, validating the method-specific detail fields first.
func (s *PaymentService) createRecipient(ctx context.Context, pay models.Payment) (string, error) {
	name := pay.PayoutDetails["account_name"]
	if name == "" {
		name = pay.SellerID
	}

	var req paystack.RecipientRequest
	switch pay.PayoutMethod {
	case models.PayoutBankTransfer:
		if pay.PayoutDetails["account_number"] == "" || pay.PayoutDetails["bank_code"] == "" {
			return "", fmt.Errorf("service: %w - bank transfer payout requires account_number and bank_code", auctionerrors.ErrValidation)
		}
		req = paystack.RecipientRequest{
			Type:          "ghipss",
			Name:          name,
			AccountNumber: pay.PayoutDetails["account_number"],
			BankCode:      pay.PayoutDetails["bank_code"],
			Currency:      s.currency,
		}
	case models.PayoutMobileMoney:
		if pay.PayoutDetails["phone"] == "" || pay.PayoutDetails["network"] == "" {
			return "", fmt.Errorf("service: %w - mobile money payout requires phone and network", auctionerrors.ErrValidation)
		}
		req = paystack.RecipientRequest{
			Type:          "mobile_money",
			Name:          name,
			AccountNumber: pay.PayoutDetails["phone"],
			BankCode:      pay.PayoutDetails["network"],
			Currency:      s.currency,
		}
	default:
		return "", fmt.Errorf("service: %w - unsupported payout method %q", auctionerrors.ErrValidation, pay.PayoutMethod)
	}

	code, err := s.processor.CreateRecipient(ctx, req)
	if err != nil {
		return "", fmt.Errorf("service: failed to create payout recipient: %w", err)
	}
	return code, nil
}

// SweepOverdueShipments refunds every payment that has sat paid-but-unshipped
// past the grace period. Failed refunds stay queued for the next sweep, so
// each refund happens at least once but the status flips exactly once.
func (s *PaymentService) SweepOverdueShipments(ctx context.Context) (int, error) {
	cutoff := s.clock.Now().Add(-s.gracePeriod)
	overdue, err := s.store.ListOverduePayments(cutoff)
	if err != nil {
		return 0, fmt.Errorf("service: failed to list overdue payments: %w", err)
	}

	refunded := 0
	for _, pay := range overdue {
		if err := s.processor.Refund(ctx, pay.Reference); err != nil {
			utils.Error("refund failed, will retry next sweep", map[string]any{
				"payment_id": pay.PaymentID,
				"reference":  pay.Reference,
				"error":      err.Error(),
			})
			continue
		}

		ok, err := s.store.MarkPaymentRefunded(pay.PaymentID)
		if err != nil {
			utils.Error("refund status update failed", map[string]any{"payment_id": pay.PaymentID, "error": err.Error()})
			continue
		}
		if !ok {
			continue // state moved underneath us, nothing to do
		}

		refunded++
		s.notify(pay.BuyerID, "Payment refunded", "The seller did not ship in time. Your payment has been refunded.")
		utils.Info("overdue payment refunded", map[string]any{"payment_id": pay.PaymentID, "reference": pay.Reference})
	}
	return refunded, nil
}

// SetShippingDetails stores the buyer's address for an auction. One record
// per auction; marking it default clears the buyer's other defaults.
func (s *PaymentService) SetShippingDetails(in CreateShippingInput) (models.Shipping, error) {
	if in.AuctionID == "" || in.BuyerID == "" {
		return models.Shipping{}, fmt.Errorf("service: %w - missing auctionID or buyerID", auctionerrors.ErrValidation)
	}
	if in.Name == "" || in.Address == "" || in.City == "" || in.PostalCode == "" || in.ContactNumber == "" {
		return models.Shipping{}, fmt.Errorf("service: %w - all shipping fields are required", auctionerrors.ErrValidation)
	}

	now := s.clock.Now()
	shipping := models.Shipping{
		ShippingID:    utils.GenerateID(),
		BuyerID:       in.BuyerID,
		AuctionID:     in.AuctionID,
		Name:          in.Name,
		Address:       in.Address,
		City:          in.City,
		PostalCode:    in.PostalCode,
		ContactNumber: in.ContactNumber,
		IsDefault:     in.IsDefault,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.CreateShipping(shipping); err != nil {
		return models.Shipping{}, fmt.Errorf("service: failed to set shipping details: %w", err)
	}

	if in.IsDefault {
		if err := s.store.ClearOtherDefaults(in.BuyerID, shipping.ShippingID); err != nil {
			utils.Warn("clearing other default addresses failed", map[string]any{"buyer_id": in.BuyerID, "error": err.Error()})
		}
	}
	return shipping, nil
}

// CreateShippingInput carries a buyer address snapshot for one auction.
type CreateShippingInput struct {
	AuctionID     string
	BuyerID       string
	Name          string
	Address       string
	City          string
	PostalCode    string
	ContactNumber string
	IsDefault     bool
}

// GetDefaultShipping returns the buyer's default address.
func (s *PaymentService) GetDefaultShipping(buyerID string) (models.Shipping, error) {
	if buyerID == "" {
		return models.Shipping{}, fmt.Errorf("service: %w - empty buyer ID", auctionerrors.ErrValidation)
	}
	shipping, err := s.store.GetDefaultShipping(buyerID)
	if err != nil {
		return models.Shipping{}, fmt.Errorf("service: failed to get default shipping: %w", err)
	}
	return shipping, nil
}

// ListOrders returns all orders, newest first.
func (s *PaymentService) ListOrders() ([]models.Order, error) {
	orders, err := s.store.ListOrders()
	if err != nil {
		return nil, fmt.Errorf("service: failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *PaymentService) notify(userID, subject, body string) {
	if err := s.notifier.Notify(userID, subject, body); err != nil {
		utils.Warn("notification failed", map[string]any{"user_id": userID, "subject": subject, "error": err.Error()})
	}
}
