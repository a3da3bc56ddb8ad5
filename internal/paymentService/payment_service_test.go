package payment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"art-auction/internal/auctionerrors"
	"art-auction/internal/clock"
	"art-auction/internal/models"
	"art-auction/internal/notifier"
	"art-auction/internal/paystack"
	"art-auction/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

const gracePeriod = 3 * 24 * time.Hour

type paymentFixture struct {
	store     *repository.MemoryStore
	processor *paystack.MockClient
	notifier  *notifier.MockNotifier
	clock     *clock.Fixed
	service   *PaymentService
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	clk := clock.NewFixed(baseTime)
	store := repository.NewMemoryStoreWithClock(clk)
	processor := paystack.NewMockClient(ctrl)
	n := notifier.NewMockNotifier(ctrl)
	n.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	return &paymentFixture{
		store:     store,
		processor: processor,
		notifier:  n,
		clock:     clk,
		service:   NewPaymentService(store, processor, n, clk, "GHS", gracePeriod),
	}
}

// seedCompletedAuction stores a completed auction won by buyer1 at 500,
// with shipping details attached.
func (f *paymentFixture) seedCompletedAuction(t *testing.T, mutate func(*models.Auction)) models.Auction {
	t.Helper()
	a := models.Auction{
		AuctionID:      "auction1",
		ArtworkID:      "artwork1",
		SellerID:       "seller1",
		CategoryID:     "cat1",
		StartingPrice:  100,
		HighestBid:     500,
		HighestBidder:  "buyer1",
		StartingTime:   baseTime.Add(-48 * time.Hour),
		BiddingEndTime: baseTime.Add(-time.Hour),
		Status:         models.AuctionCompleted,
		PayoutMethod:   models.PayoutBankTransfer,
		PayoutDetails:  map[string]string{"account_number": "0123456789", "bank_code": "058"},
		CreatedAt:      baseTime.Add(-48 * time.Hour),
		UpdatedAt:      baseTime.Add(-time.Hour),
	}
	if mutate != nil {
		mutate(&a)
	}
	require.NoError(t, f.store.CreateAuction(a))
	require.NoError(t, f.store.CreateShipping(models.Shipping{
		ShippingID:    "ship1",
		BuyerID:       "buyer1",
		AuctionID:     a.AuctionID,
		Name:          "Buyer One",
		Address:       "12 Gallery Lane",
		City:          "Accra",
		PostalCode:    "GA-184",
		ContactNumber: "0241234567",
		CreatedAt:     baseTime.Add(-time.Hour),
	}))
	return a
}

// seedPayment stores a payment in the given status for the seeded auction.
func (f *paymentFixture) seedPayment(t *testing.T, status models.PaymentStatus, mutate func(*models.Payment)) models.Payment {
	t.Helper()
	pay := models.Payment{
		PaymentID:     "payment1",
		AuctionID:     "auction1",
		BuyerID:       "buyer1",
		SellerID:      "seller1",
		Amount:        500,
		PayoutMethod:  models.PayoutBankTransfer,
		PayoutDetails: map[string]string{"account_number": "0123456789", "bank_code": "058"},
		Status:        status,
		Reference:     "ref-1",
		ShippingID:    "ship1",
		CreatedAt:     baseTime,
		UpdatedAt:     baseTime,
	}
	if mutate != nil {
		mutate(&pay)
	}
	require.NoError(t, f.store.CreatePayment(pay))
	return pay
}

// Test InitiatePayment
func TestInitiatePayment(t *testing.T) {
	t.Parallel()

	t.Run("winner_opens_session", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		f.seedCompletedAuction(t, nil)
		f.processor.EXPECT().
			CreateSession(gomock.Any(), "buyer1@example.com", int64(500), "GHS", gomock.Any()).
			Return(paystack.Session{Reference: "ref-1", RedirectURL: "https://checkout.example/ref-1"}, nil)

		pay, redirectURL, err := f.service.InitiatePayment(context.Background(), "auction1", "buyer1", "buyer1@example.com")
		require.NoError(t, err)
		require.Equal(t, "https://checkout.example/ref-1", redirectURL)
		require.Equal(t, models.PaymentPending, pay.Status)
		require.Equal(t, "ref-1", pay.Reference)
		require.Equal(t, int64(500), pay.Amount)
		require.Equal(t, "ship1", pay.ShippingID)
		require.Equal(t, models.PayoutBankTransfer, pay.PayoutMethod)

		stored, err := f.store.GetPaymentByAuction("auction1")
		require.NoError(t, err)
		require.Equal(t, pay.PaymentID, stored.PaymentID)
	})

	t.Run("missing_input", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		_, _, err := f.service.InitiatePayment(context.Background(), "auction1", "", "buyer1@example.com")
		require.ErrorIs(t, err, auctionerrors.ErrValidation)
	})

	t.Run("auction_not_completed", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		f.seedCompletedAuction(t, func(a *models.Auction) { a.Status = models.AuctionActive })

		_, _, err := f.service.InitiatePayment(context.Background(), "auction1", "buyer1", "buyer1@example.com")
		require.ErrorIs(t, err, auctionerrors.ErrPrecondition)
	})

	t.Run("only_the_winner_may_pay", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		f.seedCompletedAuction(t, nil)

		_, _, err := f.service.InitiatePayment(context.Background(), "auction1", "buyer2", "buyer2@example.com")
		require.ErrorIs(t, err, auctionerrors.ErrUnauthorized)
	})

	t.Run("shipping_details_required_first", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		require.NoError(t, f.store.CreateAuction(models.Auction{
			AuctionID:      "bare",
			ArtworkID:      "artwork9",
			SellerID:       "seller1",
			CategoryID:     "cat1",
			StartingPrice:  100,
			HighestBid:     300,
			HighestBidder:  "buyer1",
			StartingTime:   baseTime.Add(-48 * time.Hour),
			BiddingEndTime: baseTime.Add(-time.Hour),
			Status:         models.AuctionCompleted,
			CreatedAt:      baseTime.Add(-48 * time.Hour),
		}))

		_, _, err := f.service.InitiatePayment(context.Background(), "bare", "buyer1", "buyer1@example.com")
		require.ErrorIs(t, err, auctionerrors.ErrPrecondition)
	})

	t.Run("second_initiation_refused", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		f.seedCompletedAuction(t, nil)
		f.seedPayment(t, models.PaymentPending, nil)

		_, _, err := f.service.InitiatePayment(context.Background(), "auction1", "buyer1", "buyer1@example.com")
		require.ErrorIs(t, err, auctionerrors.ErrAlreadyExists)
	})

	t.Run("processor_failure_records_nothing", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		f.seedCompletedAuction(t, nil)
		f.processor.EXPECT().
			CreateSession(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(paystack.Session{}, fmt.Errorf("initialize: %w", auctionerrors.ErrExternalService))

		_, _, err := f.service.InitiatePayment(context.Background(), "auction1", "buyer1", "buyer1@example.com")
		require.ErrorIs(t, err, auctionerrors.ErrExternalService)

		_, err = f.store.GetPaymentByAuction("auction1")
		require.ErrorIs(t, err, auctionerrors.ErrNotFound)
	})
}

// Test VerifyPayment
func TestVerifyPayment(t *testing.T) {
	t.Parallel()

	t.Run("successful_verification_creates_one_order", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		f.seedCompletedAuction(t, nil)
		f.seedPayment(t, models.PaymentPending, nil)
		f.processor.EXPECT().Verify(gomock.Any(), "ref-1").Return(paystack.Verification{Success: true, Amount: 500, Currency: "GHS"}, nil)

		require.NoError(t, f.service.VerifyPayment(context.Background(), "auction1", "ref-1", "seller1"))

		pay, err := f.store.GetPayment("payment1")
		require.NoError(t, err)
		require.Equal(t, models.PaymentPaid, pay.Status)
		require.True(t, pay.Verified)

		order, err := f.store.GetOrderByPayment("payment1")
		require.NoError(t, err)
		require.Equal(t, "auction1", order.AuctionID)
		require.Equal(t, "ship1", order.ShippingID)
		require.Equal(t, models.OrderPending, order.Status)

		// The second call never reaches the processor and adds no order.
		require.NoError(t, f.service.VerifyPayment(context.Background(), "auction1", "ref-1", "seller1"))
		orders, err := f.store.ListOrders()
		require.NoError(t, err)
		require.Len(t, orders, 1)
	})

	t.Run("only_seller_may_verify", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		f.seedCompletedAuction(t, nil)
		f.seedPayment(t, models.PaymentPending, nil)

		err := f.service.VerifyPayment(context.Background(), "auction1", "ref-1", "buyer1")
		require.ErrorIs(t, err, auctionerrors.ErrUnauthorized)
	})

	t.Run("unsuccessful_transaction", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		f.seedCompletedAuction(t, nil)
		f.seedPayment(t, models.PaymentPending, nil)
		f.processor.EXPECT().Verify(gomock.Any(), "ref-1").Return(paystack.Verification{Success: false}, nil)

		err := f.service.VerifyPayment(context.Background(), "auction1", "ref-1", "seller1")
		require.ErrorIs(t, err, auctionerrors.ErrPrecondition)

		pay, err := f.store.GetPayment("payment1")
		require.NoError(t, err)
		require.Equal(t, models.PaymentPending, pay.Status)
	})

	t.Run("settled_amount_must_match", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		f.seedCompletedAuction(t, nil)
		f.seedPayment(t, models.PaymentPending, nil)
		f.processor.EXPECT().Verify(gomock.Any(), "ref-1").Return(paystack.Verification{Success: true, Amount: 200, Currency: "GHS"}, nil)

		err := f.service.VerifyPayment(context.Background(), "auction1", "ref-1", "seller1")
		require.ErrorIs(t, err, auctionerrors.ErrPrecondition)

		pay, err := f.store.GetPayment("payment1")
		require.NoError(t, err)
		require.Equal(t, models.PaymentPending, pay.Status)
	})

	t.Run("settled_currency_must_match", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		f.seedCompletedAuction(t, nil)
		f.seedPayment(t, models.PaymentPending, nil)
		f.processor.EXPECT().Verify(gomock.Any(), "ref-1").Return(paystack.Verification{Success: true, Amount: 500, Currency: "USD"}, nil)

		err := f.service.VerifyPayment(context.Background(), "auction1", "ref-1", "seller1")
		require.ErrorIs(t, err, auctionerrors.ErrPrecondition)
	})

	t.Run("unknown_reference", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		f.seedCompletedAuction(t, nil)

		err := f.service.VerifyPayment(context.Background(), "auction1", "ref-unknown", "seller1")
		require.ErrorIs(t, err, auctionerrors.ErrNotFound)
	})

	t.Run("reference_bound_to_its_auction", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		f.seedCompletedAuction(t, nil)
		f.seedPayment(t, models.PaymentPending, nil)
		f.seedCompletedAuction(t, func(a *models.Auction) { a.AuctionID = "auction2" })

		err := f.service.VerifyPayment(context.Background(), "auction2", "ref-1", "seller1")
		require.ErrorIs(t, err, auctionerrors.ErrValidation)
	})

	t.Run("default_address_preferred_for_order", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		f.seedCompletedAuction(t, nil)
		f.seedPayment(t, models.PaymentPending, nil)
		require.NoError(t, f.store.CreateShipping(models.Shipping{
			ShippingID:    "ship-default",
			BuyerID:       "buyer1",
			AuctionID:     "other-auction",
			Name:          "Buyer One",
			Address:       "1 Home Street",
			City:          "Accra",
			PostalCode:    "GA-200",
			ContactNumber: "0241234567",
			IsDefault:     true,
			CreatedAt:     baseTime,
		}))
		f.processor.EXPECT().Verify(gomock.Any(), "ref-1").Return(paystack.Verification{Success: true, Amount: 500, Currency: "GHS"}, nil)

		require.NoError(t, f.service.VerifyPayment(context.Background(), "auction1", "ref-1", "seller1"))

		order, err := f.store.GetOrderByPayment("payment1")
		require.NoError(t, err)
		require.Equal(t, "ship-default", order.ShippingID)
	})
}

// Test ConfirmShipment
func TestConfirmShipment(t *testing.T) {
	t.Parallel()

	t.Run("seller_confirms_paid_shipment", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		f.seedCompletedAuction(t, nil)
		f.seedPayment(t, models.PaymentPaid, nil)
		require.NoError(t, f.store.CreateOrder(models.Order{
			OrderID:   "order1",
			AuctionID: "auction1",
			BuyerID:   "buyer1",
			PaymentID: "payment1",
			Status:    models.OrderPending,
			CreatedAt: baseTime,
		}))

		require.NoError(t, f.service.ConfirmShipment("payment1", "seller1"))

		pay, err := f.store.GetPayment("payment1")
		require.NoError(t, err)
		require.Equal(t, models.PaymentShipped, pay.Status)
		require.True(t, pay.ShipmentConfirmed)

		order, err := f.store.GetOrderByPayment("payment1")
		require.NoError(t, err)
		require.Equal(t, models.OrderShipped, order.Status)
	})

	t.Run("only_seller_may_confirm", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		f.seedCompletedAuction(t, nil)
		f.seedPayment(t, models.PaymentPaid, nil)

		err := f.service.ConfirmShipment("payment1", "buyer1")
		require.ErrorIs(t, err, auctionerrors.ErrUnauthorized)
	})

	t.Run("unpaid_payment_refused", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		f.seedCompletedAuction(t, nil)
		f.seedPayment(t, models.PaymentPending, nil)

		err := f.service.ConfirmShipment("payment1", "seller1")
		require.ErrorIs(t, err, auctionerrors.ErrPrecondition)
	})

	t.Run("double_confirmation_refused", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		f.seedCompletedAuction(t, nil)
		f.seedPayment(t, models.PaymentPaid, nil)

		require.NoError(t, f.service.ConfirmShipment("payment1", "seller1"))
		err := f.service.ConfirmShipment("payment1", "seller1")
		require.ErrorIs(t, err, auctionerrors.ErrPrecondition)
	})
}

// Test ConfirmReceipt
func TestConfirmReceipt(t *testing.T) {
	t.Parallel()

	t.Run("buyer_confirmation_releases_funds", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		f.seedCompletedAuction(t, nil)
		f.seedPayment(t, models.PaymentShipped, nil)

		f.processor.EXPECT().
			CreateRecipient(gomock.Any(), paystack.RecipientRequest{
				Type:          "ghipss",
				Name:          "seller1",
				AccountNumber: "0123456789",
				BankCode:      "058",
				Currency:      "GHS",
			}).
			Return("RCP_1", nil)
		f.processor.EXPECT().Transfer(gomock.Any(), "RCP_1", int64(500), gomock.Any()).Return(nil)

		require.NoError(t, f.service.ConfirmReceipt(context.Background(), "payment1", "buyer1"))

		pay, err := f.store.GetPayment("payment1")
		require.NoError(t, err)
		require.Equal(t, models.PaymentConfirmed, pay.Status)
		require.True(t, pay.BuyerConfirmed)
		require.Equal(t, "RCP_1", pay.RecipientCode)
	})

	t.Run("mobile_money_recipient", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		f.seedCompletedAuction(t, nil)
		f.seedPayment(t, models.PaymentShipped, func(p *models.Payment) {
			p.PayoutMethod = models.PayoutMobileMoney
			p.PayoutDetails = map[string]string{"phone": "0241234567", "network": "MTN", "account_name": "Ama Seller"}
		})

		f.processor.EXPECT().
			CreateRecipient(gomock.Any(), paystack.RecipientRequest{
				Type:          "mobile_money",
				Name:          "Ama Seller",
				AccountNumber: "0241234567",
				BankCode:      "MTN",
				Currency:      "GHS",
			}).
			Return("RCP_2", nil)
		f.processor.EXPECT().Transfer(gomock.Any(), "RCP_2", int64(500), gomock.Any()).Return(nil)

		require.NoError(t, f.service.ConfirmReceipt(context.Background(), "payment1", "buyer1"))
	})

	t.Run("existing_recipient_reused", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		f.seedCompletedAuction(t, nil)
		f.seedPayment(t, models.PaymentShipped, func(p *models.Payment) { p.RecipientCode = "RCP_KNOWN" })

		// No CreateRecipient call: the stored code goes straight to Transfer.
		f.processor.EXPECT().Transfer(gomock.Any(), "RCP_KNOWN", int64(500), gomock.Any()).Return(nil)

		require.NoError(t, f.service.ConfirmReceipt(context.Background(), "payment1", "buyer1"))
	})

	t.Run("failed_transfer_leaves_payment_shipped", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		f.seedCompletedAuction(t, nil)
		f.seedPayment(t, models.PaymentShipped, func(p *models.Payment) { p.RecipientCode = "RCP_KNOWN" })

		f.processor.EXPECT().
			Transfer(gomock.Any(), "RCP_KNOWN", int64(500), gomock.Any()).
			Return(fmt.Errorf("transfer: %w", auctionerrors.ErrExternalService))

		err := f.service.ConfirmReceipt(context.Background(), "payment1", "buyer1")
		require.ErrorIs(t, err, auctionerrors.ErrExternalService)

		pay, err := f.store.GetPayment("payment1")
		require.NoError(t, err)
		require.Equal(t, models.PaymentShipped, pay.Status)

		// The retry succeeds with the already-persisted recipient.
		f.processor.EXPECT().Transfer(gomock.Any(), "RCP_KNOWN", int64(500), gomock.Any()).Return(nil)
		require.NoError(t, f.service.ConfirmReceipt(context.Background(), "payment1", "buyer1"))
	})

	t.Run("only_buyer_may_confirm", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		f.seedCompletedAuction(t, nil)
		f.seedPayment(t, models.PaymentShipped, nil)

		err := f.service.ConfirmReceipt(context.Background(), "payment1", "seller1")
		require.ErrorIs(t, err, auctionerrors.ErrUnauthorized)
	})

	t.Run("unshipped_payment_refused", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		f.seedCompletedAuction(t, nil)
		f.seedPayment(t, models.PaymentPaid, nil)

		err := f.service.ConfirmReceipt(context.Background(), "payment1", "buyer1")
		require.ErrorIs(t, err, auctionerrors.ErrPrecondition)
	})
}

// Test SweepOverdueShipments
func TestSweepOverdueShipments(t *testing.T) {
	t.Parallel()

	t.Run("overdue_payment_refunded_once", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		f.seedCompletedAuction(t, nil)
		f.seedPayment(t, models.PaymentPaid, nil)
		f.clock.Advance(gracePeriod + time.Hour)

		f.processor.EXPECT().Refund(gomock.Any(), "ref-1").Return(nil)

		refunded, err := f.service.SweepOverdueShipments(context.Background())
		require.NoError(t, err)
		require.Equal(t, 1, refunded)

		pay, err := f.store.GetPayment("payment1")
		require.NoError(t, err)
		require.Equal(t, models.PaymentRefunded, pay.Status)

		// The next sweep finds nothing.
		refunded, err = f.service.SweepOverdueShipments(context.Background())
		require.NoError(t, err)
		require.Zero(t, refunded)
	})

	t.Run("payment_within_grace_period_untouched", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		f.seedCompletedAuction(t, nil)
		f.seedPayment(t, models.PaymentPaid, nil)
		f.clock.Advance(gracePeriod - time.Hour)

		refunded, err := f.service.SweepOverdueShipments(context.Background())
		require.NoError(t, err)
		require.Zero(t, refunded)
	})

	t.Run("shipped_payment_never_refunded", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		f.seedCompletedAuction(t, nil)
		f.seedPayment(t, models.PaymentShipped, func(p *models.Payment) { p.ShipmentConfirmed = true })
		f.clock.Advance(gracePeriod + time.Hour)

		refunded, err := f.service.SweepOverdueShipments(context.Background())
		require.NoError(t, err)
		require.Zero(t, refunded)
	})

	t.Run("failed_refund_retried_next_sweep", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		f.seedCompletedAuction(t, nil)
		f.seedPayment(t, models.PaymentPaid, nil)
		f.clock.Advance(gracePeriod + time.Hour)

		f.processor.EXPECT().Refund(gomock.Any(), "ref-1").Return(fmt.Errorf("refund: %w", auctionerrors.ErrExternalService))
		refunded, err := f.service.SweepOverdueShipments(context.Background())
		require.NoError(t, err)
		require.Zero(t, refunded)

		pay, err := f.store.GetPayment("payment1")
		require.NoError(t, err)
		require.Equal(t, models.PaymentPaid, pay.Status)

		f.processor.EXPECT().Refund(gomock.Any(), "ref-1").Return(nil)
		refunded, err = f.service.SweepOverdueShipments(context.Background())
		require.NoError(t, err)
		require.Equal(t, 1, refunded)
	})
}

// Test SetShippingDetails
func TestSetShippingDetails(t *testing.T) {
	t.Parallel()

	validShippingInput := func() CreateShippingInput {
		return CreateShippingInput{
			AuctionID:     "auction1",
			BuyerID:       "buyer1",
			Name:          "Buyer One",
			Address:       "12 Gallery Lane",
			City:          "Accra",
			PostalCode:    "GA-184",
			ContactNumber: "0241234567",
		}
	}

	t.Run("stores_address", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		shipping, err := f.service.SetShippingDetails(validShippingInput())
		require.NoError(t, err)
		require.NotEmpty(t, shipping.ShippingID)

		got, err := f.store.GetShippingByAuction("auction1")
		require.NoError(t, err)
		require.Equal(t, shipping.ShippingID, got.ShippingID)
	})

	t.Run("new_default_clears_older_defaults", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		first := validShippingInput()
		first.IsDefault = true
		_, err := f.service.SetShippingDetails(first)
		require.NoError(t, err)

		second := validShippingInput()
		second.AuctionID = "auction2"
		second.IsDefault = true
		created, err := f.service.SetShippingDetails(second)
		require.NoError(t, err)

		def, err := f.service.GetDefaultShipping("buyer1")
		require.NoError(t, err)
		require.Equal(t, created.ShippingID, def.ShippingID)
	})

	t.Run("incomplete_address_rejected", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		in := validShippingInput()
		in.City = ""
		_, err := f.service.SetShippingDetails(in)
		require.ErrorIs(t, err, auctionerrors.ErrValidation)
	})

	t.Run("one_address_per_auction", func(t *testing.T) {
		t.Parallel()

		f := newPaymentFixture(t)
		_, err := f.service.SetShippingDetails(validShippingInput())
		require.NoError(t, err)
		_, err = f.service.SetShippingDetails(validShippingInput())
		require.ErrorIs(t, err, auctionerrors.ErrAlreadyExists)
	})
}
