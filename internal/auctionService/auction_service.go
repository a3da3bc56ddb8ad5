package auction

import (
	"fmt"
	"time"

	"art-auction/internal/auctionerrors"
	"art-auction/internal/clock"
	"art-auction/internal/models"
	"art-auction/internal/notifier"
	"art-auction/internal/repository"
	"art-auction/utils"
)

// payoutRequiredFields lists the payout detail keys each method must carry.
var payoutRequiredFields = map[models.PayoutMethod][]string{
	models.PayoutBankTransfer: {"account_number", "bank_code"},
	models.PayoutMobileMoney:  {"phone", "network"},
}

// AuctionService owns auction creation and the pending/active/completed
// lifecycle. Scheduled and manual transitions share one conditional status
// update, so exactly one path ever applies a transition.
type AuctionService struct {
	store    repository.Store
	notifier notifier.Notifier
	clock    clock.Clock
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(store repository.Store, n notifier.Notifier, clk clock.Clock) *AuctionService {
	return &AuctionService{
		store:    store,
		notifier: n,
		clock:    clk,
	}
}

// CreateAuctionInput carries everything needed to open an auction. Artwork
// ownership is checked upstream.
type CreateAuctionInput struct {
	ArtworkID      string
	SellerID       string
	CategoryID     string
	StartingPrice  int64
	MaxBidLimit    int64
	StartingTime   time.Time
	BiddingEndTime time.Time
	PayoutMethod   models.PayoutMethod
	PayoutDetails  map[string]string
}

// CreateAuction validates the input, persists the auction and enqueues its
// durable start and end tasks.
func (s *AuctionService) CreateAuction(in CreateAuctionInput) (models.Auction, error) {
	if err := s.validateCreate(in); err != nil {
		return models.Auction{}, err
	}

	now := s.clock.Now()
	status := models.AuctionPending
	if !now.Before(in.StartingTime) {
		status = models.AuctionActive
	}

	auction := models.Auction{
		AuctionID:      utils.GenerateID(),
		ArtworkID:      in.ArtworkID,
		SellerID:       in.SellerID,
		CategoryID:     in.CategoryID,
		StartingPrice:  in.StartingPrice,
		MaxBidLimit:    in.MaxBidLimit,
		StartingTime:   in.StartingTime.UTC(),
		BiddingEndTime: in.BiddingEndTime.UTC(),
		Status:         status,
		PayoutMethod:   in.PayoutMethod,
		PayoutDetails:  in.PayoutDetails,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.store.CreateAuction(auction); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to create auction: %w", err)
	}

	if status == models.AuctionPending {
		if err := s.enqueue(models.TaskStartAuction, auction.AuctionID, auction.StartingTime); err != nil {
			return models.Auction{}, err
		}
	}
	if err := s.enqueue(models.TaskEndAuction, auction.AuctionID, auction.BiddingEndTime); err != nil {
		return models.Auction{}, err
	}

	utils.Info("auction created", map[string]any{
		"auction_id": auction.AuctionID,
		"seller_id":  auction.SellerID,
		"status":     string(auction.Status),
	})
	return auction, nil
}

func (s *AuctionService) validateCreate(in CreateAuctionInput) error {
	if in.ArtworkID == "" || in.SellerID == "" || in.CategoryID == "" {
		return fmt.Errorf("service: %w - artwork, seller and category are required", auctionerrors.ErrValidation)
	}
	if in.StartingPrice <= 0 {
		return fmt.Errorf("service: %w - starting price must be positive", auctionerrors.ErrValidation)
	}
	if in.MaxBidLimit != 0 && in.MaxBidLimit <= in.StartingPrice {
		return fmt.Errorf("service: %w - max bid limit must exceed starting price", auctionerrors.ErrValidation)
	}
	if !in.BiddingEndTime.After(in.StartingTime) {
		return fmt.Errorf("service: %w - bidding end time must be after starting time", auctionerrors.ErrValidation)
	}
	if !in.BiddingEndTime.After(s.clock.Now()) {
		return fmt.Errorf("service: %w - bidding end time must be in the future", auctionerrors.ErrValidation)
	}

	required, ok := payoutRequiredFields[in.PayoutMethod]
	if !ok {
		return fmt.Errorf("service: %w - invalid payout method %q", auctionerrors.ErrValidation, in.PayoutMethod)
	}
	for _, field := range required {
		if in.PayoutDetails[field] == "" {
			return fmt.Errorf("service: %w - payout details missing %q", auctionerrors.ErrValidation, field)
		}
	}
	return nil
}

func (s *AuctionService) enqueue(kind models.TaskKind, auctionID string, runAt time.Time) error {
	task := models.ScheduledTask{
		TaskID:    utils.GenerateID(),
		Kind:      kind,
		SubjectID: auctionID,
		RunAt:     runAt,
		CreatedAt: s.clock.Now(),
		UpdatedAt: s.clock.Now(),
	}
	if err := s.store.EnqueueTask(task); err != nil {
		return fmt.Errorf("service: failed to enqueue %s task: %w", kind, err)
	}
	return nil
}

// EndAuction is the seller-initiated end. A repeat call, or a call racing the
// scheduled end task, finds the status already moved and no-ops.
func (s *AuctionService) EndAuction(auctionID, sellerID string) error {
	auction, err := s.store.GetAuction(auctionID)
	if err != nil {
		return fmt.Errorf("service: auction lookup failed: %w", err)
	}
	if auction.SellerID != sellerID {
		return fmt.Errorf("service: %w - you are not the owner of this auction", auctionerrors.ErrUnauthorized)
	}
	if auction.IsSuspended {
		return fmt.Errorf("service: auction %s is suspended: %w", auctionID, auctionerrors.ErrPrecondition)
	}
	if auction.Status == models.AuctionPending {
		return fmt.Errorf("service: auction %s has not started: %w", auctionID, auctionerrors.ErrPrecondition)
	}

	ok, err := s.store.CompareAndSetAuctionStatus(auctionID, models.AuctionActive, models.AuctionCompleted)
	if err != nil {
		return fmt.Errorf("service: failed to end auction %s: %w", auctionID, err)
	}
	if ok {
		s.notifyWinner(auctionID)
	}
	return nil
}

// StartScheduled is the handler for a due start task. It only moves a
// still-pending auction, so duplicate delivery is safe. A suspended auction
// reports an error so the task stays queued until the suspension lifts.
func (s *AuctionService) StartScheduled(auctionID string) error {
	ok, err := s.store.CompareAndSetAuctionStatus(auctionID, models.AuctionPending, models.AuctionActive)
	if err != nil {
		return fmt.Errorf("service: scheduled start of auction %s failed: %w", auctionID, err)
	}
	if !ok {
		return s.retryIfSuspended(auctionID, models.AuctionPending)
	}
	utils.Info("auction is now active", map[string]any{"auction_id": auctionID})
	return nil
}

// EndScheduled is the handler for a due end task. It only moves a
// still-active auction; the winner, if any, is notified once.
func (s *AuctionService) EndScheduled(auctionID string) error {
	ok, err := s.store.CompareAndSetAuctionStatus(auctionID, models.AuctionActive, models.AuctionCompleted)
	if err != nil {
		return fmt.Errorf("service: scheduled end of auction %s failed: %w", auctionID, err)
	}
	if !ok {
		return s.retryIfSuspended(auctionID, models.AuctionActive)
	}
	utils.Info("auction is now completed", map[string]any{"auction_id": auctionID})
	s.notifyWinner(auctionID)
	return nil
}

// retryIfSuspended distinguishes a transition skipped because the status
// already moved (done, swallow the task) from one blocked by a suspension
// (fail so the scheduler redelivers after the auction resumes).
func (s *AuctionService) retryIfSuspended(auctionID string, from models.AuctionStatus) error {
	auction, err := s.store.GetAuction(auctionID)
	if err != nil {
		return fmt.Errorf("service: auction lookup failed: %w", err)
	}
	if auction.IsSuspended && auction.Status == from {
		return fmt.Errorf("service: auction %s is suspended: %w", auctionID, auctionerrors.ErrPrecondition)
	}
	return nil
}

func (s *AuctionService) notifyWinner(auctionID string) {
	auction, err := s.store.GetAuction(auctionID)
	if err != nil {
		utils.Error("winner lookup failed", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}
	if auction.HighestBidder == "" {
		return
	}
	if err := s.notifier.Notify(auction.HighestBidder, "Auction Won: Payment Required", fmt.Sprintf("Congratulations! You won the auction for artwork %s. Complete payment on the site.", auction.ArtworkID)); err != nil {
		utils.Warn("winner notification failed", map[string]any{"auction_id": auctionID, "user_id": auction.HighestBidder, "error": err.Error()})
	}
}

// SuspendAuction blocks all bid and transition activity on the auction until
// it is resumed.
func (s *AuctionService) SuspendAuction(auctionID string) error {
	if err := s.store.SetAuctionSuspended(auctionID, true); err != nil {
		return fmt.Errorf("service: failed to suspend auction %s: %w", auctionID, err)
	}
	utils.Info("auction suspended", map[string]any{"auction_id": auctionID})
	return nil
}

// ResumeAuction lifts a suspension. Start/end tasks were never cancelled;
// the scheduler picks the auction back up on its next pass.
func (s *AuctionService) ResumeAuction(auctionID string) error {
	if err := s.store.SetAuctionSuspended(auctionID, false); err != nil {
		return fmt.Errorf("service: failed to resume auction %s: %w", auctionID, err)
	}
	utils.Info("auction resumed", map[string]any{"auction_id": auctionID})
	return nil
}

// DeleteAuction removes an auction. An active auction that has bids is
// never deleted.
func (s *AuctionService) DeleteAuction(auctionID, sellerID string) error {
	auction, err := s.store.GetAuction(auctionID)
	if err != nil {
		return fmt.Errorf("service: auction lookup failed: %w", err)
	}
	if auction.SellerID != sellerID {
		return fmt.Errorf("service: %w - unauthorized action", auctionerrors.ErrUnauthorized)
	}
	if auction.Status == models.AuctionActive && len(auction.BidIDs) > 0 {
		return fmt.Errorf("service: auction %s has bids: %w", auctionID, auctionerrors.ErrPrecondition)
	}

	if err := s.store.DeleteAuction(auctionID); err != nil {
		return fmt.Errorf("service: failed to delete auction %s: %w", auctionID, err)
	}
	return nil
}

// GetAuction returns one auction by id.
func (s *AuctionService) GetAuction(auctionID string) (models.Auction, error) {
	if auctionID == "" {
		return models.Auction{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrValidation)
	}
	auction, err := s.store.GetAuction(auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}
	return auction, nil
}

// ListActiveAuctions returns all currently active auctions, newest first.
func (s *AuctionService) ListActiveAuctions() ([]models.Auction, error) {
	auctions, err := s.store.ListAuctionsByStatus(models.AuctionActive)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list active auctions: %w", err)
	}
	return auctions, nil
}

// ListAuctions returns every auction, newest first.
func (s *AuctionService) ListAuctions() ([]models.Auction, error) {
	auctions, err := s.store.ListAuctions()
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions: %w", err)
	}
	return auctions, nil
}

// LatestAuction returns the most recently created auction.
func (s *AuctionService) LatestAuction() (models.Auction, error) {
	auction, err := s.store.LatestAuction()
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to get latest auction: %w", err)
	}
	return auction, nil
}
