package bidding

import (
	"context"
	"fmt"

	"art-auction/internal/auctionerrors"
	"art-auction/internal/cache"
	"art-auction/internal/clock"
	"art-auction/internal/models"
	"art-auction/internal/notifier"
	"art-auction/internal/repository"
	"art-auction/utils"
)

// BidService owns the highest-bid invariant: at most one current highest bid
// per auction, advanced only through conditional writes.
type BidService struct {
	store      repository.Store
	cache      cache.BidCache
	notifier   notifier.Notifier
	clock      clock.Clock
	maxRetries int
}

// NewBidService creates a new BidService instance
func NewBidService(store repository.Store, bidCache cache.BidCache, n notifier.Notifier, clk clock.Clock, maxRetries int) *BidService {
	if maxRetries <= 0 {
		maxRetries = 5
	}
	return &BidService{
		store:      store,
		cache:      bidCache,
		notifier:   n,
		clock:      clk,
		maxRetries: maxRetries,
	}
}

// PlaceBid validates, records and (when leading) promotes a bid. The highest
// pointer moves through a compare-and-swap against the previously read value,
// retried a bounded number of times before giving up with a contention error.
func (s *BidService) PlaceBid(ctx context.Context, auctionID, bidderID string, amount int64) (models.Bid, error) {
	if auctionID == "" || bidderID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - missing auctionID or bidderID", auctionerrors.ErrValidation)
	}
	if amount <= 0 {
		return models.Bid{}, fmt.Errorf("service: %w - bid amount must be greater than zero", auctionerrors.ErrValidation)
	}

	auction, err := s.store.GetAuction(auctionID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: auction lookup failed: %w", err)
	}
	if err := s.checkBidPreconditions(auction, bidderID, amount); err != nil {
		return models.Bid{}, err
	}

	bid := models.Bid{
		BidID:     utils.GenerateID(),
		AuctionID: auctionID,
		BidderID:  bidderID,
		Amount:    amount,
		CreatedAt: s.clock.Now(),
	}

	// Bid history is append-only: the record is persisted before the
	// highest pointer moves, so a valid bid that is immediately outbid
	// still shows up in the auction's history.
	if err := s.store.CreateBid(bid); err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to record bid for auction %s: %w", auctionID, err)
	}

	expected := auction.HighestBid
	prevBidder := auction.HighestBidder
	promoted := false
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		ok, err := s.store.RecordBidIfHighest(bid, expected)
		if err != nil {
			return models.Bid{}, fmt.Errorf("service: conditional bid update failed: %w", err)
		}
		if ok {
			promoted = true
			break
		}

		// Lost the race: re-read and decide whether the bid still leads.
		auction, err = s.store.GetAuction(auctionID)
		if err != nil {
			return models.Bid{}, fmt.Errorf("service: auction re-read failed: %w", err)
		}
		if auction.Status != models.AuctionActive || auction.IsSuspended {
			return bid, nil // auction closed underneath us, bid stands as history
		}
		if amount <= auction.HighestBid {
			return bid, nil // outbid before promotion, bid stands as history
		}
		expected = auction.HighestBid
		prevBidder = auction.HighestBidder
	}
	if !promoted {
		// The caller is told to retry, so the unpromoted record must not
		// stay behind: a retried bid would otherwise double up in history.
		if err := s.store.DeleteBid(bid.BidID); err != nil {
			utils.Warn("stale bid record cleanup failed", map[string]any{"auction_id": auctionID, "bid_id": bid.BidID, "error": err.Error()})
		}
		return models.Bid{}, fmt.Errorf("service: bid on auction %s: %w", auctionID, auctionerrors.ErrContention)
	}

	s.cacheHighest(ctx, auctionID, amount, bidderID)

	// Outbid notification is best-effort and outside the atomic unit.
	if prevBidder != "" && prevBidder != bidderID {
		if err := s.notifier.Notify(prevBidder, "You've been outbid!", fmt.Sprintf("Someone has placed a higher bid on auction %s. Place a new bid now!", auctionID)); err != nil {
			utils.Warn("outbid notification failed", map[string]any{"auction_id": auctionID, "user_id": prevBidder, "error": err.Error()})
		}
	}

	// Hitting the max bid limit exactly ends the auction early.
	if auction.MaxBidLimit > 0 && amount == auction.MaxBidLimit {
		s.completeAtMaxBid(auctionID, bidderID)
	}

	return bid, nil
}

// checkBidPreconditions applies the bid acceptance rules in order; each
// failure is a distinct rejection with no side effects.
func (s *BidService) checkBidPreconditions(auction models.Auction, bidderID string, amount int64) error {
	if auction.Status != models.AuctionActive {
		return fmt.Errorf("service: auction %s is not active: %w", auction.AuctionID, auctionerrors.ErrPrecondition)
	}
	if auction.IsSuspended {
		return fmt.Errorf("service: auction %s is suspended: %w", auction.AuctionID, auctionerrors.ErrPrecondition)
	}
	if auction.SellerID == bidderID {
		return fmt.Errorf("service: %w - you cannot bid on your own auction", auctionerrors.ErrUnauthorized)
	}

	now := s.clock.Now()
	if now.Before(auction.StartingTime) {
		return fmt.Errorf("service: %w - auction has not started yet", auctionerrors.ErrPrecondition)
	}
	if !now.Before(auction.BiddingEndTime) {
		return fmt.Errorf("service: %w - auction has already ended", auctionerrors.ErrPrecondition)
	}

	if auction.HighestBid == 0 {
		if amount < auction.StartingPrice {
			return fmt.Errorf("service: %w - bid must be at least %d", auctionerrors.ErrBidTooLow, auction.StartingPrice)
		}
	} else if amount <= auction.HighestBid {
		return fmt.Errorf("service: %w - bid must be higher than %d", auctionerrors.ErrBidTooLow, auction.HighestBid)
	}
	if auction.MaxBidLimit > 0 && amount > auction.MaxBidLimit {
		return fmt.Errorf("service: %w - bid cannot exceed the maximum limit of %d", auctionerrors.ErrBidTooHigh, auction.MaxBidLimit)
	}
	return nil
}

// completeAtMaxBid performs the early-termination transition. The same
// conditional status update guards the scheduled and manual end paths, so
// whichever fires first wins.
func (s *BidService) completeAtMaxBid(auctionID, winnerID string) {
	ok, err := s.store.CompareAndSetAuctionStatus(auctionID, models.AuctionActive, models.AuctionCompleted)
	if err != nil {
		utils.Error("max-bid completion failed", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}
	if !ok {
		return // already completed elsewhere
	}
	utils.Info("auction completed at max bid limit", map[string]any{"auction_id": auctionID, "winner": winnerID})
	if err := s.notifier.Notify(winnerID, "Auction Won: Payment Required", fmt.Sprintf("Congratulations! You won auction %s. Complete payment on the site.", auctionID)); err != nil {
		utils.Warn("winner notification failed", map[string]any{"auction_id": auctionID, "user_id": winnerID, "error": err.Error()})
	}
}

func (s *BidService) cacheHighest(ctx context.Context, auctionID string, amount int64, bidderID string) {
	if err := s.cache.SetHighest(ctx, auctionID, amount, bidderID); err != nil {
		utils.Warn("highest-bid cache write failed", map[string]any{"auction_id": auctionID, "error": err.Error()})
	}
}

// GetAuctionBids returns all bids for an auction, highest first.
func (s *BidService) GetAuctionBids(auctionID string) ([]models.Bid, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrValidation)
	}

	bids, err := s.store.GetBidsByAuction(auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for auction %s: %w", auctionID, err)
	}
	return bids, nil
}

// GetUserBids returns a bidder's bid history, newest first.
func (s *BidService) GetUserBids(bidderID string) ([]models.Bid, error) {
	if bidderID == "" {
		return nil, fmt.Errorf("service: %w - empty bidder ID", auctionerrors.ErrValidation)
	}

	bids, err := s.store.GetBidsByBidder(bidderID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for bidder %s: %w", bidderID, err)
	}
	return bids, nil
}

// GetHighestBid returns the current highest bid amount and bidder for an
// auction, serving from the cache when it has an entry.
func (s *BidService) GetHighestBid(ctx context.Context, auctionID string) (int64, string, error) {
	if auctionID == "" {
		return 0, "", fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrValidation)
	}

	if amount, bidder, err := s.cache.GetHighest(ctx, auctionID); err == nil && amount > 0 {
		return amount, bidder, nil
	}

	auction, err := s.store.GetAuction(auctionID)
	if err != nil {
		return 0, "", fmt.Errorf("service: failed to get highest bid for auction %s: %w", auctionID, err)
	}
	return auction.HighestBid, auction.HighestBidder, nil
}
