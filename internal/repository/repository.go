package repository

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"art-auction/internal/auctionerrors"
	"art-auction/internal/clock"
	model "art-auction/internal/models"
)

// AuctionStore persists auctions. Highest-bid and status writes are
// conditional updates: blind overwrite-after-read is not offered.
type AuctionStore interface {
	CreateAuction(a model.Auction) error
	GetAuction(auctionID string) (model.Auction, error)
	ListAuctions() ([]model.Auction, error)
	ListAuctionsByStatus(status model.AuctionStatus) ([]model.Auction, error)
	LatestAuction() (model.Auction, error)
	DeleteAuction(auctionID string) error

	// RecordBidIfHighest advances highestBid/highestBidder and appends the
	// bid id, iff the stored highestBid still equals expectedHighest and
	// the auction is active and not suspended. Returns false when the
	// condition no longer holds.
	RecordBidIfHighest(bid model.Bid, expectedHighest int64) (bool, error)

	// CompareAndSetAuctionStatus transitions status from->to. Returns false
	// if the auction is not currently in the from status or is suspended.
	CompareAndSetAuctionStatus(auctionID string, from, to model.AuctionStatus) (bool, error)

	SetAuctionSuspended(auctionID string, suspended bool) error
}

// BidStore persists the append-only bid history. DeleteBid exists only to
// reclaim records whose promotion never happened; promoted bids are never
// removed.
type BidStore interface {
	CreateBid(bid model.Bid) error
	DeleteBid(bidID string) error
	GetBidsByAuction(auctionID string) ([]model.Bid, error)
	GetBidsByBidder(bidderID string) ([]model.Bid, error)
}

// PaymentStore persists escrow payments. Status transitions are conditional
// on the expected prior status so concurrent writers serialize safely.
type PaymentStore interface {
	CreatePayment(p model.Payment) error
	GetPayment(paymentID string) (model.Payment, error)
	GetPaymentByAuction(auctionID string) (model.Payment, error)
	GetPaymentByReference(reference string) (model.Payment, error)
	ListOverduePayments(before time.Time) ([]model.Payment, error)

	MarkPaymentPaid(paymentID string) (bool, error)
	MarkPaymentShipped(paymentID string) (bool, error)
	MarkPaymentConfirmed(paymentID string) (bool, error)
	MarkPaymentRefunded(paymentID string) (bool, error)
	SetPaymentRecipient(paymentID, recipientCode string) error
}

// OrderStore persists orders, at most one per payment.
type OrderStore interface {
	CreateOrder(o model.Order) error
	GetOrderByPayment(paymentID string) (model.Order, error)
	ListOrders() ([]model.Order, error)
	MarkOrderShipped(orderID string) error
}

// ShippingStore persists buyer address snapshots.
type ShippingStore interface {
	CreateShipping(s model.Shipping) error
	GetShippingByAuction(auctionID string) (model.Shipping, error)
	GetDefaultShipping(buyerID string) (model.Shipping, error)
	ListShippingByBuyer(buyerID string) ([]model.Shipping, error)
	ClearOtherDefaults(buyerID, keepShippingID string) error
}

// TaskStore persists time-triggered tasks so scheduled transitions survive
// process restarts.
type TaskStore interface {
	EnqueueTask(t model.ScheduledTask) error
	DueTasks(now time.Time) ([]model.ScheduledTask, error)
	MarkTaskDone(taskID string) error
	RescheduleTask(taskID string, runAt time.Time) error
}

// Store is the full persistence gateway consumed by the services.
type Store interface {
	AuctionStore
	BidStore
	PaymentStore
	OrderStore
	ShippingStore
	TaskStore
}

// MemoryStore is a concurrency-safe in-memory implementation of Store.
type MemoryStore struct {
	mu        sync.RWMutex
	clock     clock.Clock
	auctions  map[string]model.Auction
	bids      map[string]model.Bid
	payments  map[string]model.Payment
	orders    map[string]model.Order
	shippings map[string]model.Shipping
	tasks     map[string]model.ScheduledTask
}

// NewMemoryStore creates a new in-memory store instance
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(clock.NewSystem())
}

// NewMemoryStoreWithClock creates a store whose update timestamps come from
// the given clock. Timestamp-sensitive queries like overdue listing depend
// on the store and its callers sharing one clock.
func NewMemoryStoreWithClock(clk clock.Clock) *MemoryStore {
	return &MemoryStore{
		clock:     clk,
		auctions:  make(map[string]model.Auction),
		bids:      make(map[string]model.Bid),
		payments:  make(map[string]model.Payment),
		orders:    make(map[string]model.Order),
		shippings: make(map[string]model.Shipping),
		tasks:     make(map[string]model.ScheduledTask),
	}
}

func (s *MemoryStore) CreateAuction(a model.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.auctions[a.AuctionID]; ok {
		return fmt.Errorf("create auction %s: %w", a.AuctionID, auctionerrors.ErrAlreadyExists)
	}
	s.auctions[a.AuctionID] = a
	return nil
}

func (s *MemoryStore) GetAuction(auctionID string) (model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrNotFound)
	}
	return a, nil
}

func (s *MemoryStore) ListAuctions() ([]model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Auction, 0, len(s.auctions))
	for _, a := range s.auctions {
		out = append(out, a)
	}
	sortAuctionsNewestFirst(out)
	return out, nil
}

func (s *MemoryStore) ListAuctionsByStatus(status model.AuctionStatus) ([]model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Auction
	for _, a := range s.auctions {
		if a.Status == status {
			out = append(out, a)
		}
	}
	sortAuctionsNewestFirst(out)
	return out, nil
}

func (s *MemoryStore) LatestAuction() (model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest model.Auction
	found := false
	for _, a := range s.auctions {
		if !found || a.CreatedAt.After(latest.CreatedAt) {
			latest = a
			found = true
		}
	}
	if !found {
		return model.Auction{}, fmt.Errorf("latest auction: %w", auctionerrors.ErrNotFound)
	}
	return latest, nil
}

func (s *MemoryStore) DeleteAuction(auctionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.auctions[auctionID]; !ok {
		return fmt.Errorf("delete auction %s: %w", auctionID, auctionerrors.ErrNotFound)
	}
	delete(s.auctions, auctionID)
	return nil
}

// RecordBidIfHighest is the single atomic unit behind bid acceptance: the bid
// record, the highest pointer and the bid list move together or not at all.
func (s *MemoryStore) RecordBidIfHighest(bid model.Bid, expectedHighest int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.auctions[bid.AuctionID]
	if !ok {
		return false, fmt.Errorf("record bid for auction %s: %w", bid.AuctionID, auctionerrors.ErrNotFound)
	}
	if a.Status != model.AuctionActive || a.IsSuspended {
		return false, nil
	}
	if a.HighestBid != expectedHighest {
		return false, nil
	}

	if _, exists := s.bids[bid.BidID]; !exists {
		s.bids[bid.BidID] = bid
	}
	a.HighestBid = bid.Amount
	a.HighestBidder = bid.BidderID
	a.BidIDs = append(a.BidIDs, bid.BidID)
	a.UpdatedAt = bid.CreatedAt
	s.auctions[bid.AuctionID] = a
	return true, nil
}

func (s *MemoryStore) CompareAndSetAuctionStatus(auctionID string, from, to model.AuctionStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.auctions[auctionID]
	if !ok {
		return false, fmt.Errorf("set status for auction %s: %w", auctionID, auctionerrors.ErrNotFound)
	}
	if a.Status != from || a.IsSuspended {
		return false, nil
	}
	a.Status = to
	a.UpdatedAt = s.clock.Now()
	s.auctions[auctionID] = a
	return true, nil
}

func (s *MemoryStore) SetAuctionSuspended(auctionID string, suspended bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.auctions[auctionID]
	if !ok {
		return fmt.Errorf("suspend auction %s: %w", auctionID, auctionerrors.ErrNotFound)
	}
	a.IsSuspended = suspended
	a.UpdatedAt = s.clock.Now()
	s.auctions[auctionID] = a
	return nil
}

func (s *MemoryStore) CreateBid(bid model.Bid) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.auctions[bid.AuctionID]; !ok {
		return fmt.Errorf("create bid for auction %s: %w", bid.AuctionID, auctionerrors.ErrNotFound)
	}
	s.bids[bid.BidID] = bid
	return nil
}

func (s *MemoryStore) DeleteBid(bidID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bids[bidID]; !ok {
		return fmt.Errorf("delete bid %s: %w", bidID, auctionerrors.ErrNotFound)
	}
	delete(s.bids, bidID)
	return nil
}

func (s *MemoryStore) GetBidsByAuction(auctionID string) ([]model.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Bid
	for _, b := range s.bids {
		if b.AuctionID == auctionID {
			out = append(out, b)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("get bids for auction %s: %w", auctionID, auctionerrors.ErrNoBids)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })
	return out, nil
}

func (s *MemoryStore) GetBidsByBidder(bidderID string) ([]model.Bid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Bid
	for _, b := range s.bids {
		if b.BidderID == bidderID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) CreatePayment(p model.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.payments[p.PaymentID]; ok {
		return fmt.Errorf("create payment %s: %w", p.PaymentID, auctionerrors.ErrAlreadyExists)
	}
	for _, existing := range s.payments {
		if existing.AuctionID == p.AuctionID {
			return fmt.Errorf("create payment for auction %s: %w", p.AuctionID, auctionerrors.ErrAlreadyExists)
		}
	}
	s.payments[p.PaymentID] = p
	return nil
}

func (s *MemoryStore) GetPayment(paymentID string) (model.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.payments[paymentID]
	if !ok {
		return model.Payment{}, fmt.Errorf("get payment %s: %w", paymentID, auctionerrors.ErrNotFound)
	}
	return p, nil
}

func (s *MemoryStore) GetPaymentByAuction(auctionID string) (model.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.payments {
		if p.AuctionID == auctionID {
			return p, nil
		}
	}
	return model.Payment{}, fmt.Errorf("get payment for auction %s: %w", auctionID, auctionerrors.ErrNotFound)
}

func (s *MemoryStore) GetPaymentByReference(reference string) (model.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.payments {
		if p.Reference == reference {
			return p, nil
		}
	}
	return model.Payment{}, fmt.Errorf("get payment by reference %s: %w", reference, auctionerrors.ErrNotFound)
}

func (s *MemoryStore) ListOverduePayments(before time.Time) ([]model.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Payment
	for _, p := range s.payments {
		if p.Status == model.PaymentPaid && !p.ShipmentConfirmed && p.UpdatedAt.Before(before) {
			out = append(out, p)
		}
	}
	return out, nil
}

// setPaymentStatus applies a conditional status transition under the lock.
func (s *MemoryStore) setPaymentStatus(paymentID string, from, to model.PaymentStatus, apply func(*model.Payment)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[paymentID]
	if !ok {
		return false, fmt.Errorf("set status for payment %s: %w", paymentID, auctionerrors.ErrNotFound)
	}
	if p.Status != from {
		return false, nil
	}
	p.Status = to
	if apply != nil {
		apply(&p)
	}
	p.UpdatedAt = s.clock.Now()
	s.payments[paymentID] = p
	return true, nil
}

func (s *MemoryStore) MarkPaymentPaid(paymentID string) (bool, error) {
	return s.setPaymentStatus(paymentID, model.PaymentPending, model.PaymentPaid, func(p *model.Payment) {
		p.Verified = true
	})
}

func (s *MemoryStore) MarkPaymentShipped(paymentID string) (bool, error) {
	return s.setPaymentStatus(paymentID, model.PaymentPaid, model.PaymentShipped, func(p *model.Payment) {
		p.ShipmentConfirmed = true
	})
}

func (s *MemoryStore) MarkPaymentConfirmed(paymentID string) (bool, error) {
	return s.setPaymentStatus(paymentID, model.PaymentShipped, model.PaymentConfirmed, func(p *model.Payment) {
		p.BuyerConfirmed = true
	})
}

func (s *MemoryStore) MarkPaymentRefunded(paymentID string) (bool, error) {
	return s.setPaymentStatus(paymentID, model.PaymentPaid, model.PaymentRefunded, nil)
}

func (s *MemoryStore) SetPaymentRecipient(paymentID, recipientCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[paymentID]
	if !ok {
		return fmt.Errorf("set recipient for payment %s: %w", paymentID, auctionerrors.ErrNotFound)
	}
	p.RecipientCode = recipientCode
	p.UpdatedAt = s.clock.Now()
	s.payments[paymentID] = p
	return nil
}

func (s *MemoryStore) CreateOrder(o model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.orders {
		if existing.PaymentID == o.PaymentID {
			return fmt.Errorf("create order for payment %s: %w", o.PaymentID, auctionerrors.ErrAlreadyExists)
		}
	}
	s.orders[o.OrderID] = o
	return nil
}

func (s *MemoryStore) GetOrderByPayment(paymentID string) (model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.PaymentID == paymentID {
			return o, nil
		}
	}
	return model.Order{}, fmt.Errorf("get order for payment %s: %w", paymentID, auctionerrors.ErrNotFound)
}

func (s *MemoryStore) ListOrders() ([]model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) MarkOrderShipped(orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return fmt.Errorf("mark order %s shipped: %w", orderID, auctionerrors.ErrNotFound)
	}
	o.Status = model.OrderShipped
	o.UpdatedAt = s.clock.Now()
	s.orders[orderID] = o
	return nil
}

func (s *MemoryStore) CreateShipping(sh model.Shipping) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.shippings {
		if existing.AuctionID == sh.AuctionID {
			return fmt.Errorf("create shipping for auction %s: %w", sh.AuctionID, auctionerrors.ErrAlreadyExists)
		}
	}
	s.shippings[sh.ShippingID] = sh
	return nil
}

func (s *MemoryStore) GetShippingByAuction(auctionID string) (model.Shipping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sh := range s.shippings {
		if sh.AuctionID == auctionID {
			return sh, nil
		}
	}
	return model.Shipping{}, fmt.Errorf("get shipping for auction %s: %w", auctionID, auctionerrors.ErrNotFound)
}

func (s *MemoryStore) GetDefaultShipping(buyerID string) (model.Shipping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sh := range s.shippings {
		if sh.BuyerID == buyerID && sh.IsDefault {
			return sh, nil
		}
	}
	return model.Shipping{}, fmt.Errorf("get default shipping for buyer %s: %w", buyerID, auctionerrors.ErrNotFound)
}

func (s *MemoryStore) ListShippingByBuyer(buyerID string) ([]model.Shipping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Shipping
	for _, sh := range s.shippings {
		if sh.BuyerID == buyerID {
			out = append(out, sh)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) ClearOtherDefaults(buyerID, keepShippingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sh := range s.shippings {
		if sh.BuyerID == buyerID && id != keepShippingID && sh.IsDefault {
			sh.IsDefault = false
			s.shippings[id] = sh
		}
	}
	return nil
}

func (s *MemoryStore) EnqueueTask(t model.ScheduledTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[t.TaskID]; ok {
		return fmt.Errorf("enqueue task %s: %w", t.TaskID, auctionerrors.ErrAlreadyExists)
	}
	s.tasks[t.TaskID] = t
	return nil
}

func (s *MemoryStore) DueTasks(now time.Time) ([]model.ScheduledTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.ScheduledTask
	for _, t := range s.tasks {
		if !t.Done && !t.RunAt.After(now) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RunAt.Before(out[j].RunAt) })
	return out, nil
}

func (s *MemoryStore) MarkTaskDone(taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[taskID]
	if !ok {
		return fmt.Errorf("mark task %s done: %w", taskID, auctionerrors.ErrNotFound)
	}
	t.Done = true
	t.UpdatedAt = s.clock.Now()
	s.tasks[taskID] = t
	return nil
}

func (s *MemoryStore) RescheduleTask(taskID string, runAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[taskID]
	if !ok {
		return fmt.Errorf("reschedule task %s: %w", taskID, auctionerrors.ErrNotFound)
	}
	t.RunAt = runAt
	t.Attempts++
	t.UpdatedAt = s.clock.Now()
	s.tasks[taskID] = t
	return nil
}

func sortAuctionsNewestFirst(auctions []model.Auction) {
	sort.Slice(auctions, func(i, j int) bool {
		return auctions[i].CreatedAt.After(auctions[j].CreatedAt)
	})
}
