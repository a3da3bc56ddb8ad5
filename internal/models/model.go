package models

import "time"

// AuctionStatus is the lifecycle state of an auction.
type AuctionStatus string

const (
	AuctionPending   AuctionStatus = "pending"
	AuctionActive    AuctionStatus = "active"
	AuctionCompleted AuctionStatus = "completed"
)

// PaymentStatus is the lifecycle state of an escrow payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentShipped   PaymentStatus = "shipped"
	PaymentConfirmed PaymentStatus = "confirmed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending OrderStatus = "pending"
	OrderShipped OrderStatus = "shipped"
)

// PayoutMethod identifies how the seller receives funds.
type PayoutMethod string

const (
	PayoutBankTransfer PayoutMethod = "bank_transfer"
	PayoutMobileMoney  PayoutMethod = "momo"
)

// TaskKind identifies a scheduled task handler.
type TaskKind string

const (
	TaskStartAuction TaskKind = "start_auction"
	TaskEndAuction   TaskKind = "end_auction"
	TaskSweepOverdue TaskKind = "sweep_overdue"
)

// User represents a marketplace participant. Authentication lives upstream;
// only the fields the core needs are carried here.
type User struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Auction represents a timed sale of a single artwork. All money amounts are
// integer minor units (e.g. pesewas).
type Auction struct {
	AuctionID      string            `json:"auction_id"`
	ArtworkID      string            `json:"artwork_id"`
	SellerID       string            `json:"seller_id"`
	CategoryID     string            `json:"category_id"`
	StartingPrice  int64             `json:"starting_price"`
	MaxBidLimit    int64             `json:"max_bid_limit,omitempty"` // 0 means no limit
	HighestBid     int64             `json:"highest_bid"`
	HighestBidder  string            `json:"highest_bidder,omitempty"`
	StartingTime   time.Time         `json:"starting_time"`
	BiddingEndTime time.Time         `json:"bidding_end_time"`
	Status         AuctionStatus     `json:"status"`
	IsSuspended    bool              `json:"is_suspended"`
	PayoutMethod   PayoutMethod      `json:"payout_method"`
	PayoutDetails  map[string]string `json:"payout_details,omitempty"`
	BidIDs         []string          `json:"bid_ids"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// Bid is an immutable record of one offer on an auction.
type Bid struct {
	BidID     string    `json:"bid_id"`
	AuctionID string    `json:"auction_id"`
	BidderID  string    `json:"bidder_id"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// Payment tracks escrowed funds for a completed auction from initiation
// through release to the seller or refund to the buyer.
type Payment struct {
	PaymentID         string            `json:"payment_id"`
	AuctionID         string            `json:"auction_id"`
	BuyerID           string            `json:"buyer_id"`
	SellerID          string            `json:"seller_id"`
	Amount            int64             `json:"amount"`
	PayoutMethod      PayoutMethod      `json:"payout_method"`
	PayoutDetails     map[string]string `json:"payout_details,omitempty"`
	Status            PaymentStatus     `json:"status"`
	ShipmentConfirmed bool              `json:"shipment_confirmed"`
	BuyerConfirmed    bool              `json:"buyer_confirmed"`
	Reference         string            `json:"reference"`
	Verified          bool              `json:"verified"`
	RecipientCode     string            `json:"recipient_code,omitempty"`
	ShippingID        string            `json:"shipping_id"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// Order is created exactly once per verified payment.
type Order struct {
	OrderID     string      `json:"order_id"`
	AuctionID   string      `json:"auction_id"`
	BuyerID     string      `json:"buyer_id"`
	PaymentID   string      `json:"payment_id"`
	ShippingID  string      `json:"shipping_id"`
	Status      OrderStatus `json:"status"`
	DeliveredAt *time.Time  `json:"delivered_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Shipping is a buyer address snapshot, tied to one auction and optionally
// reusable as the buyer's default.
type Shipping struct {
	ShippingID    string    `json:"shipping_id"`
	BuyerID       string    `json:"buyer_id"`
	AuctionID     string    `json:"auction_id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	PostalCode    string    `json:"postal_code"`
	ContactNumber string    `json:"contact_number"`
	IsDefault     bool      `json:"is_default"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ScheduledTask is a durable, time-triggered unit of work. Tasks are marked
// done only after their handler succeeds, so delivery is at-least-once.
type ScheduledTask struct {
	TaskID    string    `json:"task_id"`
	Kind      TaskKind  `json:"kind"`
	SubjectID string    `json:"subject_id"` // auction id for start/end, empty for sweeps
	RunAt     time.Time `json:"run_at"`
	Done      bool      `json:"done"`
	Attempts  int       `json:"attempts"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
