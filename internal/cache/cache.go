package cache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// BidCache mirrors the current highest bid for fast reads. Writes are
// best-effort; the store stays authoritative.
type BidCache interface {
	SetHighest(ctx context.Context, auctionID string, amount int64, bidderID string) error
	GetHighest(ctx context.Context, auctionID string) (int64, string, error)
}

// RedisBidCache keeps the highest bid per auction in a Redis hash.
type RedisBidCache struct {
	client *redis.Client
}

func NewRedisBidCache(addr string) *RedisBidCache {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisBidCache{client: client}
}

func (r *RedisBidCache) SetHighest(ctx context.Context, auctionID string, amount int64, bidderID string) error {
	key := "auction:" + auctionID
	return r.client.HSet(ctx, key, map[string]any{
		"highest_bid":    amount,
		"highest_bidder": bidderID,
	}).Err()
}

func (r *RedisBidCache) GetHighest(ctx context.Context, auctionID string) (int64, string, error) {
	key := "auction:" + auctionID
	fields, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return 0, "", err
	}
	raw, ok := fields["highest_bid"]
	if !ok {
		return 0, "", fmt.Errorf("no cached highest bid for auction %s", auctionID)
	}
	amount, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("corrupt cached highest bid for auction %s: %w", auctionID, err)
	}
	return amount, fields["highest_bidder"], nil
}

func (r *RedisBidCache) Close() error {
	return r.client.Close()
}

// NoopBidCache satisfies BidCache when no Redis is configured.
type NoopBidCache struct{}

func (NoopBidCache) SetHighest(context.Context, string, int64, string) error {
	return nil
}

func (NoopBidCache) GetHighest(ctx context.Context, auctionID string) (int64, string, error) {
	return 0, "", fmt.Errorf("no cached highest bid for auction %s", auctionID)
}
