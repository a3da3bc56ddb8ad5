package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	auction "art-auction/internal/auctionService"
	bidding "art-auction/internal/bidService"
	"art-auction/internal/cache"
	"art-auction/internal/clock"
	"art-auction/internal/notifier"
	payment "art-auction/internal/paymentService"
	"art-auction/internal/paystack"
	"art-auction/internal/repository"
	"art-auction/internal/scheduler"
	"art-auction/internal/server"

	"github.com/gin-gonic/gin"
)

// fakeProcessor is a deterministic in-memory stand-in for the payment
// processor; every transaction succeeds.
type fakeProcessor struct {
	mu        sync.Mutex
	sessions  int
	amounts   map[string]int64
	transfers []string
	refunds   []string
}

func (f *fakeProcessor) CreateSession(ctx context.Context, email string, amount int64, currency string, metadata map[string]string) (paystack.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions++
	ref := fmt.Sprintf("test-ref-%d", f.sessions)
	if f.amounts == nil {
		f.amounts = make(map[string]int64)
	}
	f.amounts[ref] = amount
	return paystack.Session{Reference: ref, RedirectURL: "https://checkout.test/" + ref}, nil
}

func (f *fakeProcessor) Verify(ctx context.Context, reference string) (paystack.Verification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return paystack.Verification{Success: true, Amount: f.amounts[reference], Currency: "GHS"}, nil
}

func (f *fakeProcessor) CreateRecipient(ctx context.Context, req paystack.RecipientRequest) (string, error) {
	return "RCP_test", nil
}

func (f *fakeProcessor) Transfer(ctx context.Context, recipientCode string, amount int64, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transfers = append(f.transfers, recipientCode)
	return nil
}

func (f *fakeProcessor) Refund(ctx context.Context, reference string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refunds = append(f.refunds, reference)
	return nil
}

// testEnv wires the full stack over an in-memory store with a fixed clock.
type testEnv struct {
	store     *repository.MemoryStore
	clock     *clock.Fixed
	processor *fakeProcessor
	scheduler *scheduler.Scheduler
	router    *gin.Engine
}

// SetupTestEnv builds the application the way main does, swapping the system
// clock and the live processor for test doubles.
func SetupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clk := clock.NewFixed(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	store := repository.NewMemoryStoreWithClock(clk)
	n := notifier.NewLogNotifier()
	processor := &fakeProcessor{}

	auctionService := auction.NewAuctionService(store, n, clk)
	bidService := bidding.NewBidService(store, cache.NoopBidCache{}, n, clk, 5)
	paymentService := payment.NewPaymentService(store, processor, n, clk, "GHS", 3*24*time.Hour)

	sched := scheduler.New(store, auctionService, paymentService, clk, time.Second)

	return &testEnv{
		store:     store,
		clock:     clk,
		processor: processor,
		scheduler: sched,
		router:    server.SetupRouter(auctionService, bidService, paymentService),
	}
}

// ExecuteRequestAndParse executes an HTTP request on the router and parses
// the response envelope.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}

// data extracts the data object from a response envelope.
func data(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	d, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no data object: %v", resp)
	}
	return d
}
