package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"art-auction/internal/auctionerrors"
)

// Session is a hosted payment page created for a buyer.
type Session struct {
	Reference   string
	RedirectURL string
}

// Verification is the processor's view of a transaction.
type Verification struct {
	Success  bool
	Amount   int64
	Currency string
}

// RecipientRequest describes a payout destination to register with the
// processor. AccountNumber/BankCode carry the bank account for bank
// transfers and the phone/network pair for mobile money.
type RecipientRequest struct {
	Type          string
	Name          string
	AccountNumber string
	BankCode      string
	Currency      string
}

// Client is the contract the escrow controller needs from the payment
// processor. All calls are synchronous RPCs.
type Client interface {
	CreateSession(ctx context.Context, email string, amount int64, currency string, metadata map[string]string) (Session, error)
	Verify(ctx context.Context, reference string) (Verification, error)
	CreateRecipient(ctx context.Context, req RecipientRequest) (string, error)
	Transfer(ctx context.Context, recipientCode string, amount int64, reason string) error
	Refund(ctx context.Context, reference string) error
}

// HTTPClient talks to a Paystack-compatible REST API.
type HTTPClient struct {
	baseURL     string
	secretKey   string
	callbackURL string
	httpClient  *http.Client
}

func NewHTTPClient(baseURL, secretKey, callbackURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:     baseURL,
		secretKey:   secretKey,
		callbackURL: callbackURL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

type apiEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *HTTPClient) CreateSession(ctx context.Context, email string, amount int64, currency string, metadata map[string]string) (Session, error) {
	payload := map[string]any{
		"email":    email,
		"amount":   amount,
		"currency": currency,
		"metadata": metadata,
	}
	if c.callbackURL != "" {
		payload["callback_url"] = c.callbackURL
	}

	var data struct {
		AuthorizationURL string `json:"authorization_url"`
		Reference        string `json:"reference"`
	}
	if err := c.post(ctx, "/transaction/initialize", payload, &data); err != nil {
		return Session{}, fmt.Errorf("initialize transaction: %w", err)
	}
	return Session{Reference: data.Reference, RedirectURL: data.AuthorizationURL}, nil
}

func (c *HTTPClient) Verify(ctx context.Context, reference string) (Verification, error) {
	var data struct {
		Status   string `json:"status"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	}
	if err := c.get(ctx, "/transaction/verify/"+reference, &data); err != nil {
		return Verification{}, fmt.Errorf("verify transaction %s: %w", reference, err)
	}
	return Verification{
		Success:  data.Status == "success",
		Amount:   data.Amount,
		Currency: data.Currency,
	}, nil
}

func (c *HTTPClient) CreateRecipient(ctx context.Context, req RecipientRequest) (string, error) {
	payload := map[string]any{
		"type":           req.Type,
		"name":           req.Name,
		"account_number": req.AccountNumber,
		"bank_code":      req.BankCode,
		"currency":       req.Currency,
	}

	var data struct {
		RecipientCode string `json:"recipient_code"`
	}
	if err := c.post(ctx, "/transferrecipient", payload, &data); err != nil {
		return "", fmt.Errorf("create transfer recipient: %w", err)
	}
	return data.RecipientCode, nil
}

func (c *HTTPClient) Transfer(ctx context.Context, recipientCode string, amount int64, reason string) error {
	payload := map[string]any{
		"source":    "balance",
		"recipient": recipientCode,
		"amount":    amount,
		"reason":    reason,
	}
	if err := c.post(ctx, "/transfer", payload, nil); err != nil {
		return fmt.Errorf("transfer to %s: %w", recipientCode, err)
	}
	return nil
}

func (c *HTTPClient) Refund(ctx context.Context, reference string) error {
	payload := map[string]any{
		"transaction": reference,
	}
	if err := c.post(ctx, "/refund", payload, nil); err != nil {
		return fmt.Errorf("refund transaction %s: %w", reference, err)
	}
	return nil
}

func (c *HTTPClient) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *HTTPClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", auctionerrors.ErrExternalService, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", auctionerrors.ErrExternalService, err)
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("%w: decode response: %v", auctionerrors.ErrExternalService, err)
	}
	if resp.StatusCode >= 400 || !envelope.Status {
		return fmt.Errorf("%w: %s (http %d)", auctionerrors.ErrExternalService, envelope.Message, resp.StatusCode)
	}
	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("%w: decode response data: %v", auctionerrors.ErrExternalService, err)
		}
	}
	return nil
}
