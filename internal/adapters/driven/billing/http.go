// Package billing provides purchase gateways.
package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/lexdraft-cli/internal/core/domain"
	"github.com/custodia-labs/lexdraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lexdraft-cli/internal/logger"
)

// Ensure HTTPGateway implements the interface.
var _ driven.PurchaseGateway = (*HTTPGateway)(nil)

// DefaultTimeout bounds a checkout request.
const DefaultTimeout = 15 * time.Second

// maxResponseBytes caps how much of a checkout response is read.
const maxResponseBytes = 64 << 10

// HTTPGateway asks a checkout backend to start payment for a product.
type HTTPGateway struct {
	endpoint string
	client   *http.Client
}

// NewHTTPGateway creates a gateway posting to endpoint. A nil client uses a
// client with DefaultTimeout.
func NewHTTPGateway(endpoint string, client *http.Client) (*HTTPGateway, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("%w: billing endpoint is empty", domain.ErrNotConfigured)
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPGateway{endpoint: endpoint, client: client}, nil
}

type checkoutRequest struct {
	PriceID   string `json:"priceId"`
	UserEmail string `json:"userEmail"`
}

type checkoutResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
	Success   bool   `json:"success"`
	Message   string `json:"message"`
}

// Purchase posts the price and email. Payment is initiated when the backend
// answers 2xx with a checkout URL, a session or success set.
func (g *HTTPGateway) Purchase(ctx context.Context, product domain.Product, email string) (bool, error) {
	body, err := json.Marshal(checkoutRequest{PriceID: product.PriceID, UserEmail: email})
	if err != nil {
		return false, fmt.Errorf("encode checkout request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("create checkout request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: checkout: %w", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return false, fmt.Errorf("%w: read checkout response: %w", domain.ErrServiceUnavailable, err)
	}

	var out checkoutResponse
	_ = json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := out.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return false, fmt.Errorf("checkout returned %d: %s", resp.StatusCode, msg)
	}

	initiated := out.Success || out.URL != "" || out.SessionID != ""
	if out.URL != "" {
		logger.Info("Complete payment for %s at %s", product.Name, out.URL)
	}
	logger.Debug("billing: %s for %s initiated=%t", product.PriceID, email, initiated)
	return initiated, nil
}
