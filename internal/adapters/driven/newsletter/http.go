// Package newsletter subscribes account emails to the mailing list backend.
package newsletter

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
)

// Ensure HTTPService implements the interface.
var _ driven.NewsletterService = (*HTTPService)(nil)

// DefaultTimeout bounds a subscribe request.
const DefaultTimeout = 10 * time.Second

const maxResponseBytes = 16 << 10

// HTTPService posts subscriptions to an HTTP endpoint.
type HTTPService struct {
	endpoint string
	client   *http.Client
}

// NewHTTPService creates a service posting to endpoint.
func NewHTTPService(endpoint string, client *http.Client) (*HTTPService, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("%w: newsletter endpoint is empty", domain.ErrNotConfigured)
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPService{endpoint: endpoint, client: client}, nil
}

type subscribeResponse struct {
	Message string `json:"message"`
}

// Subscribe posts {"email": ...}. A non-2xx answer is a rejection carrying
// the backend's message, not an error.
func (s *HTTPService) Subscribe(ctx context.Context, email string) (bool, string, error) {
	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return false, "", fmt.Errorf("encode subscribe request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return false, "", fmt.Errorf("create subscribe request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return false, "", fmt.Errorf("%w: subscribe: %w", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	var out subscribeResponse
	_ = json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := out.Message
		if msg == "" {
			msg = "An error occurred during subscription."
		}
		return false, msg, nil
	}
	return true, out.Message, nil
}
