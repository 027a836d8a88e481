// Package dealcloud implements the DealCloud REST surface consumed by the
// CRM core: credential issuance, schema and data endpoints, and the user
// directory.
package dealcloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meridian-vc/crm-engine/pkg/apperrors"
	"github.com/meridian-vc/crm-engine/pkg/logging"
)

// DefaultTimeout bounds each CRM round trip when the caller does not
// configure one.
const DefaultTimeout = 30 * time.Second

// Transport executes a single CRM request and decodes the JSON response.
// A non-2xx status is a hard failure; there is no partial-success parsing.
type Transport interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body any, out any) error
}

// Client is the HTTP transport for one DealCloud tenant. Every request
// carries a bearer credential from the provider.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	credentials CredentialProvider
	logger      *zap.Logger
}

// NewClient creates a transport rooted at the tenant base URL.
func NewClient(baseURL string, credentials CredentialProvider, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		credentials: credentials,
		logger:      logger.Named("dealcloud"),
	}
}

var _ Transport = (*Client)(nil)

// Get issues a GET request with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	credential, err := c.credentials.Credential(ctx)
	if err != nil {
		return fmt.Errorf("obtain credential: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := uuid.NewString()
	c.logger.Debug("CRM request",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", apperrors.ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response for %s %s: %v", apperrors.ErrTransport, method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("CRM returned error",
			zap.String("request_id", requestID),
			zap.Int("status", resp.StatusCode),
			zap.String("body", logging.SanitizeBody(string(respBody))))
		return fmt.Errorf("%w: %s %s returned status %d: %s",
			apperrors.ErrTransport, method, path, resp.StatusCode, logging.SanitizeBody(string(respBody)))
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%w: decode response for %s %s: %v", apperrors.ErrTransport, method, path, err)
		}
	}

	return nil
}
