package dealcloud

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/meridian-vc/crm-engine/pkg/apperrors"
	"github.com/meridian-vc/crm-engine/pkg/logging"
)

// tokenPath is the DealCloud OAuth token endpoint.
const tokenPath = "/api/rest/v1/oauth/token"

// expirySkew refreshes tokens slightly before their stated expiry so a
// credential handed to a caller is never already stale by the time it is used.
const expirySkew = 30 * time.Second

// CredentialProvider yields a valid bearer credential on demand.
type CredentialProvider interface {
	Credential(ctx context.Context) (string, error)
}

// TokenProvider caches a DealCloud bearer token, exchanging client
// credentials (or a refresh token, when one is held) at the tenant's OAuth
// endpoint whenever the cached token is absent or expired.
//
// Safe for concurrent use: refresh runs under a single lock and late
// arrivals re-check validity after acquiring it.
type TokenProvider struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	scope        string
	logger       *zap.Logger
	now          func() time.Time

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	expiry       time.Time
}

// NewTokenProvider creates a token provider for one tenant.
func NewTokenProvider(baseURL, clientID, clientSecret, scope string, timeout time.Duration, logger *zap.Logger) *TokenProvider {
	return &TokenProvider{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		scope:        scope,
		logger:       logger.Named("token-provider"),
		now:          time.Now,
	}
}

var _ CredentialProvider = (*TokenProvider)(nil)

// tokenResponse is the OAuth token endpoint response body.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"` // not always present
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// Credential returns a non-expired bearer token, refreshing or re-issuing
// one first when needed. Failures wrap apperrors.ErrAuth and are not retried
// here; retry policy belongs to the caller.
func (p *TokenProvider) Credential(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.valid() {
		return p.accessToken, nil
	}

	form := url.Values{}
	if p.refreshToken != "" {
		form.Set("grant_type", "refresh_token")
		form.Set("refresh_token", p.refreshToken)
	} else {
		form.Set("grant_type", "client_credentials")
		form.Set("scope", p.scope)
	}
	form.Set("client_id", p.clientID)
	form.Set("client_secret", p.clientSecret)

	tok, err := p.exchange(ctx, form)
	if err != nil {
		// A dead refresh token must not wedge the provider; drop it so the
		// next attempt falls back to client credentials.
		p.refreshToken = ""
		return "", err
	}

	p.accessToken = tok.AccessToken
	p.refreshToken = tok.RefreshToken
	p.expiry = p.now().Add(time.Duration(tok.ExpiresIn) * time.Second)

	p.logger.Debug("Issued new bearer credential",
		zap.String("grant_type", form.Get("grant_type")),
		zap.Time("expiry", p.expiry))

	return p.accessToken, nil
}

// valid reports whether the cached token can still be handed out.
// Callers must hold p.mu.
func (p *TokenProvider) valid() bool {
	return p.accessToken != "" && p.now().Add(expirySkew).Before(p.expiry)
}

// exchange posts the grant to the token endpoint and parses the response.
func (p *TokenProvider) exchange(ctx context.Context, form url.Values) (*tokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: create token request: %v", apperrors.ErrAuth, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: token request failed: %v", apperrors.ErrAuth, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read token response: %v", apperrors.ErrAuth, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: token endpoint returned status %d: %s",
			apperrors.ErrAuth, resp.StatusCode, logging.SanitizeBody(string(body)))
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, fmt.Errorf("%w: decode token response: %v", apperrors.ErrAuth, err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("%w: token response missing access_token", apperrors.ErrAuth)
	}

	return &tok, nil
}
