package dealcloud

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meridian-vc/crm-engine/pkg/apperrors"
)

// staticCredentials always hands out the same token.
type staticCredentials struct {
	token string
	err   error
}

func (s *staticCredentials) Credential(ctx context.Context) (string, error) {
	return s.token, s.err
}

func TestClient_GetSetsBearerAndDecodes(t *testing.T) {
	var gotAuth, gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(map[string]any{"totalRecords": 2})
	}))
	defer ts.Close()

	c := NewClient(ts.URL, &staticCredentials{token: "tok-1"}, 5*time.Second, zap.NewNop())

	var out struct {
		TotalRecords int `json:"totalRecords"`
	}
	query := url.Values{"wrapIntoArrays": {"true"}}
	err := c.Get(context.Background(), "/api/rest/v4/data/entrydata/rows/7", query, &out)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, "wrapIntoArrays=true", gotQuery)
	assert.Equal(t, 2, out.TotalRecords)
}

func TestClient_PostSendsJSONBody(t *testing.T) {
	var gotContentType string
	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, &staticCredentials{token: "tok-1"}, 5*time.Second, zap.NewNop())

	var out []any
	err := c.Post(context.Background(), "/api/rest/v4/data/entrydata/7",
		map[string]any{"storeRequests": []any{}}, &out)
	require.NoError(t, err)

	assert.Equal(t, "application/json", gotContentType)
	assert.Contains(t, gotBody, "storeRequests")
}

func TestClient_NonOKStatusIsTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"upstream down"}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, &staticCredentials{token: "tok-1"}, 5*time.Second, zap.NewNop())

	err := c.Get(context.Background(), "/api/rest/v4/schema/entrytypes", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrTransport))
	assert.Contains(t, err.Error(), "502")
}

func TestClient_CredentialFailureAborts(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer ts.Close()

	c := NewClient(ts.URL, &staticCredentials{err: apperrors.ErrAuth}, 5*time.Second, zap.NewNop())

	err := c.Get(context.Background(), "/api/rest/v4/schema/entrytypes", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAuth))
	assert.False(t, called, "no request should be sent without a credential")
}

func TestClient_DecodeFailureIsTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, &staticCredentials{token: "tok-1"}, 5*time.Second, zap.NewNop())

	var out map[string]any
	err := c.Get(context.Background(), "/api/rest/v4/schema/entrytypes", nil, &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrTransport))
}
