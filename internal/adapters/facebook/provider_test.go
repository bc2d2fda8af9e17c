package facebook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/forkful/menuboard/internal/domain/auth"
	apperrors "github.com/forkful/menuboard/internal/errors"
)

// fakeGraph stands in for the Graph API endpoints the provider talks to.
type fakeGraph struct {
	server *httptest.Server

	exchangeStatus int
	me             map[string]any
	meStatus       int
	pictureURL     string
	revokeStatus   int

	revokeCalls   int
	lastExchange  map[string]string
	lastRevokeURL string
}

func newFakeGraph(t *testing.T) *fakeGraph {
	t.Helper()

	f := &fakeGraph{
		me: map[string]any{
			"id":    "fb-456",
			"name":  "Test User",
			"email": "test.user@example.com",
		},
		pictureURL:   "https://example.com/fb.png",
		revokeStatus: http.StatusOK,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f.lastExchange = map[string]string{
			"grant_type":        q.Get("grant_type"),
			"client_id":         q.Get("client_id"),
			"client_secret":     q.Get("client_secret"),
			"fb_exchange_token": q.Get("fb_exchange_token"),
		}
		if f.exchangeStatus != 0 {
			http.Error(w, `{"error":{"message":"invalid token"}}`, f.exchangeStatus)
			return
		}
		writeJSON(t, w, map[string]any{
			"access_token": "long-lived-token",
			"token_type":   "bearer",
			"expires_in":   5183944,
		})
	})
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		if f.meStatus != 0 {
			http.Error(w, `{"error":{"message":"bad token"}}`, f.meStatus)
			return
		}
		writeJSON(t, w, f.me)
	})
	mux.HandleFunc("/me/picture", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"data": map[string]any{"url": f.pictureURL},
		})
	})
	mux.HandleFunc("/fb-456/permissions", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		f.revokeCalls++
		f.lastRevokeURL = r.URL.String()
		w.WriteHeader(f.revokeStatus)
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeGraph) provider(t *testing.T) *Provider {
	t.Helper()
	p, err := NewProvider(Config{
		AppID:     "test-app",
		AppSecret: "test-app-secret",
		GraphURL:  f.server.URL,
		Timeout:   5 * time.Second,
	})
	require.NoError(t, err)
	return p
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNewProvider_ValidationErrors(t *testing.T) {
	t.Parallel()

	_, err := NewProvider(Config{AppSecret: "secret"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app ID is required")

	_, err = NewProvider(Config{AppID: "app"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app secret is required")
}

func TestProvider_Name(t *testing.T) {
	f := newFakeGraph(t)
	p := f.provider(t)
	assert.Equal(t, domainauth.ProviderFacebook, p.Name())
}

func TestProvider_Exchange_Success(t *testing.T) {
	f := newFakeGraph(t)
	p := f.provider(t)

	creds, err := p.Exchange(context.Background(), "short-lived-token")
	require.NoError(t, err)
	assert.Equal(t, "long-lived-token", creds.AccessToken)
	assert.Empty(t, creds.Subject)
	assert.True(t, creds.Expiry.After(time.Now().Add(24*time.Hour)))

	assert.Equal(t, map[string]string{
		"grant_type":        "fb_exchange_token",
		"client_id":         "test-app",
		"client_secret":     "test-app-secret",
		"fb_exchange_token": "short-lived-token",
	}, f.lastExchange)
}

func TestProvider_Exchange_EmptyToken(t *testing.T) {
	f := newFakeGraph(t)
	p := f.provider(t)

	_, err := p.Exchange(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperrors.IsExchange(err))
}

func TestProvider_Exchange_UpstreamRejects(t *testing.T) {
	f := newFakeGraph(t)
	f.exchangeStatus = http.StatusUnauthorized
	p := f.provider(t)

	_, err := p.Exchange(context.Background(), "bad-token")
	require.Error(t, err)
	assert.True(t, apperrors.IsExchange(err))
}

func TestProvider_FetchProfile_Success(t *testing.T) {
	f := newFakeGraph(t)
	p := f.provider(t)

	profile, err := p.FetchProfile(context.Background(), domainauth.Credentials{AccessToken: "long-lived-token"})
	require.NoError(t, err)
	assert.Equal(t, "fb-456", profile.SubjectID)
	assert.Equal(t, "Test User", profile.Name)
	assert.Equal(t, "test.user@example.com", profile.Email)
	assert.Equal(t, "https://example.com/fb.png", profile.PictureURL)
}

func TestProvider_FetchProfile_NoEmail(t *testing.T) {
	f := newFakeGraph(t)
	delete(f.me, "email")
	p := f.provider(t)

	_, err := p.FetchProfile(context.Background(), domainauth.Credentials{AccessToken: "long-lived-token"})
	require.Error(t, err)
	assert.True(t, apperrors.IsProfile(err))
	assert.Contains(t, err.Error(), "no email address")
}

func TestProvider_FetchProfile_UpstreamFailure(t *testing.T) {
	f := newFakeGraph(t)
	f.meStatus = http.StatusUnauthorized
	p := f.provider(t)

	_, err := p.FetchProfile(context.Background(), domainauth.Credentials{AccessToken: "stale"})
	require.Error(t, err)
	assert.True(t, apperrors.IsProfile(err))
}

func TestProvider_FetchProfile_MissingToken(t *testing.T) {
	f := newFakeGraph(t)
	p := f.provider(t)

	_, err := p.FetchProfile(context.Background(), domainauth.Credentials{})
	require.Error(t, err)
	assert.True(t, apperrors.IsProfile(err))
}

func TestProvider_Revoke(t *testing.T) {
	f := newFakeGraph(t)
	p := f.provider(t)

	err := p.Revoke(context.Background(), domainauth.Credentials{
		AccessToken: "long-lived-token",
		Subject:     "fb-456",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, f.revokeCalls)
	assert.Contains(t, f.lastRevokeURL, "access_token=long-lived-token")
}

func TestProvider_Revoke_UpstreamFailure(t *testing.T) {
	f := newFakeGraph(t)
	f.revokeStatus = http.StatusBadRequest
	p := f.provider(t)

	err := p.Revoke(context.Background(), domainauth.Credentials{
		AccessToken: "long-lived-token",
		Subject:     "fb-456",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestProvider_Revoke_NoSubject(t *testing.T) {
	f := newFakeGraph(t)
	p := f.provider(t)

	require.NoError(t, p.Revoke(context.Background(), domainauth.Credentials{AccessToken: "tok"}))
	assert.Zero(t, f.revokeCalls)
}
