package httpx

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/forkful/menuboard/internal/domain/auth"
	"github.com/forkful/menuboard/internal/mocks"
	authmocks "github.com/forkful/menuboard/internal/mocks/auth"
	"github.com/forkful/menuboard/internal/ports"
	"github.com/forkful/menuboard/internal/service"
)

// routerFixture wires the full router over in-memory auth fakes and gomock
// repositories, so tests exercise routing, middleware, and handlers together.
type routerFixture struct {
	handler http.Handler

	provider   *authmocks.FakeProviderClient
	sessions   *authmocks.MemorySessionStore
	identities *authmocks.MemoryIdentityStore

	restaurants *mocks.MockRestaurantRepository
	items       *mocks.MockMenuItemRepository
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &routerFixture{
		provider:    authmocks.NewFakeProviderClient(),
		sessions:    authmocks.NewMemorySessionStore(),
		identities:  authmocks.NewMemoryIdentityStore(),
		restaurants: mocks.NewMockRestaurantRepository(ctrl),
		items:       mocks.NewMockMenuItemRepository(ctrl),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Providers:  []ports.ProviderClient{f.provider},
		Sessions:   f.sessions,
		Identities: f.identities,
		SessionTTL: time.Hour,
		Logger:     logger,
	})
	restaurantSvc := service.NewRestaurantService(service.RestaurantServiceOptions{
		Restaurants: f.restaurants,
	})
	itemSvc := service.NewMenuItemService(service.MenuItemServiceOptions{
		Items:       f.items,
		Restaurants: f.restaurants,
	})
	exportSvc := service.NewExportService(service.ExportServiceOptions{
		Restaurants: f.restaurants,
		Items:       f.items,
	})

	handler, err := NewRouter(RouterServices{
		Auth:        authSvc,
		Restaurants: restaurantSvc,
		MenuItems:   itemSvc,
		Exports:     exportSvc,
		Logger:      logger,
	})
	require.NoError(t, err)
	f.handler = handler
	return f
}

func (f *routerFixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

// anonymousCookie seeds an anonymous session in the store and returns the
// cookie a browser holding it would send.
func (f *routerFixture) anonymousCookie(t *testing.T) *http.Cookie {
	t.Helper()
	sess := domainauth.Session{
		ID:        uuid.New().String(),
		Stage:     domainauth.StageAnonymous,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, f.sessions.Save(context.Background(), sess))
	return &http.Cookie{Name: SessionCookieName, Value: sess.ID}
}

// authenticatedCookie seeds an authenticated session bound to identityID.
func (f *routerFixture) authenticatedCookie(t *testing.T, identityID int64) *http.Cookie {
	t.Helper()
	sess := domainauth.Session{
		ID:          uuid.New().String(),
		Stage:       domainauth.StageAuthenticated,
		Provider:    domainauth.ProviderGoogle,
		IdentityID:  &identityID,
		DisplayName: "Pat Owner",
		Email:       "pat.owner@example.com",
		Credentials: json.RawMessage(`{"access_token":"tok","subject":"subject-1"}`),
		ExpiresAt:   time.Now().Add(time.Hour),
	}
	require.NoError(t, f.sessions.Save(context.Background(), sess))
	return &http.Cookie{Name: SessionCookieName, Value: sess.ID}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func TestRouterIssuesSessionCookie(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := rec.Result()
	t.Cleanup(func() { _ = resp.Body.Close() })

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie, "expected a session cookie on first contact")
	assert.NotEmpty(t, sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
	assert.False(t, sessionCookie.Secure, "plain http request must not set Secure")
	assert.Equal(t, http.SameSiteLaxMode, sessionCookie.SameSite)

	// The cookie refers to a real stored session.
	_, err := f.sessions.Get(context.Background(), sessionCookie.Value)
	assert.NoError(t, err)
}

func TestRouterReusesExistingSession(t *testing.T) {
	f := newRouterFixture(t)
	cookie := f.anonymousCookie(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.AddCookie(cookie)
	rec := f.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := rec.Result()
	t.Cleanup(func() { _ = resp.Body.Close() })
	assert.Empty(t, resp.Cookies(), "a known session must not be re-issued")
}

func TestRouterReplacesUnknownSessionCookie(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "no-such-session"})
	rec := f.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := rec.Result()
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Len(t, resp.Cookies(), 1)
	assert.NotEqual(t, "no-such-session", resp.Cookies()[0].Value)
}

func TestRouterSecureCookieBehindProxy(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := f.do(req)

	resp := rec.Result()
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Len(t, resp.Cookies(), 1)
	assert.True(t, resp.Cookies()[0].Secure)
}

func TestRouterHealthz(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouterUnknownRoute(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
