package httpx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	domainauth "github.com/forkful/menuboard/internal/domain/auth"
	apperrors "github.com/forkful/menuboard/internal/errors"
	"github.com/forkful/menuboard/internal/service"
)

// maxArtifactSize bounds the authorization artifact posted by the browser.
const maxArtifactSize = 4 << 10

// AuthSessionService defines the session operations the HTTP layer needs.
type AuthSessionService interface {
	NewSession(ctx context.Context) (domainauth.Session, error)
	GetSession(ctx context.Context, sessionID string) (domainauth.Session, error)
	BeginLogin(ctx context.Context, sess domainauth.Session) (domainauth.Session, string, error)
	CompleteLogin(ctx context.Context, sess domainauth.Session, in service.CompleteLoginInput) (domainauth.Session, error)
	Disconnect(ctx context.Context, sess domainauth.Session) (domainauth.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// AuthHandlers provides HTTP handlers for the login/logout flow.
type AuthHandlers struct {
	Svc          AuthSessionService
	Renderer     *Renderer
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Login renders the sign-in page with a freshly issued anti-forgery state
// token. Re-rendering reissues the token.
// GET /login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "session_missing",
			Err:     errors.New("no session on request"),
		})
		return
	}

	sess, state, err := h.Svc.BeginLogin(r.Context(), sess)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "login_failed", Err: err})
		return
	}

	if wantsJSON(r) {
		WriteJSON(w, http.StatusOK, map[string]string{"state": state})
		return
	}

	h.Renderer.Render(w, r, "login", LoginPageData{
		State:         state,
		Authenticated: sess.IsAuthenticated(),
		DisplayName:   sess.DisplayName,
	})
}

// Connect completes a login. The provider comes from the path, the state
// token from the query, and the authorization artifact (code or short-lived
// token) is the raw request body.
// POST /auth/{provider}/connect?state=<state>.
func (h *AuthHandlers) Connect(w http.ResponseWriter, r *http.Request) {
	provider, ok := parseProvider(r.PathValue("provider"))
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "unknown_provider",
			Err:     errors.New("unknown provider " + r.PathValue("provider")),
		})
		return
	}

	sess, ok := SessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "session_missing",
			Err:     errors.New("no session on request"),
		})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxArtifactSize))
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_body", Err: err})
		return
	}

	sess, err = h.Svc.CompleteLogin(r.Context(), sess, service.CompleteLoginInput{
		Provider: provider,
		Artifact: strings.TrimSpace(string(body)),
		State:    r.URL.Query().Get("state"),
	})
	if err != nil {
		if apperrors.IsAlreadyConnected(err) {
			WriteJSON(w, http.StatusOK, map[string]string{"status": "already_connected"})
			return
		}
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"status": "connected",
		"user": map[string]any{
			"id":      sess.IdentityID,
			"name":    sess.DisplayName,
			"email":   sess.Email,
			"picture": sess.PictureURL,
		},
	})
}

// Disconnect logs the session out. The provider token is revoked best-effort
// server-side; the session always returns to anonymous.
// POST /auth/disconnect.
func (h *AuthHandlers) Disconnect(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "session_missing",
			Err:     errors.New("no session on request"),
		})
		return
	}

	if _, err := h.Svc.Disconnect(r.Context(), sess); err != nil {
		if apperrors.IsNotConnected(err) {
			WriteJSON(w, http.StatusOK, map[string]string{"status": "not_connected"})
			return
		}
		h.logger().WarnContext(r.Context(), "disconnect failed", "error", err)
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// Reset discards the session entirely and clears the cookie. The next
// request gets a brand new anonymous session.
// DELETE /auth/session.
func (h *AuthHandlers) Reset(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if ok {
		if err := h.Svc.DeleteSession(r.Context(), sess.ID); err != nil {
			h.logger().WarnContext(r.Context(), "session delete failed", "error", err)
		}
	}
	clearSessionCookie(w, r, h.CookieDomain)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// Status reports the current authentication state.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok || !sess.IsAuthenticated() {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"id":      sess.IdentityID,
			"name":    sess.DisplayName,
			"email":   sess.Email,
			"picture": sess.PictureURL,
		},
		"provider":   string(sess.Provider),
		"expires_at": sess.ExpiresAt,
	})
}

// parseProvider maps a path segment to a typed provider value.
func parseProvider(s string) (domainauth.Provider, bool) {
	switch domainauth.Provider(strings.ToLower(s)) {
	case domainauth.ProviderGoogle:
		return domainauth.ProviderGoogle, true
	case domainauth.ProviderFacebook:
		return domainauth.ProviderFacebook, true
	default:
		return domainauth.ProviderNone, false
	}
}

// wantsJSON reports whether the client asked for a JSON response.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
