package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/forkful/menuboard/internal/domain/auth"
	apperrors "github.com/forkful/menuboard/internal/errors"
	"github.com/forkful/menuboard/internal/ports"
)

const defaultSessionTTL = 24 * time.Hour

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	// Providers holds one client per supported provider variant.
	Providers  []ports.ProviderClient
	Sessions   ports.SessionStore
	Identities ports.IdentityStore

	// SessionTTL is how long sessions live without re-login.
	SessionTTL time.Duration

	// ProviderTimeout bounds each outbound provider call. Zero disables
	// the extra deadline (the provider's own HTTP client still has one).
	ProviderTimeout time.Duration

	Logger *slog.Logger
}

// AuthService owns the session lifecycle: anonymous → pending → authenticated
// → anonymous. It orchestrates state-token issuance, the provider exchange,
// identity resolution, and session persistence. Sessions are explicit values
// passed in and returned; the store is the only shared state.
type AuthService struct {
	providers       map[domainauth.Provider]ports.ProviderClient
	sessions        ports.SessionStore
	resolver        *IdentityResolver
	sessionTTL      time.Duration
	providerTimeout time.Duration
	logger          *slog.Logger
}

var errSessionExpired = errors.New("session expired")

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	providers := make(map[domainauth.Provider]ports.ProviderClient, len(opts.Providers))
	for _, p := range opts.Providers {
		if p != nil {
			providers[p.Name()] = p
		}
	}
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		providers:       providers,
		sessions:        opts.Sessions,
		resolver:        NewIdentityResolver(opts.Identities),
		sessionTTL:      ttl,
		providerTimeout: opts.ProviderTimeout,
		logger:          logger,
	}
}

// NewSession creates and persists a fresh anonymous session.
func (s *AuthService) NewSession(ctx context.Context) (domainauth.Session, error) {
	sess := domainauth.Session{
		ID:        uuid.New().String(),
		Stage:     domainauth.StageAnonymous,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// GetSession retrieves a session by ID, expiring it lazily.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (domainauth.Session, error) {
	if sessionID == "" {
		return domainauth.Session{}, errors.New("session ID is required")
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(sess.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return domainauth.Session{}, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return domainauth.Session{}, errSessionExpired
	}

	return sess, nil
}

// BeginLogin issues a fresh state token for the session and persists it.
// An anonymous session moves to PendingAuth; re-rendering the login page
// overwrites any previously issued token. The returned token is embedded in
// the login form and echoed back by the provider redirect.
func (s *AuthService) BeginLogin(ctx context.Context, sess domainauth.Session) (domainauth.Session, string, error) {
	token, err := NewStateToken()
	if err != nil {
		return sess, "", err
	}

	sess.StateToken = token
	if sess.Stage != domainauth.StageAuthenticated {
		sess.Stage = domainauth.StagePendingAuth
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return sess, "", fmt.Errorf("save session: %w", err)
	}
	return sess, token, nil
}

// CompleteLoginInput groups parameters for completing a login flow.
type CompleteLoginInput struct {
	// Provider selects the client handling the callback.
	Provider domainauth.Provider
	// Artifact is the authorization code (Google) or short-lived access
	// token (Facebook) posted by the browser.
	Artifact string
	// State is the anti-forgery token echoed by the provider redirect.
	State string
}

// CompleteLogin performs the PendingAuth → Authenticated transition:
// state validation, exchange, profile fetch, identity resolution, then the
// single session mutation. Any failure leaves the session unauthenticated
// and is surfaced as a typed error; nothing was committed, so there is no
// rollback.
func (s *AuthService) CompleteLogin(ctx context.Context, sess domainauth.Session, in CompleteLoginInput) (domainauth.Session, error) {
	if err := ValidateStateToken(sess.StateToken, in.State); err != nil {
		return sess, err
	}
	if in.Artifact == "" {
		return sess, apperrors.Validation("authorization code is required")
	}

	client, ok := s.providers[in.Provider]
	if !ok {
		return sess, apperrors.Validationf("unsupported provider %q", in.Provider)
	}

	creds, err := s.exchange(ctx, client, in.Artifact)
	if err != nil {
		return sess, err
	}

	profile, err := s.fetchProfile(ctx, client, creds)
	if err != nil {
		return sess, err
	}
	// The Facebook token exchange carries no user id; the subject only
	// arrives with the profile. Backfill so revoke can address the user.
	if creds.Subject == "" {
		creds.Subject = profile.SubjectID
	}

	// Same subject logging in again on the same provider: short-circuit
	// to "already connected" so the UI can say so. The one-time state
	// token is still consumed.
	if sess.IsAuthenticated() && sess.Provider == in.Provider && sameSubject(sess.Credentials, profile.SubjectID) {
		sess.StateToken = ""
		if saveErr := s.sessions.Save(ctx, sess); saveErr != nil {
			return sess, fmt.Errorf("save session: %w", saveErr)
		}
		return sess, apperrors.AlreadyConnected("current user already connected")
	}

	identityID, err := s.resolver.Resolve(ctx, profile)
	if err != nil {
		return sess, err
	}

	credsJSON, err := json.Marshal(creds)
	if err != nil {
		return sess, fmt.Errorf("marshal credentials: %w", err)
	}

	sess.StateToken = ""
	sess.Stage = domainauth.StageAuthenticated
	sess.Provider = in.Provider
	sess.IdentityID = &identityID
	sess.DisplayName = profile.Name
	sess.Email = profile.Email
	sess.PictureURL = profile.PictureURL
	sess.Credentials = credsJSON

	if err := s.sessions.Save(ctx, sess); err != nil {
		return sess, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// Disconnect performs the Authenticated → Anonymous transition. The provider
// token is revoked best-effort first; the session clear runs regardless of
// the revoke outcome and is idempotent. Disconnecting an anonymous session
// is a no-op reported as not_connected for UI messaging.
func (s *AuthService) Disconnect(ctx context.Context, sess domainauth.Session) (domainauth.Session, error) {
	if !sess.IsAuthenticated() {
		return sess, apperrors.NotConnected("current user not connected")
	}

	if client, ok := s.providers[sess.Provider]; ok {
		s.revoke(ctx, client, sess)
	} else {
		s.logger.WarnContext(ctx, "no provider client for stored provider, skipping revoke",
			"provider", string(sess.Provider))
	}

	sess.ClearAuth()
	if err := s.sessions.Save(ctx, sess); err != nil {
		return sess, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// DeleteSession removes a session outright (cookie reset).
func (s *AuthService) DeleteSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *AuthService) exchange(ctx context.Context, client ports.ProviderClient, artifact string) (domainauth.Credentials, error) {
	ctx, cancel := s.boundCtx(ctx)
	defer cancel()
	creds, err := client.Exchange(ctx, artifact)
	if err != nil {
		if apperrors.GetCode(err) != "" {
			return domainauth.Credentials{}, err
		}
		return domainauth.Credentials{}, apperrors.Exchange("failed to upgrade the authorization code", err)
	}
	return creds, nil
}

func (s *AuthService) fetchProfile(ctx context.Context, client ports.ProviderClient, creds domainauth.Credentials) (domainauth.ProfileData, error) {
	ctx, cancel := s.boundCtx(ctx)
	defer cancel()
	profile, err := client.FetchProfile(ctx, creds)
	if err != nil {
		if apperrors.GetCode(err) != "" {
			return domainauth.ProfileData{}, err
		}
		return domainauth.ProfileData{}, apperrors.Profile("failed to fetch provider profile", err)
	}
	if profile.Email == "" {
		return domainauth.ProfileData{}, apperrors.Profile("provider profile has no email address", nil)
	}
	return profile, nil
}

// revoke is best effort: failures are logged and swallowed so logout always
// proceeds.
func (s *AuthService) revoke(ctx context.Context, client ports.ProviderClient, sess domainauth.Session) {
	var creds domainauth.Credentials
	if len(sess.Credentials) > 0 {
		if err := json.Unmarshal(sess.Credentials, &creds); err != nil {
			s.logger.WarnContext(ctx, "stored credentials unreadable, skipping revoke",
				"provider", string(sess.Provider), "error", err)
			return
		}
	}
	rctx, cancel := s.boundCtx(ctx)
	defer cancel()
	if err := client.Revoke(rctx, creds); err != nil {
		s.logger.WarnContext(ctx, "provider token revoke failed",
			"provider", string(sess.Provider), "error", err)
	}
}

func (s *AuthService) boundCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.providerTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.providerTimeout)
}

// sameSubject reports whether the stored credential blob belongs to the
// given provider subject.
func sameSubject(stored json.RawMessage, subjectID string) bool {
	if len(stored) == 0 || subjectID == "" {
		return false
	}
	var creds domainauth.Credentials
	if err := json.Unmarshal(stored, &creds); err != nil {
		return false
	}
	return creds.Subject == subjectID
}
