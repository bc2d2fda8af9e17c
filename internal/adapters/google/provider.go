package google

// Package google implements the Google OAuth provider client. The browser
// posts a one-time authorization code; Exchange trades it for an access
// token and verifies it against the tokeninfo endpoint before anything
// else trusts it.

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	domainauth "github.com/forkful/menuboard/internal/domain/auth"
	apperrors "github.com/forkful/menuboard/internal/errors"
	"github.com/forkful/menuboard/internal/ports"
)

const (
	defaultTokeninfoURL = "https://www.googleapis.com/oauth2/v1/tokeninfo"
	defaultRevokeURL    = "https://accounts.google.com/o/oauth2/revoke"

	// The web client posts the code it obtained via the JS sign-in flow,
	// so the exchange uses the postmessage pseudo redirect URI.
	redirectPostmessage = "postmessage"
)

// Config holds configuration for the Google provider client.
type Config struct {
	ClientID     string
	ClientSecret string

	// Issuer is the OIDC issuer used for endpoint discovery.
	Issuer string

	// TokeninfoURL and RevokeURL default to Google's production endpoints.
	// Override only in tests.
	TokeninfoURL string
	RevokeURL    string

	// Timeout bounds every outbound call. Defaults to 10s.
	Timeout time.Duration

	HTTPClient *http.Client // Optional, defaults to a bounded client
}

// Provider implements ports.ProviderClient against Google's OAuth2/OIDC
// endpoints.
type Provider struct {
	oauth        *oauth2.Config
	oidcProvider *gooidc.Provider
	httpClient   *http.Client
	tokeninfoURL string
	revokeURL    string
}

// NewProvider discovers Google's endpoints from the issuer and returns a
// ready provider client. Discovery happens once at construction.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}
	if cfg.Issuer == "" {
		return nil, errors.New("issuer is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	discoveryCtx := context.WithValue(ctx, oauth2.HTTPClient, httpClient)
	op, err := gooidc.NewProvider(discoveryCtx, strings.TrimSuffix(cfg.Issuer, "/"))
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}

	tokeninfoURL := cfg.TokeninfoURL
	if tokeninfoURL == "" {
		tokeninfoURL = defaultTokeninfoURL
	}
	revokeURL := cfg.RevokeURL
	if revokeURL == "" {
		revokeURL = defaultRevokeURL
	}

	return &Provider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  redirectPostmessage,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint:     op.Endpoint(),
		},
		oidcProvider: op,
		httpClient:   httpClient,
		tokeninfoURL: tokeninfoURL,
		revokeURL:    revokeURL,
	}, nil
}

// Name returns the provider this client speaks for.
func (p *Provider) Name() domainauth.Provider {
	return domainauth.ProviderGoogle
}

// tokeninfoResponse is the subset of the tokeninfo payload the exchange
// verification needs.
type tokeninfoResponse struct {
	UserID   string `json:"user_id"`
	IssuedTo string `json:"issued_to"`
	Error    string `json:"error"`
}

// Exchange trades the authorization code for an access token and verifies
// the token with the tokeninfo endpoint: the token must have been issued to
// this app, and its user must match the id_token subject.
func (p *Provider) Exchange(ctx context.Context, code string) (domainauth.Credentials, error) {
	if code == "" {
		return domainauth.Credentials{}, apperrors.Exchange("authorization code is required", nil)
	}

	exchangeCtx := context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	token, err := p.oauth.Exchange(exchangeCtx, code)
	if err != nil {
		return domainauth.Credentials{}, apperrors.Exchange("failed to upgrade the authorization code", err)
	}

	info, err := p.fetchTokeninfo(ctx, token.AccessToken)
	if err != nil {
		return domainauth.Credentials{}, err
	}
	if info.Error != "" {
		return domainauth.Credentials{}, apperrors.Exchange("tokeninfo reported: "+info.Error, nil)
	}
	if info.IssuedTo != p.oauth.ClientID {
		return domainauth.Credentials{}, apperrors.Exchange("token and app client IDs don't match", nil)
	}
	if sub := idTokenSubject(token); sub != "" && sub != info.UserID {
		return domainauth.Credentials{}, apperrors.Exchange("token and given user IDs don't match", nil)
	}
	if info.UserID == "" {
		return domainauth.Credentials{}, apperrors.Exchange("tokeninfo returned no user id", nil)
	}

	expiry := token.Expiry
	if expiry.IsZero() {
		expiry = time.Now().Add(time.Hour)
	}
	return domainauth.Credentials{
		AccessToken: token.AccessToken,
		Subject:     info.UserID,
		Expiry:      expiry,
	}, nil
}

func (p *Provider) fetchTokeninfo(ctx context.Context, accessToken string) (tokeninfoResponse, error) {
	var info tokeninfoResponse

	u := p.tokeninfoURL + "?access_token=" + url.QueryEscape(accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return info, apperrors.Exchange("build tokeninfo request", err)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return info, apperrors.Exchange("tokeninfo request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return info, apperrors.Exchange("read tokeninfo response", err)
	}
	if unmarshalErr := json.Unmarshal(body, &info); unmarshalErr != nil {
		return info, apperrors.Exchange(fmt.Sprintf("malformed tokeninfo response (status %d)", resp.StatusCode), unmarshalErr)
	}
	return info, nil
}

// userinfoClaims is the subset of Google's userinfo payload that identity
// resolution consumes.
type userinfoClaims struct {
	Subject string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// FetchProfile fetches the Google profile for the exchanged credentials via
// the discovered userinfo endpoint.
func (p *Provider) FetchProfile(ctx context.Context, creds domainauth.Credentials) (domainauth.ProfileData, error) {
	if creds.AccessToken == "" {
		return domainauth.ProfileData{}, apperrors.Profile("missing access token", nil)
	}

	uiCtx := context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.AccessToken})
	ui, err := p.oidcProvider.UserInfo(uiCtx, src)
	if err != nil {
		return domainauth.ProfileData{}, apperrors.Profile("fetch user info", err)
	}

	var claims userinfoClaims
	if claimsErr := ui.Claims(&claims); claimsErr != nil {
		return domainauth.ProfileData{}, apperrors.Profile("decode user info", claimsErr)
	}
	if claims.Email == "" {
		return domainauth.ProfileData{}, apperrors.Profile("google profile has no email address", nil)
	}

	subject := claims.Subject
	if subject == "" {
		subject = creds.Subject
	}
	return domainauth.ProfileData{
		SubjectID:  subject,
		Name:       claims.Name,
		Email:      claims.Email,
		PictureURL: claims.Picture,
	}, nil
}

// Revoke invalidates the access token upstream. Best effort; callers treat
// the returned error as advisory.
func (p *Provider) Revoke(ctx context.Context, creds domainauth.Credentials) error {
	if creds.AccessToken == "" {
		return nil
	}

	u := p.revokeURL + "?token=" + url.QueryEscape(creds.AccessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build revoke request: %w", err)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("revoke request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16)) //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("revoke returned status %d", resp.StatusCode)
	}
	return nil
}

// idTokenSubject extracts the sub claim from the id_token attached to the
// token response. The claim is only used to cross-check tokeninfo's user_id,
// which the tokeninfo endpoint has already validated, so the payload is
// decoded without signature verification. Returns "" when no id_token is
// present.
func idTokenSubject(tok *oauth2.Token) string {
	raw, ok := tok.Extra("id_token").(string)
	if !ok || raw == "" {
		return ""
	}
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return ""
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return ""
	}
	var claims struct {
		Sub string `json:"sub"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return ""
	}
	return claims.Sub
}

var _ ports.ProviderClient = (*Provider)(nil)
