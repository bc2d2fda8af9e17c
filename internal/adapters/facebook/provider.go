package facebook

// Package facebook implements the Facebook Graph API provider client. The
// browser posts the short-lived token from the JS SDK; Exchange upgrades it
// to a long-lived token server-side so the app secret never reaches the
// client.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/forkful/menuboard/internal/domain/auth"
	apperrors "github.com/forkful/menuboard/internal/errors"
	"github.com/forkful/menuboard/internal/ports"
)

const defaultGraphURL = "https://graph.facebook.com"

// Config holds configuration for the Facebook provider client.
type Config struct {
	AppID     string
	AppSecret string

	// GraphURL is the Graph API base URL. Override only in tests.
	GraphURL string

	// Timeout bounds every outbound call. Defaults to 10s.
	Timeout time.Duration

	HTTPClient *http.Client // Optional, defaults to a bounded client
}

// Provider implements ports.ProviderClient against the Facebook Graph API.
type Provider struct {
	appID      string
	appSecret  string
	graphURL   string
	httpClient *http.Client
}

// NewProvider returns a Facebook provider client.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.AppID == "" {
		return nil, errors.New("app ID is required")
	}
	if cfg.AppSecret == "" {
		return nil, errors.New("app secret is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	graphURL := cfg.GraphURL
	if graphURL == "" {
		graphURL = defaultGraphURL
	}

	return &Provider{
		appID:      cfg.AppID,
		appSecret:  cfg.AppSecret,
		graphURL:   strings.TrimSuffix(graphURL, "/"),
		httpClient: httpClient,
	}, nil
}

// Name returns the provider this client speaks for.
func (p *Provider) Name() domainauth.Provider {
	return domainauth.ProviderFacebook
}

// Exchange upgrades the short-lived client token to a long-lived token via
// the fb_exchange_token grant. The subject is filled in later by
// FetchProfile since the token exchange response carries no user id.
func (p *Provider) Exchange(ctx context.Context, code string) (domainauth.Credentials, error) {
	if code == "" {
		return domainauth.Credentials{}, apperrors.Exchange("access token is required", nil)
	}

	q := url.Values{}
	q.Set("grant_type", "fb_exchange_token")
	q.Set("client_id", p.appID)
	q.Set("client_secret", p.appSecret)
	q.Set("fb_exchange_token", code)

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := p.getJSON(ctx, "/oauth/access_token?"+q.Encode(), &payload); err != nil {
		return domainauth.Credentials{}, asExchangeError(err)
	}
	if payload.AccessToken == "" {
		return domainauth.Credentials{}, apperrors.Exchange("token exchange returned no access token", nil)
	}

	expiry := time.Now().Add(time.Hour)
	if payload.ExpiresIn > 0 {
		expiry = time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second)
	}
	return domainauth.Credentials{
		AccessToken: payload.AccessToken,
		Expiry:      expiry,
	}, nil
}

// FetchProfile fetches the profile fields and then the picture, which the
// Graph API only serves from a separate edge.
func (p *Provider) FetchProfile(ctx context.Context, creds domainauth.Credentials) (domainauth.ProfileData, error) {
	if creds.AccessToken == "" {
		return domainauth.ProfileData{}, apperrors.Profile("missing access token", nil)
	}

	token := url.QueryEscape(creds.AccessToken)

	var me struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := p.getJSON(ctx, "/me?access_token="+token+"&fields=name,id,email", &me); err != nil {
		return domainauth.ProfileData{}, asProfileError(err)
	}
	if me.Email == "" {
		return domainauth.ProfileData{}, apperrors.Profile("facebook profile has no email address", nil)
	}
	if me.ID == "" {
		return domainauth.ProfileData{}, apperrors.Profile("facebook profile has no id", nil)
	}

	var picture struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := p.getJSON(ctx, "/me/picture?access_token="+token+"&redirect=0&height=200&width=200", &picture); err != nil {
		return domainauth.ProfileData{}, asProfileError(err)
	}

	return domainauth.ProfileData{
		SubjectID:  me.ID,
		Name:       me.Name,
		Email:      me.Email,
		PictureURL: picture.Data.URL,
	}, nil
}

// Revoke deletes the app's permissions for the user, invalidating the
// token. Best effort; callers treat the returned error as advisory.
func (p *Provider) Revoke(ctx context.Context, creds domainauth.Credentials) error {
	if creds.AccessToken == "" || creds.Subject == "" {
		return nil
	}

	u := fmt.Sprintf("%s/%s/permissions?access_token=%s",
		p.graphURL, url.PathEscape(creds.Subject), url.QueryEscape(creds.AccessToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
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

// graphError carries the upstream status and body detail for a failed Graph
// API call so the typed error constructors can keep the context.
type graphError struct {
	status int
	detail string
	cause  error
}

func (e *graphError) Error() string {
	if e.cause != nil {
		return e.cause.Error()
	}
	return fmt.Sprintf("graph api status %d: %s", e.status, e.detail)
}

func (e *graphError) Unwrap() error { return e.cause }

func (p *Provider) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.graphURL+path, nil)
	if err != nil {
		return &graphError{cause: err}
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return &graphError{cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &graphError{cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return &graphError{status: resp.StatusCode, detail: truncate(string(body), 200)}
	}
	if unmarshalErr := json.Unmarshal(body, out); unmarshalErr != nil {
		return &graphError{status: resp.StatusCode, detail: "malformed response body", cause: unmarshalErr}
	}
	return nil
}

func asExchangeError(err error) error {
	return apperrors.Exchange("facebook token exchange failed", err)
}

func asProfileError(err error) error {
	return apperrors.Profile("facebook profile fetch failed", err)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

var _ ports.ProviderClient = (*Provider)(nil)
