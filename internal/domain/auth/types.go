package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"encoding/json"
	"time"
)

// Provider identifies the third-party identity service a session came from.
// Keep string form for easy persistence and cookies.
type Provider string

const (
	ProviderNone     Provider = ""
	ProviderGoogle   Provider = "google"
	ProviderFacebook Provider = "facebook"
)

// Stage is the lifecycle stage of a browser session.
type Stage string

const (
	// StageAnonymous is the initial stage: no state token, no identity.
	StageAnonymous Stage = "anonymous"
	// StagePendingAuth means a state token was issued but no identity is bound yet.
	StagePendingAuth Stage = "pending"
	// StageAuthenticated means a local identity is bound to the session.
	StageAuthenticated Stage = "authenticated"
)

// Credentials is the opaque provider credential blob stored on an
// authenticated session. Adapters produce it on exchange and consume it
// again on revoke; nothing else inspects it.
type Credentials struct {
	AccessToken string    `json:"access_token"`
	Subject     string    `json:"subject,omitempty"`
	Expiry      time.Time `json:"expiry,omitzero"`
}

// Session is the server-side record for one browser client. It is an
// explicit value passed into and returned from each auth operation;
// persistence is delegated to a SessionStore.
//
// Invariant: IdentityID is non-nil iff Stage is StageAuthenticated.
type Session struct {
	ID          string          `json:"id"`
	Stage       Stage           `json:"stage"`
	StateToken  string          `json:"state_token,omitempty"`
	Provider    Provider        `json:"provider,omitempty"`
	IdentityID  *int64          `json:"identity_id,omitempty"`
	DisplayName string          `json:"display_name,omitempty"`
	Email       string          `json:"email,omitempty"`
	PictureURL  string          `json:"picture_url,omitempty"`
	Credentials json.RawMessage `json:"credentials,omitempty"`
	ExpiresAt   time.Time       `json:"expires_at"`
}

// IsAuthenticated reports whether the session is bound to a local identity.
func (s Session) IsAuthenticated() bool {
	return s.Stage == StageAuthenticated && s.IdentityID != nil
}

// ClearAuth drops every authenticated field and returns the session to
// StageAnonymous. It is idempotent.
func (s *Session) ClearAuth() {
	s.Stage = StageAnonymous
	s.StateToken = ""
	s.Provider = ProviderNone
	s.IdentityID = nil
	s.DisplayName = ""
	s.Email = ""
	s.PictureURL = ""
	s.Credentials = nil
}

// ProfileData is the transient profile returned by a provider after a
// successful exchange. It is consumed once by identity resolution and
// never persisted directly.
type ProfileData struct {
	SubjectID  string // provider-scoped subject identifier
	Name       string
	Email      string
	PictureURL string
}
