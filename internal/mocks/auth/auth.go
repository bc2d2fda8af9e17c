package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"sync"

	domainauth "github.com/forkful/menuboard/internal/domain/auth"
	"github.com/forkful/menuboard/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.ProviderClient = (*FakeProviderClient)(nil)
	_ ports.SessionStore   = (*MemorySessionStore)(nil)
	_ ports.IdentityStore  = (*MemoryIdentityStore)(nil)
)

// FakeProviderClient simulates a third-party provider with overridable
// behavior per call and call counters for asserting best-effort semantics.
type FakeProviderClient struct {
	Provider domainauth.Provider

	ExchangeFunc     func(ctx context.Context, code string) (domainauth.Credentials, error)
	FetchProfileFunc func(ctx context.Context, creds domainauth.Credentials) (domainauth.ProfileData, error)
	RevokeFunc       func(ctx context.Context, creds domainauth.Credentials) error

	// Default results used when the corresponding func is nil.
	Creds   domainauth.Credentials
	Profile domainauth.ProfileData

	ExchangeCalls int
	ProfileCalls  int
	RevokeCalls   int
}

// NewFakeProviderClient creates a fake Google-flavored provider with a
// plausible default profile.
func NewFakeProviderClient() *FakeProviderClient {
	return &FakeProviderClient{
		Provider: domainauth.ProviderGoogle,
		Creds:    domainauth.Credentials{AccessToken: "fake-access-token", Subject: "subject-1"},
		Profile: domainauth.ProfileData{
			SubjectID:  "subject-1",
			Name:       "Fake User",
			Email:      "fake.user@example.com",
			PictureURL: "https://example.com/fake.png",
		},
	}
}

func (f *FakeProviderClient) Name() domainauth.Provider {
	if f.Provider == domainauth.ProviderNone {
		return domainauth.ProviderGoogle
	}
	return f.Provider
}

func (f *FakeProviderClient) Exchange(ctx context.Context, code string) (domainauth.Credentials, error) {
	f.ExchangeCalls++
	if f.ExchangeFunc != nil {
		return f.ExchangeFunc(ctx, code)
	}
	return f.Creds, nil
}

func (f *FakeProviderClient) FetchProfile(ctx context.Context, creds domainauth.Credentials) (domainauth.ProfileData, error) {
	f.ProfileCalls++
	if f.FetchProfileFunc != nil {
		return f.FetchProfileFunc(ctx, creds)
	}
	return f.Profile, nil
}

func (f *FakeProviderClient) Revoke(ctx context.Context, creds domainauth.Credentials) error {
	f.RevokeCalls++
	if f.RevokeFunc != nil {
		return f.RevokeFunc(ctx, creds)
	}
	return nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session

	// SaveErr, when set, is returned by every Save call.
	SaveErr error
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

// ErrSessionNotFound is returned when a session id is unknown.
var ErrSessionNotFound = errors.New("session not found")

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ErrSessionNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// MemoryIdentityStore is an in-memory identity store keyed by unique email.
type MemoryIdentityStore struct {
	mu     sync.Mutex
	nextID int64
	byMail map[string]int64

	// LookupErr and CreateErr, when set, force failures.
	LookupErr error
	CreateErr error

	LookupCalls int
	CreateCalls int
}

// NewMemoryIdentityStore creates a new in-memory identity store.
func NewMemoryIdentityStore() *MemoryIdentityStore {
	return &MemoryIdentityStore{nextID: 1, byMail: make(map[string]int64)}
}

func (m *MemoryIdentityStore) LookupByEmail(_ context.Context, email string) (int64, bool, error) {
	m.LookupCalls++
	if m.LookupErr != nil {
		return 0, false, m.LookupErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byMail[email]
	return id, ok, nil
}

func (m *MemoryIdentityStore) Create(_ context.Context, _, email, _ string) (int64, error) {
	m.CreateCalls++
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.byMail[email]; ok {
		// Mirror the unique constraint: second create wins nothing.
		return id, nil
	}
	id := m.nextID
	m.nextID++
	m.byMail[email] = id
	return id, nil
}

// Seed inserts an identity with a known id, for lookup-path tests.
func (m *MemoryIdentityStore) Seed(id int64, email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byMail[email] = id
	if id >= m.nextID {
		m.nextID = id + 1
	}
}
