package session

import (
	"context"
	"fmt"
	"log"
	"sync"

	"artizon/internal/models"
	"artizon/internal/storage"
)

// tokenKey is the persisted credential key. The session manager is the only
// component that writes or clears it.
const tokenKey = "access_token"

// ProfileFetcher fetches the signed-in account's profile. The gateway's
// AuthAPI satisfies it.
type ProfileFetcher interface {
	Profile(ctx context.Context) (*models.User, error)
}

// Credentials is the read-only view of the persisted credential handed to the
// gateway. It deliberately exposes nothing else, so the gateway never depends
// on the full Manager.
type Credentials struct {
	store storage.Store
}

// NewCredentials creates a Credentials reader over the given store.
func NewCredentials(store storage.Store) Credentials {
	return Credentials{store: store}
}

// Token returns the persisted credential, if any.
func (c Credentials) Token() (string, bool) {
	token, ok, err := c.store.Get(tokenKey)
	if err != nil {
		log.Printf("Failed to read credential: %v", err)
		return "", false
	}
	return token, ok && token != ""
}

// Manager owns the authentication token and the current user profile.
//
// Its states are: anonymous (no token), authenticated-unresolved (token but
// no profile yet), and authenticated-resolved (token and profile). SetToken
// never fetches the profile itself; Initialize does, lazily, so reading the
// token stays free of network calls.
type Manager struct {
	store    storage.Store
	profiles ProfileFetcher

	mu    sync.Mutex
	token string
	user  *models.User
}

// NewManager creates a Manager and loads any persisted credential, landing in
// the authenticated-unresolved state when one exists.
func NewManager(store storage.Store, profiles ProfileFetcher) (*Manager, error) {
	token, _, err := store.Get(tokenKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load persisted credential: %w", err)
	}
	return &Manager{
		store:    store,
		profiles: profiles,
		token:    token,
	}, nil
}

// SetToken persists the credential and marks the session authenticated
// immediately. The profile stays unresolved until Initialize runs.
func (m *Manager) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Set(tokenKey, token); err != nil {
		return fmt.Errorf("failed to persist credential: %w", err)
	}
	m.token = token
	m.user = nil
	return nil
}

// Initialize resolves the profile for an authenticated-unresolved session.
// It is a no-op when anonymous or already resolved. A failed profile fetch
// logs out: that is the self-healing path for stale tokens that only turn out
// invalid when the profile call answers 401.
func (m *Manager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	if m.token == "" || m.user != nil {
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	user, err := m.profiles.Profile(ctx)
	if err != nil {
		log.Printf("Error fetching user profile: %v", err)
		m.Logout()
		return fmt.Errorf("failed to resolve profile: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// The session may have been logged out while the fetch was in flight;
	// never attach a profile to an absent token.
	if m.token == "" {
		return nil
	}
	m.user = user
	return nil
}

// Logout clears the token and profile and removes the persisted credential.
// Idempotent: callable from any state, always lands in anonymous.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = ""
	m.user = nil
	if err := m.store.Delete(tokenKey); err != nil {
		log.Printf("Failed to remove persisted credential: %v", err)
	}
}

// Token returns the current credential, if any. Satisfies the gateway's
// CredentialSource for callers that hold the full Manager.
func (m *Manager) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

// User returns the resolved profile, or nil while unresolved or anonymous.
func (m *Manager) User() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// IsAuthenticated reports whether a credential is present. It does not wait
// for the profile to resolve.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != ""
}

// IsVendor reports whether the resolved profile is a vendor account.
func (m *Manager) IsVendor() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil && m.user.UserType == models.UserTypeVendor
}

// IsCustomer reports whether the resolved profile is a customer account.
func (m *Manager) IsCustomer() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil && m.user.UserType == models.UserTypeCustomer
}
