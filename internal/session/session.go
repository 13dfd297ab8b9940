package session

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/internal/store"
	"auction-house/utils"
)

// UserKey is the fixed store key holding the serialized current-user record.
const UserKey = "auction:session:user"

// credKeyPrefix namespaces per-email credential hashes in the store.
const credKeyPrefix = "auction:cred:"

// Manager owns the current-user identity and its login/register/logout
// transitions. State is persisted to the injected key-value store under
// UserKey and rehydrated on construction.
type Manager struct {
	mu      sync.Mutex
	store   store.KVStore
	current *models.User
	loading bool
}

// NewManager builds a session manager backed by st, restoring any persisted
// session. A malformed stored record is treated as logged out.
func NewManager(st store.KVStore) *Manager {
	m := &Manager{store: st}

	raw, ok := st.Get(UserKey)
	if !ok {
		return m
	}
	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u.ID == "" {
		utils.Warn("session: discarding malformed persisted session", map[string]any{"key": UserKey})
		return m
	}
	m.current = &u
	return m
}

// Login signs in the user identified by email. If Register has previously
// stored a credential for the email, the password is verified against it;
// otherwise any non-empty password is accepted.
func (m *Manager) Login(email, password string) (models.User, error) {
	m.setLoading(true)
	defer m.setLoading(false)

	local, ok := emailLocalPart(email)
	if !ok || password == "" {
		return models.User{}, fmt.Errorf("session: login rejected for %q: %w", email, auctionerrors.ErrInvalidCredentials)
	}

	if hash, exists := m.store.Get(credKeyPrefix + email); exists {
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
			return models.User{}, fmt.Errorf("session: password mismatch for %q: %w", email, auctionerrors.ErrInvalidCredentials)
		}
	}

	user := models.User{
		ID:          utils.GenerateID(),
		DisplayName: local,
		Email:       email,
	}
	m.persist(user)
	return user, nil
}

// Register creates a new account and signs it in. The password is stored as
// a bcrypt hash so later logins for the same email are verified.
func (m *Manager) Register(name, email, password string) (models.User, error) {
	m.setLoading(true)
	defer m.setLoading(false)

	if name == "" || email == "" || password == "" {
		return models.User{}, fmt.Errorf("session: missing registration fields: %w", auctionerrors.ErrRegistrationFailed)
	}
	if _, ok := emailLocalPart(email); !ok {
		return models.User{}, fmt.Errorf("session: malformed email %q: %w", email, auctionerrors.ErrRegistrationFailed)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("session: hashing password: %w", auctionerrors.ErrRegistrationFailed)
	}
	m.store.Set(credKeyPrefix+email, string(hash))

	user := models.User{
		ID:          utils.GenerateID(),
		DisplayName: name,
		Email:       email,
	}
	m.persist(user)
	return user, nil
}

// Logout clears the current user and the persisted record. Idempotent.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
	m.store.Delete(UserKey)
}

// CurrentUser returns the signed-in user, if any.
func (m *Manager) CurrentUser() (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return models.User{}, false
	}
	return *m.current, true
}

// IsAuthenticated reports whether a user is signed in.
func (m *Manager) IsAuthenticated() bool {
	_, ok := m.CurrentUser()
	return ok
}

// IsLoading reports whether a login or registration is in flight.
func (m *Manager) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

// persist stores the user record and installs it as the current session.
func (m *Manager) persist(user models.User) {
	data, _ := json.Marshal(user)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.store.Set(UserKey, string(data))
	m.current = &user
}

// emailLocalPart extracts the part before '@', rejecting strings that are
// not email-shaped.
func emailLocalPart(email string) (string, bool) {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", false
	}
	return email[:at], true
}
