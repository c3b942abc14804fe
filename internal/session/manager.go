package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"signa-dashboard/internal/models"
	"signa-dashboard/internal/signa"
	"signa-dashboard/pkg/utils"
)

// State is the lifecycle position of the session.
type State int

const (
	StateRestoring State = iota
	StateUnauthenticated
	StateLoggingIn
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateRestoring:
		return "restoring"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateLoggingIn:
		return "logging_in"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(b []byte) error {
	for st := StateRestoring; st <= StateAuthenticated; st++ {
		if st.String() == string(b) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("session: unknown state %q", b)
}

// AuthAPI is the part of the API client the manager needs.
type AuthAPI interface {
	Login(ctx context.Context, nationalID, password string) (*models.AuthToken, error)
	Me(ctx context.Context) (*models.DoctorAuth, error)
}

// Snapshot is a consistent view of the session for consumers.
type Snapshot struct {
	State              State              `json:"state"`
	Authenticated      bool               `json:"is_authenticated"`
	Doctor             *models.DoctorAuth `json:"doctor"`
	CanRegisterDoctors bool               `json:"can_register_doctors"`
	// SessionID fingerprints the stored token; it changes on every login.
	SessionID          string             `json:"-"`
}

// Manager owns the authenticated doctor and the stored bearer token.
// It starts in StateRestoring; call Restore once at startup.
type Manager struct {
	api    AuthAPI
	store  Store
	logger *zap.Logger
	now    func() time.Time

	flow sync.Mutex // serializes login/logout/check flows

	mu        sync.RWMutex
	state     State
	doctor    *models.DoctorAuth
	sessionID string
}

func NewManager(api AuthAPI, store Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		api:    api,
		store:  store,
		logger: logger,
		now:    time.Now,
		state:  StateRestoring,
	}
}

// StoreTokens exposes a store as the client's token source; an empty slot
// yields no token.
func StoreTokens(s Store) signa.TokenSource {
	return signa.TokenSourceFunc(func(ctx context.Context) (string, error) {
		token, err := s.Load(ctx)
		if errors.Is(err, ErrNoToken) {
			return "", nil
		}
		return token, err
	})
}

// Restore silently re-establishes the session from the stored token.
// Failure clears the token and leaves the manager unauthenticated.
func (m *Manager) Restore(ctx context.Context) bool {
	m.flow.Lock()
	defer m.flow.Unlock()

	m.setState(StateRestoring)
	return m.check(ctx, "restore")
}

// Check re-validates the stored token. With an unchanged valid token it
// returns the same identity every time and never rewrites the token.
func (m *Manager) Check(ctx context.Context) bool {
	m.flow.Lock()
	defer m.flow.Unlock()

	return m.check(ctx, "check")
}

func (m *Manager) check(ctx context.Context, op string) bool {
	m.mu.RLock()
	prevState, prevDoctor, prevSID := m.state, m.doctor, m.sessionID
	m.mu.RUnlock()

	// 1. Load the stored token
	token, err := m.store.Load(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return m.interrupted(op, prevState, prevDoctor, prevSID)
		}
		if !errors.Is(err, ErrNoToken) {
			m.logger.Warn("Session token unreadable", zap.String("op", op), zap.Error(err))
		}
		m.set(StateUnauthenticated, nil, "")
		return false
	}

	// 2. An expired JWT never reaches the server
	if utils.TokenExpired(token, m.now()) {
		m.logger.Info("Stored token expired", zap.String("op", op))
		m.clear(ctx)
		return false
	}

	// 3. Ask the server who owns the token
	doctor, err := m.api.Me(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return m.interrupted(op, prevState, prevDoctor, prevSID)
		}
		m.logger.Info("Session check failed, clearing token", zap.String("op", op), zap.Error(err))
		m.clear(ctx)
		return false
	}

	m.set(StateAuthenticated, doctor, fingerprint(token))
	return true
}

// interrupted handles a check abandoned by its caller: the stored token is
// left alone and a cached identity is kept.
func (m *Manager) interrupted(op string, state State, doctor *models.DoctorAuth, sid string) bool {
	m.logger.Info("Session check interrupted", zap.String("op", op))
	if state != StateAuthenticated {
		state, doctor, sid = StateUnauthenticated, nil, ""
	}
	m.set(state, doctor, sid)
	return false
}

// Login submits credentials. Failures are reported as false; if the stored
// token was not yet replaced the previous session is kept.
func (m *Manager) Login(ctx context.Context, nationalID, password string) bool {
	m.flow.Lock()
	defer m.flow.Unlock()

	m.mu.Lock()
	prevState, prevDoctor, prevSID := m.state, m.doctor, m.sessionID
	m.state = StateLoggingIn
	m.mu.Unlock()
	restore := func() {
		if prevState != StateAuthenticated {
			prevState, prevDoctor, prevSID = StateUnauthenticated, nil, ""
		}
		m.set(prevState, prevDoctor, prevSID)
	}

	// 1. Exchange credentials for a token
	token, err := m.api.Login(ctx, nationalID, password)
	if err != nil {
		m.logger.Info("Login failed", zap.String("message", signa.Message(err)), zap.Error(err))
		restore()
		return false
	}

	// 2. Persist the token
	if err := m.store.Save(ctx, token.AccessToken); err != nil {
		m.logger.Error("Failed to persist token", zap.Error(err))
		restore()
		return false
	}

	// 3. Fetch the doctor profile
	doctor, err := m.api.Me(ctx)
	if err != nil {
		m.logger.Info("Login identity lookup failed", zap.Error(err))
		m.clear(ctx)
		return false
	}

	m.set(StateAuthenticated, doctor, fingerprint(token.AccessToken))
	m.logger.Info("Doctor logged in", zap.Uint64("doctor_id", doctor.ID), zap.String("role", doctor.Role))
	return true
}

// Logout deletes the stored token and forgets the identity. The identity is
// cleared even when the store fails.
func (m *Manager) Logout(ctx context.Context) error {
	m.flow.Lock()
	defer m.flow.Unlock()

	return m.clear(ctx)
}

func (m *Manager) clear(ctx context.Context) error {
	m.set(StateUnauthenticated, nil, "")
	// The token goes with the identity even when the caller has gone away.
	if err := m.store.Delete(context.WithoutCancel(ctx)); err != nil {
		m.logger.Error("Failed to delete stored token", zap.Error(err))
		return err
	}
	return nil
}

func (m *Manager) set(state State, doctor *models.DoctorAuth, sid string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	m.doctor = doctor
	m.sessionID = sid
}

func fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:12])
}

func (m *Manager) setState(state State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Doctor returns a copy of the cached identity, or nil.
func (m *Manager) Doctor() *models.DoctorAuth {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.doctor.Clone()
}

// IsAuthenticated is true exactly when an identity is cached.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.doctor != nil
}

// CanRegisterDoctors reports whether the cached identity has the super role.
func (m *Manager) CanRegisterDoctors() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.doctor.IsSuper()
}

// Snapshot returns state and identity read under one lock.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		State:              m.state,
		Authenticated:      m.doctor != nil,
		Doctor:             m.doctor.Clone(),
		CanRegisterDoctors: m.doctor.IsSuper(),
		SessionID:          m.sessionID,
	}
}
