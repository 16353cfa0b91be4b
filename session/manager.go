package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/taskmind/go-task-client/api"
	clienterrors "github.com/taskmind/go-task-client/internal/errors"
	"github.com/taskmind/go-task-client/token"
	"github.com/taskmind/go-task-client/tokenstore"
)

// State is the session lifecycle state.
type State int

const (
	// StateLoading is the initial state, held until the bootstrap expiry
	// check completes.
	StateLoading State = iota
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	}
	return "unknown"
}

// Result reports the outcome of a login or registration attempt. Failures
// come back as values so callers can render the error inline without
// unwrapping anything.
type Result struct {
	Success bool
	Error   string
	Token   string
}

func failure(err error) Result {
	return Result{Error: err.Error()}
}

// Manager derives the session from the token store and drives the state
// machine: loading -> authenticated | anonymous, anonymous -> authenticated
// on login, authenticated -> anonymous on logout or any observed 401.
type Manager struct {
	store     *tokenstore.Store
	client    *api.Client
	validator *Validator
	logger    zerolog.Logger

	lock  sync.RWMutex
	state State
}

var _ api.AuthInvalidator = (*Manager)(nil)

// NewManager creates a Manager and registers it with the request pipeline
// so authentication rejections flip the state from anywhere.
func NewManager(store *tokenstore.Store, client *api.Client, logger zerolog.Logger) *Manager {
	m := &Manager{
		store:     store,
		client:    client,
		validator: NewValidator(),
		logger:    logger,
		state:     StateLoading,
	}
	client.SetAuthInvalidator(m)
	return m
}

// Invalidate implements api.AuthInvalidator. The pipeline has already
// purged the token; the session only flips to anonymous.
func (m *Manager) Invalidate() {
	m.setState(StateAnonymous)
}

// Bootstrap runs the mount-time check: a present, unexpired token means
// authenticated; anything else, including an undecodable token, means
// anonymous. Expired tokens are cleared so no request ever carries one.
func (m *Manager) Bootstrap() State {
	tok := m.store.Get()
	if tok == "" {
		m.setState(StateAnonymous)
		return StateAnonymous
	}
	if token.Expired(tok) {
		if err := m.store.Clear(); err != nil {
			m.logger.Warn().Err(err).Msg("failed to clear expired token")
		}
		m.logger.Info().Msg("stored token expired, session anonymous")
		m.setState(StateAnonymous)
		return StateAnonymous
	}
	m.setState(StateAuthenticated)
	return StateAuthenticated
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse is the token payload returned by the login endpoint.
type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login posts credentials and, on success, stores the access token and
// marks the session authenticated.
func (m *Manager) Login(ctx context.Context, email, password string) Result {
	if err := m.validator.ValidateCredentials(email, password); err != nil {
		return failure(err)
	}

	var resp loginResponse
	if err := m.client.Post(ctx, "/api/auth/login", credentials{Email: email, Password: password}, &resp); err != nil {
		m.logger.Warn().Str("email", email).Err(err).Msg("login failed")
		return failure(err)
	}
	if resp.AccessToken == "" {
		return Result{Error: "login response missing access token"}
	}
	if err := m.store.Set(resp.AccessToken); err != nil {
		return failure(err)
	}

	m.setState(StateAuthenticated)
	m.logger.Info().Str("email", email).Msg("logged in")
	return Result{Success: true, Token: resp.AccessToken}
}

// Register validates the credentials client-side, then creates the account.
// Registration does not log the user in.
func (m *Manager) Register(ctx context.Context, email, password, confirm string) Result {
	if err := m.validator.ValidateRegistration(email, password, confirm); err != nil {
		return failure(err)
	}

	if err := m.client.Post(ctx, "/api/auth/register", credentials{Email: email, Password: password}, nil); err != nil {
		m.logger.Warn().Str("email", email).Err(err).Msg("registration failed")
		return failure(err)
	}
	return Result{Success: true}
}

// Logout clears the stored token and resets the session. It needs no
// network round-trip and cannot fail from the caller's point of view.
func (m *Manager) Logout() {
	if err := m.store.Clear(); err != nil {
		m.logger.Warn().Err(err).Msg("failed to clear token on logout")
	}
	m.setState(StateAnonymous)
	m.logger.Info().Msg("logged out")
}

// State returns the current session state.
func (m *Manager) State() State {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.state
}

// IsAuthenticated reports whether the session is authenticated.
func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

// CurrentUserID extracts the user identity from the stored token.
func (m *Manager) CurrentUserID() (int64, error) {
	tok := m.store.Get()
	if tok == "" {
		return 0, clienterrors.ErrNotLoggedIn
	}
	claims, err := token.Decode(tok)
	if err != nil {
		return 0, clienterrors.Wrapf(err, "session: decode stored token")
	}
	return claims.UserID, nil
}

func (m *Manager) setState(state State) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.state = state
}
