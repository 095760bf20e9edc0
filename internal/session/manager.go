// Package session owns the authenticated-identity value for the running
// client and gates role-sensitive surfaces. Consumers receive the manager
// by injection and observe it through Current/OnChange; there is no
// package-level session.
package session

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/projectnest/nestctl/internal/models"
	appErrors "github.com/projectnest/nestctl/pkg/errors"
)

// RedirectTarget tells the host surface where to navigate after an auth
// transition.
type RedirectTarget string

const (
	RedirectAdmin     RedirectTarget = "admin"
	RedirectDashboard RedirectTarget = "dashboard"
	RedirectLogin     RedirectTarget = "login"
)

// authAPI is the slice of the backend the manager needs.
type authAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (string, error)
	CreateUser(ctx context.Context, req models.CreateUserRequest) error
}

// Manager derives the session from the persisted bearer token and runs the
// login/register/logout transitions.
type Manager struct {
	store     TokenStore
	api       authAPI
	validator *validator.Validate
	logger    *zap.Logger

	session     models.Session
	initialized bool
	loading     bool
	inFlight    bool

	listeners []func(models.Session)
}

// NewManager constructs a Manager. The session starts uninitialized;
// call Initialize before consulting IsAuthorized.
func NewManager(store TokenStore, api authAPI, validate *validator.Validate, logger *zap.Logger) *Manager {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, api: api, validator: validate, logger: logger, loading: true}
}

// Initialize reconstructs the session from the persisted token. A missing
// token is not an error. A structurally invalid or undecodable token is
// recovered locally: the session stays unauthenticated and the bad token
// is purged so the next start does not trip over it again.
func (m *Manager) Initialize() error {
	defer func() {
		m.loading = false
		m.initialized = true
	}()

	token, err := m.store.Load()
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read stored token")
	}
	if token == "" {
		m.setSession(models.Session{})
		return nil
	}

	sess, err := decodeToken(token)
	if err != nil {
		m.logger.Debug("stored token invalid, purging", zap.Error(err))
		if clearErr := m.store.Clear(); clearErr != nil {
			m.logger.Warn("failed to purge invalid token", zap.Error(clearErr))
		}
		m.setSession(models.Session{})
		return nil
	}

	m.setSession(sess)
	return nil
}

// Loading is true only while the one-time Initialize check runs. Callers
// must not evaluate IsAuthorized while it is true.
func (m *Manager) Loading() bool { return m.loading }

// InFlight reports whether a login or register call is outstanding, so
// hosts can suppress duplicate submits.
func (m *Manager) InFlight() bool { return m.inFlight }

// Current returns the session value.
func (m *Manager) Current() models.Session { return m.session }

// OnChange registers a callback fired on every session transition.
func (m *Manager) OnChange(fn func(models.Session)) {
	m.listeners = append(m.listeners, fn)
}

// Login authenticates, persists the issued token and derives the session
// from its claims. On any failure the prior session and stored token are
// left untouched.
func (m *Manager) Login(ctx context.Context, userID, password string) (RedirectTarget, error) {
	req := models.LoginRequest{UserID: userID, Password: password}
	if err := m.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "user id and password are required")
	}

	m.inFlight = true
	defer func() { m.inFlight = false }()

	token, err := m.api.Login(ctx, req)
	if err != nil {
		m.logger.Debug("login rejected", zap.String("user_id", userID), zap.Error(err))
		return "", err
	}

	sess, err := decodeToken(token)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "backend issued an undecodable token")
	}

	if err := m.store.Save(token); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist token")
	}

	m.setSession(sess)
	m.logger.Info("logged in", zap.String("user_id", sess.UserID), zap.String("role", string(sess.Role)))

	if sess.Role == models.RoleAdmin {
		return RedirectAdmin, nil
	}
	return RedirectDashboard, nil
}

// Register creates the account, then logs in with the same credentials to
// establish a session. Creation failure skips the login attempt entirely;
// a login failure after successful creation propagates, since registration
// is not complete without a session.
func (m *Manager) Register(ctx context.Context, req models.CreateUserRequest) (RedirectTarget, error) {
	if err := m.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	m.inFlight = true
	err := m.api.CreateUser(ctx, req)
	m.inFlight = false
	if err != nil {
		return "", err
	}

	return m.Login(ctx, req.UserID, req.Password)
}

// Logout clears the session and the persisted token.
func (m *Manager) Logout() RedirectTarget {
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("failed to clear stored token", zap.Error(err))
	}
	m.setSession(models.Session{})
	return RedirectLogin
}

// IsAuthorized reports whether the session may see a surface requiring one
// of the given roles. Admin passes membership-style checks for any role.
// With no roles given, any authenticated session passes.
func (m *Manager) IsAuthorized(roles ...models.Role) bool {
	if !m.session.Authenticated() {
		return false
	}
	if len(roles) == 0 || m.session.Role == models.RoleAdmin {
		return true
	}
	for _, r := range roles {
		if m.session.Role == r {
			return true
		}
	}
	return false
}

func (m *Manager) setSession(s models.Session) {
	m.session = s
	for _, fn := range m.listeners {
		fn(s)
	}
}

// decodeToken derives a session from a bearer token. The token must be
// structurally a JWT (exactly two dot separators) and carry a decodable
// claims payload. The signature is deliberately not verified: the client
// cannot hold the server's secret, and the decoded claims gate rendering
// only; the server authorizes every request it actually serves.
func decodeToken(token string) (models.Session, error) {
	if strings.Count(token, ".") != 2 {
		return models.Session{}, appErrors.Clone(appErrors.ErrUnauthorized, "malformed token")
	}

	claims := &models.TokenClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return models.Session{}, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "undecodable token")
	}

	sess := claims.Session()
	if !sess.Authenticated() {
		return models.Session{}, appErrors.Clone(appErrors.ErrUnauthorized, "token carries no user identity")
	}
	return sess, nil
}
