package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apiclient "github.com/projectnest/nestctl/internal/api"
	"github.com/projectnest/nestctl/internal/models"
	appErrors "github.com/projectnest/nestctl/pkg/errors"
)

type memStore struct {
	token    string
	saves    int
	clears   int
	loadErr  error
	saveErr  error
	clearErr error
}

func (s *memStore) Load() (string, error) {
	if s.loadErr != nil {
		return "", s.loadErr
	}
	return s.token, nil
}

func (s *memStore) Save(token string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.token = token
	s.saves++
	return nil
}

func (s *memStore) Clear() error {
	if s.clearErr != nil {
		return s.clearErr
	}
	s.token = ""
	s.clears++
	return nil
}

type mockAuthAPI struct {
	loginToken    string
	loginErr      error
	createErr     error
	loginCalls    int
	createCalls   int
	lastLoginReq  models.LoginRequest
	lastCreateReq models.CreateUserRequest
}

func (m *mockAuthAPI) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	m.loginCalls++
	m.lastLoginReq = req
	if m.loginErr != nil {
		return "", m.loginErr
	}
	return m.loginToken, nil
}

func (m *mockAuthAPI) CreateUser(ctx context.Context, req models.CreateUserRequest) error {
	m.createCalls++
	m.lastCreateReq = req
	return m.createErr
}

func signToken(t *testing.T, claims models.TokenClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func newManager(store TokenStore, api authAPI) *Manager {
	return NewManager(store, api, nil, zap.NewNop())
}

func TestInitializeWithoutToken(t *testing.T) {
	store := &memStore{}
	m := newManager(store, &mockAuthAPI{})
	assert.True(t, m.Loading())

	require.NoError(t, m.Initialize())

	assert.False(t, m.Loading())
	assert.False(t, m.Current().Authenticated())
	assert.Zero(t, store.clears)
}

func TestInitializeRoundTrip(t *testing.T) {
	token := signToken(t, models.TokenClaims{
		UserID:   "s1",
		Name:     "Ann",
		Role:     models.RoleStudent,
		ImageURL: "x",
	})
	store := &memStore{token: token}
	m := newManager(store, &mockAuthAPI{})

	require.NoError(t, m.Initialize())

	sess := m.Current()
	assert.Equal(t, "s1", sess.UserID)
	assert.Equal(t, "Ann", sess.Name)
	assert.Equal(t, models.RoleStudent, sess.Role)
	assert.Equal(t, "x", sess.ImageURL)
	assert.False(t, m.Loading())
}

func TestInitializePurgesMalformedToken(t *testing.T) {
	store := &memStore{token: "onlyone.separator"}
	m := newManager(store, &mockAuthAPI{})

	require.NoError(t, m.Initialize())

	assert.False(t, m.Current().Authenticated())
	assert.Equal(t, 1, store.clears)
	assert.Empty(t, store.token)
}

func TestInitializePurgesUndecodablePayload(t *testing.T) {
	store := &memStore{token: "not.base64!.segments"}
	m := newManager(store, &mockAuthAPI{})

	require.NoError(t, m.Initialize())

	assert.False(t, m.Current().Authenticated())
	assert.Equal(t, 1, store.clears)
}

func TestLoginAdminRedirect(t *testing.T) {
	token := signToken(t, models.TokenClaims{UserID: "a1", Name: "Root", Role: models.RoleAdmin})
	store := &memStore{}
	api := &mockAuthAPI{loginToken: token}
	m := newManager(store, api)
	require.NoError(t, m.Initialize())

	target, err := m.Login(context.Background(), "a1", "pw")
	require.NoError(t, err)

	assert.Equal(t, RedirectAdmin, target)
	assert.Equal(t, token, store.token)
	assert.Equal(t, models.RoleAdmin, m.Current().Role)
}

func TestLoginNonAdminRedirectsToDashboard(t *testing.T) {
	for _, role := range []models.Role{models.RoleStudent, models.RoleProfessor} {
		token := signToken(t, models.TokenClaims{UserID: "u1", Role: role})
		m := newManager(&memStore{}, &mockAuthAPI{loginToken: token})
		require.NoError(t, m.Initialize())

		target, err := m.Login(context.Background(), "u1", "pw")
		require.NoError(t, err)
		assert.Equal(t, RedirectDashboard, target, "role %s", role)
	}
}

func TestLoginFailureKeepsPriorSession(t *testing.T) {
	existing := signToken(t, models.TokenClaims{UserID: "s1", Role: models.RoleStudent})
	store := &memStore{token: existing}
	api := &mockAuthAPI{loginErr: appErrors.ErrInvalidCredentials}
	m := newManager(store, api)
	require.NoError(t, m.Initialize())

	_, err := m.Login(context.Background(), "s1", "wrong")
	require.Error(t, err)

	assert.Equal(t, "s1", m.Current().UserID, "failed login must not drop the session")
	assert.Equal(t, existing, store.token)
	assert.Zero(t, store.clears)
	assert.False(t, m.InFlight())
}

func TestLoginValidation(t *testing.T) {
	api := &mockAuthAPI{}
	m := newManager(&memStore{}, api)
	require.NoError(t, m.Initialize())

	_, err := m.Login(context.Background(), "", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, api.loginCalls)
}

func TestRegisterChainsLogin(t *testing.T) {
	token := signToken(t, models.TokenClaims{UserID: "s2", Name: "Bea", Role: models.RoleStudent})
	api := &mockAuthAPI{loginToken: token}
	m := newManager(&memStore{}, api)
	require.NoError(t, m.Initialize())

	target, err := m.Register(context.Background(), models.CreateUserRequest{
		UserID:   "s2",
		Name:     "Bea",
		Email:    "bea@example.com",
		Password: "secret1",
		Role:     models.RoleStudent,
	})
	require.NoError(t, err)

	assert.Equal(t, RedirectDashboard, target)
	assert.Equal(t, 1, api.createCalls)
	assert.Equal(t, 1, api.loginCalls)
	assert.Equal(t, "s2", api.lastLoginReq.UserID)
	assert.Equal(t, "secret1", api.lastLoginReq.Password)
	assert.Equal(t, "s2", m.Current().UserID)
}

func TestRegisterCreationFailureSkipsLogin(t *testing.T) {
	api := &mockAuthAPI{createErr: appErrors.ErrConflict}
	m := newManager(&memStore{}, api)
	require.NoError(t, m.Initialize())

	_, err := m.Register(context.Background(), models.CreateUserRequest{
		UserID:   "s2",
		Name:     "Bea",
		Email:    "bea@example.com",
		Password: "secret1",
		Role:     models.RoleStudent,
	})
	require.Error(t, err)
	assert.Zero(t, api.loginCalls)
	assert.False(t, m.Current().Authenticated())
}

func TestRegisterLoginFailurePropagates(t *testing.T) {
	api := &mockAuthAPI{loginErr: errors.New("backend down")}
	m := newManager(&memStore{}, api)
	require.NoError(t, m.Initialize())

	_, err := m.Register(context.Background(), models.CreateUserRequest{
		UserID:   "s2",
		Name:     "Bea",
		Email:    "bea@example.com",
		Password: "secret1",
		Role:     models.RoleStudent,
	})
	require.Error(t, err)
	assert.Equal(t, 1, api.createCalls)
	assert.Equal(t, 1, api.loginCalls)
	assert.False(t, m.Current().Authenticated())
}

func TestLogout(t *testing.T) {
	token := signToken(t, models.TokenClaims{UserID: "s1", Role: models.RoleStudent})
	store := &memStore{token: token}
	m := newManager(store, &mockAuthAPI{})
	require.NoError(t, m.Initialize())
	require.True(t, m.Current().Authenticated())

	target := m.Logout()

	assert.Equal(t, RedirectLogin, target)
	assert.False(t, m.Current().Authenticated())
	assert.Empty(t, store.token)
}

func TestIsAuthorized(t *testing.T) {
	adminToken := signToken(t, models.TokenClaims{UserID: "a1", Role: models.RoleAdmin})
	m := newManager(&memStore{token: adminToken}, &mockAuthAPI{})
	require.NoError(t, m.Initialize())

	// Admin passes any membership check.
	assert.True(t, m.IsAuthorized())
	assert.True(t, m.IsAuthorized(models.RoleAdmin))
	assert.True(t, m.IsAuthorized(models.RoleStudent))
	assert.True(t, m.IsAuthorized(models.RoleStudent, models.RoleProfessor))

	studentToken := signToken(t, models.TokenClaims{UserID: "s1", Role: models.RoleStudent})
	m = newManager(&memStore{token: studentToken}, &mockAuthAPI{})
	require.NoError(t, m.Initialize())

	assert.True(t, m.IsAuthorized())
	assert.True(t, m.IsAuthorized(models.RoleStudent))
	assert.True(t, m.IsAuthorized(models.RoleStudent, models.RoleProfessor))
	assert.False(t, m.IsAuthorized(models.RoleAdmin))
	assert.False(t, m.IsAuthorized(models.RoleProfessor))

	m = newManager(&memStore{}, &mockAuthAPI{})
	require.NoError(t, m.Initialize())
	assert.False(t, m.IsAuthorized())
	assert.False(t, m.IsAuthorized(models.RoleStudent))
}

func TestOnChangeFiresOnTransitions(t *testing.T) {
	token := signToken(t, models.TokenClaims{UserID: "s1", Role: models.RoleStudent})
	api := &mockAuthAPI{loginToken: token}
	m := newManager(&memStore{}, api)

	var seen []models.Session
	m.OnChange(func(s models.Session) { seen = append(seen, s) })

	require.NoError(t, m.Initialize())
	_, err := m.Login(context.Background(), "s1", "pw")
	require.NoError(t, err)
	m.Logout()

	require.Len(t, seen, 3)
	assert.False(t, seen[0].Authenticated())
	assert.Equal(t, "s1", seen[1].UserID)
	assert.False(t, seen[2].Authenticated())
}

func TestRejectedLoginLeavesStoredTokenIntact(t *testing.T) {
	token := signToken(t, models.TokenClaims{UserID: "s1", Name: "Ann", Role: models.RoleStudent})
	store := NewFileStore(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, store.Save(token))

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "password incorrect"}`))
	}))
	defer backend.Close()

	// Wired the way the command host wires it: the client reads the token
	// from the store and the 401 hook logs the manager out.
	var m *Manager
	client := apiclient.New(backend.URL, time.Second,
		apiclient.WithTokenSource(func() string {
			tok, loadErr := store.Load()
			if loadErr != nil {
				return ""
			}
			return tok
		}),
		apiclient.WithOnUnauthorized(func() {
			if m != nil {
				m.Logout()
			}
		}),
	)
	m = NewManager(store, client, nil, zap.NewNop())
	require.NoError(t, m.Initialize())
	require.True(t, m.Current().Authenticated())

	_, err := m.Login(context.Background(), "s1", "wrong")
	require.Error(t, err)

	assert.True(t, m.Current().Authenticated())
	assert.Equal(t, "s1", m.Current().UserID)
	stored, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, token, stored)
}
