package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/zeel68/YouliteBackend/internal/auth"
	"github.com/zeel68/YouliteBackend/internal/domain"
	"github.com/zeel68/YouliteBackend/internal/event"
	"github.com/zeel68/YouliteBackend/internal/repository"
	"github.com/zeel68/YouliteBackend/internal/service"
	apperrors "github.com/zeel68/YouliteBackend/pkg/errors"
	"github.com/zeel68/YouliteBackend/pkg/health"
	"github.com/zeel68/YouliteBackend/pkg/httputil"
	pkgkafka "github.com/zeel68/YouliteBackend/pkg/kafka"
	"github.com/zeel68/YouliteBackend/pkg/middleware"
	"github.com/zeel68/YouliteBackend/pkg/pagination"
)

// --- Mock user repository ---

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByIdentity(ctx context.Context, email, phone string) (*domain.User, error) {
	args := m.Called(ctx, email, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) SetRefreshTokenHash(ctx context.Context, userID, tokenHash string) error {
	args := m.Called(ctx, userID, tokenHash)
	return args.Error(0)
}

func (m *mockUserRepo) List(ctx context.Context, params pagination.Params) ([]domain.User, int, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.User), args.Int(1), args.Error(2)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ repository.UserRepository = (*mockUserRepo)(nil)

// --- Test fixtures ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testJWTManager() *auth.JWTManager {
	return auth.NewJWTManager("test-access-secret-key", "test-refresh-secret-key", 15*time.Minute, 7*24*time.Hour)
}

func testProducer() *event.Producer {
	logger := testLogger()
	return event.NewProducer(pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig([]string{"localhost:9092"}), logger), logger)
}

type routerFixture struct {
	userRepo   *mockUserRepo
	jwtManager *auth.JWTManager
	router     http.Handler
}

func newRouterFixture() *routerFixture {
	userRepo := new(mockUserRepo)
	logger := testLogger()
	jwtManager := testJWTManager()
	producer := testProducer()

	svcs := Services{
		User: service.NewUserService(userRepo, jwtManager, producer, logger),
	}

	router := NewRouter(svcs, jwtManager, health.NewHandler(), logger, middleware.DefaultCORSConfig(), "youlite-backend")
	return &routerFixture{userRepo: userRepo, jwtManager: jwtManager, router: router}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func customer(t *testing.T) *domain.User {
	return &domain.User{
		ID:           "6f1f9dca-9d18-4a44-9a36-9bdc2b7620b4",
		Name:         "Dana Ray",
		Email:        "dana@example.com",
		Phone:        "5550100",
		PasswordHash: hashPassword(t, "Sup3rSecret"),
		Role:         domain.RoleCustomer,
		IsActive:     true,
	}
}

func doJSON(router http.Handler, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// --- Tests ---

func TestRegister_CreatedWithoutTokens(t *testing.T) {
	f := newRouterFixture()
	f.userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	rec := doJSON(f.router, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name":     "Dana Ray",
		"email":    "dana@example.com",
		"password": "Sup3rSecret",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, rec.Result().Cookies(), "registration must not set auth cookies")
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "refresh_token_hash")
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	f := newRouterFixture()
	f.userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Return(apperrors.AlreadyExists("user", "email", "dana@example.com"))

	rec := doJSON(f.router, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name":     "Dana Ray",
		"email":    "dana@example.com",
		"password": "Sup3rSecret",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegister_ValidationFailure(t *testing.T) {
	f := newRouterFixture()

	rec := doJSON(f.router, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name":     "Dana Ray",
		"email":    "not-an-email",
		"password": "Sup3rSecret",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_ShortPasswordAndStoreIDAccepted(t *testing.T) {
	f := newRouterFixture()
	f.userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	// Short passwords and free-form store identifiers are both allowed.
	rec := doJSON(f.router, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name":     "Dana Ray",
		"email":    "dana@example.com",
		"password": "pw",
		"store_id": "S1",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"S1"`)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestLogin_SetsBothCookies(t *testing.T) {
	f := newRouterFixture()
	user := customer(t)
	f.userRepo.On("GetByIdentity", mock.Anything, "dana@example.com", "").Return(user, nil)
	f.userRepo.On("SetRefreshTokenHash", mock.Anything, user.ID, mock.AnythingOfType("string")).Return(nil)

	rec := doJSON(f.router, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "dana@example.com",
		"password": "Sup3rSecret",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	access := cookieByName(rec, accessTokenCookie)
	refresh := cookieByName(rec, refreshTokenCookie)
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure)
	assert.Equal(t, "/", access.Path)
	assert.NotEmpty(t, refresh.Value)

	var envelope httputil.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var body struct {
		User domain.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, domain.RoleCustomer, body.User.Role)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newRouterFixture()
	f.userRepo.On("GetByIdentity", mock.Anything, "dana@example.com", "").Return(customer(t), nil)

	rec := doJSON(f.router, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "dana@example.com",
		"password": "WrongPassword1",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestMe_WithAccessCookie(t *testing.T) {
	f := newRouterFixture()
	user := customer(t)
	f.userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	token, err := f.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role, user.StoreID)
	require.NoError(t, err)

	rec := doJSON(f.router, http.MethodGet, "/api/v1/users/me", nil,
		&http.Cookie{Name: accessTokenCookie, Value: token})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), user.Email)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestMe_MissingToken(t *testing.T) {
	f := newRouterFixture()

	rec := doJSON(f.router, http.MethodGet, "/api/v1/users/me", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe_ForgedToken(t *testing.T) {
	f := newRouterFixture()
	forged := auth.NewJWTManager("attacker-access-secret!!", "attacker-refresh-secret!", 15*time.Minute, time.Hour)
	token, err := forged.GenerateAccessToken("u-1", "x@example.com", domain.RoleSuperAdmin, "")
	require.NoError(t, err)

	rec := doJSON(f.router, http.MethodGet, "/api/v1/users/me", nil,
		&http.Cookie{Name: accessTokenCookie, Value: token})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	f.userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestMe_ExpiredToken(t *testing.T) {
	f := newRouterFixture()
	expired := auth.NewJWTManager("test-access-secret-key", "test-refresh-secret-key", -time.Minute, time.Hour)
	token, err := expired.GenerateAccessToken("u-1", "dana@example.com", domain.RoleCustomer, "")
	require.NoError(t, err)

	rec := doJSON(f.router, http.MethodGet, "/api/v1/users/me", nil,
		&http.Cookie{Name: accessTokenCookie, Value: token})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe_DeactivatedUser(t *testing.T) {
	f := newRouterFixture()
	user := customer(t)
	user.IsActive = false
	f.userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	token, err := f.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role, "")
	require.NoError(t, err)

	rec := doJSON(f.router, http.MethodGet, "/api/v1/users/me", nil,
		&http.Cookie{Name: accessTokenCookie, Value: token})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefresh_RotatesCookies(t *testing.T) {
	f := newRouterFixture()
	user := customer(t)
	f.userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	// Persisting a new hash rotates the stored pointer.
	f.userRepo.On("SetRefreshTokenHash", mock.Anything, user.ID, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { user.RefreshTokenHash = args.String(2) }).
		Return(nil)

	// Establish a session first so the stored hash matches the cookie.
	f.userRepo.On("GetByIdentity", mock.Anything, "dana@example.com", "").Return(user, nil)
	loginRec := doJSON(f.router, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "dana@example.com",
		"password": "Sup3rSecret",
	})
	require.Equal(t, http.StatusOK, loginRec.Code)
	oldRefresh := cookieByName(loginRec, refreshTokenCookie)
	require.NotNil(t, oldRefresh)

	rec := doJSON(f.router, http.MethodPost, "/api/v1/auth/refresh", nil,
		&http.Cookie{Name: refreshTokenCookie, Value: oldRefresh.Value})

	require.Equal(t, http.StatusOK, rec.Code)
	newRefresh := cookieByName(rec, refreshTokenCookie)
	require.NotNil(t, newRefresh)
	assert.NotEqual(t, oldRefresh.Value, newRefresh.Value)

	// The displaced token no longer verifies against the stored hash.
	replayRec := doJSON(f.router, http.MethodPost, "/api/v1/auth/refresh", nil,
		&http.Cookie{Name: refreshTokenCookie, Value: oldRefresh.Value})
	assert.Equal(t, http.StatusUnauthorized, replayRec.Code)
}

func TestRefresh_MissingToken(t *testing.T) {
	f := newRouterFixture()

	rec := doJSON(f.router, http.MethodPost, "/api/v1/auth/refresh", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefresh_TokenFromBody(t *testing.T) {
	f := newRouterFixture()
	user := customer(t)
	f.userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	f.userRepo.On("SetRefreshTokenHash", mock.Anything, user.ID, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { user.RefreshTokenHash = args.String(2) }).
		Return(nil)
	f.userRepo.On("GetByIdentity", mock.Anything, "dana@example.com", "").Return(user, nil)

	loginRec := doJSON(f.router, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "dana@example.com",
		"password": "Sup3rSecret",
	})
	require.Equal(t, http.StatusOK, loginRec.Code)
	refresh := cookieByName(loginRec, refreshTokenCookie)

	rec := doJSON(f.router, http.MethodPost, "/api/v1/auth/refresh", map[string]string{
		"refresh_token": refresh.Value,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogout_ClearsCookiesAndIsIdempotent(t *testing.T) {
	f := newRouterFixture()
	user := customer(t)
	f.userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	f.userRepo.On("SetRefreshTokenHash", mock.Anything, user.ID, "").Return(nil).Twice()

	token, err := f.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role, "")
	require.NoError(t, err)
	cookie := &http.Cookie{Name: accessTokenCookie, Value: token}

	rec := doJSON(f.router, http.MethodPost, "/api/v1/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	cleared := cookieByName(rec, refreshTokenCookie)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	// Logging out again is not an error.
	again := doJSON(f.router, http.MethodPost, "/api/v1/auth/logout", nil, cookie)
	assert.Equal(t, http.StatusOK, again.Code)
	f.userRepo.AssertExpectations(t)
}

func TestAdminUsers_CustomerForbidden(t *testing.T) {
	f := newRouterFixture()
	user := customer(t)
	f.userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	token, err := f.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role, "")
	require.NoError(t, err)

	rec := doJSON(f.router, http.MethodGet, "/api/v1/admin/users", nil,
		&http.Cookie{Name: accessTokenCookie, Value: token})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	f.userRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}
