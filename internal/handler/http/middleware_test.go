package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zeel68/YouliteBackend/internal/domain"
	"github.com/zeel68/YouliteBackend/internal/service"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"data":"ok"}`))
}

func withUser(r *http.Request, user *domain.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), userContextKey, user))
}

func TestExtractToken_CookieBeforeHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: "cookie-token"})

	assert.Equal(t, "cookie-token", extractToken(req))
}

func TestExtractToken_HeaderFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer header-token")

	assert.Equal(t, "header-token", extractToken(req))
}

func TestExtractToken_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	assert.Empty(t, extractToken(req))
}

func TestAuthenticate_BearerHeader(t *testing.T) {
	userRepo := new(mockUserRepo)
	user := customer(t)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	jwtManager := testJWTManager()
	userSvc := service.NewUserService(userRepo, jwtManager, testProducer(), testLogger())

	var seen *domain.User
	handler := Authenticate(jwtManager, userSvc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	token, err := jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role, "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, user.ID, seen.ID)
	assert.Empty(t, seen.PasswordHash, "context user must be sanitized")
	assert.Empty(t, seen.RefreshTokenHash)
}

func TestRequireRole_Allows(t *testing.T) {
	handler := RequireRole(domain.RoleStoreOwner, domain.RoleSuperAdmin)(http.HandlerFunc(okHandler))

	req := withUser(httptest.NewRequest(http.MethodGet, "/", nil), &domain.User{ID: "u-1", Role: domain.RoleStoreOwner})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_Forbids(t *testing.T) {
	handler := RequireRole(domain.RoleSuperAdmin)(http.HandlerFunc(okHandler))

	req := withUser(httptest.NewRequest(http.MethodGet, "/", nil), &domain.User{ID: "u-1", Role: domain.RoleCustomer})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole_Unauthenticated(t *testing.T) {
	handler := RequireRole(domain.RoleCustomer)(http.HandlerFunc(okHandler))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireStore_NoAssociation(t *testing.T) {
	handler := RequireStore(http.HandlerFunc(okHandler))

	req := withUser(httptest.NewRequest(http.MethodGet, "/", nil), &domain.User{ID: "u-1", Role: domain.RoleStoreOwner})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func storeAccessRouter(user *domain.User) http.Handler {
	r := chi.NewRouter()
	r.Route("/stores/{storeID}", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, withUser(req, user))
			})
		})
		r.Use(RequireStoreAccess)
		r.Put("/", okHandler)
	})
	return r
}

func TestRequireStoreAccess_OwnStore(t *testing.T) {
	router := storeAccessRouter(&domain.User{ID: "u-1", Role: domain.RoleStoreOwner, StoreID: "s-1"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/stores/s-1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireStoreAccess_ForeignStore(t *testing.T) {
	router := storeAccessRouter(&domain.User{ID: "u-1", Role: domain.RoleStoreOwner, StoreID: "s-1"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/stores/s-2", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireStoreAccess_SuperadminAnyStore(t *testing.T) {
	router := storeAccessRouter(&domain.User{ID: "u-1", Role: domain.RoleSuperAdmin, StoreID: ""})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/stores/s-2", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
