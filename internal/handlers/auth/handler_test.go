package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"labbook/infras/otel/mocks"
	authMocks "labbook/internal/domains/auth/mocks"
	"labbook/internal/domains/auth/model/dto"
	handler "labbook/internal/handlers/auth"
	"labbook/shared/failure"
)

func setup(t *testing.T) (*authMocks.MockAuth, http.Handler) {
	t.Helper()

	svc := authMocks.NewMockAuth(gomock.NewController(t))
	h := handler.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	h.Router(router)

	return svc, router
}

func TestRegister(t *testing.T) {
	t.Run("registered", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().Register(gomock.Any(), dto.RegisterRequest{Email: "ann@lab.test", Password: "secret-pass", Name: "Ann"}).Return(nil)

		body := `{"email":"ann@lab.test","password":"secret-pass","name":"Ann"}`

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body)))

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(failure.BadRequestFromString("user already exists"))

		body := `{"email":"ann@lab.test","password":"secret-pass","name":"Ann"}`

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "user already exists")
	})

	t.Run("short password", func(t *testing.T) {
		_, router := setup(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{"email":"ann@lab.test","password":"short","name":"Ann"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLogin(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Login(gomock.Any(), gomock.Any()).Return(dto.LoginResponse{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"ann@lab.test","password":"secret-pass"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access_token":"access"`)
}

func TestRefreshToken_Invalid(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().RefreshToken(gomock.Any(), dto.RefreshTokenRequest{RefreshToken: "stale"}).Return(dto.RefreshTokenResponse{}, failure.Unauthorized("invalid refresh token"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/refresh-token", strings.NewReader(`{"refresh_token":"stale"}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChangePassword(t *testing.T) {
	t.Run("changed", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().ChangePassword(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req dto.ChangePasswordRequest) error {
				assert.Equal(t, "new-secret-pass", req.NewPassword)

				return nil
			})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/auth/password", strings.NewReader(`{"current_password":"secret-pass","new_password":"new-secret-pass"}`)))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("same password rejected", func(t *testing.T) {
		_, router := setup(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/auth/password", strings.NewReader(`{"current_password":"secret-pass","new_password":"secret-pass"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
