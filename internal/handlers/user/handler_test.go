package user_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"labbook/infras/otel/mocks"
	userMocks "labbook/internal/domains/user/mocks"
	"labbook/internal/domains/user/model/dto"
	handler "labbook/internal/handlers/user"
	gDto "labbook/shared/dto"
	"labbook/shared/failure"
)

func setup(t *testing.T) (*userMocks.MockUserService, http.Handler) {
	t.Helper()

	svc := userMocks.NewMockUserService(gomock.NewController(t))
	h := handler.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	h.Router(router)

	return svc, router
}

func TestCheckAdmin(t *testing.T) {
	t.Run("own email", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().IsAdmin(gomock.Any(), "root@lab.test").Return(dto.AdminCheckResponse{Admin: true}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/admin/root@lab.test", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":{"admin":true}}`, rec.Body.String())
	})

	t.Run("someone else's email", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().IsAdmin(gomock.Any(), "root@lab.test").Return(dto.AdminCheckResponse{}, failure.ForbiddenError)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/admin/root@lab.test", nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("malformed email", func(t *testing.T) {
		_, router := setup(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/admin/not-an-email", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetMe_Unauthenticated(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Me(gomock.Any()).Return(dto.UserResponse{}, failure.Unauthorized("missing user identity"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetUsers_FiltersByRole(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, "admin", args["role"])
			assert.NotContains(t, args, "email")

			return dto.GetUsersResponse{}, nil
		})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/users?role=admin", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
