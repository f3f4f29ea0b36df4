package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labbook/config"
	"labbook/infras/jwt"
	"labbook/infras/otel/mocks"
	"labbook/permissions"
	"labbook/shared/constant"
	"labbook/transport/http/middleware"
)

func newAuthRouter(t *testing.T) (http.Handler, jwt.JWT) {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "labbook"
	cfg.App.APIKey = "internal-key"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	jwtService := jwt.New(cfg)
	perms := permissions.Get()
	require.NotNil(t, perms)

	auth := middleware.NewAuthRoleMiddleware(jwtService, mocks.NewOtel(), perms, cfg)

	echoEmail := func(w http.ResponseWriter, r *http.Request) {
		email, _ := r.Context().Value(constant.ContextKeyUserEmail).(string)
		_, _ = w.Write([]byte(email))
	}

	router := chi.NewRouter()
	router.Use(auth.APIKey, auth.Auth, auth.RBAC)
	router.Route("/v1", func(r chi.Router) {
		r.Route("/tests", func(r chi.Router) {
			r.Get("/", echoEmail)
			r.Post("/", echoEmail)
		})
		r.Get("/appointments/mine", echoEmail)
		r.Get("/admin/refunds", echoEmail)
	})

	return router, jwtService
}

func bearer(t *testing.T, svc jwt.JWT, email, role string) string {
	t.Helper()

	pair, err := svc.GenerateTokenPair("u-1", email, role)
	require.NoError(t, err)

	return "Bearer " + pair.AccessToken
}

func TestAuth(t *testing.T) {
	router, svc := newAuthRouter(t)

	testCases := []struct {
		name   string
		method string
		path   string
		token  string
		apiKey string
		code   int
		body   string
	}{
		{name: "public catalogue without token", method: http.MethodGet, path: "/v1/tests", code: http.StatusOK},
		{name: "customer route without token", method: http.MethodGet, path: "/v1/appointments/mine", code: http.StatusUnauthorized},
		{name: "customer route with garbage token", method: http.MethodGet, path: "/v1/appointments/mine", token: "Bearer nope", code: http.StatusUnauthorized},
		{name: "customer route with user token", method: http.MethodGet, path: "/v1/appointments/mine", token: bearer(t, svc, "ann@lab.test", constant.RoleUser), code: http.StatusOK, body: "ann@lab.test"},
		{name: "admin route with user token", method: http.MethodGet, path: "/v1/admin/refunds", token: bearer(t, svc, "ann@lab.test", constant.RoleUser), code: http.StatusForbidden},
		{name: "admin route with admin token", method: http.MethodGet, path: "/v1/admin/refunds", token: bearer(t, svc, "root@lab.test", constant.RoleAdmin), code: http.StatusOK, body: "root@lab.test"},
		{name: "admin write with user token", method: http.MethodPost, path: "/v1/tests", token: bearer(t, svc, "ann@lab.test", constant.RoleUser), code: http.StatusForbidden},
		{name: "internal api key bypasses auth", method: http.MethodGet, path: "/v1/admin/refunds", apiKey: "internal-key", code: http.StatusOK},
		{name: "wrong api key", method: http.MethodGet, path: "/v1/admin/refunds", apiKey: "guess", code: http.StatusForbidden},
		{name: "unknown route", method: http.MethodGet, path: "/v1/nope", code: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequestWithContext(context.Background(), tc.method, tc.path, nil)
			if tc.token != "" {
				req.Header.Set("Authorization", tc.token)
			}

			if tc.apiKey != "" {
				req.Header.Set("X-API-Key", tc.apiKey)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.code, rec.Code)

			if tc.body != "" {
				assert.Equal(t, tc.body, rec.Body.String())
			}
		})
	}
}
