package test_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"labbook/infras/otel/mocks"
	testMocks "labbook/internal/domains/test/mocks"
	"labbook/internal/domains/test/model/dto"
	handler "labbook/internal/handlers/test"
	gDto "labbook/shared/dto"
	"labbook/shared/failure"
)

func setup(t *testing.T) (*testMocks.MockTestService, http.Handler) {
	t.Helper()

	svc := testMocks.NewMockTestService(gomock.NewController(t))
	h := handler.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	h.Router(router)

	return svc, router
}

func TestGetTests_FiltersByTitle(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTestsResponse, error) {
			assert.Equal(t, 2, params.Page)

			_, args := filter.GetWhereClause()
			assert.Equal(t, "%lipid%", args["title"])

			return dto.GetTestsResponse{TotalData: 1, Tests: []dto.TestResponse{{ID: "t-1"}}}, nil
		})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tests?page=2&title=lipid", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"t-1"`)
}

func TestGetFeaturedTests(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Featured(gomock.Any()).Return([]dto.TestResponse{{ID: "t-9"}, {ID: "t-5"}}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tests/featured", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"t-9"`)
}

func TestGetTestByID_NotFound(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Get(gomock.Any(), "missing").Return(dto.TestResponse{}, failure.NotFound("test not found"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tests/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "test not found")
}

func TestCreateTest(t *testing.T) {
	t.Run("json body", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req dto.CreateTestRequest) error {
				assert.Equal(t, "CBC", req.Title)
				assert.True(t, req.Price.Equal(decimal.NewFromInt(15)))
				assert.Equal(t, 10, req.Slot)

				return nil
			})

		req := httptest.NewRequest(http.MethodPost, "/tests", strings.NewReader(`{"title":"CBC","price":"15","slot":10}`))
		req.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("multipart form", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req dto.CreateTestRequest) error {
				assert.Equal(t, "Thyroid", req.Title)
				assert.Equal(t, 3, req.Slot)
				assert.Nil(t, req.Image)

				return nil
			})

		var body bytes.Buffer
		form := multipart.NewWriter(&body)
		require.NoError(t, form.WriteField("title", "Thyroid"))
		require.NoError(t, form.WriteField("price", "40.50"))
		require.NoError(t, form.WriteField("slot", "3"))
		require.NoError(t, form.Close())

		req := httptest.NewRequest(http.MethodPost, "/tests", &body)
		req.Header.Set("Content-Type", form.FormDataContentType())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("json body cannot carry an image header", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req dto.CreateTestRequest) error {
				assert.Nil(t, req.Image)
				assert.Nil(t, req.ImageFile)

				return nil
			})

		body := `{"title":"CBC","price":"15","slot":10,"image":{"Filename":"cbc.png","Header":{"Content-Type":["image/png"]},"Size":1}}`
		req := httptest.NewRequest(http.MethodPost, "/tests", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("negative slot rejected", func(t *testing.T) {
		_, router := setup(t)

		req := httptest.NewRequest(http.MethodPost, "/tests", strings.NewReader(`{"title":"CBC","price":"15","slot":-1}`))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateTest(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Update(gomock.Any(), gomock.Any(), "t-1").
		DoAndReturn(func(_ context.Context, req dto.UpdateTestRequest, _ string) error {
			require.NotNil(t, req.Slot)
			assert.Equal(t, 0, *req.Slot)

			return nil
		})

	req := httptest.NewRequest(http.MethodPatch, "/tests/t-1", strings.NewReader(`{"slot":0}`))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteTest_Conflict(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Delete(gomock.Any(), "t-1").Return(failure.Conflict("test has appointments"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/tests/t-1", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
}
