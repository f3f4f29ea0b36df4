package appointment_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"labbook/infras/otel/mocks"
	appointmentMocks "labbook/internal/domains/appointment/mocks"
	"labbook/internal/domains/appointment/model/dto"
	handler "labbook/internal/handlers/appointment"
	"labbook/shared/constant"
	gDto "labbook/shared/dto"
	"labbook/shared/failure"
)

func setup(t *testing.T) (*appointmentMocks.MockAppointmentService, http.Handler) {
	t.Helper()

	svc := appointmentMocks.NewMockAppointmentService(gomock.NewController(t))
	h := handler.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	h.Router(router)

	return svc, router
}

func asCustomer(r *http.Request, email string) *http.Request {
	ctx := context.WithValue(r.Context(), constant.ContextKeyUserEmail, email)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleUser)

	return r.WithContext(ctx)
}

func TestBookAppointment(t *testing.T) {
	body := `{"service_id":"7b0c6c1e-4f4e-4b8a-9d0e-2c1f1d2a3b4c","name":"Ann","date":"2026-11-02","time":"09:30","price":"100.00","coupon":"SAVE20"}`

	t.Run("booked", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req dto.CreateAppointmentRequest) (dto.AppointmentResponse, error) {
				assert.Equal(t, "SAVE20", req.Coupon)
				assert.Equal(t, "100", req.Price.String())

				return dto.AppointmentResponse{ID: "a-1", Status: "pending"}, nil
			})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, asCustomer(httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body)), "ann@lab.test"))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"a-1"`)
	})

	t.Run("slot exhausted", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.AppointmentResponse{}, failure.SlotExhausted("no slots left"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, asCustomer(httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body)), "ann@lab.test"))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("malformed date", func(t *testing.T) {
		_, router := setup(t)

		bad := strings.Replace(body, "2026-11-02", "02/11/2026", 1)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, asCustomer(httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(bad)), "ann@lab.test"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetMyAppointments(t *testing.T) {
	t.Run("scoped to caller", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAppointmentsResponse, error) {
				where, args := filter.GetWhereClause()
				assert.Contains(t, where, "appointments.email")
				assert.Equal(t, "ann@lab.test", args["email"])
				assert.Equal(t, "pending", args["status"])

				return dto.GetAppointmentsResponse{TotalData: 1}, nil
			})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, asCustomer(httptest.NewRequest(http.MethodGet, "/appointments/mine?status=pending", nil), "ann@lab.test"))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("no identity never lists", func(t *testing.T) {
		_, router := setup(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/appointments/mine", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetMyRefunds(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().GetCancelled(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCancelledAppointmentsResponse, error) {
			where, args := filter.GetWhereClause()
			assert.Contains(t, where, "cancelled_appointments.email")
			assert.Equal(t, "ann@lab.test", args["email"])

			return dto.GetCancelledAppointmentsResponse{}, nil
		})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, asCustomer(httptest.NewRequest(http.MethodGet, "/appointments/cancelled/mine", nil), "ann@lab.test"))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCancelAppointment(t *testing.T) {
	t.Run("customer route", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().Cancel(gomock.Any(), "a-1").Return(dto.CancelledAppointmentResponse{ID: "c-1", Status: "refund pending"}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, asCustomer(httptest.NewRequest(http.MethodDelete, "/appointments/a-1", nil), "ann@lab.test"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"refund pending"`)
	})

	t.Run("admin route on delivered appointment", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().Cancel(gomock.Any(), "a-2").Return(dto.CancelledAppointmentResponse{}, failure.Conflict("delivered appointments cannot be cancelled"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/admin/reservations/a-2", nil))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestGetReservations_Filters(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAppointmentsResponse, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, "t-1", args["service_id"])
			assert.Equal(t, "delivered", args["status"])
			assert.NotContains(t, args, "email")

			return dto.GetAppointmentsResponse{}, nil
		})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/reservations?service_id=t-1&status=delivered", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMarkDelivered(t *testing.T) {
	t.Run("json link", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().MarkDelivered(gomock.Any(), "a-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, req dto.MarkDeliveredRequest) error {
				assert.Equal(t, "https://results.lab.test/a-1.pdf", req.Link)
				assert.Nil(t, req.Report)

				return nil
			})

		body := `{"link":"https://results.lab.test/a-1.pdf"}`

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/admin/reservations/a-1/deliver", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("multipart report", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().MarkDelivered(gomock.Any(), "a-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, req dto.MarkDeliveredRequest) error {
				require.NotNil(t, req.Report)
				assert.Equal(t, "result.pdf", req.Report.Filename)
				assert.NotNil(t, req.ReportFile)

				return nil
			})

		buf := &bytes.Buffer{}
		writer := multipart.NewWriter(buf)

		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="report"; filename="result.pdf"`)
		header.Set("Content-Type", "application/pdf")

		part, err := writer.CreatePart(header)
		require.NoError(t, err)

		_, err = part.Write([]byte("%PDF-1.4"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPatch, "/admin/reservations/a-1/deliver", buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("json body cannot carry a report header", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().MarkDelivered(gomock.Any(), "a-2", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, req dto.MarkDeliveredRequest) error {
				assert.Nil(t, req.Report)
				assert.Nil(t, req.ReportFile)

				return failure.BadRequestFromString("either link or report is required")
			})

		body := `{"report":{"Filename":"r.pdf","Header":{"Content-Type":["application/pdf"]},"Size":1}}`

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/admin/reservations/a-2/deliver", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("already delivered", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().MarkDelivered(gomock.Any(), "a-3", gomock.Any()).Return(failure.Conflict("appointment already delivered"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/admin/reservations/a-3/deliver", strings.NewReader(`{"link":"https://results.lab.test/a-3.pdf"}`)))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestGetRefunds(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().GetCancelled(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCancelledAppointmentsResponse, error) {
			where, _ := filter.GetWhereClause()
			assert.Empty(t, where)

			return dto.GetCancelledAppointmentsResponse{TotalData: 3}, nil
		})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/refunds", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_data":3`)
}
