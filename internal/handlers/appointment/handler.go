package appointment

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"labbook/infras/otel"
	"labbook/internal/domains/appointment/model"
	"labbook/internal/domains/appointment/model/dto"
	"labbook/internal/domains/appointment/service"
	"labbook/shared"
	"labbook/shared/constant"
	gDto "labbook/shared/dto"
	"labbook/shared/failure"
	"labbook/shared/validator"
	"labbook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const formReport = "report"

type Handler struct {
	service service.Appointment
	otel    otel.Otel
}

func New(service service.Appointment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/appointments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.BookAppointment)
		routerGroup.Get("/mine", handler.GetMyAppointments)
		routerGroup.Get("/cancelled/mine", handler.GetMyRefunds)
		routerGroup.Get("/{id}", handler.GetAppointmentByID)
		routerGroup.Delete("/{id}", handler.CancelAppointment)
	})

	router.Route("/admin/reservations", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetReservations)
		routerGroup.Delete("/{id}", handler.CancelAppointment)
		routerGroup.Patch("/{id}/deliver", handler.MarkDelivered)
	})

	router.Get("/admin/refunds", handler.GetRefunds)
}

// BookAppointment reserves one slot of a test for the caller.
// @Summary Book an appointment
// @Tags Appointment
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Create Appointment Request"
// @Success 201 {object} response.Data[dto.AppointmentResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments [post]
// @Security BearerAuth
func (handler *Handler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BookAppointment")
	defer scope.End()

	req := dto.CreateAppointmentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to book appointment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// GetMyAppointments lists the caller's appointments.
// @Summary Get my appointments
// @Tags Appointment
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status" Enums(pending, delivered)
// @Success 200 {object} response.Data[dto.GetAppointmentsResponse]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyAppointments")
	defer scope.End()

	filter, err := callerFilter(r, model.TableName)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	shared.AppendEq(&filter, model.FieldStatus, r.URL.Query().Get(model.FieldStatus), model.TableName)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetMyRefunds lists refunds recorded for the caller's cancelled appointments.
// @Summary Get my refunds
// @Tags Appointment
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetCancelledAppointmentsResponse]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/cancelled/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyRefunds(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyRefunds")
	defer scope.End()

	filter, err := callerFilter(r, model.CancelledTableName)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.GetCancelled(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get refunds")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetAppointmentByID returns one appointment. Customers only see their own.
// @Summary Get appointment by ID
// @Tags Appointment
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.AppointmentResponse]
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAppointmentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointmentByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CancelAppointment cancels a pending appointment and records a refund.
// Customers reach it through /appointments/{id}, admins through /admin/reservations/{id}.
// @Summary Cancel an appointment
// @Tags Appointment
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.CancelledAppointmentResponse]
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id} [delete]
// @Router /v1/admin/reservations/{id} [delete]
// @Security BearerAuth
func (handler *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelAppointment")
	defer scope.End()

	res, err := handler.service.Cancel(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel appointment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetReservations lists appointments for the admin dashboard.
// @Summary Get reservations
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param service_id query string false "Filter by test ID"
// @Param email query string false "Filter by customer email"
// @Param status query string false "Filter by status" Enums(pending, delivered)
// @Success 200 {object} response.Data[dto.GetAppointmentsResponse]
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/reservations [get]
// @Security BearerAuth
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	query := r.URL.Query()

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	shared.AppendEq(&filter, model.FieldServiceID, query.Get(model.FieldServiceID), model.TableName)
	shared.AppendEq(&filter, model.FieldEmail, query.Get(model.FieldEmail), model.TableName)
	shared.AppendEq(&filter, model.FieldStatus, query.Get(model.FieldStatus), model.TableName)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// MarkDelivered attaches the test result to a pending appointment.
// @Summary Mark a reservation delivered
// @Tags Admin
// @Accept json,mpfd
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.MarkDeliveredRequest false "Result link"
// @Param report formData file false "Result report"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/reservations/{id}/deliver [patch]
// @Security BearerAuth
func (handler *Handler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkDelivered")
	defer scope.End()

	req := dto.MarkDeliveredRequest{}

	var err error
	if isMultipart(r) {
		err = parseDeliverForm(r, &req)
	} else {
		err = validator.Validate(r.Body, &req)
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if req.ReportFile != nil {
		defer req.ReportFile.Close()
	}

	if err = handler.service.MarkDelivered(ctx, chi.URLParam(r, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to mark appointment delivered")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Appointment delivered successfully")
}

// GetRefunds lists every recorded refund.
// @Summary Get refunds
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param email query string false "Filter by customer email"
// @Success 200 {object} response.Data[dto.GetCancelledAppointmentsResponse]
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/refunds [get]
// @Security BearerAuth
func (handler *Handler) GetRefunds(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRefunds")
	defer scope.End()

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	shared.AppendEq(&filter, model.FieldEmail, r.URL.Query().Get(model.FieldEmail), model.CancelledTableName)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.GetCancelled(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get refunds")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// callerFilter scopes a listing to the email carried by the access token.
func callerFilter(r *http.Request, table string) (gDto.FilterGroup, error) {
	email, _ := r.Context().Value(constant.ContextKeyUserEmail).(string)
	if email == constant.Empty {
		return gDto.FilterGroup{}, failure.Unauthorized("missing customer identity")
	}

	return shared.FilterByField(model.FieldEmail, email, table), nil
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get(constant.RequestHeaderContentType), constant.ContentTypeMultipartFormData)
}

func parseDeliverForm(r *http.Request, req *dto.MarkDeliveredRequest) error {
	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return failure.BadRequest(err)
	}

	req.Link = r.FormValue(model.FieldLink)

	file, header, err := r.FormFile(formReport)
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		return failure.BadRequest(fmt.Errorf("invalid report: %w", err))
	default:
		req.Report = header
		req.ReportFile = file
	}

	return validator.ValidateStruct(req)
}
