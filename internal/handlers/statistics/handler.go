package statistics

import (
	"net/http"

	"labbook/infras/otel"
	"labbook/internal/domains/statistics/model/dto"
	"labbook/internal/domains/statistics/service"
	"labbook/shared"
	"labbook/shared/constant"
	"labbook/shared/failure"
	"labbook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Statistics
	otel    otel.Otel
}

func New(service service.Statistics, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/admin/statistics", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetSummary)
		routerGroup.Get("/most-booked", handler.GetMostBooked)
		routerGroup.Get("/status", handler.GetStatusCounts)
	})
}

// GetSummary returns every dashboard figure in one response.
// @Summary Get booking statistics
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Data[dto.SummaryResponse]
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/statistics [get]
// @Security BearerAuth
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSummary")
	defer scope.End()

	res, err := handler.service.Summary(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get statistics summary")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetMostBooked ranks tests by booking count.
// @Summary Get most booked tests
// @Tags Admin
// @Produce json
// @Param limit query int false "Number of tests"
// @Success 200 {object} response.Data[[]dto.MostBookedResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/statistics/most-booked [get]
// @Security BearerAuth
func (handler *Handler) GetMostBooked(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMostBooked")
	defer scope.End()

	var (
		res   []dto.MostBookedResponse
		err   error
		limit int
	)

	if value := r.URL.Query().Get(constant.RequestParamLimit); value != constant.Empty {
		parsed, parseErr := shared.ConvertStringToInt(value)
		if parseErr != nil {
			scope.TraceError(parseErr)

			response.WithError(w, failure.BadRequestFromString("limit must be an integer"))

			return
		}

		limit = parsed
	}

	res, err = handler.service.MostBooked(ctx, limit)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get most booked tests")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetStatusCounts returns completed and pending appointment counts.
// @Summary Get appointment status counts
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Data[dto.StatusCountsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/admin/statistics/status [get]
// @Security BearerAuth
func (handler *Handler) GetStatusCounts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStatusCounts")
	defer scope.End()

	res, err := handler.service.StatusCounts(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get status counts")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
