package banner

import (
	"net/http"

	"labbook/infras/otel"
	"labbook/internal/domains/banner/model"
	"labbook/internal/domains/banner/model/dto"
	"labbook/internal/domains/banner/service"
	"labbook/shared"
	"labbook/shared/constant"
	gDto "labbook/shared/dto"
	"labbook/shared/validator"
	"labbook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Banner
	otel    otel.Otel
}

func New(service service.Banner, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/banners", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetBanners)
		routerGroup.Get("/active", handler.GetActiveBanner)
		routerGroup.Post("/", handler.CreateBanner)
		routerGroup.Patch("/{id}/activate", handler.ActivateBanner)
		routerGroup.Delete("/{id}", handler.DeleteBanner)
	})
}

// GetBanners lists banners.
// @Summary Get all banners
// @Tags Banner
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param coupon query string false "Filter by coupon code"
// @Param is_active query bool false "Filter by activation state"
// @Success 200 {object} response.Data[dto.GetBannersResponse]
// @Failure 500 {object} response.Error
// @Router /v1/banners [get]
func (handler *Handler) GetBanners(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBanners")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	shared.AppendEq(&filter, model.FieldCoupon, r.URL.Query().Get(model.FieldCoupon), model.TableName)

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldIsActive)); active != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldIsActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	res, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get banners")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetActiveBanner returns the banner currently shown to customers.
// @Summary Get active banner
// @Tags Banner
// @Produce json
// @Success 200 {object} response.Data[dto.BannerResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/banners/active [get]
func (handler *Handler) GetActiveBanner(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActiveBanner")
	defer scope.End()

	res, err := handler.service.GetActive(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get active banner")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CreateBanner creates an inactive banner.
// @Summary Create a banner
// @Tags Banner
// @Accept json
// @Produce json
// @Param request body dto.CreateBannerRequest true "Create Banner Request"
// @Success 201 {object} response.Data[dto.BannerResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/banners [post]
// @Security BearerAuth
func (handler *Handler) CreateBanner(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBanner")
	defer scope.End()

	req := dto.CreateBannerRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create banner")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// ActivateBanner makes one banner the only active one.
// @Summary Activate a banner
// @Tags Banner
// @Produce json
// @Param id path string true "Banner ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/banners/{id}/activate [patch]
// @Security BearerAuth
func (handler *Handler) ActivateBanner(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ActivateBanner")
	defer scope.End()

	if err := handler.service.Activate(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to activate banner")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Banner activated successfully")
}

// DeleteBanner removes a banner.
// @Summary Delete a banner
// @Tags Banner
// @Produce json
// @Param id path string true "Banner ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/banners/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBanner(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBanner")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete banner")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Banner deleted successfully")
}
