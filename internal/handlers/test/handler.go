package test

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"labbook/infras/otel"
	"labbook/internal/domains/test/model"
	"labbook/internal/domains/test/model/dto"
	"labbook/internal/domains/test/service"
	"labbook/shared"
	"labbook/shared/constant"
	gDto "labbook/shared/dto"
	"labbook/shared/failure"
	"labbook/shared/validator"
	"labbook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const formImage = "image"

type Handler struct {
	service service.Test
	otel    otel.Otel
}

func New(service service.Test, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tests", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTests)
		routerGroup.Get("/featured", handler.GetFeaturedTests)
		routerGroup.Get("/{id}", handler.GetTestByID)
		routerGroup.Post("/", handler.CreateTest)
		routerGroup.Patch("/{id}", handler.UpdateTest)
		routerGroup.Delete("/{id}", handler.DeleteTest)
	})
}

// GetTests lists the test catalogue.
// @Summary Get all tests
// @Tags Test
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param title query string false "Filter by title"
// @Success 200 {object} response.Data[dto.GetTestsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/tests [get]
func (handler *Handler) GetTests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTests")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	shared.AppendLike(&filter, model.FieldTitle, r.URL.Query().Get(model.FieldTitle), model.TableName)

	res, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tests")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetFeaturedTests lists the most booked tests that still have slots.
// @Summary Get featured tests
// @Tags Test
// @Produce json
// @Success 200 {object} response.Data[[]dto.TestResponse]
// @Failure 500 {object} response.Error
// @Router /v1/tests/featured [get]
func (handler *Handler) GetFeaturedTests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFeaturedTests")
	defer scope.End()

	res, err := handler.service.Featured(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get featured tests")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetTestByID returns one test.
// @Summary Get test by ID
// @Tags Test
// @Produce json
// @Param id path string true "Test ID"
// @Success 200 {object} response.Data[dto.TestResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tests/{id} [get]
func (handler *Handler) GetTestByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTestByID")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get test")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// CreateTest adds a test to the catalogue. Accepts JSON or multipart with an image.
// @Summary Create a test
// @Tags Test
// @Accept json,mpfd
// @Produce json
// @Param request body dto.CreateTestRequest true "Create Test Request"
// @Success 201 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tests [post]
// @Security BearerAuth
func (handler *Handler) CreateTest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTest")
	defer scope.End()

	req := dto.CreateTestRequest{}

	var err error
	if isMultipart(r) {
		err = parseCreateForm(r, &req)
	} else {
		err = validator.Validate(r.Body, &req)
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if req.ImageFile != nil {
		defer req.ImageFile.Close()
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create test")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusCreated, "Test created successfully")
}

// UpdateTest edits a test and its remaining slots.
// @Summary Update test inventory
// @Tags Test
// @Accept json,mpfd
// @Produce json
// @Param id path string true "Test ID"
// @Param request body dto.UpdateTestRequest true "Update Test Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tests/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTest")
	defer scope.End()

	req := dto.UpdateTestRequest{}

	var err error
	if isMultipart(r) {
		err = parseUpdateForm(r, &req)
	} else {
		err = validator.Validate(r.Body, &req)
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if req.ImageFile != nil {
		defer req.ImageFile.Close()
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update test")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Test updated successfully")
}

// DeleteTest removes a test that has no appointments.
// @Summary Delete a test
// @Tags Test
// @Produce json
// @Param id path string true "Test ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tests/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTest")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete test")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Test deleted successfully")
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get(constant.RequestHeaderContentType), constant.ContentTypeMultipartFormData)
}

func parseCreateForm(r *http.Request, req *dto.CreateTestRequest) error {
	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return failure.BadRequest(err)
	}

	price, err := decimal.NewFromString(r.FormValue(model.FieldPrice))
	if err != nil {
		return failure.BadRequestFromString("price must be a number")
	}

	slot, err := shared.ConvertStringToInt(r.FormValue(model.FieldSlot))
	if err != nil {
		return failure.BadRequestFromString("slot must be an integer")
	}

	req.Title = r.FormValue(model.FieldTitle)
	req.Description = r.FormValue(model.FieldDescription)
	req.Price = price
	req.Slot = slot

	if req.ImageFile, req.Image, err = formFile(r); err != nil {
		return err
	}

	return validator.ValidateStruct(req)
}

func parseUpdateForm(r *http.Request, req *dto.UpdateTestRequest) error {
	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return failure.BadRequest(err)
	}

	req.Title = r.FormValue(model.FieldTitle)

	if r.MultipartForm.Value[model.FieldDescription] != nil {
		description := r.FormValue(model.FieldDescription)
		req.Description = &description
	}

	if value := r.FormValue(model.FieldPrice); value != constant.Empty {
		price, err := decimal.NewFromString(value)
		if err != nil {
			return failure.BadRequestFromString("price must be a number")
		}

		req.Price = &price
	}

	if value := r.FormValue(model.FieldSlot); value != constant.Empty {
		slot, err := strconv.Atoi(value)
		if err != nil {
			return failure.BadRequestFromString("slot must be an integer")
		}

		req.Slot = &slot
	}

	var err error
	if req.ImageFile, req.Image, err = formFile(r); err != nil {
		return err
	}

	return validator.ValidateStruct(req)
}

// formFile returns the optional image part of a parsed multipart form.
func formFile(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := r.FormFile(formImage)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}

	if err != nil {
		return nil, nil, failure.BadRequest(fmt.Errorf("invalid image: %w", err))
	}

	return file, header, nil
}
