package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Test=MockTestService

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"labbook/config"
	"labbook/infras/otel"
	"labbook/infras/s3"
	"labbook/internal/domains/test/model"
	"labbook/internal/domains/test/model/dto"
	"labbook/internal/domains/test/repository"
	"labbook/shared"
	"labbook/shared/cache"
	"labbook/shared/constant"
	gDto "labbook/shared/dto"
	"labbook/shared/failure"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetTest      = model.CachePrefix + "get"
	cacheGetAllTest   = model.CachePrefix + "gets"
	cacheCountTest    = model.CachePrefix + "count"
	cacheFeaturedTest = model.CachePrefix + "featured"
)

type Test interface {
	Create(ctx context.Context, req dto.CreateTestRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTestsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.TestResponse, error)
	Featured(ctx context.Context) ([]dto.TestResponse, error)
	Update(ctx context.Context, req dto.UpdateTestRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Test
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Test, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Test {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTestRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".test.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = checkImage(req.Image, req.ImageFile); err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	imageURL := constant.Empty
	if req.Image != nil {
		imageURL, err = s.s3.UploadFile(ctx, model.EntityName, req.ImageFile, req.Image, shared.NewObjectName(req.Image.Filename))
		if err != nil {
			log.Error().Err(err).Msg("failed to upload test image")

			return fmt.Errorf("failed to upload image: %w", err)
		}
	}

	if err = s.repo.Insert(ctx, req.ToModel(user, imageURL)); err != nil {
		log.Error().Err(err).Msg("failed to create test")

		if imageURL != constant.Empty {
			s.deleteImage(ctx, imageURL)
		}

		return fmt.Errorf("failed to create test: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllTest)
		shared.InvalidateCaches(c, s.cache, cacheCountTest)
		shared.InvalidateCaches(c, s.cache, cacheFeaturedTest)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".test.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTest, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for tests")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count tests")

		return res, fmt.Errorf("failed to count tests: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tests")

		return res, fmt.Errorf("failed to get tests: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tests to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".test.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountTest, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for test count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count tests")

		return res, fmt.Errorf("failed to count tests: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save test count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".test.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetTest, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for test")

		return res, nil
	}

	test, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get test")

		return res, fmt.Errorf("failed to get test: %w", err)
	}

	if test.ID == constant.Empty {
		return res, failure.NotFound("test not found") // nolint:wrapcheck
	}

	res.FromModel(test)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save test to cache")
		}
	}()

	return res, nil
}

// Featured lists bookable tests, most booked first.
func (s *serviceImpl) Featured(ctx context.Context) (res []dto.TestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".test.Featured")
	defer scope.End()
	defer scope.TraceIfError(err)

	limit := s.cfg.Booking.FeaturedLimit
	cacheKey := shared.BuildCacheKey(cacheFeaturedTest, fmt.Sprint(limit))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for featured tests")

		return res, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldSlot,
				Operator: gDto.FilterOperatorGreater,
				Value:    0,
				Table:    model.TableName,
			},
		},
	}
	params := gDto.QueryParams{
		Limit:   limit,
		SortBy:  model.FieldDataCount,
		SortDir: gDto.SortDirDesc,
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get featured tests")

		return res, fmt.Errorf("failed to get featured tests: %w", err)
	}

	res = dto.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save featured tests to cache")
		}
	}()

	return res, nil
}

// Update edits catalogue data and the remaining slot count of a test.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTestRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".test.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsEmpty() {
		return failure.BadRequestFromString("at least one field must be provided")
	}

	if req.Price != nil && !req.Price.IsPositive() {
		return failure.BadRequestFromString("price must be greater than 0")
	}

	if err = checkImage(req.Image, req.ImageFile); err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check test existence")

		return fmt.Errorf("failed to get test: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("test not found")
	}

	if req.Image != nil {
		req.ImageURL, err = s.s3.UploadFile(ctx, model.EntityName, req.ImageFile, req.Image, shared.NewObjectName(req.Image.Filename))
		if err != nil {
			log.Error().Err(err).Msg("failed to upload test image")

			return fmt.Errorf("failed to upload image: %w", err)
		}
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update test")

		if req.ImageURL != constant.Empty {
			s.deleteImage(ctx, req.ImageURL)
		}

		return fmt.Errorf("failed to update test: %w", err)
	}

	if req.ImageURL != constant.Empty && current.Image != constant.Empty {
		s.deleteImage(ctx, current.Image)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, model.CachePrefix)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixStatistics)
	}()

	return nil
}

// Delete removes a test. Tests that still have appointments are kept.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".test.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check test existence")

		return fmt.Errorf("failed to get test: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("test not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeFkViolation {
			return failure.Conflict("test has appointments and cannot be deleted")
		}

		log.Error().Err(err).Msg("failed to delete test")

		return fmt.Errorf("failed to delete test: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if current.Image != constant.Empty {
			s.deleteImage(c, current.Image)
		}

		shared.InvalidateCaches(c, s.cache, model.CachePrefix)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixStatistics)
	}()

	return nil
}

// checkImage rejects an image header that arrived without its multipart content.
func checkImage(header *multipart.FileHeader, file multipart.File) error {
	if header != nil && file == nil {
		return failure.BadRequestFromString("image must be uploaded as multipart form data")
	}

	return nil
}

func (s *serviceImpl) deleteImage(ctx context.Context, url string) {
	objectKey := s.s3.GetObjectKeyFromURL(url)
	if objectKey == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, objectKey); err != nil {
		log.Error().Err(err).Str("objectKey", objectKey).Msg("failed to delete test image")
	}
}
