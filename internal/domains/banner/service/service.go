package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Banner=MockBannerService

import (
	"context"
	"fmt"

	"labbook/config"
	"labbook/infras/otel"
	"labbook/infras/postgres"
	"labbook/infras/s3"
	"labbook/internal/domains/banner/model"
	"labbook/internal/domains/banner/model/dto"
	"labbook/internal/domains/banner/repository"
	"labbook/internal/domains/pricing"
	"labbook/shared"
	"labbook/shared/base64"
	"labbook/shared/cache"
	"labbook/shared/constant"
	gDto "labbook/shared/dto"
	"labbook/shared/failure"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllBanner = model.CachePrefix + "gets"
	cacheCountBanner  = model.CachePrefix + "count"
	cacheActiveBanner = model.CachePrefix + "active"
)

type Banner interface {
	Create(ctx context.Context, req dto.CreateBannerRequest) (dto.BannerResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBannersResponse, error)
	GetActive(ctx context.Context) (dto.BannerResponse, error)
	Activate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	// FindCoupon resolves a coupon code against the active banner. It returns nil when the code does not apply.
	FindCoupon(ctx context.Context, code string) (*pricing.Coupon, error)
}

type serviceImpl struct {
	repo       repository.Banner
	transactor postgres.Transactor
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	s3         s3.S3
}

func New(repo repository.Banner, transactor postgres.Transactor, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Banner {
	return &serviceImpl{
		repo:       repo,
		transactor: transactor,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		s3:         s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBannerRequest) (res dto.BannerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".banner.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	imageURL, err := s.storeImage(ctx, req.Image)
	if err != nil {
		return res, err
	}

	banner := req.ToModel(user, imageURL)
	if err = s.repo.Insert(ctx, banner); err != nil {
		log.Error().Err(err).Msg("failed to create banner")

		return res, fmt.Errorf("failed to create banner: %w", err)
	}

	res.FromModel(banner)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBanner)
		shared.InvalidateCaches(c, s.cache, cacheCountBanner)
	}()

	return res, nil
}

// storeImage uploads data URIs to S3 and passes plain URLs through.
func (s *serviceImpl) storeImage(ctx context.Context, image string) (string, error) {
	if !base64.IsDataURI(image) {
		return image, nil
	}

	contentType, data, err := base64.Decode(image)
	if err != nil {
		return constant.Empty, failure.BadRequest(err)
	}

	url, err := s.s3.UploadFileBytes(ctx, model.EntityName, uuid.NewString()+base64.Extension(contentType), contentType, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload banner image")

		return constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBannersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".banner.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBanner, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for banners")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count banners")

		return res, fmt.Errorf("failed to count banners: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get banners")

		return res, fmt.Errorf("failed to get banners: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save banners to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetActive(ctx context.Context) (res dto.BannerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".banner.GetActive")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheActiveBanner, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheActiveBanner).Msg("cache hit for active banner")

		return res, nil
	}

	banner, err := s.repo.Get(ctx, shared.FilterByField(model.FieldIsActive, true, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get active banner")

		return res, fmt.Errorf("failed to get active banner: %w", err)
	}

	if banner.ID == constant.Empty {
		return res, failure.NotFound("no active banner")
	}

	res.FromModel(banner)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheActiveBanner, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save active banner to cache")
		}
	}()

	return res, nil
}

// Activate switches the single active banner to id in one transaction.
func (s *serviceImpl) Activate(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".banner.Activate")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		found, err := s.repo.Activate(ctx, tx, id, user)
		if err != nil {
			return err
		}

		if !found {
			return failure.NotFound("banner not found")
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("bannerID", id).Msg("failed to activate banner")

		return err
	}

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, model.CachePrefix)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".banner.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	banner, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check banner existence")

		return fmt.Errorf("failed to get banner: %w", err)
	}

	if banner.ID == constant.Empty {
		return failure.NotFound("banner not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete banner")

		return fmt.Errorf("failed to delete banner: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if objectKey := s.s3.GetObjectKeyFromURL(banner.Image); objectKey != constant.Empty {
			if err := s.s3.DeleteFile(c, objectKey); err != nil {
				log.Error().Err(err).Str("objectKey", objectKey).Msg("failed to delete banner image")
			}
		}

		shared.InvalidateCaches(c, s.cache, model.CachePrefix)
	}()

	return nil
}

func (s *serviceImpl) FindCoupon(ctx context.Context, code string) (coupon *pricing.Coupon, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".banner.FindCoupon")
	defer scope.End()
	defer scope.TraceIfError(err)

	if code == constant.Empty {
		return nil, nil
	}

	filter := shared.FilterByField(model.FieldCoupon, code, model.TableName)
	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    model.FieldIsActive,
		Operator: gDto.FilterOperatorEq,
		Value:    true,
		Table:    model.TableName,
	})

	banner, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to look up coupon")

		return nil, fmt.Errorf("failed to look up coupon: %w", err)
	}

	if banner.ID == constant.Empty {
		return nil, nil
	}

	return banner.ToCoupon(), nil
}
