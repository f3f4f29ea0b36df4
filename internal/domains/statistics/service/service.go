package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"labbook/config"
	"labbook/infras/otel"
	appointmentModel "labbook/internal/domains/appointment/model"
	appointmentRepo "labbook/internal/domains/appointment/repository"
	"labbook/internal/domains/statistics/model/dto"
	testModel "labbook/internal/domains/test/model"
	testRepo "labbook/internal/domains/test/repository"
	"labbook/shared/cache"
	"labbook/shared/constant"
	gDto "labbook/shared/dto"

	"github.com/rs/zerolog/log"
)

const cacheSummary = constant.CachePrefixStatistics + "summary"

// Statistics reads booking aggregates. It never writes.
type Statistics interface {
	MostBooked(ctx context.Context, limit int) ([]dto.MostBookedResponse, error)
	StatusCounts(ctx context.Context) (dto.StatusCountsResponse, error)
	Summary(ctx context.Context) (dto.SummaryResponse, error)
}

type serviceImpl struct {
	tests        testRepo.Test
	appointments appointmentRepo.Appointment
	cancelled    appointmentRepo.Cancelled
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	tests testRepo.Test,
	appointments appointmentRepo.Appointment,
	cancelled appointmentRepo.Cancelled,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Statistics {
	return &serviceImpl{
		tests:        tests,
		appointments: appointments,
		cancelled:    cancelled,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// MostBooked returns up to limit tests by booking count, highest first. A non-positive limit uses the configured one.
func (s *serviceImpl) MostBooked(ctx context.Context, limit int) (res []dto.MostBookedResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".statistics.MostBooked")
	defer scope.End()
	defer scope.TraceIfError(err)

	if limit <= 0 {
		limit = s.cfg.Booking.MostBookedLimit
	}

	tests, err := s.tests.GetAll(ctx, gDto.QueryParams{
		Limit:   limit,
		SortBy:  testModel.FieldDataCount,
		SortDir: gDto.SortDirDesc,
	}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get most booked tests")

		return nil, fmt.Errorf("failed to get most booked tests: %w", err)
	}

	return dto.MostBookedFromModels(tests), nil
}

func (s *serviceImpl) StatusCounts(ctx context.Context) (res dto.StatusCountsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".statistics.StatusCounts")
	defer scope.End()
	defer scope.TraceIfError(err)

	counts, err := s.appointments.CountByStatus(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments by status")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	res.CompletedCount = counts[appointmentModel.StatusDelivered]
	res.PendingCount = counts[appointmentModel.StatusPending]

	return res, nil
}

// Summary combines every aggregate and is cached until the next booking change.
func (s *serviceImpl) Summary(ctx context.Context) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".statistics.Summary")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheSummary, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheSummary).Msg("cache hit for statistics summary")

		return res, nil
	}

	res.MostBooked, err = s.MostBooked(ctx, 0)
	if err != nil {
		return res, err
	}

	counts, err := s.StatusCounts(ctx)
	if err != nil {
		return res, err
	}

	res.CompletedCount = counts.CompletedCount
	res.PendingCount = counts.PendingCount

	res.CancelledCount, err = s.cancelled.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count cancelled appointments")

		return res, fmt.Errorf("failed to count cancelled appointments: %w", err)
	}

	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), cacheSummary, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save statistics summary to cache")
		}
	}()

	return res, nil
}
