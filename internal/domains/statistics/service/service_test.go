package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"labbook/config"
	"labbook/infras/otel/mocks"
	appointmentMocks "labbook/internal/domains/appointment/mocks"
	"labbook/internal/domains/statistics/model/dto"
	"labbook/internal/domains/statistics/service"
	testMocks "labbook/internal/domains/test/mocks"
	testModel "labbook/internal/domains/test/model"
	cacheMocks "labbook/shared/cache/mocks"
	gDto "labbook/shared/dto"
)

type fixture struct {
	tests        *testMocks.MockTest
	appointments *appointmentMocks.MockAppointment
	cancelled    *appointmentMocks.MockCancelled
	cache        *cacheMocks.MockRedisCache
	service      service.Statistics
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.MostBookedLimit = 10

	f := fixture{
		tests:        testMocks.NewMockTest(ctrl),
		appointments: appointmentMocks.NewMockAppointment(ctrl),
		cancelled:    appointmentMocks.NewMockCancelled(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
	}
	f.service = service.New(f.tests, f.appointments, f.cancelled, cfg, f.cache, mocks.NewOtel())

	return f
}

func TestStatisticsService_MostBooked(t *testing.T) {
	t.Run("ordered by booking count", func(t *testing.T) {
		f := newFixture(t)

		f.tests.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]testModel.Test, error) {
				assert.Equal(t, testModel.FieldDataCount, params.SortBy)
				assert.Equal(t, gDto.SortDirDesc, params.SortDir)
				assert.Equal(t, 10, params.Limit)

				return []testModel.Test{
					{ID: "t-9", Title: "Thyroid", Price: decimal.NewFromInt(40), DataCount: 9},
					{ID: "t-5", Title: "CBC", Price: decimal.NewFromInt(15), DataCount: 5},
				}, nil
			})

		res, err := f.service.MostBooked(context.Background(), 0)

		require.NoError(t, err)
		require.Len(t, res, 2)
		assert.Equal(t, 9, res[0].BookingCount)
		assert.Equal(t, 5, res[1].BookingCount)
		assert.Equal(t, "Thyroid", res[0].Title)
	})

	t.Run("empty catalogue", func(t *testing.T) {
		f := newFixture(t)

		f.tests.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.service.MostBooked(context.Background(), 3)

		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("storage error", func(t *testing.T) {
		f := newFixture(t)

		f.tests.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

		_, err := f.service.MostBooked(context.Background(), 3)

		assert.Error(t, err)
	})
}

func TestStatisticsService_StatusCounts(t *testing.T) {
	tests := []struct {
		name   string
		counts map[string]int
		want   dto.StatusCountsResponse
	}{
		{
			name:   "both statuses present",
			counts: map[string]int{"delivered": 2, "pending": 3},
			want:   dto.StatusCountsResponse{CompletedCount: 2, PendingCount: 3},
		},
		{
			name:   "no appointments",
			counts: map[string]int{},
			want:   dto.StatusCountsResponse{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.appointments.EXPECT().CountByStatus(gomock.Any()).Return(tt.counts, nil)

			res, err := f.service.StatusCounts(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.want, res)
		})
	}
}

func TestStatisticsService_Summary(t *testing.T) {
	t.Run("cache hit", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "statistics:summary", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res, ok := value.(*dto.SummaryResponse)
				require.True(t, ok)
				res.PendingCount = 7

				return nil
			})

		res, err := f.service.Summary(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 7, res.PendingCount)
	})

	t.Run("cache miss aggregates and saves", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "statistics:summary", gomock.Any()).Return(errors.New("miss"))
		f.tests.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]testModel.Test{{ID: "t-9", DataCount: 9}}, nil)
		f.appointments.EXPECT().CountByStatus(gomock.Any()).Return(map[string]int{"delivered": 2, "pending": 3}, nil)
		f.cancelled.EXPECT().Count(gomock.Any(), gomock.Any()).Return(4, nil)
		f.cache.EXPECT().Save(gomock.Any(), "statistics:summary", gomock.Any(), 3600).Return(nil)

		res, err := f.service.Summary(context.Background())
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 2, res.CompletedCount)
		assert.Equal(t, 3, res.PendingCount)
		assert.Equal(t, 4, res.CancelledCount)
		assert.Len(t, res.MostBooked, 1)
	})
}
