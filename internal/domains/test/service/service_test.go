package service_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"labbook/config"
	"labbook/infras/otel/mocks"
	s3Mocks "labbook/infras/s3/mocks"
	testMocks "labbook/internal/domains/test/mocks"
	"labbook/internal/domains/test/model"
	"labbook/internal/domains/test/model/dto"
	"labbook/internal/domains/test/service"
	cacheMocks "labbook/shared/cache/mocks"
	"labbook/shared/constant"
	gDto "labbook/shared/dto"
	"labbook/shared/failure"
)

type fixture struct {
	repo  *testMocks.MockTest
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	svc   service.Test
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.FeaturedLimit = 6

	f := fixture{
		repo:  testMocks.NewMockTest(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}
	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.s3)

	return f
}

type uploadedFile struct {
	*bytes.Reader
}

func (uploadedFile) Close() error { return nil }

func newUploadedFile(content string) multipart.File {
	return uploadedFile{bytes.NewReader([]byte(content))}
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")
}

func TestTestService_Create(t *testing.T) {
	req := dto.CreateTestRequest{Title: "CBC", Price: decimal.NewFromInt(100), Slot: 5}

	t.Run("successful creation", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m model.Test) error {
			assert.NotEmpty(t, m.ID)
			assert.Equal(t, "CBC", m.Title)
			assert.Equal(t, 5, m.Slot)
			assert.Zero(t, m.DataCount)
			assert.Equal(t, "admin-id", m.CreatedBy)

			return nil
		})
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := f.svc.Create(userContext(), req)
		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("uploaded image is removed when insert fails", func(t *testing.T) {
		f := newFixture(t)
		withImage := req
		withImage.Image = &multipart.FileHeader{Filename: "cbc.png"}
		withImage.ImageFile = newUploadedFile("png")

		f.s3.EXPECT().UploadFile(gomock.Any(), model.EntityName, gomock.Any(), withImage.Image, gomock.Any()).
			Return("https://cdn.lab.test/test/abc.png", nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
		f.s3.EXPECT().GetObjectKeyFromURL("https://cdn.lab.test/test/abc.png").Return("test/abc.png")
		f.s3.EXPECT().DeleteFile(gomock.Any(), "test/abc.png").Return(nil)

		err := f.svc.Create(userContext(), withImage)

		assert.Error(t, err)
	})

	t.Run("upload error", func(t *testing.T) {
		f := newFixture(t)
		withImage := req
		withImage.Image = &multipart.FileHeader{Filename: "cbc.png"}
		withImage.ImageFile = newUploadedFile("png")

		f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("s3 down"))

		assert.Error(t, f.svc.Create(userContext(), withImage))
	})

	t.Run("image header without content", func(t *testing.T) {
		f := newFixture(t)
		withImage := req
		withImage.Image = &multipart.FileHeader{Filename: "cbc.png", Size: 1}

		err := f.svc.Create(userContext(), withImage)

		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestTestService_GetAll(t *testing.T) {
	params := gDto.QueryParams{Page: 1, Limit: 10}

	t.Run("cache miss loads from repository", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Test{{ID: "t1"}, {ID: "t2"}}, nil)
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()

		res, err := f.svc.GetAll(context.Background(), params, gDto.FilterGroup{})
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 11, res.TotalData)
		assert.Equal(t, 2, res.TotalPage)
		assert.Len(t, res.Tests, 2)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.GetAll(context.Background(), params, gDto.FilterGroup{})

		assert.NoError(t, err)
	})

	t.Run("repository error", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("count error"))

		_, err := f.svc.GetAll(context.Background(), params, gDto.FilterGroup{})

		assert.Error(t, err)
	})
}

func TestTestService_Get(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "test:get:missing", gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Test{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Test{ID: "t1", Title: "CBC", Slot: 3}, nil)
		f.cache.EXPECT().Save(gomock.Any(), "test:get:t1", gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := f.svc.Get(context.Background(), "t1")
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "CBC", res.Title)
		assert.Equal(t, 3, res.Slot)
	})
}

func TestTestService_Featured(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), "test:featured:6", gomock.Any()).Return(errors.New("cache miss"))
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Test, error) {
			assert.Equal(t, 6, params.Limit)
			assert.Equal(t, model.FieldDataCount, params.SortBy)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			where, args := filter.GetWhereClause()
			assert.Equal(t, "(tests.slot > :slot)", where)
			assert.Equal(t, 0, args["slot"])

			return []model.Test{{ID: "a", DataCount: 9}, {ID: "b", DataCount: 5}}, nil
		})
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := f.svc.Featured(context.Background())
	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "a", res[0].ID)
}

func TestTestService_Update(t *testing.T) {
	slot := 7
	zero := decimal.Zero

	tests := []struct {
		name      string
		req       dto.UpdateTestRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name:      "empty request",
			req:       dto.UpdateTestRequest{},
			setupMock: func(fixture) {},
			wantCode:  400,
		},
		{
			name:      "non positive price",
			req:       dto.UpdateTestRequest{Price: &zero},
			setupMock: func(fixture) {},
			wantCode:  400,
		},
		{
			name:      "image header without content",
			req:       dto.UpdateTestRequest{Image: &multipart.FileHeader{Filename: "cbc.png", Size: 1}},
			setupMock: func(fixture) {},
			wantCode:  400,
		},
		{
			name: "not found",
			req:  dto.UpdateTestRequest{Slot: &slot},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Test{}, nil)
			},
			wantCode: 404,
		},
		{
			name: "inventory edit",
			req:  dto.UpdateTestRequest{Slot: &slot},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Test{ID: "t1", Slot: 0}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, 7, fields[model.FieldSlot])
						assert.Equal(t, "admin-id", fields[constant.FieldModifiedBy])
						assert.NotContains(t, fields, model.FieldPrice)

						return nil
					})
				f.cache.EXPECT().Clear(gomock.Any(), "test:*").Return(nil)
				f.cache.EXPECT().Clear(gomock.Any(), "statistics:*").Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(userContext(), tt.req, "t1")
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestTestService_Delete(t *testing.T) {
	t.Run("referenced by appointments", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Test{ID: "t1"}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).
			Return(errors.Join(errors.New("failed to delete data (test)"), &pq.Error{Code: constant.PqErrorCodeFkViolation}))

		err := f.svc.Delete(context.Background(), "t1")

		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("removes image after delete", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Test{ID: "t1", Image: "https://cdn.lab.test/test/a.png"}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.s3.EXPECT().GetObjectKeyFromURL(gomock.Any()).Return("test/a.png")
		f.s3.EXPECT().DeleteFile(gomock.Any(), "test/a.png").Return(nil)
		f.cache.EXPECT().Clear(gomock.Any(), "test:*").Return(nil)
		f.cache.EXPECT().Clear(gomock.Any(), "statistics:*").Return(nil)

		err := f.svc.Delete(context.Background(), "t1")
		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Test{}, nil)

		assert.Equal(t, 404, failure.GetCode(f.svc.Delete(context.Background(), "t1")))
	})
}
