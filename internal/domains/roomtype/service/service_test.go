package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"stay/config"
	otelMocks "stay/infras/otel/mocks"
	"stay/internal/domains/roomtype/model"
	rtMocks "stay/internal/domains/roomtype/repository/mocks"
	"stay/internal/domains/roomtype/service"
	"stay/shared/cache"
	cacheMocks "stay/shared/cache/mocks"
	gDto "stay/shared/dto"
	"stay/shared/failure"
)

func sampleRoomType() model.RoomType {
	return model.RoomType{
		ID:           "test-id",
		PropertyID:   "property-id",
		Name:         "Deluxe King",
		NightlyRate:  decimal.RequireFromString("5000"),
		MaxAdults:    2,
		MaxChildren:  2,
		MaxOccupancy: 4,
		Active:       true,
	}
}

func TestRoomTypeService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := rtMocks.NewMockRoomType(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := otelMocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	t.Run("cache miss falls through to the repository", func(t *testing.T) {
		saved := make(chan struct{})

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(cache.Nil)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(sampleRoomType(), nil)

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).
			DoAndReturn(func(context.Context, string, any, int) error {
				close(saved)

				return nil
			})

		res, err := svc.Get(context.Background(), "test-id")

		assert.NoError(t, err)
		assert.Equal(t, "test-id", res.ID)
		assert.True(t, res.NightlyRate.Equal(decimal.RequireFromString("5000")))

		select {
		case <-saved:
		case <-time.After(time.Second):
			t.Fatal("expected the result to be cached")
		}
	})

	t.Run("not found", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(cache.Nil)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.RoomType{}, nil)

		_, err := svc.Get(context.Background(), "missing-id")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("repository error", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(cache.Nil)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.RoomType{}, errors.New("database error"))

		_, err := svc.Get(context.Background(), "test-id")

		assert.Error(t, err)
	})
}

func TestRoomTypeService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := rtMocks.NewMockRoomType(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := otelMocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	params := gDto.QueryParams{Page: 1, Limit: 10}
	filter := gDto.FilterGroup{}

	t.Run("cache miss lists from the repository", func(t *testing.T) {
		saved := make(chan struct{}, 2)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(cache.Nil).
			Times(2)

		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(1, nil)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.RoomType{sampleRoomType()}, nil)

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).
			DoAndReturn(func(context.Context, string, any, int) error {
				saved <- struct{}{}

				return nil
			}).
			Times(2)

		res, err := svc.GetAll(context.Background(), params, filter)

		assert.NoError(t, err)
		assert.Len(t, res.RoomTypes, 1)
		assert.Equal(t, 1, res.TotalData)
		assert.Equal(t, 1, res.TotalPage)

		for i := 0; i < 2; i++ {
			select {
			case <-saved:
			case <-time.After(time.Second):
				t.Fatal("expected the results to be cached")
			}
		}
	})

	t.Run("count error", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(cache.Nil).
			Times(2)

		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(0, errors.New("database error"))

		_, err := svc.GetAll(context.Background(), params, filter)

		assert.Error(t, err)
	})
}
