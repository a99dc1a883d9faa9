package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"parkflow/config"
	"parkflow/infras/geocode"
	geocodeMocks "parkflow/infras/geocode/mocks"
	"parkflow/infras/otel/mocks"
	"parkflow/internal/domains/geocode/model/dto"
	"parkflow/internal/domains/geocode/service"
	cacheMocks "parkflow/shared/cache/mocks"
	"parkflow/shared/failure"
)

func TestGeocodeService_Reverse(t *testing.T) {
	req := dto.ReverseRequest{Latitude: 18.5204, Longitude: 73.8567}

	tests := []struct {
		name      string
		setupMock func(client *geocodeMocks.MockClient, cache *cacheMocks.MockRedisCache)
		want      dto.ReverseResponse
		wantCode  int
	}{
		{
			name: "cache hit",
			setupMock: func(_ *geocodeMocks.MockClient, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), "geocode:reverse:18.520400:73.856700", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*dto.ReverseResponse) = dto.ReverseResponse{Address: "Shivajinagar, Pune"}

						return nil
					})
			},
			want: dto.ReverseResponse{Address: "Shivajinagar, Pune"},
		},
		{
			name: "upstream result",
			setupMock: func(client *geocodeMocks.MockClient, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				client.EXPECT().Reverse(gomock.Any(), 18.5204, 73.8567).Return(geocode.Place{
					DisplayName: "Shivajinagar, Pune, Maharashtra, India",
					Short:       "Shivajinagar, Pune",
				}, nil)
			},
			want: dto.ReverseResponse{
				Address:     "Shivajinagar, Pune",
				DisplayName: "Shivajinagar, Pune, Maharashtra, India",
			},
		},
		{
			name: "no address",
			setupMock: func(client *geocodeMocks.MockClient, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				client.EXPECT().Reverse(gomock.Any(), gomock.Any(), gomock.Any()).Return(geocode.Place{}, geocode.ErrNoResult)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "upstream down",
			setupMock: func(client *geocodeMocks.MockClient, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				client.EXPECT().Reverse(gomock.Any(), gomock.Any(), gomock.Any()).Return(geocode.Place{}, geocode.ErrUpstream)
			},
			wantCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			client := geocodeMocks.NewMockClient(ctrl)
			cache := cacheMocks.NewMockRedisCache(ctrl)
			tt.setupMock(client, cache)

			cfg := &config.Config{}
			cfg.Cache.TTL = 60

			svc := service.New(client, cfg, cache, mocks.NewOtel())

			res, err := svc.Reverse(context.Background(), req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Equal(t, tt.wantCode == http.StatusServiceUnavailable, failure.IsRetryable(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, res)
		})
	}
}
