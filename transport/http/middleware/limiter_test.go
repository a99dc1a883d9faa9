package middleware_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"parkflow/config"
	otelMocks "parkflow/infras/otel/mocks"
	"parkflow/shared/cache"
	cacheMocks "parkflow/shared/cache/mocks"
	"parkflow/shared/constant"
	"parkflow/transport/http/middleware"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func limited(c cache.RedisCache) http.Handler {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, c).RateLimit()(next)
}

func stored(hits int) func(context.Context, string, any) error {
	return func(_ context.Context, _ string, value any) error {
		*value.(*int) = hits

		return nil
	}
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name          string
		mock          func(c *cacheMocks.MockRedisCache)
		wantCode      int
		wantRemaining string
	}{
		{
			name: "first request in window",
			mock: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), "limiter:10.0.0.7:probe", gomock.Any()).Return(fmt.Errorf("miss: %w", cache.Nil))
				c.EXPECT().Save(gomock.Any(), "limiter:10.0.0.7:probe", 1, 60).Return(nil)
			},
			wantCode:      http.StatusNoContent,
			wantRemaining: "1",
		},
		{
			name: "over the limit",
			mock: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(stored(2))
			},
			wantCode: http.StatusTooManyRequests,
		},
		{
			name: "cache outage lets requests through",
			mock: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
			},
			wantCode: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			c := cacheMocks.NewMockRedisCache(ctrl)
			tt.mock(c)

			req := httptest.NewRequest(http.MethodGet, "/v1/lots/nearby", nil)
			req.RemoteAddr = "10.0.0.7:51234"
			req.Header.Set(constant.RequestHeaderUserAgent, "probe")

			rec := httptest.NewRecorder()
			limited(c).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		})
	}
}
