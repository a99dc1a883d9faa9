package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"parkflow/config"
	"parkflow/infras/geocode"
	"parkflow/infras/otel"
	"parkflow/internal/domains/geocode/model/dto"
	"parkflow/shared"
	"parkflow/shared/cache"
	"parkflow/shared/constant"
	"parkflow/shared/failure"

	"github.com/rs/zerolog/log"
)

const cacheReverse = "geocode:reverse"

type Geocode interface {
	Reverse(ctx context.Context, req dto.ReverseRequest) (dto.ReverseResponse, error)
}

type serviceImpl struct {
	client geocode.Client
	cfg    *config.Config
	cache  cache.RedisCache
	otel   otel.Otel
}

func New(client geocode.Client, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Geocode {
	return &serviceImpl{
		client: client,
		cfg:    cfg,
		cache:  cache,
		otel:   otel,
	}
}

// Reverse turns a position into a short "area, city" address. Positions are
// cached at the precision sent upstream.
func (s *serviceImpl) Reverse(ctx context.Context, req dto.ReverseRequest) (res dto.ReverseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reverse")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheReverse, fmt.Sprintf("%.6f", req.Latitude), fmt.Sprintf("%.6f", req.Longitude))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reverse geocode")

		return res, nil
	}

	place, err := s.client.Reverse(ctx, req.Latitude, req.Longitude)

	switch {
	case errors.Is(err, geocode.ErrNoResult):
		return res, failure.NotFoundFromError(err) // nolint:wrapcheck
	case err != nil:
		log.Error().Err(err).Float64("lat", req.Latitude).Float64("lng", req.Longitude).Msg("failed to reverse geocode")

		return res, failure.UpstreamUnavailable(err) // nolint:wrapcheck
	}

	res.FromPlace(place)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reverse geocode to cache")
		}
	}()

	return res, nil
}
