package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"parkflow/config"
	"parkflow/infras/otel"
	"parkflow/internal/domains/fare"
	"parkflow/internal/domains/lot/model"
	"parkflow/internal/domains/lot/model/dto"
	"parkflow/internal/domains/lot/ranking"
	"parkflow/internal/domains/lot/repository"
	"parkflow/shared"
	"parkflow/shared/cache"
	"parkflow/shared/changefeed"
	"parkflow/shared/constant"
	gDto "parkflow/shared/dto"
	"parkflow/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Lot interface {
	Create(ctx context.Context, sqltx *sqlx.Tx, req dto.CreateLotRequest, ownerID, proofDocURL string) (dto.LotResponse, error)
	NotifyCreated(ctx context.Context, id string)
	Get(ctx context.Context, id string) (dto.LotResponse, error)
	GetByOwner(ctx context.Context, ownerID string) (dto.LotResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetLotsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	UpdateSettings(ctx context.Context, id string, req dto.UpdateSettingsRequest) error
	Nearby(ctx context.Context, req dto.NearbyRequest) (dto.NearbyResponse, error)
	Search(ctx context.Context, query string) (dto.SearchResponse, error)
}

type serviceImpl struct {
	repo     repository.Lot
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	feed     changefeed.Publisher
	fallback fare.BillingMode
}

func New(repo repository.Lot, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, feed changefeed.Publisher) Lot {
	fallback, err := fare.ParseBillingMode(cfg.App.BillingMode)
	if err != nil {
		log.Warn().Err(err).Str("billingMode", cfg.App.BillingMode).Msg("invalid default billing mode, using per_hour_block")

		fallback = fare.BillingModePerHourBlock
	}

	return &serviceImpl{
		repo:     repo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		feed:     feed,
		fallback: fallback,
	}
}

// Create inserts a lot. Inside a transaction the caller announces the lot
// with NotifyCreated once the transaction has committed.
func (s *serviceImpl) Create(ctx context.Context, sqltx *sqlx.Tx, req dto.CreateLotRequest, ownerID, proofDocURL string) (res dto.LotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	lot := req.ToModel(ownerID, proofDocURL)

	if sqltx != nil {
		err = s.repo.InsertTx(ctx, sqltx, lot)
	} else {
		err = s.repo.Insert(ctx, lot)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to create parking lot")

		return res, fmt.Errorf("failed to create parking lot: %w", err)
	}

	if sqltx == nil {
		s.NotifyCreated(ctx, lot.ID)
	}

	res.FromModel(lot, s.fallback)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.LotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(model.CacheGet, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for parking lot")

		return res, nil
	}

	lot, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get parking lot")

		return res, fmt.Errorf("failed to get parking lot: %w", err)
	}

	if lot.ID == constant.Empty {
		return res, failure.NotFoundFromError(model.ErrLotNotFound) // nolint:wrapcheck
	}

	res.FromModel(lot, s.fallback)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save parking lot to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByOwner(ctx context.Context, ownerID string) (res dto.LotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByOwner")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(model.CacheOwner, ownerID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	lot, err := s.repo.Get(ctx, shared.FilterByID(ownerID, model.FieldOwnerID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get parking lot by owner")

		return res, fmt.Errorf("failed to get parking lot by owner: %w", err)
	}

	if lot.ID == constant.Empty {
		return res, failure.NotFoundFromError(model.ErrLotNotFound) // nolint:wrapcheck
	}

	res.FromModel(lot, s.fallback)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save owner parking lot to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetLotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for parking lots")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get parking lots")

		return res, fmt.Errorf("failed to get parking lots: %w", err)
	}

	res.FromModels(models, s.fallback, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save parking lots to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheCount, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count parking lots")

		return res, fmt.Errorf("failed to count parking lots: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save parking lot count to cache")
		}
	}()

	return res, nil
}

// UpdateSettings is limited to the owner of the lot.
func (s *serviceImpl) UpdateSettings(ctx context.Context, id string, req dto.UpdateSettingsRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateSettings")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	lot, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get parking lot")

		return fmt.Errorf("failed to get parking lot: %w", err)
	}

	if lot.ID == constant.Empty {
		return failure.NotFoundFromError(model.ErrLotNotFound) // nolint:wrapcheck
	}

	if lot.OwnerID != user {
		return failure.ResourceRestrictedError
	}

	if req.TotalCarSlots != nil && *req.TotalCarSlots < lot.OccupiedSlots(model.VehicleTypeCar) ||
		req.TotalBikeSlots != nil && *req.TotalBikeSlots < lot.OccupiedSlots(model.VehicleTypeBike) {
		return failure.BadRequest(repository.ErrBelowOccupancy) // nolint:wrapcheck
	}

	err = s.repo.UpdateSettings(ctx, id, req.Fields(user))

	switch {
	case errors.Is(err, repository.ErrBelowOccupancy):
		return failure.BadRequest(err) // nolint:wrapcheck
	case errors.Is(err, model.ErrLotNotFound):
		return failure.NotFoundFromError(err) // nolint:wrapcheck
	case err != nil:
		log.Error().Err(err).Msg("failed to update parking lot settings")

		return fmt.Errorf("failed to update parking lot settings: %w", err)
	}

	s.changed(ctx, changefeed.ActionUpdate, id)

	return nil
}

func (s *serviceImpl) Nearby(ctx context.Context, req dto.NearbyRequest) (res dto.NearbyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Nearby")
	defer scope.End()
	defer scope.TraceIfError(&err)

	lots, err := s.available(ctx)
	if err != nil {
		return res, err
	}

	limit := req.Limit
	if limit <= 0 || limit > s.cfg.App.NearbyLimit {
		limit = s.cfg.App.NearbyLimit
	}

	ranked := ranking.ByDistance(req.Position(), lots)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	res.FromRanked(ranked, s.fallback)

	return res, nil
}

func (s *serviceImpl) Search(ctx context.Context, query string) (res dto.SearchResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Search")
	defer scope.End()
	defer scope.TraceIfError(&err)

	lots, err := s.available(ctx)
	if err != nil {
		return res, err
	}

	res.FromResult(ranking.ByQuery(query, lots), ranking.Suggestions(query, lots, ranking.DefaultSuggestionLimit), s.fallback)

	return res, nil
}

// available loads every lot currently accepting vehicles.
func (s *serviceImpl) available(ctx context.Context) (lots []model.Lot, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".available")
	defer scope.End()
	defer scope.TraceIfError(&err)

	err = s.cache.Get(ctx, model.CacheRanking, &lots)
	if err == nil {
		return lots, nil
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldIsAvailable,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	lots, err = s.repo.GetAll(ctx, gDto.QueryParams{SortBy: constant.DefaultValueSortBy, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get available parking lots")

		return nil, fmt.Errorf("failed to get available parking lots: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, model.CacheRanking, lots, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save available parking lots to cache")
		}
	}()

	return lots, nil
}

func (s *serviceImpl) NotifyCreated(ctx context.Context, id string) {
	s.changed(ctx, changefeed.ActionInsert, id)
}

func (s *serviceImpl) changed(ctx context.Context, action, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, model.CachePrefix)

		if err := s.feed.Publish(c, changefeed.NewEvent(changefeed.TableParkingLots, action, id, id)); err != nil {
			log.Error().Err(err).Str("lotID", id).Msg("failed to publish parking lot change")
		}
	}()
}
