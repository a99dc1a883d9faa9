package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"parkflow/config"
	"parkflow/infras/otel"
	"parkflow/infras/postgres"
	"parkflow/internal/domains/business/model"
	"parkflow/internal/domains/business/model/dto"
	"parkflow/internal/domains/fare"
	lotModel "parkflow/internal/domains/lot/model"
	lotDto "parkflow/internal/domains/lot/model/dto"
	lotRepository "parkflow/internal/domains/lot/repository"
	userModel "parkflow/internal/domains/user/model"
	userRepository "parkflow/internal/domains/user/repository"
	"parkflow/shared"
	"parkflow/shared/cache"
	"parkflow/shared/changefeed"
	"parkflow/shared/constant"
	gDto "parkflow/shared/dto"
	"parkflow/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cachePrefix = "business:"
	cacheGetAll = "business:gets"
	cacheCounts = "business:counts"
)

// Business is the admin review queue for business accounts.
type Business interface {
	GetAll(ctx context.Context, req gDto.QueryParams, status string) (dto.GetBusinessesResponse, error)
	Counts(ctx context.Context) (dto.CountsResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) error
}

type serviceImpl struct {
	userRepo userRepository.User
	lotRepo  lotRepository.Lot
	tx       postgres.Transactor
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	feed     changefeed.Publisher
	fallback fare.BillingMode
}

func New(
	userRepo userRepository.User,
	lotRepo lotRepository.Lot,
	tx postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	feed changefeed.Publisher,
) Business {
	fallback, err := fare.ParseBillingMode(cfg.App.BillingMode)
	if err != nil {
		fallback = fare.BillingModePerHourBlock
	}

	return &serviceImpl{
		userRepo: userRepo,
		lotRepo:  lotRepo,
		tx:       tx,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		feed:     feed,
		fallback: fallback,
	}
}

func businessFilter(status string) gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldLevel,
				Value:    constant.RoleBusiness,
				Operator: gDto.FilterOperatorEq,
				Table:    userModel.TableName,
			},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if status != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    userModel.FieldStatus,
			Value:    status,
			Operator: gDto.FilterOperatorEq,
			Table:    userModel.TableName,
		})
	}

	return filter
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, status string) (res dto.GetBusinessesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := businessFilter(status)
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAll, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for businesses")

		return res, nil
	}

	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count businesses")

		return res, fmt.Errorf("failed to count businesses: %w", err)
	}

	users, err := s.userRepo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get businesses")

		return res, fmt.Errorf("failed to get businesses: %w", err)
	}

	var lots []lotModel.Lot

	if len(users) > 0 {
		ownerIDs := make([]string, len(users))
		for i, user := range users {
			ownerIDs[i] = user.ID
		}

		lots, err = s.lotRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{
					Field:    lotModel.FieldOwnerID,
					Value:    ownerIDs,
					Operator: gDto.FilterOperatorIn,
					Table:    lotModel.TableName,
				},
			},
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to get business parking lots")

			return res, fmt.Errorf("failed to get business parking lots: %w", err)
		}
	}

	res.FromModels(users, lots, s.fallback, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save businesses to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Counts(ctx context.Context) (res dto.CountsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Counts")
	defer scope.End()
	defer scope.TraceIfError(&err)

	err = s.cache.Get(ctx, cacheCounts, &res)
	if err == nil {
		return res, nil
	}

	counts, err := s.userRepo.CountBy(ctx, userModel.FieldStatus, businessFilter(constant.Empty))
	if err != nil {
		log.Error().Err(err).Msg("failed to count businesses")

		return res, fmt.Errorf("failed to count businesses: %w", err)
	}

	for _, status := range model.Statuses {
		res.Total += counts[status]
	}

	res.Pending = counts[constant.AccountStatusPending]
	res.Approved = counts[constant.AccountStatusApproved]
	res.Rejected = counts[constant.AccountStatusRejected]
	res.Banned = counts[constant.AccountStatusBanned]

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheCounts, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save business counts to cache")
		}
	}()

	return res, nil
}

// UpdateStatus moves an account along the review workflow and shows or hides
// its lot accordingly. Both writes commit together or not at all, and a
// status changed by someone else since it was read is a conflict.
func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(&err)

	admin, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get business")

		return fmt.Errorf("failed to get business: %w", err)
	}

	if user.ID == constant.Empty || user.Level != constant.RoleBusiness {
		return failure.NotFound("business not found") // nolint:wrapcheck
	}

	if !model.CanTransition(user.Status, req.Status) {
		return failure.ConflictFromError(fmt.Errorf("%w: %s to %s", model.ErrInvalidTransition, user.Status, req.Status)) // nolint:wrapcheck
	}

	lot, err := s.lotRepo.Get(ctx, shared.FilterByID(id, lotModel.FieldOwnerID, lotModel.TableName), lotModel.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get business parking lot")

		return fmt.Errorf("failed to get business parking lot: %w", err)
	}

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.userRepo.TransitionStatusTx(ctx, tx, user.ID, user.Status, req.Status, admin); err != nil {
			return err //nolint:wrapcheck
		}

		if lot.ID == constant.Empty {
			return nil
		}

		visible := model.LotVisible(req.Status)
		fields := lotDto.UpdateSettingsRequest{IsAvailable: &visible}.Fields(admin)

		if err := s.lotRepo.UpdateSettingsTx(ctx, tx, lot.ID, fields); err != nil {
			return fmt.Errorf("failed to update parking lot visibility: %w", err)
		}

		return nil
	})

	switch {
	case errors.Is(err, userModel.ErrStatusChanged):
		return failure.ConflictFromError(err) // nolint:wrapcheck
	case err != nil:
		log.Error().Err(err).Str("businessID", id).Msg("failed to update business status")

		return fmt.Errorf("failed to update business status: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cachePrefix)

		if lot.ID == constant.Empty {
			return
		}

		shared.InvalidateCaches(c, s.cache, lotModel.CachePrefix)

		if err := s.feed.Publish(c, changefeed.NewEvent(changefeed.TableParkingLots, changefeed.ActionUpdate, lot.ID, lot.ID)); err != nil {
			log.Error().Err(err).Str("lotID", lot.ID).Msg("failed to publish parking lot change")
		}
	}()

	return nil
}
