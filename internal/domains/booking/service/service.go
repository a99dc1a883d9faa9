package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parkflow/config"
	"parkflow/infras/otel"
	"parkflow/infras/s3"
	"parkflow/internal/domains/booking/lifecycle"
	"parkflow/internal/domains/booking/model"
	"parkflow/internal/domains/booking/model/dto"
	"parkflow/internal/domains/booking/repository"
	"parkflow/internal/domains/fare"
	lotModel "parkflow/internal/domains/lot/model"
	lotRepository "parkflow/internal/domains/lot/repository"
	"parkflow/shared"
	"parkflow/shared/cache"
	"parkflow/shared/changefeed"
	"parkflow/shared/constant"
	gDto "parkflow/shared/dto"
	"parkflow/shared/failure"
	gModel "parkflow/shared/model"
	"parkflow/shared/receipt"
	"parkflow/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Booking interface {
	Enter(ctx context.Context, req dto.EntryRequest) (dto.BookingResponse, error)
	Quote(ctx context.Context, id string) (dto.QuoteResponse, error)
	Checkout(ctx context.Context, id string) (dto.CheckoutResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Receipt(ctx context.Context, id string) ([]byte, error)
}

type serviceImpl struct {
	repo     repository.Booking
	lotRepo  lotRepository.Lot
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	s3       s3.S3
	feed     changefeed.Publisher
	fallback fare.BillingMode
	now      func() time.Time
}

func New(
	repo repository.Booking,
	lotRepo lotRepository.Lot,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
	feed changefeed.Publisher,
) Booking {
	fallback, err := fare.ParseBillingMode(cfg.App.BillingMode)
	if err != nil {
		fallback = fare.BillingModePerHourBlock
	}

	return &serviceImpl{
		repo:     repo,
		lotRepo:  lotRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		s3:       s3,
		feed:     feed,
		fallback: fallback,
		now:      timezone.Now,
	}
}

func (s *serviceImpl) Enter(ctx context.Context, req dto.EntryRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Enter")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	lot, err := s.managedLot(ctx, req.LotID)
	if err != nil {
		return res, err
	}

	if !lot.IsAvailable {
		return res, failure.Conflict("parking lot is not accepting vehicles") // nolint:wrapcheck
	}

	entry := req.ToEntry()

	active, err := s.repo.GetAll(ctx, gDto.QueryParams{}, activePlateFilter(lot.ID, lifecycle.NormalizePlate(entry.VehicleNumber)))
	if err != nil {
		log.Error().Err(err).Msg("failed to get active bookings")

		return res, fmt.Errorf("failed to get active bookings: %w", err)
	}

	booking, err := lifecycle.Open(active, entry, s.now())
	if err != nil {
		return res, failure.ConflictFromError(err) // nolint:wrapcheck
	}

	if lot.AvailableSlots(booking.VehicleType) <= 0 {
		return res, failure.ConflictFromError(model.ErrNoCapacity) // nolint:wrapcheck
	}

	booking.Metadata = gModel.NewMetadata(user, booking.EntryTime)

	err = s.repo.Open(ctx, booking)

	switch {
	case errors.Is(err, lifecycle.ErrDuplicateActiveBooking), errors.Is(err, model.ErrNoCapacity):
		return res, failure.ConflictFromError(err) // nolint:wrapcheck
	case err != nil:
		log.Error().Err(err).Msg("failed to open booking")

		return res, fmt.Errorf("failed to open booking: %w", err)
	}

	s.changed(ctx, changefeed.ActionInsert, booking)

	res.FromModel(booking)

	return res, nil
}

// Quote previews the fare as if the vehicle left now. Nothing is written.
func (s *serviceImpl) Quote(ctx context.Context, id string) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer scope.TraceIfError(&err)

	booking, lot, err := s.managedBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if !booking.IsActive() {
		return res, failure.ConflictFromError(lifecycle.ErrAlreadyCompleted) // nolint:wrapcheck
	}

	exit := s.now()

	quote, err := fare.Calculate(booking.EntryTime, exit, lot.Pricing(s.fallback))
	if err != nil {
		return res, failure.Unprocessable(err) // nolint:wrapcheck
	}

	res.FromQuote(booking.ID, exit, quote)

	return res, nil
}

func (s *serviceImpl) Checkout(ctx context.Context, id string) (res dto.CheckoutResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Checkout")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, lot, err := s.managedBooking(ctx, id)
	if err != nil {
		return res, err
	}

	exit := s.now()

	closed, quote, err := lifecycle.Checkout(booking, lot.Pricing(s.fallback), exit)

	switch {
	case errors.Is(err, lifecycle.ErrAlreadyCompleted):
		return res, failure.ConflictFromError(err) // nolint:wrapcheck
	case err != nil:
		return res, failure.Unprocessable(err) // nolint:wrapcheck
	}

	closed.ModifiedAt = exit
	closed.ModifiedBy = user

	err = s.repo.Complete(ctx, closed)

	switch {
	case errors.Is(err, lifecycle.ErrAlreadyCompleted):
		return res, failure.ConflictFromError(err) // nolint:wrapcheck
	case err != nil:
		log.Error().Err(err).Str("bookingID", id).Msg("failed to complete booking")

		return res, fmt.Errorf("failed to complete booking: %w", err)
	}

	s.changed(ctx, changefeed.ActionUpdate, closed)

	res.Booking.FromModel(closed)
	res.Quote.FromQuote(closed.ID, exit, quote)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	booking, _, err := s.managedBooking(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

// GetAll lists every booking for admins. Business accounts only see the
// bookings of their own lot.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter, err = s.scopeToOwner(ctx, filter)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

// Receipt renders the PDF for a completed booking and archives a copy.
func (s *serviceImpl) Receipt(ctx context.Context, id string) (res []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Receipt")
	defer scope.End()
	defer scope.TraceIfError(&err)

	booking, lot, err := s.managedBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.IsActive() || !booking.ExitTime.Valid {
		return nil, failure.Conflict("booking is still active") // nolint:wrapcheck
	}

	res, err = receipt.Render(dto.NewReceipt(booking, lot.Name, s.now()))
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Msg("failed to render receipt")

		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}

	go func(data []byte) {
		c := context.WithoutCancel(ctx)

		if _, err := s.s3.PutObject(c, s3.DirReceipts, receipt.FileName(booking.ID), constant.ContentTypePDF, data); err != nil {
			log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to archive receipt")
		}
	}(res)

	return res, nil
}

// managedLot loads a lot the caller may operate: its owner or an admin.
func (s *serviceImpl) managedLot(ctx context.Context, lotID string) (lotModel.Lot, error) {
	lot, err := s.lotRepo.Get(ctx, shared.FilterByID(lotID, lotModel.FieldID, lotModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get parking lot")

		return lot, fmt.Errorf("failed to get parking lot: %w", err)
	}

	if lot.ID == constant.Empty {
		return lot, failure.NotFoundFromError(lotModel.ErrLotNotFound) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if role != constant.RoleAdmin && lot.OwnerID != user {
		return lot, failure.ResourceRestrictedError
	}

	return lot, nil
}

func (s *serviceImpl) managedBooking(ctx context.Context, id string) (model.Booking, lotModel.Lot, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, lotModel.Lot{}, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, lotModel.Lot{}, failure.NotFoundFromError(model.ErrBookingNotFound) // nolint:wrapcheck
	}

	lot, err := s.managedLot(ctx, booking.LotID)
	if err != nil {
		return booking, lot, err
	}

	return booking, lot, nil
}

func (s *serviceImpl) scopeToOwner(ctx context.Context, filter gDto.FilterGroup) (gDto.FilterGroup, error) {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role == constant.RoleAdmin {
		return filter, nil
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	lot, err := s.lotRepo.Get(ctx, shared.FilterByID(user, lotModel.FieldOwnerID, lotModel.TableName), lotModel.FieldID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get owner parking lot")

		return filter, fmt.Errorf("failed to get owner parking lot: %w", err)
	}

	if lot.ID == constant.Empty {
		return filter, failure.NotFoundFromError(lotModel.ErrLotNotFound) // nolint:wrapcheck
	}

	scoped := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{gDto.Filter{
			ArgName:  "owner_lot_id",
			Field:    model.FieldLotID,
			Value:    lot.ID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		}},
	}

	if len(filter.Filters) > 0 {
		scoped.Filters = append(scoped.Filters, filter)
	}

	return scoped, nil
}

func (s *serviceImpl) changed(ctx context.Context, action string, booking model.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, model.CachePrefix)
		shared.InvalidateCaches(c, s.cache, lotModel.CachePrefix)

		events := []changefeed.Event{
			changefeed.NewEvent(changefeed.TableBookings, action, booking.ID, booking.LotID),
			changefeed.NewEvent(changefeed.TableParkingLots, changefeed.ActionUpdate, booking.LotID, booking.LotID),
		}

		for _, event := range events {
			if err := s.feed.Publish(c, event); err != nil {
				log.Error().Err(err).Str("table", event.Table).Str("id", event.ID).Msg("failed to publish change")
			}
		}
	}()
}

func activePlateFilter(lotID, plate string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldLotID, Value: lotID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldVehicleNumber, Value: plate, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusActive, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}
