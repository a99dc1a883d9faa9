package booking

import (
	"fmt"
	"net/http"
	"parkflow/infras/otel"
	"parkflow/internal/domains/booking/model"
	"parkflow/internal/domains/booking/model/dto"
	"parkflow/internal/domains/booking/service"
	"parkflow/shared/constant"
	gDto "parkflow/shared/dto"
	"parkflow/shared/logger"
	"parkflow/shared/receipt"
	"parkflow/shared/validator"
	"parkflow/transport/http/response"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.Enter)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Get("/{id}/quote", handler.Quote)
		routerGroup.Post("/{id}/checkout", handler.Checkout)
		routerGroup.Get("/{id}/receipt", handler.Receipt)
	})
}

// Enter records a vehicle entering a lot.
// @Summary Record vehicle entry
// @Description Take one slot of the vehicle class and open an active booking. A plate can only be parked once at a time.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.EntryRequest true "Entry Request"
// @Success 201 {object} dto.BookingResponse
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) Enter(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Enter")
	defer scope.End()

	req := dto.EntryRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Enter(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("lotID", req.LotID).Msg("failed to record vehicle entry")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Vehicle entry recorded by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetBookings lists bookings visible to the caller.
// @Summary Get bookings
// @Description Admins see every booking, business accounts only those of their own lot.
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param lot_id query string false "Filter by parking lot"
// @Param status query string false "Filter by status" Enums(active, completed)
// @Param vehicle_number query string false "Filter by plate"
// @Success 200 {object} dto.GetBookingsResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	query := r.URL.Query()

	for _, field := range []string{model.FieldLotID, model.FieldStatus} {
		if value := query.Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	if plate := query.Get(model.FieldVehicleNumber); plate != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldVehicleNumber,
			Operator: gDto.FilterOperatorLike,
			Value:    plate,
			Table:    model.TableName,
		})
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// Quote previews the fare of an active booking.
// @Summary Fare preview
// @Description Compute what checking out now would cost, without changing anything.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.QuoteResponse
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/bookings/{id}/quote [get]
// @Security BearerAuth
func (handler *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Quote")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	quote, err := handler.service.Quote(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to quote booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, quote)
}

// Checkout completes an active booking.
// @Summary Check a vehicle out
// @Description Stamp the exit time, charge the fare and release the slot.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.CheckoutResponse
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/checkout [post]
// @Security BearerAuth
func (handler *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Checkout")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Checkout(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to check out booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking checked out by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// Receipt downloads the PDF receipt of a completed booking.
// @Summary Download receipt
// @Tags Booking
// @Produce application/pdf
// @Param id path string true "Booking ID"
// @Success 200 {file} file
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/receipt [get]
// @Security BearerAuth
func (handler *Handler) Receipt(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Receipt")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	pdf, err := handler.service.Receipt(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to render receipt")

		response.WithError(w, err)

		return
	}

	w.Header().Set(constant.RequestHeaderContentType, constant.ContentTypePDF)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", receipt.FileName(id)))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(pdf); err != nil {
		logger.ErrorWithStack(err)
	}
}
