package lot

import (
	"net/http"
	"parkflow/infras/otel"
	"parkflow/internal/domains/lot/model"
	"parkflow/internal/domains/lot/model/dto"
	"parkflow/internal/domains/lot/service"
	"parkflow/shared"
	"parkflow/shared/constant"
	gDto "parkflow/shared/dto"
	"parkflow/shared/failure"
	"parkflow/shared/validator"
	"parkflow/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Lot
	otel    otel.Otel
}

func New(service service.Lot, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/lots", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetLots)
		routerGroup.Get("/nearby", handler.Nearby)
		routerGroup.Get("/search", handler.Search)
		routerGroup.Get("/mine", handler.GetMyLot)
		routerGroup.Get("/{id}", handler.GetLotByID)
		routerGroup.Patch("/{id}/settings", handler.UpdateSettings)
	})
}

// GetLots retrieves parking lots based on query parameters.
// @Summary Get all parking lots
// @Description Retrieve parking lots with optional filtering and pagination.
// @Tags Lot
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param is_available query bool false "Filter by availability"
// @Success 200 {object} dto.GetLotsResponse "List of parking lots"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/lots [get]
// @Security BearerAuth
func (handler *Handler) GetLots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLots")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name := r.URL.Query().Get(model.FieldName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if available := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldIsAvailable)); available != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsAvailable,
			Operator: gDto.FilterOperatorEq,
			Value:    *available,
			Table:    model.TableName,
		})
	}

	lots, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get parking lots")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Parking lots retrieved successfully")

	response.WithJSON(w, http.StatusOK, lots)
}

// Nearby ranks available lots by distance.
// @Summary Nearby parking lots
// @Description Available parking lots ordered by great-circle distance from the given position.
// @Tags Lot
// @Produce json
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Param limit query int false "Maximum number of lots"
// @Success 200 {object} dto.NearbyResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/lots/nearby [get]
func (handler *Handler) Nearby(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Nearby")
	defer scope.End()

	query := r.URL.Query()

	lat := shared.ConvertStringToFloat(query.Get(constant.RequestParamLatitude))
	lng := shared.ConvertStringToFloat(query.Get(constant.RequestParamLongitude))

	if lat == nil || lng == nil {
		response.WithError(w, failure.BadRequestFromString("lat and lng are required"))

		return
	}

	req := dto.NearbyRequest{Latitude: *lat, Longitude: *lng}

	if limit := query.Get(constant.RequestParamLimit); limit != "" {
		value, err := shared.ConvertStringToInt(limit)
		if err != nil {
			response.WithError(w, failure.InvalidLimitParam)

			return
		}

		req.Limit = value
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Nearby(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get nearby parking lots")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Search finds available lots by name or address.
// @Summary Search parking lots
// @Description Case-insensitive search over lot names and addresses, with suggestions.
// @Tags Lot
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {object} dto.SearchResponse
// @Failure 500 {object} response.Error
// @Router /v1/lots/search [get]
func (handler *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Search")
	defer scope.End()

	res, err := handler.service.Search(ctx, r.URL.Query().Get(constant.RequestParamQuery))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search parking lots")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetMyLot returns the lot of the signed-in business.
// @Summary Own parking lot
// @Tags Lot
// @Produce json
// @Success 200 {object} dto.LotResponse
// @Failure 404 {object} response.Error
// @Router /v1/lots/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyLot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyLot")
	defer scope.End()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	lot, err := handler.service.GetByOwner(ctx, user)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get own parking lot")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, lot)
}

// GetLotByID retrieves a parking lot by its ID.
// @Summary Get a parking lot by ID
// @Tags Lot
// @Produce json
// @Param id path string true "Parking lot ID"
// @Success 200 {object} dto.LotResponse
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/lots/{id} [get]
func (handler *Handler) GetLotByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLotByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	lot, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get parking lot")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, lot)
}

// UpdateSettings changes pricing, capacity or availability of a lot.
// @Summary Update parking lot settings
// @Description Only the owner may update a lot. Capacity cannot drop below the vehicles currently parked. Setting billing_mode to default clears the lot's own mode so the service-wide one applies.
// @Tags Lot
// @Accept json
// @Produce json
// @Param id path string true "Parking lot ID"
// @Param request body dto.UpdateSettingsRequest true "Settings"
// @Success 200 {object} response.Message "Parking lot updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/lots/{id}/settings [patch]
// @Security BearerAuth
func (handler *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSettings")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateSettingsRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateSettings(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update parking lot settings")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Parking lot updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Parking lot updated successfully")
}
