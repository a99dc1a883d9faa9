package business

import (
	"net/http"
	"parkflow/infras/otel"
	"parkflow/internal/domains/business/model/dto"
	"parkflow/internal/domains/business/service"
	"parkflow/shared/constant"
	gDto "parkflow/shared/dto"
	"parkflow/shared/failure"
	"parkflow/shared/validator"
	"parkflow/transport/http/response"
	"slices"

	businessModel "parkflow/internal/domains/business/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Business
	otel    otel.Otel
}

func New(service service.Business, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/businesses", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetBusinesses)
		routerGroup.Get("/counts", handler.Counts)
		routerGroup.Patch("/{id}/status", handler.UpdateStatus)
	})
}

// GetBusinesses lists business accounts for review.
// @Summary Get business accounts
// @Tags Business
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status" Enums(pending, approved, rejected, banned)
// @Success 200 {object} dto.GetBusinessesResponse
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/businesses [get]
// @Security BearerAuth
func (handler *Handler) GetBusinesses(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBusinesses")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	status := r.URL.Query().Get(constant.RequestParamStatus)
	if status != "" && !slices.Contains(businessModel.Statuses, status) {
		response.WithError(w, failure.BadRequestFromString("unknown status "+status))

		return
	}

	res, err := handler.service.GetAll(ctx, queryParams, status)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get businesses")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Counts returns the number of business accounts per status.
// @Summary Business account counts
// @Tags Business
// @Produce json
// @Success 200 {object} dto.CountsResponse
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/businesses/counts [get]
// @Security BearerAuth
func (handler *Handler) Counts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Counts")
	defer scope.End()

	res, err := handler.service.Counts(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to count businesses")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateStatus approves, rejects or bans a business account.
// @Summary Review a business account
// @Description Allowed changes: pending to approved or rejected, approved to banned, rejected or banned back to approved.
// @Tags Business
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} response.Message "Business status updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/businesses/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update business status")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Business " + id + " set to " + req.Status + " by user " + user)

	response.WithMessage(w, http.StatusOK, "Business status updated successfully")
}
