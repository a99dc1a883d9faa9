package geocode

import (
	"net/http"
	"parkflow/infras/otel"
	"parkflow/internal/domains/geocode/model/dto"
	"parkflow/internal/domains/geocode/service"
	"parkflow/shared"
	"parkflow/shared/constant"
	"parkflow/shared/failure"
	"parkflow/shared/validator"
	"parkflow/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Geocode
	otel    otel.Otel
}

func New(service service.Geocode, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/geocode/reverse", handler.Reverse)
}

// Reverse turns coordinates into an address.
// @Summary Reverse geocode
// @Tags Geocode
// @Produce json
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Success 200 {object} dto.ReverseResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/geocode/reverse [get]
func (handler *Handler) Reverse(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Reverse")
	defer scope.End()

	lat := shared.ConvertStringToFloat(r.URL.Query().Get(constant.RequestParamLatitude))
	lng := shared.ConvertStringToFloat(r.URL.Query().Get(constant.RequestParamLongitude))

	if lat == nil || lng == nil {
		response.WithError(w, failure.BadRequestFromString("lat and lng are required"))

		return
	}

	req := dto.ReverseRequest{Latitude: *lat, Longitude: *lng}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Reverse(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Float64("lat", req.Latitude).Float64("lng", req.Longitude).Msg("failed to reverse geocode")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
