package auth

import (
	"fmt"
	"net/http"
	"parkflow/infras/otel"
	"parkflow/internal/domains/auth/model/dto"
	"parkflow/internal/domains/auth/service"
	lotDto "parkflow/internal/domains/lot/model/dto"
	"parkflow/shared"
	"parkflow/shared/constant"
	"parkflow/shared/failure"
	"parkflow/shared/validator"
	"parkflow/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/register-business", handler.RegisterBusiness)
		r.Post("/login", handler.Login)
		r.Post("/refresh-token", handler.RefreshToken)
		r.Post("/change-password", handler.ChangePassword)
		r.Get("/me", handler.Me)
	})
}

// Register handles user registration
// @Summary Register a new user
// @Description Register a driver account. Driver accounts are active immediately.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} response.Message "User registered successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	req := dto.RegisterRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Register(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register user")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User registered successfully")

	response.WithMessage(w, http.StatusCreated, "User registered successfully")
}

// RegisterBusiness handles business registration
// @Summary Register a business with its parking lot
// @Description Register a business account together with its parking lot. The account stays pending until an admin approves it.
// @Tags Auth
// @Accept multipart/form-data
// @Produce json
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Param full_name formData string false "Full name"
// @Param name formData string true "Parking lot name"
// @Param address formData string false "Address, looked up from the coordinates when empty"
// @Param latitude formData number false "Latitude"
// @Param longitude formData number false "Longitude"
// @Param license_id formData string true "Business license ID"
// @Param price_per_hour formData number true "Price per hour"
// @Param total_car_slots formData int true "Car slots"
// @Param total_bike_slots formData int true "Bike slots"
// @Param max_duration_hours formData number false "Maximum stay before the fine applies"
// @Param fine_amount formData number false "Overstay fine"
// @Param proof_document formData file true "License proof (pdf, png, jpg)"
// @Success 201 {object} dto.RegisterBusinessResponse "Business registered successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/register-business [post]
func (handler *Handler) RegisterBusiness(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RegisterBusiness")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormProofDocument)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get proof document from form")

		response.WithError(w, failure.BadRequestFromString("proof_document is required"))

		return
	}
	defer file.Close()

	req, err := businessForm(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	req.ProofDocument = fileHeader
	req.ProofDocumentFile = file

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate business registration")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.RegisterBusiness(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register business")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Business registered successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

func businessForm(r *http.Request) (dto.RegisterBusinessRequest, error) {
	req := dto.RegisterBusinessRequest{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		FullName: r.FormValue("full_name"),
		Lot: lotDto.CreateLotRequest{
			Name:      r.FormValue("name"),
			Address:   r.FormValue("address"),
			Latitude:  shared.ConvertStringToFloat(r.FormValue("latitude")),
			Longitude: shared.ConvertStringToFloat(r.FormValue("longitude")),
			LicenseID: r.FormValue("license_id"),
		},
	}

	for field, target := range map[string]*int{
		"total_car_slots":  &req.Lot.TotalCarSlots,
		"total_bike_slots": &req.Lot.TotalBikeSlots,
	} {
		value, err := shared.ConvertStringToInt(r.FormValue(field))
		if err != nil {
			return req, failure.BadRequestFromString(fmt.Sprintf("%s must be a whole number", field)) // nolint:wrapcheck
		}

		*target = value
	}

	for field, target := range map[string]*float64{
		"price_per_hour":     &req.Lot.PricePerHour,
		"max_duration_hours": &req.Lot.MaxDurationHours,
		"fine_amount":        &req.Lot.FineAmount,
	} {
		raw := r.FormValue(field)

		value := shared.ConvertStringToFloat(raw)
		if value == nil {
			if raw != constant.Empty || field == "price_per_hour" {
				return req, failure.BadRequestFromString(fmt.Sprintf("%s must be a number", field)) // nolint:wrapcheck
			}

			continue
		}

		*target = *value
	}

	return req, nil
}

// Login handles user login
// @Summary Login a user
// @Description Login with email and password. Business accounts must be approved.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} dto.LoginResponse "User logged in successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := dto.LoginRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to login user")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User logged in successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// RefreshToken handles token refresh
// @Summary Refresh user token
// @Description Refresh user token using the provided refresh token. Accounts that were deactivated, banned or are no longer approved are refused.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} dto.RefreshTokenResponse "Token refreshed successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	req := dto.RefreshTokenRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.RefreshToken(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to refresh token")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Token refreshed successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// ChangePassword handles password changes
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Change Password Request"
// @Success 200 {object} response.Message "Password changed successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/change-password [post]
// @Security BearerAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangePassword")
	defer scope.End()

	req := dto.ChangePasswordRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err := handler.service.ChangePassword(ctx, req, user); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to change password")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Password changed successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Password changed successfully")
}

// Me returns the signed-in profile
// @Summary Current user
// @Description Return the signed-in account and, for business accounts, its parking lot.
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.MeResponse
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/auth/me [get]
// @Security BearerAuth
func (handler *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Me")
	defer scope.End()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.Me(ctx, user)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get current user")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
