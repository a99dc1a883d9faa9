package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"parkflow/config"
	"parkflow/infras/jwt"
	"parkflow/infras/otel"
	"parkflow/infras/postgres"
	"parkflow/infras/s3"
	"parkflow/internal/domains/auth/model/dto"
	geocodeDto "parkflow/internal/domains/geocode/model/dto"
	geocodeService "parkflow/internal/domains/geocode/service"
	lotService "parkflow/internal/domains/lot/service"
	userModel "parkflow/internal/domains/user/model"
	userDto "parkflow/internal/domains/user/model/dto"
	userRepo "parkflow/internal/domains/user/repository"
	"parkflow/shared"
	"parkflow/shared/constant"
	gDto "parkflow/shared/dto"
	"parkflow/shared/failure"
	"parkflow/shared/password"
	"parkflow/shared/timezone"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"gopkg.in/guregu/null.v4"
)

const errInvalidCredentials = "invalid email or password"

// Messages shown to business accounts that may not sign in yet.
var businessStatusMessages = map[string]string{
	constant.AccountStatusPending:  "Your business account is pending admin approval. Please wait for approval before logging in.",
	constant.AccountStatusRejected: "Your business account has been rejected. Please contact support.",
	constant.AccountStatusBanned:   "Your business account has been banned. Please contact support.",
}

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	RegisterBusiness(ctx context.Context, req dto.RegisterBusinessRequest) (dto.RegisterBusinessResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) error
	Me(ctx context.Context, userID string) (dto.MeResponse, error)
}

type serviceImpl struct {
	userRepo   userRepo.User
	lots       lotService.Lot
	geocode    geocodeService.Geocode
	tx         postgres.Transactor
	s3         s3.S3
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(
	userRepo userRepo.User,
	lots lotService.Lot,
	geocode geocodeService.Geocode,
	tx postgres.Transactor,
	s3 s3.S3,
	cfg *config.Config,
	otel otel.Otel,
	jwt jwt.JWT,
) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		lots:       lots,
		geocode:    geocode,
		tx:         tx,
		s3:         s3,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

func emailFilter(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    strings.ToLower(strings.TrimSpace(email)),
				Table:    userModel.TableName,
			},
		},
	}
}

func (s *serviceImpl) ensureEmailFree(ctx context.Context, email string) error {
	exists, err := s.userRepo.Exist(ctx, emailFilter(email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return failure.Conflict("email already registered") // nolint:wrapcheck
	}

	return nil
}

// admit decides whether an account may hold tokens. Both login and refresh
// go through it.
func admit(user userModel.User) error {
	if !user.Active {
		return failure.BadRequestFromString("user account is deactivated") // nolint:wrapcheck
	}

	if user.Level == constant.RoleBusiness {
		if msg, blocked := businessStatusMessages[user.Status]; blocked {
			return failure.Forbidden(msg) // nolint:wrapcheck
		}
	}

	return nil
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = s.ensureEmailFree(ctx, req.Email); err != nil {
		return err
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err = s.userRepo.Insert(ctx, req.ToUserModel(constant.ContextGuest, hashedPassword)); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// RegisterBusiness stores a pending business account together with its lot.
// The proof document is removed again when the account cannot be stored.
func (s *serviceImpl) RegisterBusiness(ctx context.Context, req dto.RegisterBusinessRequest) (res dto.RegisterBusinessResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RegisterBusiness")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = s.ensureEmailFree(ctx, req.Email); err != nil {
		return res, err
	}

	if strings.TrimSpace(req.Lot.Address) == constant.Empty && req.Lot.Latitude != nil && req.Lot.Longitude != nil {
		place, err := s.geocode.Reverse(ctx, geocodeDto.ReverseRequest{Latitude: *req.Lot.Latitude, Longitude: *req.Lot.Longitude})
		if err != nil {
			log.Warn().Err(err).Msg("failed to resolve lot address, continuing without it")
		} else {
			req.Lot.Address = place.Address
		}
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	proofURL, err := s.s3.UploadFile(ctx, s3.DirProofDocuments, req.ProofDocumentFile, req.ProofDocument)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload proof document")

		return res, fmt.Errorf("failed to upload proof document: %w", err)
	}

	user := req.ToUserModel(hashedPassword)

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.userRepo.InsertTx(ctx, tx, user); err != nil {
			return fmt.Errorf("failed to create business user: %w", err)
		}

		lot, err := s.lots.Create(ctx, tx, req.Lot, user.ID, proofURL)
		if err != nil {
			return err //nolint:wrapcheck
		}

		res.Lot = lot

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to register business")

		if delErr := s.s3.DeleteObject(context.WithoutCancel(ctx), proofURL); delErr != nil {
			log.Error().Err(delErr).Str("url", proofURL).Msg("failed to remove orphaned proof document")
		}

		return res, fmt.Errorf("failed to register business: %w", err)
	}

	s.lots.NotifyCreated(ctx, res.Lot.ID)

	res.User.FromModel(user)

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, err := s.userRepo.Get(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.BadRequestFromString(errInvalidCredentials) // nolint:wrapcheck
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.BadRequestFromString(errInvalidCredentials) // nolint:wrapcheck
	}

	if err := admit(user); err != nil {
		return res, err
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email, user.Level)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	user.LastLogin = null.TimeFrom(timezone.Now())
	loginFields := userDto.UpdateLastLoginFields{LastLogin: user.LastLogin}

	if password.NeedsRehash(user.Password) {
		if rehashed, err := password.Hash(req.Password); err == nil {
			loginFields.Password = rehashed
		}
	}

	updatedFields := shared.TransformFields(loginFields, user.ID)

	if err := s.userRepo.Update(ctx, updatedFields, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	}

	res.FromTokenPair(tokenPair)
	res.User.FromModel(user)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(&err)

	claims, err := s.jwtService.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to validate refresh token")

		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	// The account is reloaded so a ban or deactivation ends the session at
	// the next refresh.
	user, err := s.userRepo.Get(ctx, shared.FilterByID(claims.UserID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.Unauthorized("invalid refresh token") // nolint:wrapcheck
	}

	if err := admit(user); err != nil {
		log.Warn().Str("user_id", user.ID).Str("status", user.Status).Msg("refresh refused for blocked account")

		return res, err
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email, user.Level)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(userID, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return failure.NotFoundFromError(userModel.ErrUserNotFound) // nolint:wrapcheck
	}

	if err := password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect") // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updatedFields := shared.TransformFields(userDto.UpdatePasswordFields{Password: hashedPassword}, userID)

	if err = s.userRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// Me returns the signed-in profile and, for business accounts, their lot.
func (s *serviceImpl) Me(ctx context.Context, userID string) (res dto.MeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Me")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, err := s.userRepo.Get(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFoundFromError(userModel.ErrUserNotFound) // nolint:wrapcheck
	}

	res.User.FromModel(user)

	if user.Level != constant.RoleBusiness {
		return res, nil
	}

	lot, err := s.lots.GetByOwner(ctx, user.ID)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.Lot = &lot

	return res, nil
}
