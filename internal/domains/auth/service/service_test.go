package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"parkflow/config"
	"parkflow/infras/jwt"
	jwtMocks "parkflow/infras/jwt/mocks"
	"parkflow/infras/otel/mocks"
	pgMocks "parkflow/infras/postgres/mocks"
	"parkflow/infras/s3"
	s3Mocks "parkflow/infras/s3/mocks"
	"parkflow/internal/domains/auth/model/dto"
	"parkflow/internal/domains/auth/service"
	geocodeDto "parkflow/internal/domains/geocode/model/dto"
	geocodeMocks "parkflow/internal/domains/geocode/service/mocks"
	lotDto "parkflow/internal/domains/lot/model/dto"
	lotMocks "parkflow/internal/domains/lot/service/mocks"
	userMocks "parkflow/internal/domains/user/mocks"
	userModel "parkflow/internal/domains/user/model"
	"parkflow/shared/constant"
	"parkflow/shared/failure"
	"parkflow/shared/password"
)

const proofURL = "https://cdn.example.com/proof-documents/doc.pdf"

type fixture struct {
	users   *userMocks.MockUser
	lots    *lotMocks.MockLot
	geocode *geocodeMocks.MockGeocode
	tx      *pgMocks.MockTransactor
	s3      *s3Mocks.MockS3
	jwt     *jwtMocks.MockJWT
	svc     service.Auth
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		users:   userMocks.NewMockUser(ctrl),
		lots:    lotMocks.NewMockLot(ctrl),
		geocode: geocodeMocks.NewMockGeocode(ctrl),
		tx:      pgMocks.NewMockTransactor(ctrl),
		s3:      s3Mocks.NewMockS3(ctrl),
		jwt:     jwtMocks.NewMockJWT(ctrl),
	}

	f.svc = service.New(f.users, f.lots, f.geocode, f.tx, f.s3, &config.Config{}, mocks.NewOtel(), f.jwt)

	return f
}

func hashed(t *testing.T, plain string) string {
	t.Helper()

	hash, err := password.Hash(plain)
	require.NoError(t, err)

	return hash
}

func TestAuthService_Login(t *testing.T) {
	hash := hashed(t, "password123")

	account := func(level, status string) userModel.User {
		return userModel.User{
			ID:       "user-1",
			Email:    "owner@example.com",
			Password: hash,
			Level:    level,
			Status:   status,
			Active:   true,
		}
	}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(f fixture)
		wantCode  int
		wantMsg   string
	}{
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@example.com", Password: "password123"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusBadRequest,
			wantMsg:  "invalid email or password",
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "owner@example.com", Password: "nope"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account(constant.RoleUser, constant.AccountStatusApproved), nil)
			},
			wantCode: http.StatusBadRequest,
			wantMsg:  "invalid email or password",
		},
		{
			name: "pending business",
			req:  dto.LoginRequest{Email: "owner@example.com", Password: "password123"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account(constant.RoleBusiness, constant.AccountStatusPending), nil)
			},
			wantCode: http.StatusForbidden,
			wantMsg:  "Your business account is pending admin approval. Please wait for approval before logging in.",
		},
		{
			name: "rejected business",
			req:  dto.LoginRequest{Email: "owner@example.com", Password: "password123"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account(constant.RoleBusiness, constant.AccountStatusRejected), nil)
			},
			wantCode: http.StatusForbidden,
			wantMsg:  "Your business account has been rejected. Please contact support.",
		},
		{
			name: "banned business",
			req:  dto.LoginRequest{Email: "owner@example.com", Password: "password123"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account(constant.RoleBusiness, constant.AccountStatusBanned), nil)
			},
			wantCode: http.StatusForbidden,
			wantMsg:  "Your business account has been banned. Please contact support.",
		},
		{
			name: "approved business",
			req:  dto.LoginRequest{Email: "Owner@Example.com", Password: "password123"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account(constant.RoleBusiness, constant.AccountStatusApproved), nil)
				f.jwt.EXPECT().
					GenerateTokenPair("user-1", "owner@example.com", constant.RoleBusiness).
					Return(&jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 900}, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "last login failure does not block sign in",
			req:  dto.LoginRequest{Email: "owner@example.com", Password: "password123"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account(constant.RoleUser, constant.AccountStatusApproved), nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any()).Return(&jwt.TokenPair{AccessToken: "access"}, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Login(context.Background(), tt.req)

			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, "access", res.AccessToken)
				assert.Equal(t, "user-1", res.User.ID)
				assert.True(t, res.User.LastLogin.Valid)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestAuthService_LoginRehashesWeakPassword(t *testing.T) {
	weak, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	f := newFixture(t)

	f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{
		ID:       "user-1",
		Email:    "driver@example.com",
		Password: string(weak),
		Level:    constant.RoleUser,
		Status:   constant.AccountStatusApproved,
		Active:   true,
	}, nil)
	f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any()).Return(&jwt.TokenPair{AccessToken: "access"}, nil)
	f.users.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
			rehashed, ok := fields[userModel.FieldPassword].(string)
			require.True(t, ok)
			assert.False(t, password.NeedsRehash(rehashed))
			assert.NoError(t, password.Verify("password123", rehashed))

			return nil
		})

	_, err = f.svc.Login(context.Background(), dto.LoginRequest{Email: "driver@example.com", Password: "password123"})
	require.NoError(t, err)
}

func TestAuthService_Register(t *testing.T) {
	t.Run("email taken", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := f.svc.Register(context.Background(), dto.RegisterRequest{Email: "a@b.co", Password: "password123"})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.users.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user userModel.User) error {
				assert.Equal(t, constant.RoleUser, user.Level)
				assert.NoError(t, password.Verify("password123", user.Password))

				return nil
			})

		err := f.svc.Register(context.Background(), dto.RegisterRequest{Email: "a@b.co", Password: "password123"})

		assert.NoError(t, err)
	})
}

func businessRequest() dto.RegisterBusinessRequest {
	lat, lng := 18.5204, 73.8567

	return dto.RegisterBusinessRequest{
		Email:    "owner@example.com",
		Password: "password123",
		Lot: lotDto.CreateLotRequest{
			Name:          "Central Parking",
			LicenseID:     "LIC-42",
			Latitude:      &lat,
			Longitude:     &lng,
			PricePerHour:  40,
			TotalCarSlots: 20,
		},
		ProofDocument: &multipart.FileHeader{Filename: "proof.pdf"},
	}
}

func runTx(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}

func TestAuthService_RegisterBusiness(t *testing.T) {
	t.Run("address is resolved and account stored with its lot", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.geocode.EXPECT().
			Reverse(gomock.Any(), geocodeDto.ReverseRequest{Latitude: 18.5204, Longitude: 73.8567}).
			Return(geocodeDto.ReverseResponse{Address: "Shivajinagar, Pune"}, nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), s3.DirProofDocuments, gomock.Any(), gomock.Any()).Return(proofURL, nil)
		f.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
		f.users.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, user userModel.User) error {
				assert.Equal(t, constant.RoleBusiness, user.Level)
				assert.Equal(t, constant.AccountStatusPending, user.Status)

				return nil
			})
		f.lots.EXPECT().
			Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), proofURL).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, req lotDto.CreateLotRequest, ownerID, _ string) (lotDto.LotResponse, error) {
				assert.Equal(t, "Shivajinagar, Pune", req.Address)

				return lotDto.LotResponse{ID: "lot-1", OwnerID: ownerID}, nil
			})
		f.lots.EXPECT().NotifyCreated(gomock.Any(), "lot-1")

		res, err := f.svc.RegisterBusiness(context.Background(), businessRequest())

		require.NoError(t, err)
		assert.Equal(t, constant.AccountStatusPending, res.User.Status)
		assert.Equal(t, res.User.ID, res.Lot.OwnerID)
	})

	t.Run("geocoder outage does not block registration", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.geocode.EXPECT().Reverse(gomock.Any(), gomock.Any()).Return(geocodeDto.ReverseResponse{}, failure.UpstreamUnavailable(errors.New("timeout")))
		f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(proofURL, nil)
		f.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
		f.users.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.lots.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(lotDto.LotResponse{ID: "lot-1"}, nil)
		f.lots.EXPECT().NotifyCreated(gomock.Any(), "lot-1")

		_, err := f.svc.RegisterBusiness(context.Background(), businessRequest())

		assert.NoError(t, err)
	})

	t.Run("failed commit announces nothing", func(t *testing.T) {
		f := newFixture(t)

		req := businessRequest()
		req.Lot.Address = "Given address"

		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(proofURL, nil)
		f.tx.EXPECT().
			WithTx(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fn func(tx *sqlx.Tx) error) error {
				require.NoError(t, fn(nil))

				return errors.New("commit failed")
			})
		f.users.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.lots.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(lotDto.LotResponse{ID: "lot-1"}, nil)
		f.lots.EXPECT().NotifyCreated(gomock.Any(), gomock.Any()).Times(0)
		f.s3.EXPECT().DeleteObject(gomock.Any(), proofURL).Return(nil)

		_, err := f.svc.RegisterBusiness(context.Background(), req)

		assert.Error(t, err)
	})

	t.Run("failed insert removes the uploaded proof", func(t *testing.T) {
		f := newFixture(t)

		req := businessRequest()
		req.Lot.Address = "Given address"

		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(proofURL, nil)
		f.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
		f.users.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.lots.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(lotDto.LotResponse{}, errors.New("insert failed"))
		f.s3.EXPECT().DeleteObject(gomock.Any(), proofURL).Return(nil)

		_, err := f.svc.RegisterBusiness(context.Background(), req)

		assert.Error(t, err)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	f := newFixture(t)

	user := userModel.User{ID: "user-1", Password: hashed(t, "password123"), Active: true}

	f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil).Times(2)
	f.users.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
			assert.Equal(t, "user-1", fields[constant.FieldModifiedBy])
			assert.NoError(t, password.Verify("newpassword1", fields[userModel.FieldPassword].(string)))

			return nil
		})

	err := f.svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "newpassword1"}, "user-1")
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	err = f.svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "newpassword1"}, "user-1")
	assert.NoError(t, err)
}

func TestAuthService_Me(t *testing.T) {
	f := newFixture(t)

	f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "user-1", Level: constant.RoleBusiness}, nil)
	f.lots.EXPECT().GetByOwner(gomock.Any(), "user-1").Return(lotDto.LotResponse{ID: "lot-1"}, nil)

	res, err := f.svc.Me(context.Background(), "user-1")

	require.NoError(t, err)
	require.NotNil(t, res.Lot)
	assert.Equal(t, "lot-1", res.Lot.ID)
}

func TestAuthService_RefreshToken(t *testing.T) {
	claims := &jwt.Claims{UserID: "user-1", Email: "owner@example.com", Role: constant.RoleBusiness, Type: jwt.RefreshToken}

	account := func(status string, active bool) userModel.User {
		return userModel.User{
			ID:     "user-1",
			Email:  "owner@example.com",
			Level:  constant.RoleBusiness,
			Status: status,
			Active: active,
		}
	}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
		wantMsg   string
	}{
		{
			name: "expired token",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
			wantMsg:  "invalid refresh token",
		},
		{
			name: "account deleted",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(claims, nil)
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
			wantMsg:  "invalid refresh token",
		},
		{
			name: "banned business",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(claims, nil)
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account(constant.AccountStatusBanned, true), nil)
			},
			wantCode: http.StatusForbidden,
			wantMsg:  "Your business account has been banned. Please contact support.",
		},
		{
			name: "deactivated account",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(claims, nil)
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account(constant.AccountStatusApproved, false), nil)
			},
			wantCode: http.StatusBadRequest,
			wantMsg:  "user account is deactivated",
		},
		{
			name: "lookup failure",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(claims, nil)
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))

			if tt.wantMsg != "" {
				var fail *failure.Failure
				require.ErrorAs(t, err, &fail)
				assert.Equal(t, tt.wantMsg, fail.Message)
			}
		})
	}

	t.Run("approved business", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken("refresh", jwt.RefreshToken).Return(claims, nil)
		f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account(constant.AccountStatusApproved, true), nil)
		f.jwt.EXPECT().
			GenerateTokenPair("user-1", "owner@example.com", constant.RoleBusiness).
			Return(&jwt.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2", ExpiresIn: 900}, nil)

		res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})

		require.NoError(t, err)
		assert.Equal(t, "access-2", res.AccessToken)
		assert.Equal(t, "refresh-2", res.RefreshToken)
	})
}
