package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"parkflow/infras/jwt"
	"parkflow/internal/domains/auth/model/dto"
	"parkflow/shared/constant"
)

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, int64(900), response.ExpiresIn)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	req := dto.RegisterRequest{Email: " Driver@Example.com ", Password: "secret123", FullName: "  "}

	user := req.ToUserModel(constant.ContextGuest, "hashed")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "driver@example.com", user.Email)
	assert.Equal(t, "hashed", user.Password)
	assert.Equal(t, constant.RoleUser, user.Level)
	assert.Equal(t, constant.AccountStatusApproved, user.Status)
	assert.False(t, user.FullName.Valid)
	assert.True(t, user.Active)
}

func TestRegisterBusinessRequest_ToUserModel(t *testing.T) {
	req := dto.RegisterBusinessRequest{Email: "owner@example.com", FullName: "Ravi Patil"}

	user := req.ToUserModel("hashed")

	assert.Equal(t, constant.RoleBusiness, user.Level)
	assert.Equal(t, constant.AccountStatusPending, user.Status)
	assert.Equal(t, "Ravi Patil", user.FullName.String)
	assert.Equal(t, user.ID, user.CreatedBy)
}
