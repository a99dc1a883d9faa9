package dto

import (
	"mime/multipart"
	"strings"

	"parkflow/infras/jwt"
	lotDto "parkflow/internal/domains/lot/model/dto"
	userModel "parkflow/internal/domains/user/model"
	userDto "parkflow/internal/domains/user/model/dto"
	"parkflow/shared/constant"
	gModel "parkflow/shared/model"
	"parkflow/shared/timezone"

	"github.com/google/uuid"
	"gopkg.in/guregu/null.v4"
)

type RegisterRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=8"`
	FullName string `json:"full_name" validate:"omitempty,max=255"`
}

func (r *RegisterRequest) ToUserModel(username string, hashedPassword string) userModel.User {
	return newUser(r.Email, hashedPassword, r.FullName, constant.RoleUser, constant.AccountStatusApproved, username)
}

// RegisterBusinessRequest is read from a multipart form; the proof document
// is uploaded before the account and its lot are stored.
type RegisterBusinessRequest struct {
	Email             string                  `json:"email"          validate:"required,email"`
	Password          string                  `json:"password"       validate:"required,min=8"`
	FullName          string                  `json:"full_name"      validate:"omitempty,max=255"`
	Lot               lotDto.CreateLotRequest `json:"lot"`
	ProofDocument     *multipart.FileHeader   `json:"proof_document" validate:"required,mimetypes=application/pdf image/png image/jpg image/jpeg,maxfilesize=5"`
	ProofDocumentFile multipart.File          `json:"-"`
}

func (r *RegisterBusinessRequest) ToUserModel(hashedPassword string) userModel.User {
	user := newUser(r.Email, hashedPassword, r.FullName, constant.RoleBusiness, constant.AccountStatusPending, constant.ContextGuest)
	user.CreatedBy = user.ID
	user.ModifiedBy = user.ID

	return user
}

func newUser(email, hashedPassword, fullName, level, status, username string) userModel.User {
	return userModel.User{
		ID:         uuid.NewString(),
		Email:      strings.ToLower(strings.TrimSpace(email)),
		Password:   hashedPassword,
		Level:      level,
		Status:     status,
		FullName:   null.NewString(strings.TrimSpace(fullName), strings.TrimSpace(fullName) != ""),
		IsVerified: false,
		Active:     true,
		Metadata:   gModel.NewMetadata(username, timezone.Now()),
	}
}

type RegisterBusinessResponse struct {
	User userDto.UserResponse `json:"user"`
	Lot  lotDto.LotResponse   `json:"lot"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	ExpiresIn    int64                `json:"expires_in"`
	User         userDto.UserResponse `json:"user"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,nefield=CurrentPassword"`
}

// MeResponse is the signed-in profile. Lot is set for business accounts.
type MeResponse struct {
	User userDto.UserResponse `json:"user"`
	Lot  *lotDto.LotResponse  `json:"lot,omitempty"`
}
