package dto

import (
	"parkflow/internal/domains/user/model"
	gDto "parkflow/shared/dto"

	"gopkg.in/guregu/null.v4"
)

type UserResponse struct {
	ID         string      `json:"id"`
	Email      string      `json:"email"`
	Level      string      `json:"level"`
	Status     string      `json:"status"`
	FullName   null.String `json:"full_name"   swaggertype:"string"`
	IsVerified bool        `json:"is_verified"`
	LastLogin  null.Time   `json:"last_login"  swaggertype:"string"`
	Active     bool        `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Level = model.Level
	r.Status = model.Status
	r.FullName = model.FullName
	r.IsVerified = model.IsVerified
	r.LastLogin = model.LastLogin
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

// UpdateLastLoginFields also carries a rehashed password when the bcrypt
// cost changed since the account was created.
type UpdateLastLoginFields struct {
	LastLogin null.Time `db:"last_login"`
	Password  string    `db:"password"`
}

type UpdatePasswordFields struct {
	Password string `db:"password"`
}
