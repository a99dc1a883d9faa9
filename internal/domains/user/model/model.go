package model

import (
	"errors"
	"parkflow/shared/model"

	"gopkg.in/guregu/null.v4"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID         = "id"
	FieldEmail      = "email"
	FieldPassword   = "password"
	FieldLevel      = "level"
	FieldStatus     = "status"
	FieldFullName   = "full_name"
	FieldIsVerified = "is_verified"
	FieldLastLogin  = "last_login"
	FieldActive     = "active"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrStatusChanged = errors.New("account status was changed concurrently")
)

type User struct {
	ID         string      `db:"id"`
	Email      string      `db:"email"`
	Password   string      `db:"password"`
	Level      string      `db:"level"`
	Status     string      `db:"status"`
	FullName   null.String `db:"full_name"`
	IsVerified bool        `db:"is_verified"`
	LastLogin  null.Time   `db:"last_login"`
	Active     bool        `db:"active"`
	model.Metadata
}
