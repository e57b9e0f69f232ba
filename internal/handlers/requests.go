package handlers

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// JoinRoomRequest defines the DTO for adding a user to a room roster.
type JoinRoomRequest struct {
	RoomID   string `param:"roomID" json:"-" validate:"required"`
	UserID   string `json:"user_id" validate:"required"`
	Username string `json:"username" validate:"required"`
}
