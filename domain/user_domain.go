package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister     = "user registered successfully"
	MessageSuccessLogin        = "login success"
	MessageSuccessGetUser      = "success get user"
	MessageSuccessUpdateUser   = "user updated successfully"
	MessageSuccessUploadAvatar = "avatar uploaded successfully"
	MessageFailedRegister      = "failed to register user"
	MessageFailedLogin         = "failed to login"
	MessageFailedGetUser       = "failed to get user"
	MessageFailedUpdateUser    = "failed to update user"
	MessageFailedUploadAvatar  = "failed to upload avatar"
	MessageFailedCredentials   = "incorrect username or password"

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrWrongCredentials   = errors.New("incorrect username or password")
)

type (
	RegisterRequest struct {
		Username string `json:"username" validate:"required,min=3,max=100"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}

	UpdateUserRequest struct {
		Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=100"`
		Email    *string `json:"email,omitempty" validate:"omitempty,email"`
		Bio      *string `json:"bio,omitempty" validate:"omitempty,max=1000"`
	}

	UserResponse struct {
		ID        uint      `json:"id"`
		Username  string    `json:"username"`
		Email     string    `json:"email,omitempty"`
		Bio       string    `json:"bio,omitempty"`
		AvatarURL string    `json:"avatar_url,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}
)
