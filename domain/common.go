package domain

import (
	"errors"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MesaageUserNotAllowed       = "user not allowed"

	ErrUserNotAllowed = errors.New("user not allowed")
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")

	// ErrValidation marks malformed input rejected before any store interaction.
	ErrValidation = errors.New("validation error")

	// ErrStoreFailure marks transaction/connectivity failures from the store;
	// any in-flight write has been rolled back before this surfaces.
	ErrStoreFailure = errors.New("store failure")

	// ErrStoreTimeout marks a store query/transaction timeout.
	ErrStoreTimeout = errors.New("store timeout")
)

const (
	DefaultPage     = 1
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// PageRequest is a 1-based page window request.
type PageRequest struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// Normalized clamps the request into the supported range: page >= 1,
// 1 <= size <= MaxPageSize, with defaults for unset values.
func (p PageRequest) Normalized() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Size
}

// Pages returns ceil(total/size). It reports 1 when total is 0 so paginated
// UIs always have a page to stand on.
func Pages(total int64, size int) int {
	if total <= 0 {
		return 1
	}
	return int((total + int64(size) - 1) / int64(size))
}
