package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInternal      = errors.New("internal error")
	ErrConfiguration = errors.New("payment gateway is not configured")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrNoUpdatedData   = errors.New("no data to update")
	ErrConflictingData = errors.New("data conflicts with existing data in unique column")
	ErrStorage         = errors.New("storage is unavailable")

	// * Communication errors.
	ErrBadRequest       = errors.New("error parsing request")
	ErrValidation       = errors.New("invalid request")
	ErrDuplicateRequest = errors.New("request with this idempotency key is in progress")

	// * Authority errors.
	ErrTokenCreation              = errors.New("error creating token")
	ErrExpiredToken               = errors.New("access token has expired")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrInvalidCredentials         = errors.New("invalid username or password")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")
	ErrUnauthorized               = errors.New("user is unauthorized to access the resource")
	ErrForbidden                  = errors.New("user is forbidden to access the resource")

	// * Business errors.
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrGateway                 = errors.New("payment gateway request failed")
	ErrInvalidSignature        = errors.New("Invalid signature")
	ErrOrderNotFound           = errors.New("Order not found for verification")
	ErrInvalidStatusTransition = errors.New("order status transition is not allowed")
)

// FieldError reports the first invalid field of a request.
func FieldError(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, reason)
}
