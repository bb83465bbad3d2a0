package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrNoUpdatedData   = errors.New("no data to update")
	ErrConflictingData = errors.New("data conflicts with existing data in unique column")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")

	// * Authority errors.
	ErrTokenCreation              = errors.New("error creating token")
	ErrExpiredToken               = errors.New("access token has expired")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrInvalidCredentials         = errors.New("invalid login or password")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")
	ErrUnauthorized               = errors.New("user is unauthorized to access the resource")
	ErrForbidden                  = errors.New("user is forbidden to access the resource")

	// * Business errors.
	ErrValidation        = errors.New("validation failed")
	ErrPaymentFailed     = errors.New("payment failed")
	ErrRefundNotAllowed  = errors.New("only a completed payment can be refunded")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InvalidStateError reports an operation attempted against an order whose
// current status does not allow it.
type InvalidStateError struct {
	Status OrderStatus
	Reason string
}

func (e *InvalidStateError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s (current status %s)", e.Reason, e.Status)
	}
	return fmt.Sprintf("operation not allowed in status %s", e.Status)
}

// InsufficientInventoryError names the product that could not cover the
// requested quantity.
type InsufficientInventoryError struct {
	ProductID   string
	ProductName string
	Requested   int64
	Available   int64
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("%s for %s (%s): requested %d, available %d",
		ErrInsufficientStock, e.ProductName, e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientInventoryError) Unwrap() error {
	return ErrInsufficientStock
}
