package errors

import (
	stderrors "errors"
	"fmt"
)

// AuthError is returned when a caller cannot be identified
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// ValidationError describes a malformed request field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Field)
}

// NotFoundError is returned when a referenced record does not exist
type NotFoundError struct {
	Resource string
	ID       string
	Message  string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// UnavailableError is returned when a product exists but can no longer be sold
type UnavailableError struct {
	Name string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("product is no longer available: %s", e.Name)
}

// PaymentProviderError wraps a rejection from the payment provider
type PaymentProviderError struct {
	Op      string
	Message string
	Err     error
}

func (e *PaymentProviderError) Error() string {
	return e.Message
}

func (e *PaymentProviderError) Unwrap() error {
	return e.Err
}

// ForbiddenError is returned when an authenticated user lacks a required role
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	if e.Message == "" {
		return "access denied"
	}
	return e.Message
}

// InvalidStateTransitionError is returned for a disallowed order status change
type InvalidStateTransitionError struct {
	From string
	To   string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

func IsAuth(err error) bool {
	var target *AuthError
	return stderrors.As(err, &target)
}

func IsValidation(err error) bool {
	var target *ValidationError
	return stderrors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return stderrors.As(err, &target)
}

func IsUnavailable(err error) bool {
	var target *UnavailableError
	return stderrors.As(err, &target)
}

func IsPaymentProvider(err error) bool {
	var target *PaymentProviderError
	return stderrors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target *ForbiddenError
	return stderrors.As(err, &target)
}

func IsInvalidStateTransition(err error) bool {
	var target *InvalidStateTransitionError
	return stderrors.As(err, &target)
}
