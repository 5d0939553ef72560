package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business rule violation
type DomainError struct {
	Code    string
	Field   string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches any DomainError carrying the same code, so sentinels below work
// with errors.Is regardless of the message.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

const (
	ErrCodeInvalidTransition      = "INVALID_TRANSITION"
	ErrCodePaymentNotFound        = "PAYMENT_NOT_FOUND"
	ErrCodeListingNotFound        = "ITEM_NOT_FOUND"
	ErrCodeDuplicatePending       = "PAYMENT_ALREADY_PENDING"
	ErrCodeMissingRequiredField   = "MISSING_REQUIRED_FIELD"
	ErrCodeValidation             = "VALIDATION_ERROR"
	ErrCodeUnsupportedMethod      = "UNSUPPORTED_PAYMENT_METHOD"
	ErrCodeListingAlreadyPromoted = "ITEM_ALREADY_VIP"
)

var (
	ErrPaymentNotFound         = &DomainError{Code: ErrCodePaymentNotFound, Message: "payment not found"}
	ErrListingNotFound         = &DomainError{Code: ErrCodeListingNotFound, Message: "item not found"}
	ErrDuplicatePendingPayment = &DomainError{Code: ErrCodeDuplicatePending, Message: "a pending payment already exists for this item"}
	ErrInvalidTransition       = &DomainError{Code: ErrCodeInvalidTransition, Message: "invalid payment status transition"}
	ErrListingAlreadyPromoted  = &DomainError{Code: ErrCodeListingAlreadyPromoted, Message: "item already has VIP status"}
	ErrUnsupportedMethod       = &DomainError{Code: ErrCodeUnsupportedMethod, Field: "paymentMethod", Message: "VIP status requires payment with a card"}
)

func NewMissingRequiredFieldError(field string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingRequiredField,
		Field:   field,
		Message: fmt.Sprintf("%s is required", field),
	}
}

func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidation,
		Field:   field,
		Message: message,
	}
}

func NewInvalidTransitionError(from, to PaymentStatus) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
	}
}

func NewPaymentNotFoundError(id int64) *DomainError {
	return &DomainError{
		Code:    ErrCodePaymentNotFound,
		Message: fmt.Sprintf("payment %d not found", id),
	}
}

func NewListingNotFoundError(id int64) *DomainError {
	return &DomainError{
		Code:    ErrCodeListingNotFound,
		Message: fmt.Sprintf("item %d not found", id),
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
