package application

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a ServiceError for the API surface.
type ErrorKind string

const (
	KindNotFound        ErrorKind = "NOT_FOUND"
	KindForbidden       ErrorKind = "FORBIDDEN"
	KindConflict        ErrorKind = "CONFLICT"
	KindValidation      ErrorKind = "VALIDATION"
	KindPaymentRequired ErrorKind = "PAYMENT_REQUIRED"
	KindGateway         ErrorKind = "GATEWAY"
	KindInternal        ErrorKind = "INTERNAL"
)

type ServiceError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// IsBusiness reports whether the error is a rule violation the client caused.
func (e *ServiceError) IsBusiness() bool {
	switch e.Kind {
	case KindGateway, KindInternal:
		return false
	default:
		return true
	}
}

const (
	ErrCodeItemNotFound     = "ITEM_NOT_FOUND"
	ErrCodePaymentNotFound  = "PAYMENT_NOT_FOUND"
	ErrCodeNotOwner         = "NOT_OWNER"
	ErrCodeAlreadyPromoted  = "ITEM_ALREADY_VIP"
	ErrCodePaymentPending   = "PAYMENT_ALREADY_PENDING"
	ErrCodePaymentCompleted = "PAYMENT_ALREADY_COMPLETED"
	ErrCodePaymentFailed    = "PAYMENT_FAILED"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodePaymentRequired  = "PAYMENT_REQUIRED"
	ErrCodeGateway          = "GATEWAY_ERROR"
	ErrCodeInternal         = "INTERNAL_ERROR"
	ErrCodeInvalidInput     = "INVALID_INPUT"
)

func NewItemNotFoundError(err error) *ServiceError {
	return &ServiceError{
		Kind:    KindNotFound,
		Code:    ErrCodeItemNotFound,
		Message: "Item not found",
		Err:     err,
	}
}

func NewPaymentNotFoundError(err error) *ServiceError {
	return &ServiceError{
		Kind:    KindNotFound,
		Code:    ErrCodePaymentNotFound,
		Message: "Payment not found",
		Err:     err,
	}
}

func NewItemForbiddenError() *ServiceError {
	return &ServiceError{
		Kind:    KindForbidden,
		Code:    ErrCodeNotOwner,
		Message: "Only the item owner can purchase VIP status",
	}
}

func NewPaymentForbiddenError() *ServiceError {
	return &ServiceError{
		Kind:    KindForbidden,
		Code:    ErrCodeNotOwner,
		Message: "Payment belongs to a different owner",
	}
}

func NewAlreadyPromotedError() *ServiceError {
	return &ServiceError{
		Kind:    KindConflict,
		Code:    ErrCodeAlreadyPromoted,
		Message: "Item already has VIP status",
	}
}

func NewPaymentPendingError(err error) *ServiceError {
	return &ServiceError{
		Kind:    KindConflict,
		Code:    ErrCodePaymentPending,
		Message: "A payment is already pending for this item",
		Err:     err,
	}
}

func NewPaymentCompletedError() *ServiceError {
	return &ServiceError{
		Kind:    KindConflict,
		Code:    ErrCodePaymentCompleted,
		Message: "Payment already completed",
	}
}

func NewPaymentFailedError() *ServiceError {
	return &ServiceError{
		Kind:    KindConflict,
		Code:    ErrCodePaymentFailed,
		Message: "Payment has failed and cannot be completed",
	}
}

func NewValidationError(err error) *ServiceError {
	msg := "Invalid payment details"
	if err != nil {
		msg = err.Error()
	}
	return &ServiceError{
		Kind:    KindValidation,
		Code:    ErrCodeValidation,
		Message: msg,
		Err:     err,
	}
}

// NewInvalidInputError reports a malformed request, before any service runs.
func NewInvalidInputError(message string) *ServiceError {
	return &ServiceError{
		Kind:    KindValidation,
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}

func NewPaymentRequiredError() *ServiceError {
	return &ServiceError{
		Kind:    KindPaymentRequired,
		Code:    ErrCodePaymentRequired,
		Message: "Payment is required to activate VIP. Please complete payment first.",
	}
}

func NewGatewayError(err error) *ServiceError {
	return &ServiceError{
		Kind:    KindGateway,
		Code:    ErrCodeGateway,
		Message: "Payment processing failed",
		Err:     err,
	}
}

func NewInternalError(err error) *ServiceError {
	return &ServiceError{
		Kind:    KindInternal,
		Code:    ErrCodeInternal,
		Message: "An internal error occurred",
		Err:     err,
	}
}

func IsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	ok := errors.As(err, &svcErr)
	return svcErr, ok
}

// ChargeOutcome distinguishes the failure modes of a gateway charge.
type ChargeOutcome string

const (
	ChargeDeclined       ChargeOutcome = "DECLINED"
	ChargeTransportError ChargeOutcome = "TRANSPORT_ERROR"
)

// ChargeError is returned by GatewayClient implementations for any non-success.
type ChargeError struct {
	Outcome    ChargeOutcome
	Code       string
	Message    string
	StatusCode int
	Err        error
}

func (e *ChargeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gateway %s [%s]: %s: %v", e.Outcome, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("gateway %s [%s]: %s (status: %d)", e.Outcome, e.Code, e.Message, e.StatusCode)
}

func (e *ChargeError) Unwrap() error {
	return e.Err
}

func (e *ChargeError) IsRetryable() bool {
	return e.Outcome == ChargeTransportError
}

func IsChargeError(err error) (*ChargeError, bool) {
	var chargeErr *ChargeError
	ok := errors.As(err, &chargeErr)
	return chargeErr, ok
}
