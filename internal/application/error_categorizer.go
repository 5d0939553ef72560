package application

import (
	"context"
	"errors"
	"net/http"

	"github.com/DanielPopoola/webshop-vip/internal/domain"
)

// ErrorCategory represents the nature of an error for retry and logging purposes
type ErrorCategory string

const (
	CategoryTransient      ErrorCategory = "TRANSIENT"
	CategoryPermanent      ErrorCategory = "PERMANENT"
	CategoryBusinessRule   ErrorCategory = "BUSINESS_RULE"
	CategoryClientError    ErrorCategory = "CLIENT_ERROR"
	CategoryInfrastructure ErrorCategory = "INFRASTRUCTURE"
)

// CategorizeError determines the error category
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	if svcErr, ok := IsServiceError(err); ok {
		switch svcErr.Kind {
		case KindConflict, KindPaymentRequired:
			return CategoryBusinessRule
		case KindNotFound, KindForbidden, KindValidation:
			return CategoryClientError
		case KindGateway:
			if chargeErr, ok := IsChargeError(err); ok && chargeErr.Outcome == ChargeDeclined {
				return CategoryPermanent
			}
			return CategoryTransient
		case KindInternal:
			return CategoryInfrastructure
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return CategoryTransient
	}

	if chargeErr, ok := IsChargeError(err); ok {
		if chargeErr.Outcome == ChargeDeclined {
			return CategoryPermanent
		}
		return CategoryTransient
	}

	if errors.Is(err, domain.ErrInvalidTransition) ||
		errors.Is(err, domain.ErrDuplicatePendingPayment) ||
		errors.Is(err, domain.ErrListingAlreadyPromoted) {
		return CategoryBusinessRule
	}

	if errors.Is(err, domain.ErrPaymentNotFound) ||
		errors.Is(err, domain.ErrListingNotFound) {
		return CategoryClientError
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return CategoryClientError
	}

	return CategoryInfrastructure
}

// IsRetryable returns true if the client may retry the same request later.
// Gateway and internal failures leave a pending attempt intact, so retrying
// completion is safe.
func IsRetryable(err error) bool {
	category := CategorizeError(err)
	return category == CategoryTransient || category == CategoryInfrastructure
}

// ToHTTPStatus maps an error onto the API status families: every business
// rule violation is a 400, gateway and internal faults are a 500.
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if svcErr, ok := IsServiceError(err); ok {
		if svcErr.IsBusiness() {
			return http.StatusBadRequest
		}
		return http.StatusInternalServerError
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// ToErrorCode returns the machine-readable code for API responses
func ToErrorCode(err error) string {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.Code
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}

	if _, ok := IsChargeError(err); ok {
		return ErrCodeGateway
	}

	return ErrCodeInternal
}

// ToMessage returns a client-safe message. Internal details never leak.
func ToMessage(err error) string {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.Message
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return "An internal error occurred"
}
