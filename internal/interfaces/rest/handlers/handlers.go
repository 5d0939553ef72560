package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator"

	"github.com/DanielPopoola/webshop-vip/internal/application"
	"github.com/DanielPopoola/webshop-vip/internal/application/services"
	"github.com/DanielPopoola/webshop-vip/internal/domain"
	"github.com/DanielPopoola/webshop-vip/internal/interfaces/rest"
)

type PaymentCreator interface {
	CreatePayment(ctx context.Context, cmd services.CreatePaymentCommand) (*domain.PaymentAttempt, error)
}

type PaymentCompleter interface {
	CompletePayment(ctx context.Context, cmd services.CompletePaymentCommand) (*domain.PaymentAttempt, error)
}

type PaymentQuerier interface {
	GetPrice() domain.Money
	GetPayment(ctx context.Context, paymentID int64, ownerEmail string) (*domain.PaymentAttempt, error)
	ListPayments(ctx context.Context, ownerEmail string, limit, offset int) ([]*domain.PaymentAttempt, error)
}

type PromotionManager interface {
	Activate(ctx context.Context, cmd services.ActivationCommand) (*domain.Listing, error)
	Deactivate(ctx context.Context, cmd services.ActivationCommand) (*domain.Listing, error)
	Status(ctx context.Context, listingID int64) (*services.PromotionStatus, error)
}

type Handlers struct {
	createService     PaymentCreator
	completeService   PaymentCompleter
	queryService      PaymentQuerier
	activationService PromotionManager
	validate          *validator.Validate
	logger            *slog.Logger
}

func NewHandlers(
	createService PaymentCreator,
	completeService PaymentCompleter,
	queryService PaymentQuerier,
	activationService PromotionManager,
	logger *slog.Logger,
) *Handlers {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handlers{
		createService:     createService,
		completeService:   completeService,
		queryService:      queryService,
		activationService: activationService,
		validate:          validate,
		logger:            logger,
	}
}

// decode reads a JSON body into dst and checks its validator tags.
func (h *Handlers) decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return application.NewInvalidInputError("request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return application.NewInvalidInputError("request body must be valid JSON")
	}

	if err := h.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return application.NewInvalidInputError(fmt.Sprintf("field %q failed %q validation", fe.Field(), fe.Tag()))
		}
		return application.NewInvalidInputError(err.Error())
	}
	return nil
}

func (h *Handlers) writeJSON(w http.ResponseWriter, body any) {
	rest.WriteJSON(w, http.StatusOK, body, h.logger)
}

func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	rest.WriteError(w, err, h.logger)
}
