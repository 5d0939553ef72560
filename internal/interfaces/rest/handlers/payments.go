package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/DanielPopoola/webshop-vip/internal/application"
	"github.com/DanielPopoola/webshop-vip/internal/application/services"
	"github.com/DanielPopoola/webshop-vip/internal/domain"
	"github.com/DanielPopoola/webshop-vip/internal/interfaces/rest"
)

const (
	msgPaymentCreated   = "Payment created successfully"
	msgPaymentCompleted = "Payment completed and VIP status activated"
)

func (h *Handlers) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	cmd := services.CreatePaymentCommand{
		ListingID:     req.ItemID,
		OwnerEmail:    req.OwnerEmail,
		PaymentMethod: req.PaymentMethod,
	}
	if req.CardNumber != "" || req.CardHolder != "" || req.ExpiryDate != "" {
		cmd.Card = &domain.CardDetails{
			Number: req.CardNumber,
			Holder: req.CardHolder,
			Expiry: req.ExpiryDate,
		}
	}

	payment, err := h.createService.CreatePayment(r.Context(), cmd)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, CreatePaymentResponse{
		Success:   true,
		PaymentID: payment.ID,
		ItemID:    payment.ListingID,
		Amount:    rest.Amount(payment.Amount()),
		Status:    string(payment.Status),
		Message:   msgPaymentCreated,
	})
}

func (h *Handlers) CompletePayment(w http.ResponseWriter, r *http.Request) {
	var req CompletePaymentRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	payment, err := h.completeService.CompletePayment(r.Context(), services.CompletePaymentCommand{
		PaymentID:    req.PaymentID,
		OwnerEmail:   req.OwnerEmail,
		GatewayToken: req.PaymentMethodID,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, CompletePaymentResponse{
		Success:   true,
		PaymentID: payment.ID,
		ItemID:    payment.ListingID,
		Status:    string(payment.Status),
		Message:   msgPaymentCompleted,
	})
}

func (h *Handlers) GetPrice(w http.ResponseWriter, _ *http.Request) {
	price := h.queryService.GetPrice()
	h.writeJSON(w, PriceResponse{
		Success:  true,
		Price:    rest.Amount(price),
		Currency: price.Currency,
	})
}

func (h *Handlers) GetPayment(w http.ResponseWriter, r *http.Request) {
	var paymentID int64
	err := runtime.BindStyledParameterWithLocation("simple", false, "paymentId", runtime.ParamLocationPath, chi.URLParam(r, "paymentId"), &paymentID)
	if err != nil || paymentID <= 0 {
		h.writeError(w, application.NewInvalidInputError("invalid parameter \"paymentId\""))
		return
	}

	var ownerEmail string
	if err := runtime.BindQueryParameter("form", true, true, "ownerEmail", r.URL.Query(), &ownerEmail); err != nil {
		h.writeError(w, application.NewInvalidInputError("invalid parameter \"ownerEmail\""))
		return
	}

	payment, err := h.queryService.GetPayment(r.Context(), paymentID, ownerEmail)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, PaymentResponse{Success: true, PaymentView: rest.ToPaymentView(payment)})
}

func (h *Handlers) ListPayments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var ownerEmail string
	if err := runtime.BindQueryParameter("form", true, true, "ownerEmail", query, &ownerEmail); err != nil {
		h.writeError(w, application.NewInvalidInputError("invalid parameter \"ownerEmail\""))
		return
	}

	var limit, offset *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &limit); err != nil {
		h.writeError(w, application.NewInvalidInputError("invalid parameter \"limit\""))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "offset", query, &offset); err != nil {
		h.writeError(w, application.NewInvalidInputError("invalid parameter \"offset\""))
		return
	}

	payments, err := h.queryService.ListPayments(r.Context(), ownerEmail, valueOr(limit, 0), valueOr(offset, 0))
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, PaymentHistoryResponse{Success: true, Payments: rest.ToPaymentViews(payments)})
}

func valueOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
