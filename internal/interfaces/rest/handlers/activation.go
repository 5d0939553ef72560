package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/DanielPopoola/webshop-vip/internal/application"
	"github.com/DanielPopoola/webshop-vip/internal/application/services"
	"github.com/DanielPopoola/webshop-vip/internal/interfaces/rest"
)

func (h *Handlers) ActivateVIP(w http.ResponseWriter, r *http.Request) {
	var req ActivationRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	listing, err := h.activationService.Activate(r.Context(), services.ActivationCommand{
		ListingID:  req.ItemID,
		OwnerEmail: req.OwnerEmail,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, ListingResponse{Success: true, ListingView: rest.ToListingView(listing), Message: "VIP status activated"})
}

func (h *Handlers) DeactivateVIP(w http.ResponseWriter, r *http.Request) {
	var req ActivationRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	listing, err := h.activationService.Deactivate(r.Context(), services.ActivationCommand{
		ListingID:  req.ItemID,
		OwnerEmail: req.OwnerEmail,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, ListingResponse{Success: true, ListingView: rest.ToListingView(listing), Message: "VIP status deactivated"})
}

func (h *Handlers) VIPStatus(w http.ResponseWriter, r *http.Request) {
	var itemID int64
	err := runtime.BindStyledParameterWithLocation("simple", false, "itemId", runtime.ParamLocationPath, chi.URLParam(r, "itemId"), &itemID)
	if err != nil || itemID <= 0 {
		h.writeError(w, application.NewInvalidInputError("invalid parameter \"itemId\""))
		return
	}

	status, err := h.activationService.Status(r.Context(), itemID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, StatusResponse{
		Success:             true,
		ItemID:              status.ListingID,
		IsVIP:               status.Promoted,
		HasCompletedPayment: status.HasCompletedPayment,
		PendingPaymentID:    status.PendingPaymentID,
	})
}
