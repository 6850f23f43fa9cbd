package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"studio-backend/internal/middleware"
	"studio-backend/internal/models"
	"studio-backend/internal/services"
	"studio-backend/pkg/utils"
)

type PaymentHandler struct {
	Service  *services.PaymentService
	Receipts *services.ReceiptService
}

func NewPaymentHandler(service *services.PaymentService, receipts *services.ReceiptService) *PaymentHandler {
	return &PaymentHandler{Service: service, Receipts: receipts}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.Error(w, http.StatusNotFound, err.Error())
	default:
		utils.Error(w, http.StatusInternalServerError, "Payment failed.")
	}
}

// Pay applies a payment amount across the channel's outstanding entries.
func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Owner identity not found in context")
		return
	}
	paidBy, _ := middleware.GetEmailFromContext(r.Context())

	var req models.PayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.Service.Allocate(r.Context(), ownerID, paidBy, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, result)
}

// PayAll clears every outstanding entry for the channel.
func (h *PaymentHandler) PayAll(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Owner identity not found in context")
		return
	}
	paidBy, _ := middleware.GetEmailFromContext(r.Context())

	var req models.PayAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.Service.SettleAll(r.Context(), ownerID, paidBy, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, result)
}

// History returns payment records, newest first, optionally filtered by the
// channel_name query parameter.
func (h *PaymentHandler) History(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Owner identity not found in context")
		return
	}

	channelName := r.URL.Query().Get("channel_name")
	records, err := h.Service.History(r.Context(), ownerID, channelName)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to fetch payment history.")
		return
	}
	if records == nil {
		records = []*models.PaymentRecord{}
	}

	utils.JSON(w, http.StatusOK, records)
}

// Receipt streams a PDF receipt for one payment record.
func (h *PaymentHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Owner identity not found in context")
		return
	}

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid payment record ID")
		return
	}

	rec, err := h.Service.GetRecord(r.Context(), ownerID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pdf, err := h.Receipts.RenderReceipt(rec)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to generate receipt")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="receipt-%d.pdf"`, rec.ID))
	w.Write(pdf)
}
