package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"studio-backend/internal/middleware"
	"studio-backend/internal/models"
	"studio-backend/internal/services"
	"studio-backend/pkg/utils"
)

type EntryHandler struct {
	Service *services.EntryService
}

func NewEntryHandler(service *services.EntryService) *EntryHandler {
	return &EntryHandler{Service: service}
}

func entryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		utils.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.Error(w, http.StatusNotFound, err.Error())
	default:
		utils.Error(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Owner identity not found in context")
		return
	}

	var req models.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.Service.CreateEntry(r.Context(), ownerID, &req)
	if err != nil {
		entryError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, entry)
}

func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Owner identity not found in context")
		return
	}

	entries, err := h.Service.ListEntries(r.Context(), ownerID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []*models.ServiceEntry{}
	}

	utils.JSON(w, http.StatusOK, entries)
}

func (h *EntryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Owner identity not found in context")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	entry, err := h.Service.GetEntry(r.Context(), ownerID, id)
	if err != nil {
		entryError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, entry)
}

func (h *EntryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Owner identity not found in context")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	var req models.UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.Service.UpdateEntry(r.Context(), ownerID, id, &req)
	if err != nil {
		entryError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, entry)
}

func (h *EntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Owner identity not found in context")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	if err := h.Service.DeleteEntry(r.Context(), ownerID, id); err != nil {
		entryError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "Entry deleted"})
}

// ChannelSummary returns the derived totals for one channel.
func (h *EntryHandler) ChannelSummary(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetOwnerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Owner identity not found in context")
		return
	}

	channelName := r.URL.Query().Get("channel_name")
	summary, err := h.Service.ChannelSummary(r.Context(), ownerID, channelName)
	if err != nil {
		entryError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, summary)
}
