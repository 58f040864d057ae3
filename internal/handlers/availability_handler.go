package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"lokalBack/internal/models"
	"lokalBack/internal/services"
)

type AvailabilityHandler struct {
	Service *services.AvailabilityService
}

func (h *AvailabilityHandler) ListForProvider(w http.ResponseWriter, r *http.Request) {
	providerID, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid provider ID", http.StatusBadRequest)
		return
	}

	windows, err := h.Service.ListForProvider(r.Context(), providerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(windows)
}

func (h *AvailabilityHandler) AddWindow(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var window models.AvailabilityWindow
	if err := json.NewDecoder(r.Body).Decode(&window); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.Service.AddWindow(r.Context(), userID, window)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrProviderNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, models.ErrInvalidRange):
			http.Error(w, "invalid day or time range", http.StatusBadRequest)
		case errors.Is(err, models.ErrOverlapConflict):
			http.Error(w, "window overlaps an existing one", http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *AvailabilityHandler) UpdateWindow(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	windowID, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid window ID", http.StatusBadRequest)
		return
	}

	var req models.AvailabilityUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.Service.UpdateWindow(r.Context(), userID, windowID, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrWindowNotFound), errors.Is(err, models.ErrProviderNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, "window belongs to another provider", http.StatusForbidden)
		case errors.Is(err, models.ErrInvalidRange):
			http.Error(w, "invalid time range", http.StatusBadRequest)
		case errors.Is(err, models.ErrOverlapConflict):
			http.Error(w, "window overlaps an existing one", http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *AvailabilityHandler) RemoveWindow(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	windowID, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid window ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.RemoveWindow(r.Context(), userID, windowID); err != nil {
		switch {
		case errors.Is(err, models.ErrWindowNotFound), errors.Is(err, models.ErrProviderNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, models.ErrForbidden):
			http.Error(w, "window belongs to another provider", http.StatusForbidden)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
