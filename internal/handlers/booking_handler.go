package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"lokalBack/internal/models"
	"lokalBack/internal/services"
)

type BookingHandler struct {
	Service *services.BookingService
}

// bookingError translates lifecycle sentinels into HTTP statuses. Every
// booking operation shares the same mapping.
func bookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrBookingNotFound), errors.Is(err, models.ErrProviderNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrForbidden):
		http.Error(w, "not allowed for this booking", http.StatusForbidden)
	case errors.Is(err, models.ErrInvalidTransition):
		http.Error(w, "booking status does not allow this action", http.StatusConflict)
	case errors.Is(err, models.ErrScheduleConflict):
		http.Error(w, "provider already has a booking at this time", http.StatusConflict)
	case errors.Is(err, models.ErrOutOfAvailability):
		http.Error(w, "requested time is outside provider availability", http.StatusBadRequest)
	case errors.Is(err, models.ErrPastSchedule):
		http.Error(w, "scheduled time must be in the future", http.StatusBadRequest)
	case errors.Is(err, models.ErrInvalidRange):
		http.Error(w, "service_address is required", http.StatusBadRequest)
	case isForeignKeyConstraintError(err):
		http.Error(w, "unknown provider", http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.BookingCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	booking, err := h.Service.CreateBooking(r.Context(), userID, req)
	if err != nil {
		bookingError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(booking)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid booking ID", http.StatusBadRequest)
		return
	}

	booking, err := h.Service.GetBooking(r.Context(), id, userID, roleFromRequest(r))
	if err != nil {
		bookingError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(booking)
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	bookings, err := h.Service.ListForCustomer(r.Context(), userID, r.URL.Query().Get("status"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bookings)
}

func (h *BookingHandler) ListForProvider(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	bookings, err := h.Service.ListForProvider(r.Context(), userID, r.URL.Query().Get("status"))
	if err != nil {
		if errors.Is(err, models.ErrProviderNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bookings)
}

func (h *BookingHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	resp, err := h.Service.ListAll(r.Context(), r.URL.Query().Get("status"), page, pageSize)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

type bookingAction func(r *http.Request, bookingID, userID int) (models.Booking, error)

func (h *BookingHandler) act(w http.ResponseWriter, r *http.Request, action bookingAction) {
	userID, ok := userIDFromRequest(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := strconv.Atoi(getParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid booking ID", http.StatusBadRequest)
		return
	}

	booking, err := action(r, id, userID)
	if err != nil {
		bookingError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(booking)
}

func (h *BookingHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(r *http.Request, id, userID int) (models.Booking, error) {
		return h.Service.Accept(r.Context(), id, userID)
	})
}

func (h *BookingHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(r *http.Request, id, userID int) (models.Booking, error) {
		return h.Service.Reject(r.Context(), id, userID)
	})
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(r *http.Request, id, userID int) (models.Booking, error) {
		return h.Service.Cancel(r.Context(), id, userID)
	})
}

func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(r *http.Request, id, userID int) (models.Booking, error) {
		return h.Service.Complete(r.Context(), id, userID)
	})
}

func (h *BookingHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	var req models.BookingRescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	h.act(w, r, func(r *http.Request, id, userID int) (models.Booking, error) {
		return h.Service.Reschedule(r.Context(), id, userID, req)
	})
}
