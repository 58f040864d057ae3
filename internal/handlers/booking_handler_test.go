package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"lokalBack/internal/models"
)

func TestBookingErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{models.ErrBookingNotFound, http.StatusNotFound},
		{models.ErrProviderNotFound, http.StatusNotFound},
		{models.ErrForbidden, http.StatusForbidden},
		{models.ErrInvalidTransition, http.StatusConflict},
		{models.ErrScheduleConflict, http.StatusConflict},
		{models.ErrOutOfAvailability, http.StatusBadRequest},
		{models.ErrPastSchedule, http.StatusBadRequest},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		bookingError(w, tt.err)
		if w.Code != tt.want {
			t.Errorf("bookingError(%v): got status %d, want %d", tt.err, w.Code, tt.want)
		}
	}
}
