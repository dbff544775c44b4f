package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/HammerMeetNail/hangtime/internal/models"
	"github.com/HammerMeetNail/hangtime/internal/services"
)

type AvailabilityHandler struct {
	availability services.AvailabilityStore
	schedule     services.ScheduleServiceInterface
}

func NewAvailabilityHandler(availability services.AvailabilityStore, schedule services.ScheduleServiceInterface) *AvailabilityHandler {
	return &AvailabilityHandler{
		availability: availability,
		schedule:     schedule,
	}
}

type AvailabilityResponse struct {
	Intervals []models.AvailabilityInterval `json:"intervals"`
}

type ToggleRequest struct {
	Anchor models.Cell `json:"anchor"`
	Focus  models.Cell `json:"focus"`
}

func (h *AvailabilityHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	intervals, err := h.availability.ListIntervals(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error listing availability: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, AvailabilityResponse{Intervals: intervals})
}

// Toggle applies one calendar drag. The response carries the resolved
// direction, per-operation failures when the apply was partial, and the
// reconciled state of the affected day.
func (h *AvailabilityHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.schedule.Toggle(r.Context(), user.ID, req.Anchor, req.Focus)
	if errors.Is(err, services.ErrInvalidSelection) {
		writeError(w, http.StatusBadRequest, "Selection is outside the weekly grid")
		return
	}
	if err != nil {
		log.Printf("Error toggling availability: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
