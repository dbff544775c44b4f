package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/hangtime/internal/models"
	"github.com/HammerMeetNail/hangtime/internal/services"
)

type HangoutHandler struct {
	hangoutService services.HangoutServiceInterface
}

func NewHangoutHandler(hangoutService services.HangoutServiceInterface) *HangoutHandler {
	return &HangoutHandler{hangoutService: hangoutService}
}

type ProposeHangoutRequest struct {
	RecipientID string     `json:"recipient_id"`
	InterestID  *string    `json:"interest_id,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Location    *string    `json:"location,omitempty"`
	Message     *string    `json:"message,omitempty"`
	Description *string    `json:"description,omitempty"`
}

type RespondHangoutRequest struct {
	Accept bool `json:"accept"`
}

type HangoutListResponse struct {
	Upcoming []models.HangoutWithRelations `json:"upcoming,omitempty"`
	Incoming []models.HangoutWithRelations `json:"incoming,omitempty"`
	Sent     []models.HangoutWithRelations `json:"sent,omitempty"`
}

func (h *HangoutHandler) Propose(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req ProposeHangoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid recipient ID")
		return
	}

	params := models.ProposeHangoutParams{
		RecipientID: recipientID,
		Location:    req.Location,
		Message:     req.Message,
		Description: req.Description,
	}
	if req.ScheduledAt != nil {
		params.ScheduledAt = *req.ScheduledAt
	}
	if req.InterestID != nil {
		interestID, err := uuid.Parse(*req.InterestID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid interest ID")
			return
		}
		params.InterestID = &interestID
	}

	hangout, err := h.hangoutService.Propose(r.Context(), user.ID, params)
	if errors.Is(err, services.ErrCannotHangoutSelf) {
		writeError(w, http.StatusBadRequest, "Cannot propose a hangout to yourself")
		return
	}
	if errors.Is(err, services.ErrHangoutTimeRequired) {
		writeError(w, http.StatusBadRequest, "A proposed time is required")
		return
	}
	if errors.Is(err, services.ErrNotFriends) {
		writeError(w, http.StatusForbidden, "Recipient is not an accepted friend")
		return
	}
	if errors.Is(err, services.ErrInterestNotFound) {
		writeError(w, http.StatusNotFound, "Interest not found")
		return
	}
	if errors.Is(err, services.ErrInterestNotOwned) {
		writeError(w, http.StatusForbidden, "Interest does not belong to you")
		return
	}
	if err != nil {
		log.Printf("Error proposing hangout: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, hangout)
}

func (h *HangoutHandler) Respond(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	hangoutID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid hangout ID")
		return
	}

	var req RespondHangoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	hangout, err := h.hangoutService.Respond(r.Context(), user.ID, hangoutID, req.Accept)
	if errors.Is(err, services.ErrHangoutNotFound) {
		writeError(w, http.StatusNotFound, "Hangout not found")
		return
	}
	if errors.Is(err, services.ErrNotHangoutRecipient) {
		writeError(w, http.StatusForbidden, "Only the recipient can respond")
		return
	}
	if errors.Is(err, services.ErrHangoutNotPending) {
		writeError(w, http.StatusConflict, "Hangout has already been answered")
		return
	}
	if err != nil {
		log.Printf("Error responding to hangout: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, hangout)
}

func (h *HangoutHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	upcoming, err := h.hangoutService.ListUpcomingAccepted(r.Context(), user.ID, time.Now())
	if err != nil {
		log.Printf("Error listing upcoming hangouts: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	incoming, err := h.hangoutService.ListPendingIncoming(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error listing incoming hangouts: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	sent, err := h.hangoutService.ListPendingSent(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error listing sent hangouts: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, HangoutListResponse{
		Upcoming: upcoming,
		Incoming: incoming,
		Sent:     sent,
	})
}
