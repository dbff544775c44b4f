package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/hangtime/internal/models"
	"github.com/HammerMeetNail/hangtime/internal/services"
)

type InterestHandler struct {
	interestService services.InterestServiceInterface
}

func NewInterestHandler(interestService services.InterestServiceInterface) *InterestHandler {
	return &InterestHandler{interestService: interestService}
}

type CreateInterestRequest struct {
	Title string `json:"title"`
}

type InterestListResponse struct {
	Interests []models.Interest `json:"interests"`
}

func (h *InterestHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateInterestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	interest, err := h.interestService.Create(r.Context(), user.ID, req.Title)
	if errors.Is(err, services.ErrInterestTitleSize) {
		writeError(w, http.StatusBadRequest, "Interest title must be between 1 and 100 characters")
		return
	}
	if err != nil {
		log.Printf("Error creating interest: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, interest)
}

func (h *InterestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	interestID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid interest ID")
		return
	}

	err = h.interestService.Delete(r.Context(), user.ID, interestID)
	if errors.Is(err, services.ErrInterestNotFound) {
		writeError(w, http.StatusNotFound, "Interest not found")
		return
	}
	if errors.Is(err, services.ErrNotInterestOwner) {
		writeError(w, http.StatusForbidden, "Only the owner can delete an interest")
		return
	}
	if err != nil {
		log.Printf("Error deleting interest: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *InterestHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	interests, err := h.interestService.ListByUser(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error listing interests: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, InterestListResponse{Interests: interests})
}
