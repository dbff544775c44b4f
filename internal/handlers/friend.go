package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/hangtime/internal/models"
	"github.com/HammerMeetNail/hangtime/internal/services"
)

type FriendHandler struct {
	friendService services.FriendServiceInterface
	availability  services.AvailabilityStore
}

func NewFriendHandler(friendService services.FriendServiceInterface, availability services.AvailabilityStore) *FriendHandler {
	return &FriendHandler{
		friendService: friendService,
		availability:  availability,
	}
}

type SendRequestRequest struct {
	FriendID string `json:"friend_id"`
}

type FriendListResponse struct {
	Friends  []models.FriendWithUser `json:"friends,omitempty"`
	Requests []models.FriendRequest  `json:"requests,omitempty"`
	Sent     []models.FriendWithUser `json:"sent,omitempty"`
	Message  string                  `json:"message,omitempty"`
}

// UserSearchResponse echoes the query so clients can drop responses that
// arrive after the input has changed.
type UserSearchResponse struct {
	Query string                    `json:"query"`
	Users []models.UserSearchResult `json:"users"`
}

type FriendAvailabilityResponse struct {
	Owner     *FriendOwner                  `json:"owner,omitempty"`
	Intervals []models.AvailabilityInterval `json:"intervals"`
}

type FriendOwner struct {
	Username string `json:"username"`
}

func (h *FriendHandler) Search(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	query := r.URL.Query().Get("q")
	if len(strings.TrimSpace(query)) < 2 {
		writeJSON(w, http.StatusOK, UserSearchResponse{Query: query, Users: []models.UserSearchResult{}})
		return
	}

	users, err := h.friendService.SearchUsers(r.Context(), user.ID, query)
	if err != nil {
		log.Printf("Error searching users: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, UserSearchResponse{Query: query, Users: users})
}

func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SendRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	friendID, err := uuid.Parse(req.FriendID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid friend ID")
		return
	}

	_, err = h.friendService.SendRequest(r.Context(), user.ID, friendID)
	if errors.Is(err, services.ErrCannotFriendSelf) {
		writeError(w, http.StatusBadRequest, "Cannot send friend request to yourself")
		return
	}
	if errors.Is(err, services.ErrFriendshipExists) {
		writeError(w, http.StatusConflict, "Friend request already exists")
		return
	}
	if err != nil {
		log.Printf("Error sending friend request: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, FriendListResponse{Message: "Friend request sent"})
}

func (h *FriendHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	friendshipID, err := parseFriendshipID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid friendship ID")
		return
	}

	_, err = h.friendService.AcceptRequest(r.Context(), user.ID, friendshipID)
	if errors.Is(err, services.ErrFriendshipNotFound) {
		writeError(w, http.StatusNotFound, "Friend request not found")
		return
	}
	if errors.Is(err, services.ErrNotFriendshipRecipient) {
		writeError(w, http.StatusForbidden, "Only the recipient can accept this request")
		return
	}
	if errors.Is(err, services.ErrFriendshipNotPending) {
		writeError(w, http.StatusBadRequest, "Request is not pending")
		return
	}
	if err != nil {
		log.Printf("Error accepting friend request: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, FriendListResponse{Message: "Friend request accepted"})
}

func (h *FriendHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	friendshipID, err := parseFriendshipID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid friendship ID")
		return
	}

	err = h.friendService.RejectRequest(r.Context(), user.ID, friendshipID)
	if errors.Is(err, services.ErrFriendshipNotFound) {
		writeError(w, http.StatusNotFound, "Friend request not found")
		return
	}
	if errors.Is(err, services.ErrNotFriendshipRecipient) {
		writeError(w, http.StatusForbidden, "Only the recipient can reject this request")
		return
	}
	if errors.Is(err, services.ErrFriendshipNotPending) {
		writeError(w, http.StatusBadRequest, "Request is not pending")
		return
	}
	if err != nil {
		log.Printf("Error rejecting friend request: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, FriendListResponse{Message: "Friend request rejected"})
}

func (h *FriendHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	friendshipID, err := parseFriendshipID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid friendship ID")
		return
	}

	err = h.friendService.RemoveFriend(r.Context(), user.ID, friendshipID)
	if errors.Is(err, services.ErrFriendshipNotFound) {
		writeError(w, http.StatusNotFound, "Friendship not found")
		return
	}
	if err != nil {
		log.Printf("Error removing friend: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, FriendListResponse{Message: "Friend removed"})
}

func (h *FriendHandler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	friendshipID, err := parseFriendshipID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid friendship ID")
		return
	}

	err = h.friendService.CancelRequest(r.Context(), user.ID, friendshipID)
	if errors.Is(err, services.ErrFriendshipNotFound) {
		writeError(w, http.StatusNotFound, "Friend request not found")
		return
	}
	if errors.Is(err, services.ErrFriendshipNotPending) {
		writeError(w, http.StatusBadRequest, "Request is not pending")
		return
	}
	if err != nil {
		log.Printf("Error canceling friend request: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, FriendListResponse{Message: "Friend request canceled"})
}

func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	friends, err := h.friendService.ListFriends(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error listing friends: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	requests, err := h.friendService.ListPendingRequests(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error listing pending requests: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	sent, err := h.friendService.ListSentRequests(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error listing sent requests: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, FriendListResponse{
		Friends:  friends,
		Requests: requests,
		Sent:     sent,
	})
}

// GetFriendAvailability returns an accepted friend's weekly grid. The
// friendship id comes from the path; only a participant of an accepted
// friendship can read the other side's intervals.
func (h *FriendHandler) GetFriendAvailability(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	friendshipID, err := parseFriendshipID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid friendship ID")
		return
	}

	friendUserID, err := h.friendService.GetFriendUserID(r.Context(), user.ID, friendshipID)
	if errors.Is(err, services.ErrFriendshipNotFound) {
		writeError(w, http.StatusNotFound, "Friendship not found")
		return
	}
	if errors.Is(err, services.ErrNotFriend) {
		writeError(w, http.StatusForbidden, "You are not friends with this user")
		return
	}
	if err != nil {
		log.Printf("Error getting friend user ID: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	intervals, err := h.availability.ListIntervals(r.Context(), friendUserID)
	if err != nil {
		log.Printf("Error listing friend availability: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	friends, err := h.friendService.ListFriends(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error getting friends list: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	var ownerName string
	for _, f := range friends {
		if f.OtherParty(user.ID) == friendUserID {
			ownerName = f.FriendUsername
			break
		}
	}

	writeJSON(w, http.StatusOK, FriendAvailabilityResponse{
		Owner:     &FriendOwner{Username: ownerName},
		Intervals: intervals,
	})
}

func parseFriendshipID(r *http.Request) (uuid.UUID, error) {
	if id := r.PathValue("id"); id != "" {
		return uuid.Parse(id)
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "requests" {
			return uuid.Parse(parts[i+1])
		}
	}
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "friends" {
			switch parts[i+1] {
			case "requests", "search":
				continue
			default:
				return uuid.Parse(parts[i+1])
			}
		}
	}
	return uuid.Nil, errors.New("friendship ID not found in path")
}
