package models

import (
	"time"

	"github.com/google/uuid"
)

type FriendshipStatus string

const (
	FriendshipStatusPending  FriendshipStatus = "pending"
	FriendshipStatusAccepted FriendshipStatus = "accepted"
)

// Friendship is a directed edge: UserID sent the request, FriendID received
// it. Once accepted the relationship is symmetric; query helpers resolve
// "the other party" so call sites never branch on direction themselves.
type Friendship struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	FriendID  uuid.UUID        `json:"friend_id"`
	Status    FriendshipStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}

// OtherParty returns the counterpart of userID in this friendship.
func (f Friendship) OtherParty(userID uuid.UUID) uuid.UUID {
	if f.UserID == userID {
		return f.FriendID
	}
	return f.UserID
}

type FriendWithUser struct {
	Friendship
	FriendUsername string `json:"friend_username"`
}

type FriendRequest struct {
	Friendship
	RequesterUsername string `json:"requester_username"`
}

type UserSearchResult struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}
