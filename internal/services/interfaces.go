package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/hangtime/internal/models"
)

// UserServiceInterface defines the contract for user operations.
type UserServiceInterface interface {
	Create(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, newPasswordHash string) error
	UpdateSearchable(ctx context.Context, userID uuid.UUID, searchable bool) error
}

// AuthServiceInterface defines the contract for authentication operations.
type AuthServiceInterface interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hash, password string) bool
	CreateSession(ctx context.Context, userID uuid.UUID) (token string, err error)
	ValidateSession(ctx context.Context, token string) (*models.User, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteAllUserSessions(ctx context.Context, userID uuid.UUID) error
}

// FriendServiceInterface defines the contract for friendship operations.
type FriendServiceInterface interface {
	SearchUsers(ctx context.Context, currentUserID uuid.UUID, query string) ([]models.UserSearchResult, error)
	SendRequest(ctx context.Context, userID, friendID uuid.UUID) (*models.Friendship, error)
	AcceptRequest(ctx context.Context, userID, friendshipID uuid.UUID) (*models.Friendship, error)
	RejectRequest(ctx context.Context, userID, friendshipID uuid.UUID) error
	CancelRequest(ctx context.Context, userID, friendshipID uuid.UUID) error
	RemoveFriend(ctx context.Context, userID, friendshipID uuid.UUID) error
	ListFriends(ctx context.Context, userID uuid.UUID) ([]models.FriendWithUser, error)
	ListPendingRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendRequest, error)
	ListSentRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendWithUser, error)
	IsFriend(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error)
	GetFriendUserID(ctx context.Context, currentUserID, friendshipID uuid.UUID) (uuid.UUID, error)
}

// FriendChecker is the narrow friendship check consumed by the hangout
// service.
type FriendChecker interface {
	IsFriend(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error)
}

// InterestServiceInterface defines the contract for interest operations.
type InterestServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, title string) (*models.Interest, error)
	Delete(ctx context.Context, userID, interestID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Interest, error)
	GetByID(ctx context.Context, interestID uuid.UUID) (*models.Interest, error)
}

// AvailabilityStore is the weekly free-time store. InsertInterval performs
// no overlap validation; callers (the schedule engine) guarantee that
// inserted intervals do not overlap existing rows for the same (user, day).
type AvailabilityStore interface {
	ListIntervals(ctx context.Context, userID uuid.UUID) ([]models.AvailabilityInterval, error)
	ListDay(ctx context.Context, userID uuid.UUID, day int) ([]models.AvailabilityInterval, error)
	IsHourFree(ctx context.Context, userID uuid.UUID, day, hour int) (*models.AvailabilityInterval, error)
	InsertInterval(ctx context.Context, userID uuid.UUID, day, startHour, endHour int) (*models.AvailabilityInterval, error)
	DeleteInterval(ctx context.Context, id uuid.UUID) error
	ApplyPlan(ctx context.Context, userID uuid.UUID, plan TogglePlan) []ToggleOpFailure
}

// ScheduleServiceInterface is the toggle entry point the handlers use.
type ScheduleServiceInterface interface {
	Toggle(ctx context.Context, userID uuid.UUID, anchor, focus models.Cell) (*ToggleResult, error)
}

// HangoutServiceInterface defines the contract for the hangout proposal
// workflow.
type HangoutServiceInterface interface {
	Propose(ctx context.Context, senderID uuid.UUID, params models.ProposeHangoutParams) (*models.Hangout, error)
	Respond(ctx context.Context, userID, hangoutID uuid.UUID, accept bool) (*models.Hangout, error)
	ListUpcomingAccepted(ctx context.Context, userID uuid.UUID, now time.Time) ([]models.HangoutWithRelations, error)
	ListPendingIncoming(ctx context.Context, userID uuid.UUID) ([]models.HangoutWithRelations, error)
	ListPendingSent(ctx context.Context, userID uuid.UUID) ([]models.HangoutWithRelations, error)
}
