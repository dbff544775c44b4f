package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/hangtime/internal/models"
	"github.com/HammerMeetNail/hangtime/internal/services"
)

type mockUserService struct {
	CreateFunc           func(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmailFunc       func(ctx context.Context, email string) (*models.User, error)
	UpdatePasswordFunc   func(ctx context.Context, userID uuid.UUID, newPasswordHash string) error
	UpdateSearchableFunc func(ctx context.Context, userID uuid.UUID, searchable bool) error
}

func (m *mockUserService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserService) UpdatePassword(ctx context.Context, userID uuid.UUID, newPasswordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, userID, newPasswordHash)
	}
	return nil
}

func (m *mockUserService) UpdateSearchable(ctx context.Context, userID uuid.UUID, searchable bool) error {
	if m.UpdateSearchableFunc != nil {
		return m.UpdateSearchableFunc(ctx, userID, searchable)
	}
	return nil
}

type mockAuthService struct {
	HashPasswordFunc          func(password string) (string, error)
	VerifyPasswordFunc        func(hash, password string) bool
	CreateSessionFunc         func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateSessionFunc       func(ctx context.Context, token string) (*models.User, error)
	DeleteSessionFunc         func(ctx context.Context, token string) error
	DeleteAllUserSessionsFunc func(ctx context.Context, userID uuid.UUID) error
}

func (m *mockAuthService) HashPassword(password string) (string, error) {
	if m.HashPasswordFunc != nil {
		return m.HashPasswordFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockAuthService) VerifyPassword(hash, password string) bool {
	if m.VerifyPasswordFunc != nil {
		return m.VerifyPasswordFunc(hash, password)
	}
	return hash == "hashed_"+password
}

func (m *mockAuthService) CreateSession(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, userID)
	}
	return "test_session_token", nil
}

func (m *mockAuthService) ValidateSession(ctx context.Context, token string) (*models.User, error) {
	if m.ValidateSessionFunc != nil {
		return m.ValidateSessionFunc(ctx, token)
	}
	return nil, nil
}

func (m *mockAuthService) DeleteSession(ctx context.Context, token string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, token)
	}
	return nil
}

func (m *mockAuthService) DeleteAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteAllUserSessionsFunc != nil {
		return m.DeleteAllUserSessionsFunc(ctx, userID)
	}
	return nil
}

type mockFriendService struct {
	SearchUsersFunc         func(ctx context.Context, currentUserID uuid.UUID, query string) ([]models.UserSearchResult, error)
	SendRequestFunc         func(ctx context.Context, userID, friendID uuid.UUID) (*models.Friendship, error)
	AcceptRequestFunc       func(ctx context.Context, userID, friendshipID uuid.UUID) (*models.Friendship, error)
	RejectRequestFunc       func(ctx context.Context, userID, friendshipID uuid.UUID) error
	CancelRequestFunc       func(ctx context.Context, userID, friendshipID uuid.UUID) error
	RemoveFriendFunc        func(ctx context.Context, userID, friendshipID uuid.UUID) error
	ListFriendsFunc         func(ctx context.Context, userID uuid.UUID) ([]models.FriendWithUser, error)
	ListPendingRequestsFunc func(ctx context.Context, userID uuid.UUID) ([]models.FriendRequest, error)
	ListSentRequestsFunc    func(ctx context.Context, userID uuid.UUID) ([]models.FriendWithUser, error)
	IsFriendFunc            func(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error)
	GetFriendUserIDFunc     func(ctx context.Context, currentUserID, friendshipID uuid.UUID) (uuid.UUID, error)
}

func (m *mockFriendService) SearchUsers(ctx context.Context, currentUserID uuid.UUID, query string) ([]models.UserSearchResult, error) {
	if m.SearchUsersFunc != nil {
		return m.SearchUsersFunc(ctx, currentUserID, query)
	}
	return []models.UserSearchResult{}, nil
}

func (m *mockFriendService) SendRequest(ctx context.Context, userID, friendID uuid.UUID) (*models.Friendship, error) {
	if m.SendRequestFunc != nil {
		return m.SendRequestFunc(ctx, userID, friendID)
	}
	return nil, nil
}

func (m *mockFriendService) AcceptRequest(ctx context.Context, userID, friendshipID uuid.UUID) (*models.Friendship, error) {
	if m.AcceptRequestFunc != nil {
		return m.AcceptRequestFunc(ctx, userID, friendshipID)
	}
	return nil, nil
}

func (m *mockFriendService) RejectRequest(ctx context.Context, userID, friendshipID uuid.UUID) error {
	if m.RejectRequestFunc != nil {
		return m.RejectRequestFunc(ctx, userID, friendshipID)
	}
	return nil
}

func (m *mockFriendService) CancelRequest(ctx context.Context, userID, friendshipID uuid.UUID) error {
	if m.CancelRequestFunc != nil {
		return m.CancelRequestFunc(ctx, userID, friendshipID)
	}
	return nil
}

func (m *mockFriendService) RemoveFriend(ctx context.Context, userID, friendshipID uuid.UUID) error {
	if m.RemoveFriendFunc != nil {
		return m.RemoveFriendFunc(ctx, userID, friendshipID)
	}
	return nil
}

func (m *mockFriendService) ListFriends(ctx context.Context, userID uuid.UUID) ([]models.FriendWithUser, error) {
	if m.ListFriendsFunc != nil {
		return m.ListFriendsFunc(ctx, userID)
	}
	return []models.FriendWithUser{}, nil
}

func (m *mockFriendService) ListPendingRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendRequest, error) {
	if m.ListPendingRequestsFunc != nil {
		return m.ListPendingRequestsFunc(ctx, userID)
	}
	return []models.FriendRequest{}, nil
}

func (m *mockFriendService) ListSentRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendWithUser, error) {
	if m.ListSentRequestsFunc != nil {
		return m.ListSentRequestsFunc(ctx, userID)
	}
	return []models.FriendWithUser{}, nil
}

func (m *mockFriendService) IsFriend(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error) {
	if m.IsFriendFunc != nil {
		return m.IsFriendFunc(ctx, userID, otherUserID)
	}
	return false, nil
}

func (m *mockFriendService) GetFriendUserID(ctx context.Context, currentUserID, friendshipID uuid.UUID) (uuid.UUID, error) {
	if m.GetFriendUserIDFunc != nil {
		return m.GetFriendUserIDFunc(ctx, currentUserID, friendshipID)
	}
	return uuid.Nil, nil
}

type mockInterestService struct {
	CreateFunc     func(ctx context.Context, userID uuid.UUID, title string) (*models.Interest, error)
	DeleteFunc     func(ctx context.Context, userID, interestID uuid.UUID) error
	ListByUserFunc func(ctx context.Context, userID uuid.UUID) ([]models.Interest, error)
	GetByIDFunc    func(ctx context.Context, interestID uuid.UUID) (*models.Interest, error)
}

func (m *mockInterestService) Create(ctx context.Context, userID uuid.UUID, title string) (*models.Interest, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, title)
	}
	return nil, nil
}

func (m *mockInterestService) Delete(ctx context.Context, userID, interestID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, interestID)
	}
	return nil
}

func (m *mockInterestService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Interest, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return []models.Interest{}, nil
}

func (m *mockInterestService) GetByID(ctx context.Context, interestID uuid.UUID) (*models.Interest, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, interestID)
	}
	return nil, nil
}

type mockAvailabilityStore struct {
	ListIntervalsFunc  func(ctx context.Context, userID uuid.UUID) ([]models.AvailabilityInterval, error)
	ListDayFunc        func(ctx context.Context, userID uuid.UUID, day int) ([]models.AvailabilityInterval, error)
	IsHourFreeFunc     func(ctx context.Context, userID uuid.UUID, day, hour int) (*models.AvailabilityInterval, error)
	InsertIntervalFunc func(ctx context.Context, userID uuid.UUID, day, startHour, endHour int) (*models.AvailabilityInterval, error)
	DeleteIntervalFunc func(ctx context.Context, id uuid.UUID) error
	ApplyPlanFunc      func(ctx context.Context, userID uuid.UUID, plan services.TogglePlan) []services.ToggleOpFailure
}

func (m *mockAvailabilityStore) ListIntervals(ctx context.Context, userID uuid.UUID) ([]models.AvailabilityInterval, error) {
	if m.ListIntervalsFunc != nil {
		return m.ListIntervalsFunc(ctx, userID)
	}
	return []models.AvailabilityInterval{}, nil
}

func (m *mockAvailabilityStore) ListDay(ctx context.Context, userID uuid.UUID, day int) ([]models.AvailabilityInterval, error) {
	if m.ListDayFunc != nil {
		return m.ListDayFunc(ctx, userID, day)
	}
	return []models.AvailabilityInterval{}, nil
}

func (m *mockAvailabilityStore) IsHourFree(ctx context.Context, userID uuid.UUID, day, hour int) (*models.AvailabilityInterval, error) {
	if m.IsHourFreeFunc != nil {
		return m.IsHourFreeFunc(ctx, userID, day, hour)
	}
	return nil, nil
}

func (m *mockAvailabilityStore) InsertInterval(ctx context.Context, userID uuid.UUID, day, startHour, endHour int) (*models.AvailabilityInterval, error) {
	if m.InsertIntervalFunc != nil {
		return m.InsertIntervalFunc(ctx, userID, day, startHour, endHour)
	}
	return nil, nil
}

func (m *mockAvailabilityStore) DeleteInterval(ctx context.Context, id uuid.UUID) error {
	if m.DeleteIntervalFunc != nil {
		return m.DeleteIntervalFunc(ctx, id)
	}
	return nil
}

func (m *mockAvailabilityStore) ApplyPlan(ctx context.Context, userID uuid.UUID, plan services.TogglePlan) []services.ToggleOpFailure {
	if m.ApplyPlanFunc != nil {
		return m.ApplyPlanFunc(ctx, userID, plan)
	}
	return nil
}

type mockScheduleService struct {
	ToggleFunc func(ctx context.Context, userID uuid.UUID, anchor, focus models.Cell) (*services.ToggleResult, error)
}

func (m *mockScheduleService) Toggle(ctx context.Context, userID uuid.UUID, anchor, focus models.Cell) (*services.ToggleResult, error) {
	if m.ToggleFunc != nil {
		return m.ToggleFunc(ctx, userID, anchor, focus)
	}
	return &services.ToggleResult{}, nil
}

type mockHangoutService struct {
	ProposeFunc              func(ctx context.Context, senderID uuid.UUID, params models.ProposeHangoutParams) (*models.Hangout, error)
	RespondFunc              func(ctx context.Context, userID, hangoutID uuid.UUID, accept bool) (*models.Hangout, error)
	ListUpcomingAcceptedFunc func(ctx context.Context, userID uuid.UUID, now time.Time) ([]models.HangoutWithRelations, error)
	ListPendingIncomingFunc  func(ctx context.Context, userID uuid.UUID) ([]models.HangoutWithRelations, error)
	ListPendingSentFunc      func(ctx context.Context, userID uuid.UUID) ([]models.HangoutWithRelations, error)
}

func (m *mockHangoutService) Propose(ctx context.Context, senderID uuid.UUID, params models.ProposeHangoutParams) (*models.Hangout, error) {
	if m.ProposeFunc != nil {
		return m.ProposeFunc(ctx, senderID, params)
	}
	return nil, nil
}

func (m *mockHangoutService) Respond(ctx context.Context, userID, hangoutID uuid.UUID, accept bool) (*models.Hangout, error) {
	if m.RespondFunc != nil {
		return m.RespondFunc(ctx, userID, hangoutID, accept)
	}
	return nil, nil
}

func (m *mockHangoutService) ListUpcomingAccepted(ctx context.Context, userID uuid.UUID, now time.Time) ([]models.HangoutWithRelations, error) {
	if m.ListUpcomingAcceptedFunc != nil {
		return m.ListUpcomingAcceptedFunc(ctx, userID, now)
	}
	return []models.HangoutWithRelations{}, nil
}

func (m *mockHangoutService) ListPendingIncoming(ctx context.Context, userID uuid.UUID) ([]models.HangoutWithRelations, error) {
	if m.ListPendingIncomingFunc != nil {
		return m.ListPendingIncomingFunc(ctx, userID)
	}
	return []models.HangoutWithRelations{}, nil
}

func (m *mockHangoutService) ListPendingSent(ctx context.Context, userID uuid.UUID) ([]models.HangoutWithRelations, error) {
	if m.ListPendingSentFunc != nil {
		return m.ListPendingSentFunc(ctx, userID)
	}
	return []models.HangoutWithRelations{}, nil
}
