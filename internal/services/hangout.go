package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/HammerMeetNail/hangtime/internal/models"
)

var (
	ErrHangoutNotFound     = errors.New("hangout not found")
	ErrNotHangoutRecipient = errors.New("only the recipient can respond")
	ErrHangoutNotPending   = errors.New("hangout is not pending")
	ErrCannotHangoutSelf   = errors.New("cannot propose a hangout to yourself")
	ErrNotFriends          = errors.New("recipient is not an accepted friend")
	ErrHangoutTimeRequired = errors.New("a proposed time is required")
	ErrInterestNotOwned    = errors.New("interest does not belong to the sender")
)

type HangoutService struct {
	db      DBConn
	friends FriendChecker
}

func NewHangoutService(db DBConn, friends FriendChecker) *HangoutService {
	return &HangoutService{
		db:      db,
		friends: friends,
	}
}

// Propose creates a pending hangout. The recipient must be an accepted
// friend of the sender, and a referenced interest must exist and belong to
// the sender.
func (s *HangoutService) Propose(ctx context.Context, senderID uuid.UUID, params models.ProposeHangoutParams) (*models.Hangout, error) {
	if senderID == params.RecipientID {
		return nil, ErrCannotHangoutSelf
	}
	if params.ScheduledAt.IsZero() {
		return nil, ErrHangoutTimeRequired
	}

	isFriend, err := s.friends.IsFriend(ctx, senderID, params.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("checking friendship: %w", err)
	}
	if !isFriend {
		return nil, ErrNotFriends
	}

	if params.InterestID != nil {
		var ownerID uuid.UUID
		err := s.db.QueryRow(ctx,
			"SELECT user_id FROM interests WHERE id = $1",
			*params.InterestID,
		).Scan(&ownerID)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInterestNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("checking interest: %w", err)
		}
		if ownerID != senderID {
			return nil, ErrInterestNotOwned
		}
	}

	hangout := &models.Hangout{}
	err = s.db.QueryRow(ctx,
		`INSERT INTO hangouts (sender_id, recipient_id, interest_id, scheduled_at, location, message, description, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending')
		 RETURNING id, sender_id, recipient_id, interest_id, scheduled_at, location, message, description, status, created_at, updated_at`,
		senderID, params.RecipientID, params.InterestID, params.ScheduledAt, params.Location, params.Message, params.Description,
	).Scan(&hangout.ID, &hangout.SenderID, &hangout.RecipientID, &hangout.InterestID, &hangout.ScheduledAt,
		&hangout.Location, &hangout.Message, &hangout.Description, &hangout.Status, &hangout.CreatedAt, &hangout.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating hangout: %w", err)
	}

	return hangout, nil
}

// Respond moves a pending hangout to accepted or declined. Both outcomes
// are terminal, and only the recipient may respond; the sender has no
// mutation rights after creation.
func (s *HangoutService) Respond(ctx context.Context, userID, hangoutID uuid.UUID, accept bool) (*models.Hangout, error) {
	hangout, err := s.getByID(ctx, hangoutID)
	if err != nil {
		return nil, err
	}

	if hangout.SenderID != userID && hangout.RecipientID != userID {
		return nil, ErrHangoutNotFound
	}
	if hangout.RecipientID != userID {
		return nil, ErrNotHangoutRecipient
	}

	if hangout.Status != models.HangoutStatusPending {
		return nil, ErrHangoutNotPending
	}

	status := models.HangoutStatusDeclined
	if accept {
		status = models.HangoutStatusAccepted
	}

	_, err = s.db.Exec(ctx,
		"UPDATE hangouts SET status = $1, updated_at = now() WHERE id = $2",
		status, hangoutID,
	)
	if err != nil {
		return nil, fmt.Errorf("responding to hangout: %w", err)
	}

	hangout.Status = status
	return hangout, nil
}

const hangoutWithRelationsSelect = `
	SELECT h.id, h.sender_id, h.recipient_id, h.interest_id, h.scheduled_at,
	       h.location, h.message, h.description, h.status, h.created_at, h.updated_at,
	       su.username, ru.username, i.title
	FROM hangouts h
	JOIN users su ON h.sender_id = su.id
	JOIN users ru ON h.recipient_id = ru.id
	LEFT JOIN interests i ON h.interest_id = i.id`

// ListUpcomingAccepted returns accepted hangouts at or after now for
// either party, ascending by scheduled time. Counterpart usernames and the
// interest title are resolved in the same statement.
func (s *HangoutService) ListUpcomingAccepted(ctx context.Context, userID uuid.UUID, now time.Time) ([]models.HangoutWithRelations, error) {
	rows, err := s.db.Query(ctx,
		hangoutWithRelationsSelect+`
		 WHERE (h.sender_id = $1 OR h.recipient_id = $1)
		   AND h.status = 'accepted'
		   AND h.scheduled_at >= $2
		 ORDER BY h.scheduled_at ASC`,
		userID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("listing upcoming hangouts: %w", err)
	}
	defer rows.Close()

	return scanHangoutsWithRelations(rows)
}

func (s *HangoutService) ListPendingIncoming(ctx context.Context, userID uuid.UUID) ([]models.HangoutWithRelations, error) {
	rows, err := s.db.Query(ctx,
		hangoutWithRelationsSelect+`
		 WHERE h.recipient_id = $1 AND h.status = 'pending'
		 ORDER BY h.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing pending hangouts: %w", err)
	}
	defer rows.Close()

	return scanHangoutsWithRelations(rows)
}

func (s *HangoutService) ListPendingSent(ctx context.Context, userID uuid.UUID) ([]models.HangoutWithRelations, error) {
	rows, err := s.db.Query(ctx,
		hangoutWithRelationsSelect+`
		 WHERE h.sender_id = $1 AND h.status = 'pending'
		 ORDER BY h.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing sent hangouts: %w", err)
	}
	defer rows.Close()

	return scanHangoutsWithRelations(rows)
}

func (s *HangoutService) getByID(ctx context.Context, hangoutID uuid.UUID) (*models.Hangout, error) {
	hangout := &models.Hangout{}
	err := s.db.QueryRow(ctx,
		`SELECT id, sender_id, recipient_id, interest_id, scheduled_at, location, message, description, status, created_at, updated_at
		 FROM hangouts WHERE id = $1`,
		hangoutID,
	).Scan(&hangout.ID, &hangout.SenderID, &hangout.RecipientID, &hangout.InterestID, &hangout.ScheduledAt,
		&hangout.Location, &hangout.Message, &hangout.Description, &hangout.Status, &hangout.CreatedAt, &hangout.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrHangoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting hangout: %w", err)
	}
	return hangout, nil
}

func scanHangoutsWithRelations(rows Rows) ([]models.HangoutWithRelations, error) {
	var hangouts []models.HangoutWithRelations
	for rows.Next() {
		var h models.HangoutWithRelations
		if err := rows.Scan(&h.ID, &h.SenderID, &h.RecipientID, &h.InterestID, &h.ScheduledAt,
			&h.Location, &h.Message, &h.Description, &h.Status, &h.CreatedAt, &h.UpdatedAt,
			&h.SenderUsername, &h.RecipientUsername, &h.InterestTitle); err != nil {
			return nil, fmt.Errorf("scanning hangout: %w", err)
		}
		hangouts = append(hangouts, h)
	}

	if hangouts == nil {
		hangouts = []models.HangoutWithRelations{}
	}

	return hangouts, nil
}
