package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/HammerMeetNail/hangtime/internal/models"
)

const interestTitleMaxLen = 100

var (
	ErrInterestNotFound  = errors.New("interest not found")
	ErrNotInterestOwner  = errors.New("only the owner can delete an interest")
	ErrInterestTitleSize = errors.New("interest title must be between 1 and 100 characters")
)

type InterestService struct {
	db DBConn
}

func NewInterestService(db DBConn) *InterestService {
	return &InterestService{db: db}
}

func (s *InterestService) Create(ctx context.Context, userID uuid.UUID, title string) (*models.Interest, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > interestTitleMaxLen {
		return nil, ErrInterestTitleSize
	}

	interest := &models.Interest{}
	err := s.db.QueryRow(ctx,
		`INSERT INTO interests (user_id, title)
		 VALUES ($1, $2)
		 RETURNING id, user_id, title, created_at`,
		userID, title,
	).Scan(&interest.ID, &interest.UserID, &interest.Title, &interest.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating interest: %w", err)
	}

	return interest, nil
}

func (s *InterestService) Delete(ctx context.Context, userID, interestID uuid.UUID) error {
	interest, err := s.GetByID(ctx, interestID)
	if err != nil {
		return err
	}

	if interest.UserID != userID {
		return ErrNotInterestOwner
	}

	_, err = s.db.Exec(ctx, "DELETE FROM interests WHERE id = $1", interestID)
	if err != nil {
		return fmt.Errorf("deleting interest: %w", err)
	}

	return nil
}

func (s *InterestService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Interest, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, title, created_at
		 FROM interests
		 WHERE user_id = $1
		 ORDER BY title`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing interests: %w", err)
	}
	defer rows.Close()

	var interests []models.Interest
	for rows.Next() {
		var in models.Interest
		if err := rows.Scan(&in.ID, &in.UserID, &in.Title, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning interest: %w", err)
		}
		interests = append(interests, in)
	}

	if interests == nil {
		interests = []models.Interest{}
	}

	return interests, nil
}

func (s *InterestService) GetByID(ctx context.Context, interestID uuid.UUID) (*models.Interest, error) {
	interest := &models.Interest{}
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, title, created_at
		 FROM interests WHERE id = $1`,
		interestID,
	).Scan(&interest.ID, &interest.UserID, &interest.Title, &interest.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInterestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting interest: %w", err)
	}
	return interest, nil
}
