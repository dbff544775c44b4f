package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/HammerMeetNail/hangtime/internal/models"
)

var (
	ErrInvalidDay      = errors.New("day of week must be between 0 and 6")
	ErrInvalidInterval = errors.New("interval hours must satisfy 0 <= start < end <= 24")
)

// AvailabilityService owns per-user weekly free-time intervals. It performs
// no overlap checks on insert; the schedule engine guarantees non-overlap
// by deleting covering intervals before re-inserting remainders.
type AvailabilityService struct {
	db DBConn
}

func NewAvailabilityService(db DBConn) *AvailabilityService {
	return &AvailabilityService{db: db}
}

func (s *AvailabilityService) ListIntervals(ctx context.Context, userID uuid.UUID) ([]models.AvailabilityInterval, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, day_of_week, start_hour, end_hour, created_at
		 FROM availability_intervals
		 WHERE user_id = $1
		 ORDER BY day_of_week, start_hour`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing intervals: %w", err)
	}
	defer rows.Close()

	return scanIntervals(rows)
}

func (s *AvailabilityService) ListDay(ctx context.Context, userID uuid.UUID, day int) ([]models.AvailabilityInterval, error) {
	if day < 0 || day > 6 {
		return nil, ErrInvalidDay
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, day_of_week, start_hour, end_hour, created_at
		 FROM availability_intervals
		 WHERE user_id = $1 AND day_of_week = $2
		 ORDER BY start_hour`,
		userID, day,
	)
	if err != nil {
		return nil, fmt.Errorf("listing day intervals: %w", err)
	}
	defer rows.Close()

	return scanIntervals(rows)
}

// IsHourFree returns the interval covering the half-open hour
// [hour, hour+1), or nil when the hour is not free.
func (s *AvailabilityService) IsHourFree(ctx context.Context, userID uuid.UUID, day, hour int) (*models.AvailabilityInterval, error) {
	iv := &models.AvailabilityInterval{}
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, day_of_week, start_hour, end_hour, created_at
		 FROM availability_intervals
		 WHERE user_id = $1 AND day_of_week = $2
		   AND start_hour <= $3 AND end_hour >= $4
		 LIMIT 1`,
		userID, day, hour, hour+1,
	).Scan(&iv.ID, &iv.UserID, &iv.DayOfWeek, &iv.StartHour, &iv.EndHour, &iv.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("checking hour: %w", err)
	}
	return iv, nil
}

func (s *AvailabilityService) InsertInterval(ctx context.Context, userID uuid.UUID, day, startHour, endHour int) (*models.AvailabilityInterval, error) {
	if day < 0 || day > 6 {
		return nil, ErrInvalidDay
	}
	if startHour < 0 || endHour > 24 || startHour >= endHour {
		return nil, ErrInvalidInterval
	}

	iv := &models.AvailabilityInterval{}
	err := s.db.QueryRow(ctx,
		`INSERT INTO availability_intervals (user_id, day_of_week, start_hour, end_hour)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, day_of_week, start_hour, end_hour, created_at`,
		userID, day, startHour, endHour,
	).Scan(&iv.ID, &iv.UserID, &iv.DayOfWeek, &iv.StartHour, &iv.EndHour, &iv.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting interval: %w", err)
	}

	return iv, nil
}

// DeleteInterval is idempotent: deleting an id that no longer exists is a
// no-op success.
func (s *AvailabilityService) DeleteInterval(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.Exec(ctx, "DELETE FROM availability_intervals WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting interval: %w", err)
	}
	return nil
}

// ApplyPlan applies a toggle plan best-effort: a failed operation does not
// halt the rest of the batch and successes are not rolled back. Callers
// reconcile by re-reading the store afterward. This is the explicit batch
// boundary; a persistence layer that wants a stronger guarantee can wrap
// it in a transaction without changing callers.
func (s *AvailabilityService) ApplyPlan(ctx context.Context, userID uuid.UUID, plan TogglePlan) []ToggleOpFailure {
	var failures []ToggleOpFailure
	for _, op := range plan.Ops {
		var err error
		switch op.Kind {
		case OpInsert:
			_, err = s.InsertInterval(ctx, userID, op.Day, op.StartHour, op.EndHour)
		case OpDelete:
			err = s.DeleteInterval(ctx, op.IntervalID)
		}
		if err != nil {
			failures = append(failures, ToggleOpFailure{
				Kind:      op.Kind,
				Day:       op.Day,
				StartHour: op.StartHour,
				EndHour:   op.EndHour,
				Error:     err.Error(),
			})
		}
	}
	return failures
}

func scanIntervals(rows Rows) ([]models.AvailabilityInterval, error) {
	var intervals []models.AvailabilityInterval
	for rows.Next() {
		var iv models.AvailabilityInterval
		if err := rows.Scan(&iv.ID, &iv.UserID, &iv.DayOfWeek, &iv.StartHour, &iv.EndHour, &iv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning interval: %w", err)
		}
		intervals = append(intervals, iv)
	}

	if intervals == nil {
		intervals = []models.AvailabilityInterval{}
	}

	return intervals, nil
}
