package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/hangtime/internal/models"
)

var ErrInvalidSelection = errors.New("selection is outside the weekly grid")

// ToggleAction is the direction a toggle resolved to.
type ToggleAction string

const (
	ToggleActionAdd    ToggleAction = "add"
	ToggleActionRemove ToggleAction = "remove"
)

// OpKind distinguishes the two store mutations a plan can contain.
type OpKind string

const (
	OpInsert OpKind = "insert"
	OpDelete OpKind = "delete"
)

// PlanOp is a single store mutation. Insert ops carry the interval bounds;
// delete ops carry the id of the interval being removed (bounds are kept
// for failure reporting).
type PlanOp struct {
	Kind       OpKind
	IntervalID uuid.UUID
	Day        int
	StartHour  int
	EndHour    int
}

// TogglePlan is the full set of mutations one toggle resolves to, computed
// against the pre-toggle snapshot. Applying the same plan to the same
// starting state always yields the same result regardless of op order:
// inserts never overlap each other or surviving intervals, and deletes
// target distinct rows.
type TogglePlan struct {
	Action ToggleAction
	Ops    []PlanOp
}

// ToggleOpFailure describes one store mutation that failed during a
// best-effort apply.
type ToggleOpFailure struct {
	Kind      OpKind `json:"op"`
	Day       int    `json:"day"`
	StartHour int    `json:"start_hour"`
	EndHour   int    `json:"end_hour"`
	Error     string `json:"error"`
}

// ToggleResult reports what a toggle did. Intervals is the post-apply
// re-read of the affected day so callers always render reconciled state,
// even after partial failure.
type ToggleResult struct {
	Action    ToggleAction                  `json:"action"`
	Day       int                           `json:"day"`
	Failures  []ToggleOpFailure             `json:"failures,omitempty"`
	Intervals []models.AvailabilityInterval `json:"intervals"`
}

// ScheduleService turns calendar cell selections into availability store
// mutations.
type ScheduleService struct {
	store AvailabilityStore
}

func NewScheduleService(store AvailabilityStore) *ScheduleService {
	return &ScheduleService{store: store}
}

// NormalizeSelection expands a drag from anchor to focus into the selected
// cells. A drag is constrained to one weekday column: when the anchor and
// focus land in different columns the selection collapses to just the
// anchor cell.
func NormalizeSelection(anchor, focus models.Cell) []models.Cell {
	if anchor.Day != focus.Day {
		return []models.Cell{anchor}
	}

	lo, hi := anchor.Hour, focus.Hour
	if lo > hi {
		lo, hi = hi, lo
	}

	cells := make([]models.Cell, 0, hi-lo+1)
	for h := lo; h <= hi; h++ {
		cells = append(cells, models.Cell{Day: anchor.Day, Hour: h})
	}
	return cells
}

// PlanToggle decides the direction of a toggle and computes the store
// mutations, all against the given pre-toggle snapshot.
//
// Direction: remove only when every selected hour is currently covered;
// any uncovered hour makes the whole selection an add, and the add path
// skips hours that are already free.
//
// Remove deletes each distinct covering interval once and re-inserts the
// parts of it that fall outside the contiguous selection, so removing an
// interior hour splits an interval into two remainders.
func PlanToggle(day int, hours []int, snapshot []models.AvailabilityInterval) TogglePlan {
	sorted := append([]int(nil), hours...)
	sort.Ints(sorted)
	selMin, selMax := sorted[0], sorted[len(sorted)-1]

	covering := func(hour int) *models.AvailabilityInterval {
		for i := range snapshot {
			if snapshot[i].Covers(hour) {
				return &snapshot[i]
			}
		}
		return nil
	}

	allCovered := true
	for _, h := range sorted {
		if covering(h) == nil {
			allCovered = false
			break
		}
	}

	if !allCovered {
		plan := TogglePlan{Action: ToggleActionAdd}
		for _, h := range sorted {
			if covering(h) != nil {
				continue // adding an already-free hour is a no-op
			}
			plan.Ops = append(plan.Ops, PlanOp{
				Kind:      OpInsert,
				Day:       day,
				StartHour: h,
				EndHour:   h + 1,
			})
		}
		return plan
	}

	plan := TogglePlan{Action: ToggleActionRemove}
	seen := make(map[uuid.UUID]bool)
	for _, h := range sorted {
		iv := covering(h)
		if seen[iv.ID] {
			continue
		}
		seen[iv.ID] = true

		plan.Ops = append(plan.Ops, PlanOp{
			Kind:       OpDelete,
			IntervalID: iv.ID,
			Day:        day,
			StartHour:  iv.StartHour,
			EndHour:    iv.EndHour,
		})

		// Selected hours inside this interval form the contiguous run
		// [cutLo, cutHi]; everything outside it survives as remainders.
		cutLo := selMin
		if iv.StartHour > cutLo {
			cutLo = iv.StartHour
		}
		cutHi := selMax
		if iv.EndHour-1 < cutHi {
			cutHi = iv.EndHour - 1
		}

		if iv.StartHour < cutLo {
			plan.Ops = append(plan.Ops, PlanOp{
				Kind:      OpInsert,
				Day:       day,
				StartHour: iv.StartHour,
				EndHour:   cutLo,
			})
		}
		if cutHi+1 < iv.EndHour {
			plan.Ops = append(plan.Ops, PlanOp{
				Kind:      OpInsert,
				Day:       day,
				StartHour: cutHi + 1,
				EndHour:   iv.EndHour,
			})
		}
	}
	return plan
}

// Toggle runs one calendar toggle end to end: normalize the drag, snapshot
// the day, plan against the snapshot, apply best-effort and re-read. A
// partial failure is reported per operation, not as an overall error.
func (s *ScheduleService) Toggle(ctx context.Context, userID uuid.UUID, anchor, focus models.Cell) (*ToggleResult, error) {
	cells := NormalizeSelection(anchor, focus)
	for _, c := range cells {
		if c.Day < 0 || c.Day > 6 || c.Hour < 0 || c.Hour > 23 {
			return nil, ErrInvalidSelection
		}
	}

	day := cells[0].Day
	hours := make([]int, len(cells))
	for i, c := range cells {
		hours[i] = c.Hour
	}

	snapshot, err := s.store.ListDay(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("reading availability snapshot: %w", err)
	}

	plan := PlanToggle(day, hours, snapshot)
	failures := s.store.ApplyPlan(ctx, userID, plan)

	intervals, err := s.store.ListDay(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("re-reading availability: %w", err)
	}

	return &ToggleResult{
		Action:    plan.Action,
		Day:       day,
		Failures:  failures,
		Intervals: intervals,
	}, nil
}
