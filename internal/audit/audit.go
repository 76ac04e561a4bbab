// Package audit re-runs the hard and soft constraint predicates over a
// complete schedule read back from a generated workbook, the Go analogue
// of running the original's constraint checks as a postcondition rather
// than only during search. This is useful for checking a schedule that
// was hand-edited after generation.
package audit

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dmcarroll/ctsched/internal/domain"
	"github.com/dmcarroll/ctsched/internal/hardcheck"
	"github.com/dmcarroll/ctsched/internal/problem"
	"github.com/dmcarroll/ctsched/internal/softeval"
	"github.com/dmcarroll/ctsched/internal/state"
)

// Violation is one constraint failure discovered by the audit.
type Violation struct {
	ActivityID string
	Slot       domain.SlotID
	Message    string
}

// ReadWorkbook parses the Master Schedule sheet of a workbook produced by
// report.WriteWorkbook back into a slice of (activity id, slot) pairs.
func ReadWorkbook(path string) ([]state.Assignment, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Master Schedule")
	if err != nil {
		return nil, fmt.Errorf("reading Master Schedule: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("Master Schedule has no data rows")
	}

	var out []state.Assignment
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		label := row[0]
		kind, start, err := parseSlotLabel(label)
		if err != nil {
			return nil, err
		}
		for col := 1; col < len(row) && col <= 3; col++ {
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				continue
			}
			weekday := weekdayForColumn(col)
			slot := domain.SlotID{Kind: kind, Weekday: weekday, Start: start}
			for _, activityID := range strings.Split(cell, ",") {
				activityID = strings.TrimSpace(activityID)
				if activityID == "" {
					continue
				}
				out = append(out, state.Assignment{ActivityID: activityID, Slot: slot})
			}
		}
	}
	return out, nil
}

func parseSlotLabel(label string) (domain.Kind, string, error) {
	parts := strings.SplitN(label, " ", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("malformed slot label %q", label)
	}
	switch parts[0] {
	case string(domain.Game):
		return domain.Game, parts[1], nil
	case string(domain.Practice):
		return domain.Practice, parts[1], nil
	default:
		return "", "", fmt.Errorf("unknown slot kind in label %q", label)
	}
}

func weekdayForColumn(col int) domain.Weekday {
	switch col {
	case 1:
		return domain.Mon
	case 2:
		return domain.Tue
	default:
		return domain.Fri
	}
}

// Result is the outcome of auditing a workbook's schedule.
type Result struct {
	Violations []Violation
	// Eval is the C4 soft-constraint total recomputed by replaying the
	// workbook's assignments through the incremental evaluator in the
	// order they were read, the same accumulation rule the search driver
	// uses during a live run.
	Eval int
}

// Audit replays assignments against in's hard checker and soft
// evaluator, flagging every placement the checker would have rejected
// had it been offered in that order, and recomputing the eval total. It
// also reports any activity from the instance that the workbook never
// placed at all.
func Audit(in *problem.Instance, assignments []state.Assignment) Result {
	checker := hardcheck.New(in)
	evaluator := softeval.New(in)

	s := state.NewEmpty(in)
	var violations []Violation

	for _, a := range assignments {
		if _, ok := in.Activity(a.ActivityID); !ok {
			violations = append(violations, Violation{
				ActivityID: a.ActivityID,
				Slot:       a.Slot,
				Message:    "workbook references an activity not present in the problem instance",
			})
			continue
		}
		if !checker.Check(s, a.ActivityID, a.Slot) {
			violations = append(violations, Violation{
				ActivityID: a.ActivityID,
				Slot:       a.Slot,
				Message:    "violates a hard constraint",
			})
			continue
		}
		s.Assign(a.ActivityID, a.Slot, 0)
		s.Eval += evaluator.Delta(s, a.ActivityID, a.Slot)
	}

	for _, id := range in.GameIDs {
		if !s.HasActivity(id) {
			violations = append(violations, Violation{ActivityID: id, Message: "never placed in the workbook"})
		}
	}
	for _, id := range in.PracticeIDs {
		if !s.HasActivity(id) {
			violations = append(violations, Violation{ActivityID: id, Message: "never placed in the workbook"})
		}
	}

	return Result{Violations: violations, Eval: s.Eval}
}
