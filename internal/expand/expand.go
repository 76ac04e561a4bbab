// Package expand implements the Expander (C5): given a parent Schedule
// State, it enumerates every legal child state one step closer to
// completion.
package expand

import (
	"sort"

	"github.com/dmcarroll/ctsched/internal/domain"
	"github.com/dmcarroll/ctsched/internal/hardcheck"
	"github.com/dmcarroll/ctsched/internal/problem"
	"github.com/dmcarroll/ctsched/internal/softeval"
	"github.com/dmcarroll/ctsched/internal/state"
)

// Expander turns one partial Schedule State into its legal children.
type Expander struct {
	Problem   *problem.Instance
	Checker   *hardcheck.Checker
	Evaluator *softeval.Evaluator
}

// New builds an Expander bound to a Problem Instance.
func New(in *problem.Instance, checker *hardcheck.Checker, evaluator *softeval.Evaluator) *Expander {
	return &Expander{Problem: in, Checker: checker, Evaluator: evaluator}
}

// Expand picks the next unplaced activity — games first, then practices,
// each in the instance's stable id order — and returns one child state
// per slot that activity may legally occupy. Every child is a deep clone
// of parent with exactly one extra assignment; parent itself is never
// mutated.
func (x *Expander) Expand(parent *state.State) []*state.State {
	activityID, candidateSlots, ok := x.nextActivity(parent)
	if !ok {
		return nil
	}

	var children []*state.State
	for _, slot := range candidateSlots {
		if !x.Checker.Check(parent, activityID, slot) {
			continue
		}
		child := parent.Clone()
		x.placeAndScore(child, activityID, slot)
		children = append(children, child)
	}
	return children
}

// placeAndScore mutates child in place: it assigns activityID to slot
// with a zero delta, evaluates the soft-constraint delta against the
// already-mutated child, and folds that delta into the running eval
// total.
func (x *Expander) placeAndScore(child *state.State, activityID string, slot domain.SlotID) {
	child.Assign(activityID, slot, 0)
	child.Eval += x.Evaluator.Delta(child, activityID, slot)
}

// nextActivity picks the next activity to place and the slots it may be
// offered. An activity with a SPECIAL_BOOKINGS or PARTASSIGN entry is
// offered only its one pinned slot; every other game is offered every game
// slot in the grid and every other practice every practice slot. Practices
// are only considered once every game has been placed.
func (x *Expander) nextActivity(s *state.State) (string, []domain.SlotID, bool) {
	if id, ok := x.firstRemaining(s.RemainingGames, x.Problem.GameIDs); ok {
		return id, x.candidateSlotsFor(id, x.Problem.GameSlots), true
	}
	if id, ok := x.firstRemaining(s.RemainingPractices, x.Problem.PracticeIDs); ok {
		return id, x.candidateSlotsFor(id, x.Problem.PracSlots), true
	}
	return "", nil, false
}

func (x *Expander) firstRemaining(remaining map[string]bool, ordered []string) (string, bool) {
	for _, id := range ordered {
		if remaining[id] {
			return id, true
		}
	}
	return "", false
}

// candidateSlotsFor narrows the enumeration to a pinned slot when the
// activity carries a SPECIAL_BOOKINGS or PARTASSIGN entry, since no other
// slot could ever pass the hard checker anyway.
func (x *Expander) candidateSlotsFor(activityID string, allSlots []domain.SlotID) []domain.SlotID {
	if slot, ok := x.Problem.SpecialBookings[activityID]; ok {
		return []domain.SlotID{slot}
	}
	if slot, ok := x.Problem.PartAssign[activityID]; ok {
		return []domain.SlotID{slot}
	}
	out := make([]domain.SlotID, len(allSlots))
	copy(out, allSlots)
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
