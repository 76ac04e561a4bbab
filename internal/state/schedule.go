// Package state holds the Schedule State (C2): a partial assignment of
// activities to slots plus its running eval total. A State is cheap to
// clone, since the search driver clones one per candidate child.
package state

import (
	"sort"

	"github.com/dmcarroll/ctsched/internal/domain"
	"github.com/dmcarroll/ctsched/internal/problem"
)

// Assignment records one activity placed into one slot.
type Assignment struct {
	ActivityID string
	Slot       domain.SlotID
}

// State is a partial schedule: which activities remain unplaced, which
// slots hold which activities, and the running soft-constraint total.
type State struct {
	Problem *problem.Instance

	SlotOfActivity   map[string]domain.SlotID
	ActivitiesInSlot map[domain.SlotID][]string

	RemainingGames     map[string]bool
	RemainingPractices map[string]bool

	Eval int

	Latest Assignment
}

// NewEmpty builds the root state: nothing assigned, every game and
// practice still remaining.
func NewEmpty(in *problem.Instance) *State {
	s := &State{
		Problem:            in,
		SlotOfActivity:     map[string]domain.SlotID{},
		ActivitiesInSlot:   map[domain.SlotID][]string{},
		RemainingGames:     map[string]bool{},
		RemainingPractices: map[string]bool{},
	}
	for _, id := range in.GameIDs {
		s.RemainingGames[id] = true
	}
	for _, id := range in.PracticeIDs {
		s.RemainingPractices[id] = true
	}
	return s
}

// Clone deep-copies everything mutable so the parent State is unaffected
// by assignments made against the child (spec.md §8's clone-independence
// property).
func (s *State) Clone() *State {
	c := &State{
		Problem:            s.Problem,
		SlotOfActivity:     make(map[string]domain.SlotID, len(s.SlotOfActivity)),
		ActivitiesInSlot:   make(map[domain.SlotID][]string, len(s.ActivitiesInSlot)),
		RemainingGames:     make(map[string]bool, len(s.RemainingGames)),
		RemainingPractices: make(map[string]bool, len(s.RemainingPractices)),
		Eval:               s.Eval,
		Latest:             s.Latest,
	}
	for k, v := range s.SlotOfActivity {
		c.SlotOfActivity[k] = v
	}
	for k, v := range s.ActivitiesInSlot {
		cp := make([]string, len(v))
		copy(cp, v)
		c.ActivitiesInSlot[k] = cp
	}
	for k, v := range s.RemainingGames {
		c.RemainingGames[k] = v
	}
	for k, v := range s.RemainingPractices {
		c.RemainingPractices[k] = v
	}
	return c
}

// Assign places activityID into slot, removes it from the remaining set,
// and records it as the latest assignment. It does not check hard or soft
// constraints; callers (the expander) are expected to have already
// verified the placement is legal.
func (s *State) Assign(activityID string, slot domain.SlotID, delta int) {
	s.SlotOfActivity[activityID] = slot
	s.ActivitiesInSlot[slot] = append(s.ActivitiesInSlot[slot], activityID)
	delete(s.RemainingGames, activityID)
	delete(s.RemainingPractices, activityID)
	s.Eval += delta
	s.Latest = Assignment{ActivityID: activityID, Slot: slot}
}

// IsComplete reports whether every game and practice has been placed.
func (s *State) IsComplete() bool {
	return len(s.RemainingGames) == 0 && len(s.RemainingPractices) == 0
}

// CountInSlot returns how many activities currently occupy slot.
func (s *State) CountInSlot(slot domain.SlotID) int {
	return len(s.ActivitiesInSlot[slot])
}

// HasActivity reports whether activityID has already been placed.
func (s *State) HasActivity(activityID string) bool {
	_, ok := s.SlotOfActivity[activityID]
	return ok
}

// SlotOf returns the slot activityID occupies, if any.
func (s *State) SlotOf(activityID string) (domain.SlotID, bool) {
	slot, ok := s.SlotOfActivity[activityID]
	return slot, ok
}

// Assignments returns every placed (activityID, slot) pair, sorted by
// activity id for deterministic reporting.
func (s *State) Assignments() []Assignment {
	out := make([]Assignment, 0, len(s.SlotOfActivity))
	for id, slot := range s.SlotOfActivity {
		out = append(out, Assignment{ActivityID: id, Slot: slot})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ActivityID < out[j].ActivityID })
	return out
}
