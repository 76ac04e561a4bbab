// Package hardcheck implements the Hard-Constraint Checker (C3): the
// gate a candidate (activity, slot) placement must pass before the
// expander will ever offer it as a child state.
package hardcheck

import (
	"sync/atomic"

	"github.com/dmcarroll/ctsched/internal/domain"
	"github.com/dmcarroll/ctsched/internal/problem"
	"github.com/dmcarroll/ctsched/internal/state"
)

// Counters tallies how often each hard constraint rejected a candidate,
// mirroring original_source/Constraints/HardConstraints.py's class-level
// fail counters. Fields are updated with atomic adds so a Checker can be
// shared across goroutines exploring independent stack branches.
type Counters struct {
	General       int64
	City          int64
	GameMax       int64
	PracticeMax   int64
	SameSlot      int64
	NotCompatible int64
	PartAssign    int64
	Unwanted      int64
}

func (c *Counters) bump(n *int64) {
	atomic.AddInt64(n, 1)
}

// Checker evaluates the hard constraints (G1-G5, C1-C3) against a Problem
// Instance, recording a Counters tally as it goes.
type Checker struct {
	Problem  *problem.Instance
	Counters Counters
}

// New builds a Checker bound to a Problem Instance.
func New(in *problem.Instance) *Checker {
	return &Checker{Problem: in}
}

// Check reports whether activityID may legally be placed into slot given
// the activities already present in s. It never mutates s.
func (c *Checker) Check(s *state.State, activityID string, slot domain.SlotID) bool {
	act, ok := c.Problem.Activity(activityID)
	if !ok {
		return false
	}
	slotObj, ok := c.Problem.Slot(slot)
	if !ok {
		return false
	}

	if !c.capacityOK(s, act, slotObj) {
		c.Counters.bump(&c.Counters.General)
		return false
	}
	if !c.gamePracticeOverlapOK(s, act, slot) {
		c.Counters.bump(&c.Counters.General)
		c.Counters.bump(&c.Counters.SameSlot)
		return false
	}
	if !c.notCompatibleOK(s, act, slot) {
		c.Counters.bump(&c.Counters.General)
		c.Counters.bump(&c.Counters.NotCompatible)
		return false
	}
	if !c.partAssignOK(act, slot) {
		c.Counters.bump(&c.Counters.General)
		c.Counters.bump(&c.Counters.PartAssign)
		return false
	}
	if !c.unwantedOK(act, slot) {
		c.Counters.bump(&c.Counters.General)
		c.Counters.bump(&c.Counters.Unwanted)
		return false
	}

	if !c.eveningOK(act, slotObj) {
		c.Counters.bump(&c.Counters.City)
		return false
	}
	if !c.ageMutexOK(s, act, slot) {
		c.Counters.bump(&c.Counters.City)
		return false
	}
	if !c.specialBookingOK(s, act, slot) {
		c.Counters.bump(&c.Counters.City)
		return false
	}

	return true
}

// capacityOK is G1: a slot may never hold more activities of its own
// kind than its Max.
func (c *Checker) capacityOK(s *state.State, act *domain.Activity, slotObj *domain.Slot) bool {
	count := s.CountInSlot(slotObj.ID)
	if act.Kind == domain.Game {
		ok := count < slotObj.Max
		if !ok {
			c.Counters.bump(&c.Counters.GameMax)
		}
		return ok
	}
	ok := count < slotObj.Max
	if !ok {
		c.Counters.bump(&c.Counters.PracticeMax)
	}
	return ok
}

// gamePracticeOverlapOK is G2: across every slot overlapping the
// candidate, a pure practice-practice pair is ignored, but any pair
// involving at least one game is rejected when the two activities share
// (association, age, tier, division).
func (c *Checker) gamePracticeOverlapOK(s *state.State, act *domain.Activity, slot domain.SlotID) bool {
	slotObj, _ := c.Problem.Slot(slot)
	for overlapID := range slotObj.Overlaps {
		for _, otherID := range s.ActivitiesInSlot[overlapID] {
			other, ok := c.Problem.Activity(otherID)
			if !ok || otherID == act.ID {
				continue
			}
			if act.Kind == domain.Practice && other.Kind == domain.Practice {
				continue
			}
			if sameDivisionMatch(act, other) {
				return false
			}
		}
	}
	return true
}

func sameDivisionMatch(a, b *domain.Activity) bool {
	return a.Association == b.Association && a.Age == b.Age && a.Tier == b.Tier && a.Division == b.Division
}

// notCompatibleOK is G3: two mutually incompatible activities may never
// share a slot.
func (c *Checker) notCompatibleOK(s *state.State, act *domain.Activity, slot domain.SlotID) bool {
	peers := c.Problem.NotCompatible[act.ID]
	if len(peers) == 0 {
		return true
	}
	for _, otherID := range s.ActivitiesInSlot[slot] {
		if peers[otherID] {
			return false
		}
	}
	return true
}

// partAssignOK is G4: an activity with a hard PARTASSIGN may only ever
// land in that one slot.
func (c *Checker) partAssignOK(act *domain.Activity, slot domain.SlotID) bool {
	required, ok := c.Problem.PartAssign[act.ID]
	if !ok {
		return true
	}
	return required == slot
}

// unwantedOK is G5: an activity may never land in one of its UNWANTED
// slots.
func (c *Checker) unwantedOK(act *domain.Activity, slot domain.SlotID) bool {
	return !c.Problem.Unwanted[act.ID][slot]
}

// eveningOK is C1: division-9 activities may only be placed into evening
// slots.
func (c *Checker) eveningOK(act *domain.Activity, slotObj *domain.Slot) bool {
	if !act.Division9() {
		return true
	}
	return slotObj.Evening
}

// ageMutexOK is C2: a game in one of the mutex age groups may never
// share a slot with another game from that same group.
func (c *Checker) ageMutexOK(s *state.State, act *domain.Activity, slot domain.SlotID) bool {
	if act.Kind != domain.Game || !domain.MutexAges[act.Age] {
		return true
	}
	for _, otherID := range s.ActivitiesInSlot[slot] {
		if otherID == act.ID {
			continue
		}
		other, ok := c.Problem.Activity(otherID)
		if !ok || other.Kind != domain.Game {
			continue
		}
		if domain.MutexAges[other.Age] {
			return false
		}
	}
	return true
}

// specialBookingOK is C3: CMSA T1 games for U12/U13 are gated by the
// fixed special-booking sentinels. An activity with an explicit
// SPECIAL_BOOKINGS entry may only land at that slot regardless of kind;
// the sentinel-collision rule below applies to games only.
func (c *Checker) specialBookingOK(s *state.State, act *domain.Activity, slot domain.SlotID) bool {
	if required, ok := c.Problem.SpecialBookings[act.ID]; ok {
		return required == slot
	}
	if act.Kind != domain.Game || act.Association != "CMSA" || act.Tier != "T1" {
		return true
	}
	var sentinel string
	switch act.Age {
	case "U12":
		sentinel = "CMSA U12T1S"
	case "U13":
		sentinel = "CMSA U13T1S"
	default:
		return true
	}
	sentinelSlot, ok := c.Problem.SpecialBookings[sentinel]
	if !ok || sentinelSlot != slot {
		return true
	}
	for _, otherID := range s.ActivitiesInSlot[slot] {
		if otherID == sentinel {
			return false
		}
	}
	return true
}
