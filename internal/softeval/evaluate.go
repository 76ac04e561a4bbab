// Package softeval implements the Soft-Constraint Evaluator (C4): the
// incremental score delta a candidate placement contributes once it has
// been applied to a Schedule State.
package softeval

import (
	"github.com/dmcarroll/ctsched/internal/domain"
	"github.com/dmcarroll/ctsched/internal/problem"
	"github.com/dmcarroll/ctsched/internal/state"
)

// Evaluator computes soft-constraint deltas against a Problem Instance.
type Evaluator struct {
	Problem *problem.Instance
}

// New builds an Evaluator bound to a Problem Instance.
func New(in *problem.Instance) *Evaluator {
	return &Evaluator{Problem: in}
}

// Delta returns the soft-constraint score contribution of activityID
// having just been placed into slot within s. s must already reflect the
// placement: every sub-score below is read post-placement, per the
// scoring order laid out for this engine.
func (e *Evaluator) Delta(s *state.State, activityID string, slot domain.SlotID) int {
	total := 0
	total += e.minFilled(s, activityID, slot)
	total += e.preference(activityID, slot)
	total += e.pair(s, activityID, slot)
	total += e.section(s, activityID, slot)
	return total
}

// minFilled is S1: while the slot's post-placement occupancy is still
// below its soft minimum, the delta is the weighted game or practice
// min-fill penalty negated (it lowers eval); once the minimum is met, the
// delta is 0.
func (e *Evaluator) minFilled(s *state.State, activityID string, slot domain.SlotID) int {
	act, ok := e.Problem.Activity(activityID)
	if !ok {
		return 0
	}
	slotObj, ok := e.Problem.Slot(slot)
	if !ok {
		return 0
	}
	postCount := s.CountInSlot(slot)
	if postCount >= slotObj.Min {
		return 0
	}
	w := e.Problem.Weights.MinFilled
	if act.Kind == domain.Game {
		return -w * e.Problem.Penalties.GameMin
	}
	return -w * e.Problem.Penalties.PracticeMin
}

// preference is S2: a reward for every (slot, value) preference entry
// that matches where the activity actually landed.
func (e *Evaluator) preference(activityID string, slot domain.SlotID) int {
	total := 0
	for _, pref := range e.Problem.Preferences[activityID] {
		if pref.Slot == slot {
			total -= e.Problem.Weights.Pref * pref.Value
		}
	}
	return total
}

// pair is S3: a penalty for every PAIR partner of activityID that has
// already been placed elsewhere, is not still waiting in the
// remaining-to-place pool, and did not land in slot alongside it — a
// partner sharing slot satisfies the pairing and contributes nothing.
func (e *Evaluator) pair(s *state.State, activityID string, slot domain.SlotID) int {
	total := 0
	for partnerID := range e.Problem.Pair[activityID] {
		if s.RemainingGames[partnerID] || s.RemainingPractices[partnerID] {
			continue
		}
		if !s.HasActivity(partnerID) {
			continue
		}
		if inSlot(s.ActivitiesInSlot[slot], partnerID) {
			continue
		}
		total += e.Problem.Weights.Pair * e.Problem.Penalties.NotPaired
	}
	return total
}

func inSlot(activityIDs []string, id string) bool {
	for _, existing := range activityIDs {
		if existing == id {
			return true
		}
	}
	return false
}

// section is S4: a penalty for every other game already sharing slot
// with the same (age, tier, association), excluding the candidate
// itself.
func (e *Evaluator) section(s *state.State, activityID string, slot domain.SlotID) int {
	act, ok := e.Problem.Activity(activityID)
	if !ok || act.Kind != domain.Game {
		return 0
	}
	total := 0
	for _, otherID := range s.ActivitiesInSlot[slot] {
		if otherID == activityID {
			continue
		}
		other, ok := e.Problem.Activity(otherID)
		if !ok || other.Kind != domain.Game {
			continue
		}
		if other.Age == act.Age && other.Tier == act.Tier && other.Association == act.Association {
			total += e.Problem.Weights.SecDiff * e.Problem.Penalties.Section
		}
	}
	return total
}
