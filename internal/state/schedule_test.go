package state

import (
	"testing"

	"github.com/dmcarroll/ctsched/internal/domain"
	"github.com/dmcarroll/ctsched/internal/problem"
)

func testInstance(t *testing.T) *problem.Instance {
	t.Helper()
	b := problem.NewBuilder("test-league",
		problem.Weights{MinFilled: 1, Pref: 1, Pair: 1, SecDiff: 1},
		problem.Penalties{GameMin: 5, PracticeMin: 5, NotPaired: 3, Section: 2})
	b.AddGame("G1", "CMSA", "U12", "T1", "1")
	b.AddPractice("P1", "CMSA", "U12", "T1", "1", 1)
	in, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return in
}

func TestNewEmptyTracksEveryActivityAsRemaining(t *testing.T) {
	in := testInstance(t)
	s := NewEmpty(in)

	if !s.RemainingGames["G1"] {
		t.Errorf("G1 should start remaining")
	}
	if !s.RemainingPractices["P1"] {
		t.Errorf("P1 should start remaining")
	}
	if s.IsComplete() {
		t.Errorf("an empty state with activities should not be complete")
	}
}

func TestAssignRemovesFromRemainingAndAccumulatesEval(t *testing.T) {
	in := testInstance(t)
	s := NewEmpty(in)
	slot := domain.SlotID{Kind: domain.Game, Weekday: domain.Mon, Start: "08:00"}

	s.Assign("G1", slot, -5)

	if s.RemainingGames["G1"] {
		t.Errorf("G1 should no longer be remaining after assignment")
	}
	if got, _ := s.SlotOf("G1"); got != slot {
		t.Errorf("SlotOf(G1) = %v, want %v", got, slot)
	}
	if s.Eval != -5 {
		t.Errorf("Eval = %d, want -5", s.Eval)
	}
	if s.CountInSlot(slot) != 1 {
		t.Errorf("CountInSlot = %d, want 1", s.CountInSlot(slot))
	}
	if s.Latest.ActivityID != "G1" || s.Latest.Slot != slot {
		t.Errorf("Latest = %+v, want G1 at %v", s.Latest, slot)
	}
}

func TestCloneIsIndependentOfParent(t *testing.T) {
	in := testInstance(t)
	parent := NewEmpty(in)
	child := parent.Clone()

	slot := domain.SlotID{Kind: domain.Game, Weekday: domain.Mon, Start: "08:00"}
	child.Assign("G1", slot, -5)

	if parent.HasActivity("G1") {
		t.Errorf("mutating the clone must not affect the parent")
	}
	if parent.Eval != 0 {
		t.Errorf("parent Eval changed after cloning: got %d, want 0", parent.Eval)
	}
	if !child.HasActivity("G1") {
		t.Errorf("the clone should carry its own assignment")
	}
}

func TestIsCompleteOnceEveryActivityPlaced(t *testing.T) {
	in := testInstance(t)
	s := NewEmpty(in)
	s.Assign("G1", domain.SlotID{Kind: domain.Game, Weekday: domain.Mon, Start: "08:00"}, 0)
	s.Assign("P1", domain.SlotID{Kind: domain.Practice, Weekday: domain.Mon, Start: "08:00"}, 0)

	if !s.IsComplete() {
		t.Errorf("expected IsComplete() once every game and practice is assigned")
	}
}

func TestAssignmentsSortedByActivityID(t *testing.T) {
	in := testInstance(t)
	s := NewEmpty(in)
	s.Assign("P1", domain.SlotID{Kind: domain.Practice, Weekday: domain.Mon, Start: "08:00"}, 0)
	s.Assign("G1", domain.SlotID{Kind: domain.Game, Weekday: domain.Mon, Start: "08:00"}, 0)

	got := s.Assignments()
	if len(got) != 2 || got[0].ActivityID != "G1" || got[1].ActivityID != "P1" {
		t.Errorf("Assignments() = %+v, want sorted [G1, P1]", got)
	}
}
