package softeval

import (
	"testing"

	"github.com/dmcarroll/ctsched/internal/domain"
	"github.com/dmcarroll/ctsched/internal/problem"
	"github.com/dmcarroll/ctsched/internal/state"
)

func testWeights() problem.Weights     { return problem.Weights{MinFilled: 1, Pref: 1, Pair: 1, SecDiff: 1} }
func testPenalties() problem.Penalties { return problem.Penalties{GameMin: 5, PracticeMin: 5, NotPaired: 3, Section: 2} }

var monGame8 = domain.SlotID{Kind: domain.Game, Weekday: domain.Mon, Start: "08:00"}
var tueGame11 = domain.SlotID{Kind: domain.Game, Weekday: domain.Tue, Start: "11:00"}

func TestMinFilledChargesPenaltyBelowMinimum(t *testing.T) {
	b := problem.NewBuilder("league", testWeights(), testPenalties())
	b.AddGame("G1", "CMSA", "U12", "T1", "1")
	b.SetSlotCapacity(monGame8, 5, 2)
	in, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	e := New(in)
	s := state.NewEmpty(in)
	s.Assign("G1", monGame8, 0)

	got := e.Delta(s, "G1", monGame8)
	want := -testWeights().MinFilled * testPenalties().GameMin
	if got != want {
		t.Errorf("Delta() = %d, want %d (post-count 1 < min 2)", got, want)
	}
}

func TestMinFilledNoChargeOnceMinimumMet(t *testing.T) {
	b := problem.NewBuilder("league", testWeights(), testPenalties())
	b.AddGame("G1", "CMSA", "U12", "T1", "1")
	b.SetSlotCapacity(monGame8, 5, 1)
	in, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	e := New(in)
	s := state.NewEmpty(in)
	s.Assign("G1", monGame8, 0)

	if got := e.Delta(s, "G1", monGame8); got != 0 {
		t.Errorf("Delta() = %d, want 0 (post-count 1 meets min 1)", got)
	}
}

func TestPreferenceRewardsMatchingSlot(t *testing.T) {
	b := problem.NewBuilder("league", testWeights(), testPenalties())
	b.AddGame("G1", "CMSA", "U12", "T1", "1")
	b.AddPreference("G1", monGame8, 4)
	b.SetSlotCapacity(monGame8, 5, 0)
	in, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	e := New(in)
	s := state.NewEmpty(in)
	s.Assign("G1", monGame8, 0)

	if got := e.Delta(s, "G1", monGame8); got != -4 {
		t.Errorf("Delta() = %d, want -4", got)
	}
}

func TestPairPenalizesAlreadyPlacedPartner(t *testing.T) {
	b := problem.NewBuilder("league", testWeights(), testPenalties())
	b.AddPractice("P1", "CMSA", "U12", "T1", "1", 1)
	b.AddPractice("P2", "CMSA", "U12", "T1", "1", 2)
	b.AddPair("P1", "P2")
	p1Slot := domain.SlotID{Kind: domain.Practice, Weekday: domain.Mon, Start: "08:00"}
	p2Slot := domain.SlotID{Kind: domain.Practice, Weekday: domain.Mon, Start: "09:00"}
	b.SetSlotCapacity(p1Slot, 5, 0)
	b.SetSlotCapacity(p2Slot, 5, 0)
	in, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	e := New(in)
	s := state.NewEmpty(in)
	s.Assign("P1", p1Slot, 0)
	s.Assign("P2", p2Slot, 0)

	got := e.Delta(s, "P2", p2Slot)
	want := testWeights().Pair * testPenalties().NotPaired
	if got != want {
		t.Errorf("Delta() = %d, want %d (partner already placed)", got, want)
	}
}

func TestPairSkipsPartnerAlreadyInSameSlot(t *testing.T) {
	b := problem.NewBuilder("league", testWeights(), testPenalties())
	b.AddGame("G1", "CMSA", "U12", "T1", "1")
	b.AddGame("G2", "OMHA", "U12", "T1", "2")
	b.AddPair("G1", "G2")
	b.SetSlotCapacity(monGame8, 5, 0)
	in, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	e := New(in)
	s := state.NewEmpty(in)
	s.Assign("G1", monGame8, 0)
	s.Assign("G2", monGame8, 0)

	if got := e.Delta(s, "G2", monGame8); got != 0 {
		t.Errorf("Delta() = %d, want 0 (pair satisfied in the same slot)", got)
	}
}

func TestPairSkipsPartnerStillRemaining(t *testing.T) {
	b := problem.NewBuilder("league", testWeights(), testPenalties())
	b.AddPractice("P1", "CMSA", "U12", "T1", "1", 1)
	b.AddPractice("P2", "CMSA", "U12", "T1", "1", 2)
	b.AddPair("P1", "P2")
	p1Slot := domain.SlotID{Kind: domain.Practice, Weekday: domain.Mon, Start: "08:00"}
	b.SetSlotCapacity(p1Slot, 5, 0)
	in, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	e := New(in)
	s := state.NewEmpty(in)
	s.Assign("P1", p1Slot, 0)

	if got := e.Delta(s, "P1", p1Slot); got != 0 {
		t.Errorf("Delta() = %d, want 0 (P2 still unplaced)", got)
	}
}

func TestSectionPenalizesSameAgeTierAssociationGameSharingSlot(t *testing.T) {
	b := problem.NewBuilder("league", testWeights(), testPenalties())
	b.AddGame("G1", "CMSA", "U12", "T1", "1")
	b.AddGame("G2", "CMSA", "U12", "T1", "2")
	b.SetSlotCapacity(tueGame11, 5, 0)
	in, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	e := New(in)
	s := state.NewEmpty(in)
	s.Assign("G1", tueGame11, 0)
	s.Assign("G2", tueGame11, 0)

	got := e.Delta(s, "G2", tueGame11)
	want := testWeights().SecDiff * testPenalties().Section
	if got < want {
		t.Errorf("Delta() = %d, want at least %d for the section penalty", got, want)
	}
}

func TestSectionIgnoresPractices(t *testing.T) {
	b := problem.NewBuilder("league", testWeights(), testPenalties())
	b.AddPractice("P1", "CMSA", "U12", "T1", "1", 1)
	slot := domain.SlotID{Kind: domain.Practice, Weekday: domain.Mon, Start: "08:00"}
	b.SetSlotCapacity(slot, 5, 0)
	in, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	e := New(in)
	if got := e.section(state.NewEmpty(in), "P1", slot); got != 0 {
		t.Errorf("section() = %d, want 0 for a practice", got)
	}
}
