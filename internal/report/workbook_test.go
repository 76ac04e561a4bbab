package report

import (
	"testing"

	"github.com/dmcarroll/ctsched/internal/domain"
	"github.com/dmcarroll/ctsched/internal/hardcheck"
	"github.com/dmcarroll/ctsched/internal/problem"
	"github.com/dmcarroll/ctsched/internal/state"
)

func TestWriteWorkbookProducesMasterAndFailuresSheets(t *testing.T) {
	b := problem.NewBuilder("league",
		problem.Weights{MinFilled: 1, Pref: 1, Pair: 1, SecDiff: 1},
		problem.Penalties{GameMin: 5, PracticeMin: 5, NotPaired: 3, Section: 2})
	b.AddGame("G1", "CMSA", "U12", "T1", "1")
	in, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	s := state.NewEmpty(in)
	s.Assign("G1", domain.SlotID{Kind: domain.Game, Weekday: domain.Mon, Start: "08:00"}, 0)

	counters := &hardcheck.Counters{GameMax: 3, NotCompatible: 1}

	f, err := WriteWorkbook(in, s, counters)
	if err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}

	sheets := f.GetSheetList()
	hasSheet := func(name string) bool {
		for _, s := range sheets {
			if s == name {
				return true
			}
		}
		return false
	}
	if !hasSheet("Master Schedule") {
		t.Errorf("expected a Master Schedule sheet, got %v", sheets)
	}
	if !hasSheet("Failures") {
		t.Errorf("expected a Failures sheet, got %v", sheets)
	}
	if hasSheet("Sheet1") {
		t.Errorf("the default Sheet1 should have been removed")
	}

	cell, err := f.GetCellValue("Failures", "B1")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if cell != "Rejections" {
		t.Errorf("Failures!B1 = %q, want %q", cell, "Rejections")
	}
}
