package report

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/dmcarroll/ctsched/internal/domain"
	"github.com/dmcarroll/ctsched/internal/hardcheck"
	"github.com/dmcarroll/ctsched/internal/problem"
	"github.com/dmcarroll/ctsched/internal/state"
)

// WriteWorkbook builds an excelize workbook with a "Master Schedule"
// sheet (one row per slot, one column per weekday, activity ids in
// cells) and a "Failures" sheet dumping the hard-constraint rejection
// counters gathered during search. Grounded on the teacher's
// writeMasterSheet layout, generalized from a date/field grid to this
// engine's weekday/slot grid.
func WriteWorkbook(in *problem.Instance, s *state.State, counters *hardcheck.Counters) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetDefaultFont("Arial")

	if err := writeMasterSheet(f, in, s); err != nil {
		return nil, fmt.Errorf("writing master sheet: %w", err)
	}
	if err := writeFailuresSheet(f, counters); err != nil {
		return nil, fmt.Errorf("writing failures sheet: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func writeMasterSheet(f *excelize.File, in *problem.Instance, s *state.State) error {
	sheet := "Master Schedule"
	f.NewSheet(sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 12, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	headers := []string{"Slot", "Monday", "Tuesday", "Friday"}
	for i, h := range headers {
		cell := cellRef(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		if headerStyle != 0 {
			f.SetCellStyle(sheet, cell, cell, headerStyle)
		}
	}

	ids := make([]domain.SlotID, 0, len(in.Slots))
	for id := range in.Slots {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	rowOf := map[string]int{}
	nextRow := 2
	colFor := func(weekday domain.Weekday) int {
		switch weekday {
		case domain.Mon:
			return 2
		case domain.Tue:
			return 3
		default:
			return 4
		}
	}

	for _, id := range ids {
		label := fmt.Sprintf("%s %s", id.Kind, id.Start)
		row, ok := rowOf[label]
		if !ok {
			row = nextRow
			nextRow++
			rowOf[label] = row
			f.SetCellValue(sheet, cellRef(1, row), label)
		}

		var cellText string
		for _, activityID := range s.ActivitiesInSlot[id] {
			if cellText != "" {
				cellText += ", "
			}
			cellText += activityID
		}
		if cellText != "" {
			f.SetCellValue(sheet, cellRef(colFor(id.Weekday), row), cellText)
		}
	}

	return nil
}

func writeFailuresSheet(f *excelize.File, counters *hardcheck.Counters) error {
	sheet := "Failures"
	f.NewSheet(sheet)

	f.SetCellValue(sheet, "A1", "Constraint")
	f.SetCellValue(sheet, "B1", "Rejections")

	rows := []struct {
		name  string
		count int64
	}{
		{"General (any hard constraint)", counters.General},
		{"City (C1-C3)", counters.City},
		{"Game max (G1)", counters.GameMax},
		{"Practice max (G1)", counters.PracticeMax},
		{"Game-practice overlap (G2)", counters.SameSlot},
		{"Not compatible (G3)", counters.NotCompatible},
		{"Part-assign (G4)", counters.PartAssign},
		{"Unwanted (G5)", counters.Unwanted},
	}
	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheet, cellRef(1, row), r.name)
		f.SetCellValue(sheet, cellRef(2, row), r.count)
	}
	return nil
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
