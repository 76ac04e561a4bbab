// Package report renders a completed (or best-so-far) Schedule State for
// external collaborators: the plain-text console format and an excelize
// workbook.
package report

import (
	"fmt"
	"io"

	"github.com/dmcarroll/ctsched/internal/state"
)

// WriteText renders s in the exact console format the search engine's
// output has always used: an "Eval-value: " line, then one line per
// placed activity with the activity id left-aligned and space-padded on
// the right to 30 columns.
func WriteText(w io.Writer, s *state.State) error {
	if _, err := fmt.Fprintf(w, "Eval-value: %d\n", s.Eval); err != nil {
		return fmt.Errorf("writing eval line: %w", err)
	}
	for _, a := range s.Assignments() {
		line := fmt.Sprintf("%-30s: %s, %s\n", a.ActivityID, a.Slot.Weekday, a.Slot.Start)
		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("writing assignment line for %q: %w", a.ActivityID, err)
		}
	}
	return nil
}
