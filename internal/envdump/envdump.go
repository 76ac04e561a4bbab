// Package envdump writes a debug dump of a fully loaded problem instance,
// the Go analogue of original_source/Search/Layout.py's
// post_parser_initialization debug log (a pprint.pprint(vars(Layout))
// redirected into program_log.log). It is gated behind the CLI's
// --debug flag rather than always-on, since the teacher repo has no
// always-on structured logger either.
package envdump

import (
	"log"
	"sort"

	"github.com/dmcarroll/ctsched/internal/domain"
	"github.com/dmcarroll/ctsched/internal/problem"
)

// Dump logs the shape of a loaded problem instance: slot grid size,
// activity counts, and the size of every auxiliary relation.
func Dump(logger *log.Logger, in *problem.Instance) {
	logger.Printf("problem instance %q", in.Name)
	logger.Printf("  slots: %d total, %d game, %d practice", len(in.Slots), len(in.GameSlots), len(in.PracSlots))
	logger.Printf("  activities: %d games, %d practices", len(in.GameIDs), len(in.PracticeIDs))
	logger.Printf("  not_compatible pairs: %d", countPairs(in.NotCompatible))
	logger.Printf("  unwanted entries: %d", countSlotSets(in.Unwanted))
	logger.Printf("  preferences: %d activities with at least one preference", len(in.Preferences))
	logger.Printf("  pair relations: %d", countPairs(in.Pair))
	logger.Printf("  part_assign: %d", len(in.PartAssign))
	logger.Printf("  special_bookings: %d", len(in.SpecialBookings))

	emptySlots := emptyCapacitySlots(in)
	if len(emptySlots) > 0 {
		sort.Strings(emptySlots)
		logger.Printf("  slots with max=0 (blocked): %v", emptySlots)
	}
}

func countPairs(rel map[string]map[string]bool) int {
	total := 0
	for _, peers := range rel {
		total += len(peers)
	}
	return total / 2
}

func countSlotSets(rel map[string]map[domain.SlotID]bool) int {
	return len(rel)
}

func emptyCapacitySlots(in *problem.Instance) []string {
	var out []string
	for id, slot := range in.Slots {
		if slot.Max == 0 {
			out = append(out, id.String())
		}
	}
	return out
}
