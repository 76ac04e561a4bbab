package search

import (
	"math"

	"github.com/dmcarroll/ctsched/internal/problem"
	"github.com/dmcarroll/ctsched/internal/state"
)

// Node is one explicit And-tree node: the state it carries, whether that
// state is a complete solution, and an opt score used only to order
// sibling exploration.
type Node struct {
	State  *state.State
	Solved bool
	Opt    float64
}

// newNode computes Solved and Opt for a freshly expanded child. Opt is
// -inf for a placement that came from a PARTASSIGN or SPECIAL_BOOKINGS
// entry, since those are never in competition with anything else and
// must always be explored first; every other node sorts by its eval
// total, explored from the best (most negative-penalty) score down.
func newNode(in *problem.Instance, s *state.State) *Node {
	n := &Node{State: s, Solved: s.IsComplete()}
	if isPreset(in, s.Latest.ActivityID) {
		n.Opt = math.Inf(-1)
	} else {
		n.Opt = float64(s.Eval)
	}
	return n
}

func isPreset(in *problem.Instance, activityID string) bool {
	if _, ok := in.PartAssign[activityID]; ok {
		return true
	}
	if _, ok := in.SpecialBookings[activityID]; ok {
		return true
	}
	return false
}
