// Package search implements the Search Driver (C6): the explicit-stack
// depth-first walk of the And-tree, tracking the best complete schedule
// found so far.
package search

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/dmcarroll/ctsched/internal/expand"
	"github.com/dmcarroll/ctsched/internal/hardcheck"
	"github.com/dmcarroll/ctsched/internal/problem"
	"github.com/dmcarroll/ctsched/internal/softeval"
	"github.com/dmcarroll/ctsched/internal/state"
)

// ErrInfeasible is returned by Search when the solvability precheck
// rules out the instance before any node is expanded.
var ErrInfeasible = fmt.Errorf("instance doesn't appear to be solvable")

// Driver owns one search run: the Problem Instance it searches over, the
// hard checker and soft evaluator the Expander needs, and optional
// progress reporting.
type Driver struct {
	Problem   *problem.Instance
	Checker   *hardcheck.Checker
	Evaluator *softeval.Evaluator

	// ReportEvery, when positive, writes a progress line to ReportWriter
	// every N leaves encountered, echoing the original heartbeat that
	// printed the current best every few seconds. Driven off a leaf
	// counter rather than a wall clock keeps a run's behavior
	// reproducible between test executions.
	ReportEvery  int64
	ReportWriter io.Writer

	// MaxExpansions bounds how many nodes Search will pop off the stack
	// before giving up and returning the best schedule found so far. Zero
	// means unlimited.
	MaxExpansions int64

	leaves     int64
	expansions int64
}

// Search walks the And-tree depth-first, returning the best complete
// schedule encountered. It returns ErrInfeasible immediately if the
// instance fails the cheap solvability precheck, and returns (nil, nil)
// if the search space is exhausted (or MaxExpansions is hit) without
// ever reaching a complete schedule.
func (d *Driver) Search(ctx context.Context) (*state.State, error) {
	if !d.solvable() {
		return nil, ErrInfeasible
	}

	x := expand.New(d.Problem, d.Checker, d.Evaluator)

	root := newNode(d.Problem, state.NewEmpty(d.Problem))
	stack := []*Node{root}

	var best *state.State

	for len(stack) > 0 {
		if ctx.Err() != nil {
			return best, ctx.Err()
		}
		if d.MaxExpansions > 0 && d.expansions >= d.MaxExpansions {
			break
		}
		d.expansions++

		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children := x.Expand(n.State)
		if len(children) == 0 {
			d.leaves++
			if n.Solved && (best == nil || n.State.Eval < best.Eval) {
				best = n.State
			}
			d.report(best)
			continue
		}

		nodes := make([]*Node, len(children))
		for i, c := range children {
			nodes[i] = newNode(d.Problem, c)
		}
		sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Opt > nodes[j].Opt })
		stack = append(stack, nodes...)
	}

	return best, nil
}

// solvable is the cheap precheck from the original driver: an instance
// with more practices than total practice capacity, or more games than
// total game capacity plus two, is rejected before any search begins.
func (d *Driver) solvable() bool {
	totalGameMax, totalPracticeMax := 0, 0
	for _, id := range d.Problem.GameSlots {
		totalGameMax += d.Problem.Slots[id].Max
	}
	for _, id := range d.Problem.PracSlots {
		totalPracticeMax += d.Problem.Slots[id].Max
	}

	if len(d.Problem.PracticeIDs) > totalPracticeMax {
		return false
	}
	if len(d.Problem.GameIDs) > totalGameMax+2 {
		return false
	}
	return true
}

func (d *Driver) report(best *state.State) {
	if d.ReportEvery <= 0 || d.ReportWriter == nil {
		return
	}
	if d.leaves%d.ReportEvery != 0 {
		return
	}
	if best == nil {
		fmt.Fprintf(d.ReportWriter, "No solution yet among %d leaves encountered. Keep waiting!\n", d.leaves)
		return
	}
	fmt.Fprintf(d.ReportWriter, "Best so far after %d leaves: eval %d\n", d.leaves, best.Eval)
}
