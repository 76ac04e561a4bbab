// Package problem holds the Problem Instance (C1): the immutable,
// shared-read-only description of a league's slots, activities, and
// constraint relations that the rest of the search engine is built around.
package problem

import (
	"fmt"
	"sort"

	"github.com/dmcarroll/ctsched/internal/domain"
)

// Weights scale the four soft-constraint penalty unit costs into the
// running eval total.
type Weights struct {
	MinFilled int
	Pref      int
	Pair      int
	SecDiff   int
}

// Penalties are the unit costs the Weights above scale.
type Penalties struct {
	GameMin     int
	PracticeMin int
	NotPaired   int
	Section     int
}

// Preference is one (slot, reward) entry of PREFERENCES[activity].
type Preference struct {
	Slot  domain.SlotID
	Value int
}

// Instance is the fully validated, immutable problem description. It is
// built once by a Builder and shared read-only by every Schedule State,
// the checker, the evaluator, and the expander.
type Instance struct {
	Name string

	Slots       map[domain.SlotID]*domain.Slot
	GameSlots   []domain.SlotID
	PracSlots   []domain.SlotID
	Activities  map[string]*domain.Activity
	GameIDs     []string
	PracticeIDs []string

	NotCompatible   map[string]map[string]bool
	Unwanted        map[string]map[domain.SlotID]bool
	Preferences     map[string][]Preference
	Pair            map[string]map[string]bool
	PartAssign      map[string]domain.SlotID
	SpecialBookings map[string]domain.SlotID

	Weights   Weights
	Penalties Penalties
}

// Slot looks up a slot by id. Callers in the hot path (checker, evaluator)
// may assume the id came from a validated Instance and index Slots
// directly; this accessor exists for external collaborators.
func (in *Instance) Slot(id domain.SlotID) (*domain.Slot, bool) {
	s, ok := in.Slots[id]
	return s, ok
}

// Activity looks up an activity by id.
func (in *Instance) Activity(id string) (*domain.Activity, bool) {
	a, ok := in.Activities[id]
	return a, ok
}

// Builder accumulates a Problem Instance across the two parse phases spec.md
// §6 requires: the grid and weights first, then activities and relations.
// It mirrors original_source/Search/Layout.py's Adders inner class, but as
// an owned value instead of process-wide mutable state (spec.md §9).
type Builder struct {
	in  *Instance
	err error
}

// NewBuilder starts phase one: the slot grid is built immediately so
// overlaps are available before any activity is added.
func NewBuilder(name string, weights Weights, penalties Penalties) *Builder {
	return &Builder{
		in: &Instance{
			Name:            name,
			Slots:           domain.BuildWeeklyGrid(),
			Activities:      map[string]*domain.Activity{},
			NotCompatible:   map[string]map[string]bool{},
			Unwanted:        map[string]map[domain.SlotID]bool{},
			Preferences:     map[string][]Preference{},
			Pair:            map[string]map[string]bool{},
			PartAssign:      map[string]domain.SlotID{},
			SpecialBookings: map[string]domain.SlotID{},
			Weights:         weights,
			Penalties:       penalties,
		},
	}
}

// SetSlotCapacity sets max/min for an existing grid slot. It is how both
// the initial grid fill-in (games/practices carry their own max/min) and
// the post-parse admin-meeting mutation (spec.md §6) are expressed.
func (b *Builder) SetSlotCapacity(id domain.SlotID, max, min int) {
	if b.err != nil {
		return
	}
	slot, ok := b.in.Slots[id]
	if !ok {
		b.err = fmt.Errorf("unknown slot %s", id)
		return
	}
	slot.Max = max
	slot.Min = min
}

func (b *Builder) addActivity(a *domain.Activity) {
	if b.err != nil {
		return
	}
	if _, exists := b.in.Activities[a.ID]; exists {
		b.err = fmt.Errorf("duplicate activity id %q", a.ID)
		return
	}
	b.in.Activities[a.ID] = a
	b.in.NotCompatible[a.ID] = map[string]bool{}
	if a.Kind == domain.Game {
		b.in.GameIDs = append(b.in.GameIDs, a.ID)
	} else {
		b.in.PracticeIDs = append(b.in.PracticeIDs, a.ID)
	}
}

// AddGame registers a game activity.
func (b *Builder) AddGame(id, association, age, tier, division string) {
	b.addActivity(&domain.Activity{
		ID: id, Association: association, Age: age, Tier: tier,
		Division: division, Kind: domain.Game,
	})
}

// AddPractice registers a practice activity.
func (b *Builder) AddPractice(id, association, age, tier, division string, practiceNum int) {
	b.addActivity(&domain.Activity{
		ID: id, Association: association, Age: age, Tier: tier,
		Division: division, Kind: domain.Practice, PracticeNum: practiceNum,
	})
}

// AddNotCompatible records a symmetric NOT_COMPATIBLE pair.
func (b *Builder) AddNotCompatible(a, c string) {
	if b.err != nil {
		return
	}
	if a == c {
		b.err = fmt.Errorf("not_compatible pair (%s, %s) is reflexive", a, c)
		return
	}
	b.requireActivity(a)
	b.requireActivity(c)
	if b.err != nil {
		return
	}
	b.in.NotCompatible[a][c] = true
	b.in.NotCompatible[c][a] = true
}

// AddUnwanted forbids an activity from a slot.
func (b *Builder) AddUnwanted(activityID string, slot domain.SlotID) {
	if b.err != nil {
		return
	}
	b.requireActivity(activityID)
	b.requireSlot(slot)
	if b.err != nil {
		return
	}
	if b.in.Unwanted[activityID] == nil {
		b.in.Unwanted[activityID] = map[domain.SlotID]bool{}
	}
	b.in.Unwanted[activityID][slot] = true
}

// AddPreference records a preference reward for placing activityID at slot.
func (b *Builder) AddPreference(activityID string, slot domain.SlotID, value int) {
	if b.err != nil {
		return
	}
	b.requireActivity(activityID)
	b.requireSlot(slot)
	if b.err != nil {
		return
	}
	b.in.Preferences[activityID] = append(b.in.Preferences[activityID], Preference{Slot: slot, Value: value})
}

// AddPair records a symmetric PAIR relation.
func (b *Builder) AddPair(a, c string) {
	if b.err != nil {
		return
	}
	if a == c {
		b.err = fmt.Errorf("pair (%s, %s) is reflexive", a, c)
		return
	}
	b.requireActivity(a)
	b.requireActivity(c)
	if b.err != nil {
		return
	}
	if b.in.Pair[a] == nil {
		b.in.Pair[a] = map[string]bool{}
	}
	if b.in.Pair[c] == nil {
		b.in.Pair[c] = map[string]bool{}
	}
	b.in.Pair[a][c] = true
	b.in.Pair[c][a] = true
}

// AddPartAssign hard-assigns an activity to a slot.
func (b *Builder) AddPartAssign(activityID string, slot domain.SlotID) {
	if b.err != nil {
		return
	}
	b.requireActivity(activityID)
	b.requireSlot(slot)
	if b.err != nil {
		return
	}
	b.in.PartAssign[activityID] = slot
}

// AddSpecialBooking hard-assigns an activity to a slot, bypassing the
// expander's normal candidate-slot enumeration.
func (b *Builder) AddSpecialBooking(activityID string, slot domain.SlotID) {
	if b.err != nil {
		return
	}
	b.requireActivity(activityID)
	b.requireSlot(slot)
	if b.err != nil {
		return
	}
	b.in.SpecialBookings[activityID] = slot
}

func (b *Builder) requireActivity(id string) {
	if _, ok := b.in.Activities[id]; !ok {
		b.err = fmt.Errorf("unknown activity id %q", id)
	}
}

func (b *Builder) requireSlot(id domain.SlotID) {
	if _, ok := b.in.Slots[id]; !ok {
		b.err = fmt.Errorf("unknown slot %s", id)
	}
}

// Build finalizes the instance, stable-sorting the id slices that the
// expander iterates (so the exploration order in spec.md §5 is
// deterministic) and returning any error accumulated by the Add* calls.
func (b *Builder) Build() (*Instance, error) {
	if b.err != nil {
		return nil, b.err
	}

	sort.Strings(b.in.GameIDs)
	sort.Strings(b.in.PracticeIDs)

	for id, slot := range b.in.Slots {
		if slot.ID.Kind == domain.Game {
			b.in.GameSlots = append(b.in.GameSlots, id)
		} else {
			b.in.PracSlots = append(b.in.PracSlots, id)
		}
	}
	sort.Slice(b.in.GameSlots, func(i, j int) bool { return b.in.GameSlots[i].String() < b.in.GameSlots[j].String() })
	sort.Slice(b.in.PracSlots, func(i, j int) bool { return b.in.PracSlots[i].String() < b.in.PracSlots[j].String() })

	return b.in, nil
}
