// Package domain holds the value types shared by every layer of the search
// engine: activity kinds, the weekly slot grid, and the slot identity rules
// that the rest of the packages key their maps on.
package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind distinguishes a game from a practice. It tags both activities and
// slots, since the grid has separate game and practice capacities.
type Kind string

const (
	Game     Kind = "GAME"
	Practice Kind = "PRACTICE"
)

// Weekday is restricted to the three days the league grid covers.
type Weekday string

const (
	Mon Weekday = "MO"
	Tue Weekday = "TU"
	Fri Weekday = "FR"
)

// SlotID is the structural identity of a slot: two slots with the same
// (Kind, Weekday, Start) triple are the same slot.
type SlotID struct {
	Kind    Kind
	Weekday Weekday
	Start   string
}

func (id SlotID) String() string {
	return fmt.Sprintf("%s %s %s", id.Kind, id.Weekday, id.Start)
}

// Slot is a fixed weekly time window with a capacity and a soft minimum.
type Slot struct {
	ID       SlotID
	End      string
	Evening  bool
	Max      int
	Min      int
	Overlaps map[SlotID]bool
}

// evening holds true once start_time >= 18:00.
func evening(start string) bool {
	return minutesSince(start) >= 18*60
}

func minutesSince(clock string) int {
	h, m, err := parseClock(clock)
	if err != nil {
		panic(err)
	}
	return h*60 + m
}

func parseClock(clock string) (hours, minutes int, err error) {
	parts := strings.Split(strings.TrimSpace(clock), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time string: %q", clock)
	}
	hours, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time string: %q", clock)
	}
	minutes, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time string: %q", clock)
	}
	return hours, minutes, nil
}

// NormalizeClock reduces any "H:MM" or "HH:MM" string to the single
// zero-padded "HH:MM" form slot identity is keyed on, so that "8:00" and
// "08:00" resolve to the same SlotID. Every caller that builds a SlotID
// from a clock string — the weekly grid and the problem-instance loader
// alike — must run it through here first.
func NormalizeClock(clock string) (string, error) {
	h, m, err := parseClock(clock)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", h, m), nil
}

// shortcut is a "HH:MM-HH:MM" range used to lay out one day's grid.
type shortcut string

func (s shortcut) split() (start, end string) {
	parts := strings.SplitN(string(s), "-", 2)
	return parts[0], parts[1]
}

var (
	monGameShortcuts = []shortcut{
		"8:00-9:00", "9:00-10:00", "10:00-11:00", "11:00-12:00", "12:00-13:00",
		"13:00-14:00", "14:00-15:00", "15:00-16:00", "16:00-17:00", "17:00-18:00",
		"18:00-19:00", "19:00-20:00", "20:00-21:00",
	}
	tueGameShortcuts = []shortcut{
		"8:00-9:30", "9:30-11:00", "11:00-12:30", "12:30-14:00", "14:00-15:30",
		"15:30-17:00", "17:00-18:30", "18:30-20:00",
	}
	monPracticeShortcuts = []shortcut{
		"8:00-9:00", "9:00-10:00", "10:00-11:00", "11:00-12:00", "12:00-13:00",
		"13:00-14:00", "14:00-15:00", "15:00-16:00", "16:00-17:00", "17:00-18:00",
		"18:00-19:00", "19:00-20:00", "20:00-21:00",
	}
	tuePracticeShortcuts = monPracticeShortcuts
	friPracticeShortcuts = []shortcut{
		"8:00-10:00", "10:00-12:00", "12:00-14:00", "14:00-16:00", "16:00-18:00",
		"18:00-20:00",
	}
)

// BuildWeeklyGrid lays out the fixed Mon/Tue/Fri game and practice grids and
// precomputes the symmetric, reflexive same-weekday overlap relation. It is
// phase one of loading a problem instance: the grid and its overlaps must
// exist before any weight or activity is parsed.
func BuildWeeklyGrid() map[SlotID]*Slot {
	slots := map[SlotID]*Slot{}

	add := func(kind Kind, weekday Weekday, shortcuts []shortcut) {
		for _, sc := range shortcuts {
			rawStart, rawEnd := sc.split()
			start, err := NormalizeClock(rawStart)
			if err != nil {
				panic(err)
			}
			end, err := NormalizeClock(rawEnd)
			if err != nil {
				panic(err)
			}
			id := SlotID{Kind: kind, Weekday: weekday, Start: start}
			slots[id] = &Slot{
				ID:       id,
				End:      end,
				Evening:  evening(start),
				Overlaps: map[SlotID]bool{},
			}
		}
	}

	add(Game, Mon, monGameShortcuts)
	add(Game, Tue, tueGameShortcuts)
	add(Practice, Mon, monPracticeShortcuts)
	add(Practice, Tue, tuePracticeShortcuts)
	add(Practice, Fri, friPracticeShortcuts)

	computeOverlaps(slots)
	return slots
}

// computeOverlaps fills in Overlaps for every slot pair sharing a minute on
// the same weekday, including each slot with itself.
func computeOverlaps(slots map[SlotID]*Slot) {
	ordered := make([]*Slot, 0, len(slots))
	for _, s := range slots {
		ordered = append(ordered, s)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].ID.String() < ordered[j].ID.String()
	})

	for _, a := range ordered {
		aStart, aEnd := minutesSince(a.ID.Start), minutesSince(a.End)
		for _, b := range ordered {
			if a.ID.Weekday != b.ID.Weekday {
				continue
			}
			bStart, bEnd := minutesSince(b.ID.Start), minutesSince(b.End)
			if aStart >= bEnd || aEnd <= bStart {
				continue
			}
			a.Overlaps[b.ID] = true
			b.Overlaps[a.ID] = true
		}
	}
}
