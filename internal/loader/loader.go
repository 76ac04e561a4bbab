// Package loader reads a problem-instance YAML document into a
// problem.Instance, the Go-native stand-in for the original parser that
// built the instance's relations programmatically.
package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmcarroll/ctsched/internal/domain"
	"github.com/dmcarroll/ctsched/internal/problem"
)

// SlotRef names a grid slot the way the YAML document does.
type SlotRef struct {
	Kind      string `yaml:"kind"`
	Weekday   string `yaml:"weekday"`
	StartTime string `yaml:"start_time"`
}

func (r SlotRef) resolve() (domain.SlotID, error) {
	var kind domain.Kind
	switch r.Kind {
	case "game":
		kind = domain.Game
	case "practice":
		kind = domain.Practice
	default:
		return domain.SlotID{}, fmt.Errorf("unknown slot kind %q", r.Kind)
	}
	var weekday domain.Weekday
	switch r.Weekday {
	case "MO":
		weekday = domain.Mon
	case "TU":
		weekday = domain.Tue
	case "FR":
		weekday = domain.Fri
	default:
		return domain.SlotID{}, fmt.Errorf("unknown weekday %q", r.Weekday)
	}
	start, err := domain.NormalizeClock(r.StartTime)
	if err != nil {
		return domain.SlotID{}, fmt.Errorf("invalid start_time %q: %w", r.StartTime, err)
	}
	return domain.SlotID{Kind: kind, Weekday: weekday, Start: start}, nil
}

type slotCapacity struct {
	SlotRef `yaml:",inline"`
	Max     int `yaml:"max"`
	Min     int `yaml:"min"`
}

type gameDoc struct {
	ID          string `yaml:"id"`
	Association string `yaml:"association"`
	Age         string `yaml:"age"`
	Tier        string `yaml:"tier"`
	Division    string `yaml:"division"`
}

type practiceDoc struct {
	gameDoc     `yaml:",inline"`
	PracticeNum int `yaml:"practice_num"`
}

type unwantedDoc struct {
	Activity string    `yaml:"activity"`
	Slots    []SlotRef `yaml:"slots"`
}

type preferenceDoc struct {
	Activity string  `yaml:"activity"`
	Slot     SlotRef `yaml:"slot"`
	Value    int     `yaml:"value"`
}

type partAssignDoc struct {
	Activity string  `yaml:"activity"`
	Slot     SlotRef `yaml:"slot"`
}

type specialBookingDoc struct {
	Activity string  `yaml:"activity"`
	Slot     SlotRef `yaml:"slot"`
}

type weightsDoc struct {
	MinFilled  int `yaml:"min_filled"`
	Preference int `yaml:"preference"`
	Pair       int `yaml:"pair"`
	Section    int `yaml:"section"`
}

type penaltiesDoc struct {
	GameMin     int `yaml:"game_min"`
	PracticeMin int `yaml:"practice_min"`
	NotPaired   int `yaml:"not_paired"`
	Section     int `yaml:"section"`
}

// document is the top-level shape of a problem-instance YAML file.
type document struct {
	Name            string              `yaml:"name"`
	Weights         weightsDoc          `yaml:"weights"`
	Penalties       penaltiesDoc        `yaml:"penalties"`
	SlotCapacities  []slotCapacity      `yaml:"slot_capacities"`
	AdminBlocks     []SlotRef           `yaml:"admin_blocks"`
	Games           []gameDoc           `yaml:"games"`
	Practices       []practiceDoc       `yaml:"practices"`
	NotCompatible   [][2]string         `yaml:"not_compatible"`
	Unwanted        []unwantedDoc       `yaml:"unwanted"`
	Preferences     []preferenceDoc     `yaml:"preferences"`
	Pair            [][2]string         `yaml:"pair"`
	PartAssign      []partAssignDoc     `yaml:"part_assign"`
	SpecialBookings []specialBookingDoc `yaml:"special_bookings"`
}

// LoadFromFile reads and parses a problem instance from path.
func LoadFromFile(path string) (*problem.Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading problem file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses a problem instance document.
//
// Phase one builds the slot grid and weight/penalty constants (done by
// problem.NewBuilder, which calls domain.BuildWeeklyGrid before any
// activity exists). Phase two resolves every activity and relation,
// validating that each slot or activity reference names something that
// was actually declared. admin_blocks are applied last, after every
// activity reference has already been validated against the original
// capacities.
func LoadFromBytes(data []byte) (*problem.Instance, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing problem yaml: %w", err)
	}

	b := problem.NewBuilder(doc.Name, problem.Weights{
		MinFilled: doc.Weights.MinFilled,
		Pref:      doc.Weights.Preference,
		Pair:      doc.Weights.Pair,
		SecDiff:   doc.Weights.Section,
	}, problem.Penalties{
		GameMin:     doc.Penalties.GameMin,
		PracticeMin: doc.Penalties.PracticeMin,
		NotPaired:   doc.Penalties.NotPaired,
		Section:     doc.Penalties.Section,
	})

	for _, sc := range doc.SlotCapacities {
		id, err := sc.resolve()
		if err != nil {
			return nil, fmt.Errorf("slot_capacities: %w", err)
		}
		b.SetSlotCapacity(id, sc.Max, sc.Min)
	}

	for _, g := range doc.Games {
		b.AddGame(g.ID, g.Association, g.Age, g.Tier, g.Division)
	}
	for _, p := range doc.Practices {
		b.AddPractice(p.ID, p.Association, p.Age, p.Tier, p.Division, p.PracticeNum)
	}
	for _, pair := range doc.NotCompatible {
		b.AddNotCompatible(pair[0], pair[1])
	}
	for _, u := range doc.Unwanted {
		for _, ref := range u.Slots {
			id, err := ref.resolve()
			if err != nil {
				return nil, fmt.Errorf("unwanted %q: %w", u.Activity, err)
			}
			b.AddUnwanted(u.Activity, id)
		}
	}
	for _, p := range doc.Preferences {
		id, err := p.Slot.resolve()
		if err != nil {
			return nil, fmt.Errorf("preferences %q: %w", p.Activity, err)
		}
		b.AddPreference(p.Activity, id, p.Value)
	}
	for _, pair := range doc.Pair {
		b.AddPair(pair[0], pair[1])
	}
	for _, pa := range doc.PartAssign {
		id, err := pa.Slot.resolve()
		if err != nil {
			return nil, fmt.Errorf("part_assign %q: %w", pa.Activity, err)
		}
		b.AddPartAssign(pa.Activity, id)
	}
	for _, sb := range doc.SpecialBookings {
		id, err := sb.Slot.resolve()
		if err != nil {
			return nil, fmt.Errorf("special_bookings %q: %w", sb.Activity, err)
		}
		b.AddSpecialBooking(sb.Activity, id)
	}

	for _, ref := range doc.AdminBlocks {
		id, err := ref.resolve()
		if err != nil {
			return nil, fmt.Errorf("admin_blocks: %w", err)
		}
		b.SetSlotCapacity(id, 0, 0)
	}

	in, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("building problem instance: %w", err)
	}
	return in, nil
}
