package plan

import (
	"encoding/json"
	"sort"

	"gopkg.in/yaml.v3"
)

// Completion records when an action item was completed. A Completion exists
// only for completed items; there is no incomplete record.
type Completion struct {
	Date Date
}

// DateSet is a set of calendar days.
type DateSet map[Date]struct{}

// NewDateSet builds a set from dates, dropping duplicates and zero dates.
func NewDateSet(dates ...Date) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s.Add(d)
	}
	return s
}

// Add inserts d and reports whether it was absent.
func (s DateSet) Add(d Date) bool {
	if d.IsZero() {
		return false
	}
	if _, ok := s[d]; ok {
		return false
	}
	s[d] = struct{}{}
	return true
}

// Has reports whether d is in the set.
func (s DateSet) Has(d Date) bool {
	_, ok := s[d]
	return ok
}

// Sorted returns the dates in ascending order.
func (s DateSet) Sorted() []Date {
	out := make([]Date, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// State is the persisted plan aggregate.
type State struct {
	StartDate   Date
	Actions     map[string]Completion
	StreakDates DateSet

	// Notes is free-form markdown kept alongside the plan.
	Notes string
}

// NewState returns an empty plan starting on start.
func NewState(start Date) *State {
	return &State{
		StartDate:   start,
		Actions:     make(map[string]Completion),
		StreakDates: make(DateSet),
	}
}

// Clone returns a deep copy of s.
func (s *State) Clone() *State {
	c := &State{
		StartDate:   s.StartDate,
		Actions:     make(map[string]Completion, len(s.Actions)),
		StreakDates: make(DateSet, len(s.StreakDates)),
		Notes:       s.Notes,
	}
	for id, comp := range s.Actions {
		c.Actions[id] = comp
	}
	for d := range s.StreakDates {
		c.StreakDates[d] = struct{}{}
	}
	return c
}

// stateRecord is the serialized form of State. Entries are written with
// completed: true so the layout stays self-describing.
type stateRecord struct {
	StartDate   Date                        `yaml:"start_date" json:"startDate"`
	Actions     map[string]completionRecord `yaml:"actions" json:"actions"`
	StreakDates []Date                      `yaml:"streak_dates" json:"streakDates"`
}

type completionRecord struct {
	Completed     bool `yaml:"completed" json:"completed"`
	CompletedDate Date `yaml:"completed_date" json:"completedDate"`
}

func (s *State) record() stateRecord {
	r := stateRecord{
		StartDate:   s.StartDate,
		Actions:     make(map[string]completionRecord, len(s.Actions)),
		StreakDates: s.StreakDates.Sorted(),
	}
	for id, comp := range s.Actions {
		r.Actions[id] = completionRecord{Completed: true, CompletedDate: comp.Date}
	}
	return r
}

func (r stateRecord) state() *State {
	s := NewState(r.StartDate)
	for id, rec := range r.Actions {
		if !rec.Completed {
			continue
		}
		s.Actions[id] = Completion{Date: rec.CompletedDate}
	}
	for _, d := range r.StreakDates {
		s.StreakDates.Add(d)
	}
	return s
}

// MarshalYAML implements yaml.Marshaler. Notes are not part of the record.
func (s *State) MarshalYAML() (interface{}, error) {
	return s.record(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *State) UnmarshalYAML(node *yaml.Node) error {
	var r stateRecord
	if err := node.Decode(&r); err != nil {
		return err
	}
	notes := s.Notes
	*s = *r.state()
	s.Notes = notes
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s *State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.record())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *State) UnmarshalJSON(b []byte) error {
	var r stateRecord
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}
	*s = *r.state()
	return nil
}
