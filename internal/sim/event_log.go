package sim

import (
	"fmt"
	"strings"
)

// Event categories.
const (
	CategoryPhase      = "phase"
	CategoryCommand    = "command"
	CategoryInfection  = "infection"
	CategoryProduction = "production"
	CategoryResearch   = "research"
)

// Event is one recorded engine event.
type Event struct {
	Tick     int
	Tile     string // coordinate label, or "--" for global events
	Category string
	Key      string
	Value    string
	NumVal   float64
}

// String formats the event as a fixed-width log line.
//
//	[T=042] (0,1,-1)   command    rejected         lab: lab_cap
func (e Event) String() string {
	return fmt.Sprintf("[T=%03d] %-10s %-10s %-16s %s",
		e.Tick, e.Tile, e.Category, e.Key, e.Value)
}

// EventLog collects structured engine events. It is unbounded; attach one
// only to headless runs and tests.
type EventLog struct {
	entries []Event
	verbose bool
}

// NewEventLog creates an EventLog. In verbose mode every individual infection
// hit and production step is recorded too.
func NewEventLog(verbose bool) *EventLog {
	return &EventLog{verbose: verbose}
}

// Add records a new event.
func (el *EventLog) Add(tick int, tile, category, key, value string, numVal float64) {
	el.entries = append(el.entries, Event{
		Tick:     tick,
		Tile:     tile,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an event only when verbose mode is on.
func (el *EventLog) AddVerbose(tick int, tile, category, key, value string, numVal float64) {
	if !el.verbose {
		return
	}
	el.Add(tick, tile, category, key, value, numVal)
}

// Entries returns all recorded events.
func (el *EventLog) Entries() []Event {
	return el.entries
}

func (e Event) matches(category, key string) bool {
	return (category == "" || e.Category == category) && (key == "" || e.Key == key)
}

// Filter returns events matching category and key. An empty string matches
// anything.
func (el *EventLog) Filter(category, key string) []Event {
	var out []Event
	for _, e := range el.entries {
		if e.matches(category, key) {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many events match category and key.
func (el *EventLog) Count(category, key string) int {
	n := 0
	for _, e := range el.entries {
		if e.matches(category, key) {
			n++
		}
	}
	return n
}

// Sum adds up NumVal over matching events with fromTick <= Tick <= toTick.
// For infection "spread" events that is the number of hits in the window.
func (el *EventLog) Sum(category, key string, fromTick, toTick int) float64 {
	var total float64
	for _, e := range el.entries {
		if e.Tick >= fromTick && e.Tick <= toTick && e.matches(category, key) {
			total += e.NumVal
		}
	}
	return total
}

// LastOf returns the most recent event matching category and key.
func (el *EventLog) LastOf(category, key string) (Event, bool) {
	for i := len(el.entries) - 1; i >= 0; i-- {
		if el.entries[i].matches(category, key) {
			return el.entries[i], true
		}
	}
	return Event{}, false
}

// Format returns the whole log, one event per line.
func (el *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range el.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
