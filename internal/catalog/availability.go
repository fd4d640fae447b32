package catalog

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	// ColorMuted styles a fully rented property.
	ColorMuted = "text-slate-400"
	// ColorAvailable styles a property with free rooms.
	ColorAvailable = "text-emerald-600"

	fullyRentedText = "Fully Rented"
	displayLayout   = "2 Jan 2006"
)

var availabilityLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2 Jan 2006",
	"January 2, 2006",
}

// AvailabilitySummary is the derived availability line of a property.
type AvailabilitySummary struct {
	Count      int    `json:"count"`
	Text       string `json:"text"`
	ColorClass string `json:"colorClass"`
}

// Summarize derives the availability line from a room list. It never fails.
//
// Availability values that do not parse as dates are kept: they sort after
// every parseable date, in lexical order among themselves, and are displayed
// verbatim.
func Summarize(rooms []Room) AvailabilitySummary {
	dates := make([]string, 0, len(rooms))
	for _, room := range rooms {
		if room.IsAvailable() {
			dates = append(dates, room.Available)
		}
	}
	if len(dates) == 0 {
		return AvailabilitySummary{Count: 0, Text: fullyRentedText, ColorClass: ColorMuted}
	}

	sort.SliceStable(dates, func(i, j int) bool {
		return availabilityLess(dates[i], dates[j])
	})
	earliest := dates[0]

	display := earliest
	if t, ok := ParseAvailability(earliest); ok {
		display = t.Format(displayLayout)
	}

	noun := "Room"
	if len(dates) > 1 {
		noun = "Rooms"
	}
	return AvailabilitySummary{
		Count:      len(dates),
		Text:       fmt.Sprintf("%d %s available — earliest from %s", len(dates), noun, display),
		ColorClass: ColorAvailable,
	}
}

// ParseAvailability parses a room availability value leniently.
func ParseAvailability(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" || value == IndefiniteAvailability {
		return time.Time{}, false
	}
	for _, layout := range availabilityLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func availabilityLess(a, b string) bool {
	ta, okA := ParseAvailability(a)
	tb, okB := ParseAvailability(b)
	switch {
	case okA && okB:
		return ta.Before(tb)
	case okA != okB:
		return okA
	default:
		return a < b
	}
}
