package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
)

// BonusWeekday is the day the water turns generous.
const BonusWeekday = time.Friday

var weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// DayContext is fixed for the duration of an encounter. Build it with
// NewDayContext; BonusDay must agree with Weekday and Override, and the
// zero value is a plain Sunday.
type DayContext struct {
	Weekday  time.Weekday `json:"weekday"`
	Override string       `json:"override,omitempty"`
	BonusDay bool         `json:"bonus_day"`
}

// IsBonusDay reports whether bonuses apply. A non-empty override wins and
// only needs to start with the bonus day's first three letters.
func IsBonusDay(override string, now time.Time) bool {
	if o := strings.TrimSpace(override); o != "" {
		return strings.HasPrefix(strings.ToLower(o), weekdayPrefix(BonusWeekday))
	}
	return now.Weekday() == BonusWeekday
}

// NewDayContext resolves the day for a session. Overrides must name a
// weekday by at least its first three letters.
func NewDayContext(override string, now time.Time) (DayContext, error) {
	o := strings.TrimSpace(override)
	if o == "" {
		return DayContext{Weekday: now.Weekday(), BonusDay: now.Weekday() == BonusWeekday}, nil
	}

	lower := strings.ToLower(o)
	for _, d := range weekdays {
		if len(lower) >= 3 && strings.HasPrefix(lower, weekdayPrefix(d)) {
			return DayContext{Weekday: d, Override: o, BonusDay: IsBonusDay(o, now)}, nil
		}
	}

	if suggestion := closestWeekday(lower); suggestion != "" {
		return DayContext{}, fmt.Errorf("%w: unknown day %q (did you mean %s?)", ErrInvalidInput, o, suggestion)
	}
	return DayContext{}, fmt.Errorf("%w: unknown day %q", ErrInvalidInput, o)
}

// Describe renders the header line, e.g. "Today is Friday (Friday bonuses active!)".
func (d DayContext) Describe() string {
	today := d.Weekday.String()
	if d.Override != "" {
		today = capitalise(d.Override)
	}
	marker := ""
	if d.BonusDay {
		marker = fmt.Sprintf(" (%s bonuses active!)", BonusWeekday)
	}
	return fmt.Sprintf("Today is %s%s", today, marker)
}

func weekdayPrefix(d time.Weekday) string {
	return strings.ToLower(d.String()[:3])
}

func closestWeekday(in string) string {
	best, bestDist := "", -1
	for _, d := range weekdays {
		dist := levenshtein.ComputeDistance(in, strings.ToLower(d.String()))
		if bestDist < 0 || dist < bestDist {
			best, bestDist = d.String(), dist
		}
	}
	if bestDist > 3 {
		return ""
	}
	return best
}

func capitalise(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
