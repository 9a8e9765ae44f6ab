// Package ics renders stored practice sessions as an iCalendar feed.
package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/example/practice-scheduler/internal/dateutil"
	"github.com/example/practice-scheduler/internal/persistence"
	"github.com/example/practice-scheduler/internal/recurrence"
)

const uidDomain = "@practice-scheduler"

// BuildFeed serializes sessions into an iCalendar document. A series whose
// stored occurrences still match its rule exactly is emitted as one recurring
// VEVENT with an RRULE; series that were edited apart, patterns RRULE cannot
// express, and one-off sessions are emitted occurrence by occurrence.
func BuildFeed(rules map[string]persistence.RecurrenceRule, sessions []persistence.Session) (string, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)

	var standalone []persistence.Session
	byRule := make(map[string][]persistence.Session)
	var ruleOrder []string

	for _, session := range sessions {
		if session.RecurrenceRuleID == nil {
			standalone = append(standalone, session)
			continue
		}
		id := *session.RecurrenceRuleID
		if _, seen := byRule[id]; !seen {
			ruleOrder = append(ruleOrder, id)
		}
		byRule[id] = append(byRule[id], session)
	}

	for _, ruleID := range ruleOrder {
		occurrences := byRule[ruleID]
		rule, ok := rules[ruleID]
		if ok && seriesIsExact(rule, occurrences) {
			if err := addSeriesEvent(cal, rule, occurrences[0]); err != nil {
				return "", err
			}
			continue
		}
		for _, occurrence := range occurrences {
			if err := addOccurrenceEvent(cal, occurrence); err != nil {
				return "", err
			}
		}
	}

	for _, session := range standalone {
		if err := addOccurrenceEvent(cal, session); err != nil {
			return "", err
		}
	}

	return cal.Serialize(), nil
}

// seriesIsExact reports whether one RRULE VEVENT reproduces the stored
// occurrences: the pattern must be expressible, the occurrences uniform, and
// their dates identical to a fresh expansion of the rule.
func seriesIsExact(rule persistence.RecurrenceRule, occurrences []persistence.Session) bool {
	if len(occurrences) == 0 {
		return false
	}
	kind, err := recurrence.ParseKind(rule.Kind)
	if err != nil || !representable(kind, rule.AnchorOn.Day()) {
		return false
	}

	first := occurrences[0]
	for _, occurrence := range occurrences[1:] {
		if occurrence.StartTime != first.StartTime ||
			occurrence.EndTime != first.EndTime ||
			occurrence.Location != first.Location ||
			occurrence.Title != first.Title {
			return false
		}
	}

	expanded, err := recurrence.Expand(kind, rule.AnchorOn, rule.EndsOn, rule.Weekday, rule.NthWeek)
	if err != nil || len(expanded) != len(occurrences) {
		return false
	}
	for i, date := range expanded {
		if !dateutil.Truncate(occurrences[i].Date).Equal(date) {
			return false
		}
	}
	return true
}

// representable reports whether RRULE semantics match a pattern. Fixed-date
// recurrence clamps day 29-31 to month ends, which BYMONTHDAY cannot express.
func representable(kind recurrence.Kind, anchorDay int) bool {
	switch kind {
	case recurrence.KindWeekly, recurrence.KindMonthlyNthWeekday:
		return true
	case recurrence.KindMonthlyFixedDate:
		return anchorDay <= 28
	}
	return false
}

func addSeriesEvent(cal *ical.Calendar, rule persistence.RecurrenceRule, first persistence.Session) error {
	start, err := dateutil.CombineDateClock(first.Date, first.StartTime)
	if err != nil {
		return fmt.Errorf("ics: session %s: %w", first.ID, err)
	}
	end, err := dateutil.CombineDateClock(first.Date, first.EndTime)
	if err != nil {
		return fmt.Errorf("ics: session %s: %w", first.ID, err)
	}
	until, err := dateutil.CombineDateClock(rule.EndsOn, first.EndTime)
	if err != nil {
		return fmt.Errorf("ics: rule %s: %w", rule.ID, err)
	}

	event := cal.AddEvent(rule.ID + uidDomain)
	event.SetDtStampTime(first.UpdatedAt.UTC())
	event.SetStartAt(start)
	event.SetEndAt(end)
	event.SetSummary(first.Title)
	if first.Location != "" {
		event.SetLocation(first.Location)
	}
	if first.Description != nil {
		event.SetDescription(*first.Description)
	}
	event.AddRrule(ruleString(rule, start, until))
	return nil
}

func addOccurrenceEvent(cal *ical.Calendar, session persistence.Session) error {
	start, err := dateutil.CombineDateClock(session.Date, session.StartTime)
	if err != nil {
		return fmt.Errorf("ics: session %s: %w", session.ID, err)
	}
	end, err := dateutil.CombineDateClock(session.Date, session.EndTime)
	if err != nil {
		return fmt.Errorf("ics: session %s: %w", session.ID, err)
	}

	event := cal.AddEvent(session.ID + uidDomain)
	event.SetDtStampTime(session.UpdatedAt.UTC())
	event.SetStartAt(start)
	event.SetEndAt(end)
	event.SetSummary(session.Title)
	if session.Location != "" {
		event.SetLocation(session.Location)
	}
	if session.Description != nil {
		event.SetDescription(*session.Description)
	}
	return nil
}

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

func ruleString(rule persistence.RecurrenceRule, start, until time.Time) string {
	option := rrule.ROption{
		Dtstart: start,
		Until:   until.UTC(),
	}

	kind, _ := recurrence.ParseKind(rule.Kind)
	switch kind {
	case recurrence.KindWeekly:
		option.Freq = rrule.WEEKLY
		option.Byweekday = []rrule.Weekday{rruleWeekdays[rule.Weekday]}
	case recurrence.KindMonthlyNthWeekday:
		option.Freq = rrule.MONTHLY
		weekday := rruleWeekdays[rule.Weekday]
		option.Byweekday = []rrule.Weekday{weekday.Nth(rule.NthWeek)}
	case recurrence.KindMonthlyFixedDate:
		option.Freq = rrule.MONTHLY
		option.Bymonthday = []int{rule.AnchorOn.Day()}
	}

	return option.RRuleString()
}
