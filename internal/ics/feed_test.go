package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/example/practice-scheduler/internal/dateutil"
	"github.com/example/practice-scheduler/internal/persistence"
	"github.com/example/practice-scheduler/internal/testfixtures"
)

func weeklySeries(t *testing.T) (persistence.RecurrenceRule, []persistence.Session) {
	t.Helper()
	anchor := dateutil.Date(2026, time.February, 2)
	rule := testfixtures.NewRuleFixture(
		testfixtures.WithRuleKind("weekly"),
		testfixtures.WithRuleRange(anchor, anchor.AddDate(0, 0, 21)),
	)

	var sessions []persistence.Session
	for week := 0; week < 4; week++ {
		sessions = append(sessions, testfixtures.NewSessionFixture(
			testfixtures.WithSessionDate(anchor.AddDate(0, 0, week*7)),
			testfixtures.WithSessionRule(rule.ID),
		))
	}
	// Fixtures vary titles; a series VEVENT requires uniform occurrences.
	for i := range sessions {
		sessions[i].Title = "Weekly rehearsal"
	}
	return rule, sessions
}

func TestBuildFeed_IntactWeeklySeriesCollapsesToRRule(t *testing.T) {
	rule, sessions := weeklySeries(t)

	feed, err := BuildFeed(map[string]persistence.RecurrenceRule{rule.ID: rule}, sessions)
	if err != nil {
		t.Fatalf("BuildFeed failed: %v", err)
	}

	if got := strings.Count(feed, "BEGIN:VEVENT"); got != 1 {
		t.Fatalf("Expected 1 recurring VEVENT, got %d:\n%s", got, feed)
	}
	if !strings.Contains(feed, "FREQ=WEEKLY") || !strings.Contains(feed, "BYDAY=MO") {
		t.Errorf("Expected a weekly Monday RRULE:\n%s", feed)
	}
	if !strings.Contains(feed, rule.ID+uidDomain) {
		t.Error("Expected the series UID to derive from the rule ID")
	}
}

func TestBuildFeed_EditedSeriesFallsBackToOccurrences(t *testing.T) {
	rule, sessions := weeklySeries(t)
	// One occurrence was moved to a different time slot.
	sessions[2].StartTime = "20:00"
	sessions[2].EndTime = "21:00"

	feed, err := BuildFeed(map[string]persistence.RecurrenceRule{rule.ID: rule}, sessions)
	if err != nil {
		t.Fatalf("BuildFeed failed: %v", err)
	}

	if got := strings.Count(feed, "BEGIN:VEVENT"); got != 4 {
		t.Fatalf("Expected 4 per-occurrence VEVENTs, got %d", got)
	}
	if strings.Contains(feed, "RRULE") {
		t.Error("Expected no RRULE once occurrences diverge")
	}
}

func TestBuildFeed_ClampedFixedDateNotExpressedAsRRule(t *testing.T) {
	// A day-31 anchor clamps to shorter months, which BYMONTHDAY cannot say.
	anchor := dateutil.Date(2026, time.January, 31)
	rule := testfixtures.NewRuleFixture(
		testfixtures.WithRuleKind("monthly_fixed_date"),
		testfixtures.WithRuleRange(anchor, dateutil.Date(2026, time.April, 30)),
	)
	dates := []time.Time{
		anchor,
		dateutil.Date(2026, time.February, 28),
		dateutil.Date(2026, time.March, 31),
		dateutil.Date(2026, time.April, 30),
	}
	var sessions []persistence.Session
	for _, date := range dates {
		session := testfixtures.NewSessionFixture(
			testfixtures.WithSessionDate(date),
			testfixtures.WithSessionRule(rule.ID),
		)
		session.Title = "Month-end session"
		sessions = append(sessions, session)
	}

	feed, err := BuildFeed(map[string]persistence.RecurrenceRule{rule.ID: rule}, sessions)
	if err != nil {
		t.Fatalf("BuildFeed failed: %v", err)
	}

	if got := strings.Count(feed, "BEGIN:VEVENT"); got != 4 {
		t.Fatalf("Expected 4 per-occurrence VEVENTs, got %d", got)
	}
	if strings.Contains(feed, "RRULE") {
		t.Error("Expected no RRULE for a clamped fixed-date series")
	}
}

func TestBuildFeed_NthWeekdaySeriesUsesBydayOrdinal(t *testing.T) {
	// Second Tuesday of each month, February through May 2026.
	anchor := dateutil.Date(2026, time.February, 10)
	rule := testfixtures.NewRuleFixture(
		testfixtures.WithRuleKind("monthly_nth_weekday"),
		testfixtures.WithRuleRange(anchor, dateutil.Date(2026, time.May, 12)),
	)
	dates := []time.Time{
		anchor,
		dateutil.Date(2026, time.March, 10),
		dateutil.Date(2026, time.April, 14),
		dateutil.Date(2026, time.May, 12),
	}
	var sessions []persistence.Session
	for _, date := range dates {
		session := testfixtures.NewSessionFixture(
			testfixtures.WithSessionDate(date),
			testfixtures.WithSessionRule(rule.ID),
		)
		session.Title = "Board practice"
		sessions = append(sessions, session)
	}

	feed, err := BuildFeed(map[string]persistence.RecurrenceRule{rule.ID: rule}, sessions)
	if err != nil {
		t.Fatalf("BuildFeed failed: %v", err)
	}

	if got := strings.Count(feed, "BEGIN:VEVENT"); got != 1 {
		t.Fatalf("Expected 1 recurring VEVENT, got %d:\n%s", got, feed)
	}
	if !strings.Contains(feed, "FREQ=MONTHLY") || !strings.Contains(feed, "BYDAY=+2TU") {
		t.Errorf("Expected a monthly second-Tuesday RRULE:\n%s", feed)
	}
}

func TestBuildFeed_OneOffCarriesDetails(t *testing.T) {
	description := "Bring your own stand"
	session := testfixtures.NewSessionFixture(
		testfixtures.WithSessionDate(dateutil.Date(2026, time.March, 7)),
		testfixtures.WithSessionTimes("10:00", "12:00"),
	)
	session.Title = "Open rehearsal"
	session.Location = "Main hall"
	session.Description = &description

	feed, err := BuildFeed(nil, []persistence.Session{session})
	if err != nil {
		t.Fatalf("BuildFeed failed: %v", err)
	}

	for _, want := range []string{"Open rehearsal", "Main hall", "Bring your own stand", session.ID + uidDomain} {
		if !strings.Contains(feed, want) {
			t.Errorf("Expected feed to contain %q:\n%s", want, feed)
		}
	}
	if strings.Contains(feed, "RRULE") {
		t.Error("Expected no RRULE on a one-off event")
	}
}
