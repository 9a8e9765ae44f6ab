// Package scheduler detects double-bookings between a candidate submission
// batch and the sessions already stored for the same organizer and group.
package scheduler

import (
	"time"

	"github.com/example/practice-scheduler/internal/dateutil"
)

// Candidate is one (date, start, end) tuple from a submission batch.
type Candidate struct {
	Date      time.Time
	StartTime string
	EndTime   string
}

// Booked is an existing stored session relevant to the candidate batch.
// Callers pre-filter by organizer, group, and candidate date set before
// invoking detection.
type Booked struct {
	SessionID  string
	GroupLabel string
	Date       time.Time
	StartTime  string
	EndTime    string
	Location   string
}

// Conflict details one detected double-booking that callers can present to
// organizers so they can adjust the submission.
type Conflict struct {
	Date       time.Time
	StartTime  string
	EndTime    string
	Location   string
	GroupLabel string
}

// DetectConflicts reports which candidates collide with existing sessions.
//
// For each candidate the existing sessions on its date are scanned in order
// and the first overlap wins; any single collision blocks the whole batch, so
// further matches for that candidate add no information. Conflicts are keyed
// by the existing session's date, start, and end, collapsing repeated
// candidates against the same booking into one record. An empty result means
// the batch may proceed.
//
// The check is advisory with respect to concurrent submissions: two batches
// can both pass detection before either write commits.
func DetectConflicts(existing []Booked, candidates []Candidate) []Conflict {
	if len(existing) == 0 || len(candidates) == 0 {
		return nil
	}

	byDate := make(map[string][]Booked, len(existing))
	for _, booked := range existing {
		key := dateutil.FormatDate(booked.Date)
		byDate[key] = append(byDate[key], booked)
	}

	seen := make(map[string]struct{})
	var conflicts []Conflict

	for _, candidate := range candidates {
		for _, booked := range byDate[dateutil.FormatDate(candidate.Date)] {
			if !dateutil.TimeRangesOverlap(candidate.StartTime, candidate.EndTime, booked.StartTime, booked.EndTime) {
				continue
			}

			key := dateutil.FormatDate(booked.Date) + "|" + booked.StartTime + "|" + booked.EndTime
			if _, dup := seen[key]; !dup {
				seen[key] = struct{}{}
				conflicts = append(conflicts, Conflict{
					Date:       booked.Date,
					StartTime:  booked.StartTime,
					EndTime:    booked.EndTime,
					Location:   booked.Location,
					GroupLabel: booked.GroupLabel,
				})
			}
			break
		}
	}

	return conflicts
}
