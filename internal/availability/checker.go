// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/forkcast/internal/models"
)

// ClosingSoonWindow is how close to closing time a restaurant reports
// closing_soon instead of open.
const ClosingSoonWindow = 60

// DayKey returns the opening-hours table key for a weekday.
func DayKey(d time.Weekday) string {
	return strings.ToLower(d.String())
}

// TimeContextFrom converts a wall-clock time to a TimeContext.
func TimeContextFrom(t time.Time) models.TimeContext {
	return models.TimeContext{Day: t.Weekday(), Hour: t.Hour(), Minute: t.Minute()}
}

// CheckOpen evaluates the restaurant's opening hours at the given instant.
//
// Only today's entry is consulted. Hours that cross midnight are not
// supported: a close time earlier than the open time never matches, so a
// 18:00-02:00 entry reads as closed all day.
func CheckOpen(r *models.Restaurant, at models.TimeContext) models.Availability {
	if r.Hours == nil {
		return models.Availability{Status: models.StatusUnknown, Label: "Hours unavailable"}
	}

	day, ok := r.Hours[DayKey(at.Day)]
	if !ok || day.Closed {
		return models.Availability{Status: models.StatusClosed, Label: "Closed today"}
	}

	openMin, okOpen := parseClock(day.Open)
	closeMin, okClose := parseClock(day.Close)
	if !okOpen || !okClose {
		return models.Availability{Status: models.StatusClosed, Label: "Closed today"}
	}

	now := at.MinutesSinceMidnight()
	result := models.Availability{OpensAt: day.Open, ClosesAt: day.Close}

	switch {
	case now >= openMin && now < closeMin:
		remaining := closeMin - now
		if remaining <= ClosingSoonWindow {
			result.Status = models.StatusClosingSoon
			result.Label = fmt.Sprintf("Closes in %d min", remaining)
		} else {
			result.Status = models.StatusOpen
			result.Label = "Open until " + day.Close
		}
	case now < openMin:
		result.Status = models.StatusClosed
		result.Label = "Closed · opens " + day.Open
	default:
		result.Status = models.StatusClosed
		result.Label = "Closed today"
	}
	return result
}

// parseClock converts "HH:MM" to minutes since midnight. "24:00" is accepted
// as end of day.
func parseClock(s string) (int, bool) {
	h, m, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		return 0, false
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 24 {
		return 0, false
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	if hour == 24 && minute != 0 {
		return 0, false
	}
	return hour*60 + minute, true
}
