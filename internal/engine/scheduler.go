package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"wallshift/internal/config"
)

// ParseInterval parses a rotation interval like "30m", "1h" or "90s".
// A bare number is taken as seconds.
func ParseInterval(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty interval")
	}

	unit := time.Second
	switch s[len(s)-1] {
	case 's':
		s = s[:len(s)-1]
	case 'm':
		unit = time.Minute
		s = s[:len(s)-1]
	case 'h':
		unit = time.Hour
		s = s[:len(s)-1]
	}

	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid interval %q", s)
	}
	return time.Duration(n) * unit, nil
}

// NextScheduleTrigger finds the schedule entry that fires soonest after now,
// wrapping past-due times forward by 24h. The first entry with the minimum
// wait wins ties. Entries with unparseable times are skipped.
func NextScheduleTrigger(entries []config.ScheduleEntry, now time.Time) (time.Duration, []string, bool) {
	var (
		best     time.Duration
		bestTags []string
		found    bool
	)

	for _, entry := range entries {
		target, err := time.Parse("15:04", entry.Time)
		if err != nil {
			continue
		}
		wait := secondsUntil(now, target.Hour(), target.Minute())
		if !found || wait < best {
			best = wait
			bestTags = entry.Tags
			found = true
		}
	}

	return best, bestTags, found
}

// secondsUntil is the wall-clock wait from now until hour:minute, wrapping to
// tomorrow when the slot has already passed today.
func secondsUntil(now time.Time, hour, minute int) time.Duration {
	nowSecs := now.Hour()*3600 + now.Minute()*60 + now.Second()
	targetSecs := hour*3600 + minute*60

	diff := targetSecs - nowSecs
	if diff <= 0 {
		diff += 24 * 3600
	}
	return time.Duration(diff) * time.Second
}
