// Package biztime provides utilities for business timezone calculations.
// Storage and transport use UTC. The business timezone only decides where
// a day starts, which is what dashboard trend buckets need.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is used when server.timezone is empty.
	DefaultTimezone = "UTC"

	// DayLayout is the key format of a business day bucket.
	DayLayout = "2006-01-02"
)

var (
	bizLocation *time.Location
	mu          sync.RWMutex
)

// Init sets the business timezone. Calling it again replaces the location.
func Init(tz string) error {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("failed to load business timezone %q: %w", tz, err)
	}
	mu.Lock()
	bizLocation = loc
	mu.Unlock()
	return nil
}

// Location returns the business timezone, UTC until Init succeeds.
func Location() *time.Location {
	mu.RLock()
	defer mu.RUnlock()
	if bizLocation == nil {
		return time.UTC
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDayUTC returns the UTC instant at which t's business day starts.
func StartOfDayUTC(t time.Time) time.Time {
	local := t.In(Location())
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Location())
	return start.UTC()
}

// DayKey formats t as its business-day bucket key.
func DayKey(t time.Time) string {
	return t.In(Location()).Format(DayLayout)
}

// LastDays returns the keys of the n business days ending with the day of now, oldest first.
func LastDays(now time.Time, n int) []string {
	if n <= 0 {
		return nil
	}
	local := now.In(Location())
	anchor := time.Date(local.Year(), local.Month(), local.Day(), 12, 0, 0, 0, Location())
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = anchor.AddDate(0, 0, i-(n-1)).Format(DayLayout)
	}
	return keys
}
