package application

import (
	"sort"
	"sync"
	"time"
)

// dayLock serialises scheduling writes per (employee, date) so that two
// concurrent bookings for the same employee-day cannot both pass the conflict
// check before either persists.
type dayLock struct {
	mu    sync.Mutex
	locks map[string]*dayLockEntry
}

type dayLockEntry struct {
	mu   sync.Mutex
	refs int
}

func newDayLock() *dayLock {
	return &dayLock{locks: make(map[string]*dayLockEntry)}
}

func dayLockKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

// Acquire locks the given employee-day and returns the release function.
func (l *dayLock) Acquire(employeeID string, date time.Time) func() {
	return l.AcquireKeys(dayLockKey(employeeID, date))
}

// AcquireKeys locks several employee-days at once. Keys are taken in sorted
// order so two callers locking overlapping sets cannot deadlock. Entries are
// reference counted and removed once the last holder releases.
func (l *dayLock) AcquireKeys(keys ...string) func() {
	unique := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, key)
	}
	sort.Strings(unique)

	entries := make([]*dayLockEntry, 0, len(unique))
	for _, key := range unique {
		l.mu.Lock()
		entry, ok := l.locks[key]
		if !ok {
			entry = &dayLockEntry{}
			l.locks[key] = entry
		}
		entry.refs++
		l.mu.Unlock()

		entry.mu.Lock()
		entries = append(entries, entry)
	}

	released := unique
	return func() {
		for i := len(entries) - 1; i >= 0; i-- {
			entries[i].mu.Unlock()
			l.mu.Lock()
			entries[i].refs--
			if entries[i].refs == 0 {
				delete(l.locks, released[i])
			}
			l.mu.Unlock()
		}
	}
}
