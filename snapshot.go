package pricetrack

import (
	"slices"

	"github.com/etnz/pricetrack/date"
	"github.com/patrickmn/go-cache"
)

// Snapshot represents the catalog prices on a single day.
type Snapshot struct {
	On      date.Date
	Records []Record
}

// Len returns the number of products in the snapshot.
func (s Snapshot) Len() int { return len(s.Records) }

// IsEmpty returns true if the snapshot has no records.
func (s Snapshot) IsEmpty() bool { return len(s.Records) == 0 }

// Filter returns the part of the snapshot belonging to a main category.
// An empty category returns the snapshot unchanged.
func (s Snapshot) Filter(mainCategory string) Snapshot {
	if mainCategory == "" {
		return s
	}
	filtered := Snapshot{On: s.On}
	for _, r := range s.Records {
		if r.MainCategory == mainCategory {
			filtered.Records = append(filtered.Records, r)
		}
	}
	return filtered
}

// Snapshot returns the records of exactly day 'on'. The snapshot is empty if the
// ledger has no record that day.
//
// Snapshots are computed once per day and shared: callers must not modify them.
func (l *Ledger) Snapshot(on date.Date) Snapshot {
	key := on.Compact()
	if s, ok := l.snapshots.Get(key); ok {
		return s.(Snapshot)
	}

	// Records are sorted by day, so the day is a contiguous run.
	start, _ := slices.BinarySearchFunc(l.records, on, func(r Record, d date.Date) int { return r.Date.Compare(d) })
	end := start
	for end < len(l.records) && l.records[end].Date == on {
		end++
	}
	s := Snapshot{On: on, Records: slices.Clone(l.records[start:end])}
	l.snapshots.Set(key, s, cache.DefaultExpiration)
	return s
}

// NearestBefore returns the snapshot of the latest day strictly before 'on'.
// It is used for the day over day comparison and tolerates missing days.
func (l *Ledger) NearestBefore(on date.Date) (Snapshot, bool) {
	i, _ := slices.BinarySearchFunc(l.days, on, date.Date.Compare)
	// i is the index of 'on' or where it would be inserted: the previous day is at i-1.
	if i == 0 {
		return Snapshot{}, false
	}
	return l.Snapshot(l.days[i-1]), true
}

// NearestAtOrBefore returns the snapshot of the latest day on or before 'target'.
// It anchors a lookback window to the closest day actually available.
func (l *Ledger) NearestAtOrBefore(target date.Date) (Snapshot, bool) {
	i, found := slices.BinarySearchFunc(l.days, target, date.Date.Compare)
	if found {
		return l.Snapshot(l.days[i]), true
	}
	if i == 0 {
		return Snapshot{}, false
	}
	return l.Snapshot(l.days[i-1]), true
}
