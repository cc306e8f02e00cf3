package pricetrack

import (
	"testing"
)

func TestLedger_Snapshot(t *testing.T) {
	l := newTestLedger(t, map[string][]ExtractRow{
		"20240101": {row("1", "Almacén", "100"), row("2", "Frescos", "50")},
		"20240103": {row("1", "Almacén", "110")},
		"20240110": {row("1", "Almacén", "120"), row("2", "Frescos", "55")},
	})

	testCases := []struct {
		on   string
		want int
	}{
		{"20240101", 2},
		{"20240102", 0}, // gap
		{"20240103", 1},
		{"20240110", 2},
		{"20231231", 0},
		{"20250101", 0},
	}
	for _, tc := range testCases {
		t.Run(tc.on, func(t *testing.T) {
			s := l.Snapshot(D(tc.on))
			if s.Len() != tc.want {
				t.Errorf("Snapshot(%s).Len() = %d, want %d", tc.on, s.Len(), tc.want)
			}
			if s.IsEmpty() != (tc.want == 0) {
				t.Errorf("Snapshot(%s).IsEmpty() = %v", tc.on, s.IsEmpty())
			}
			for _, r := range s.Records {
				if r.Date != D(tc.on) {
					t.Errorf("Snapshot(%s) contains a record of %s", tc.on, r.Date)
				}
			}
		})
	}

	if got := l.Snapshot(D("20240110")).Filter("Frescos"); got.Len() != 1 || got.Records[0].ProductID != "2" {
		t.Errorf("Filter(Frescos) = %+v, want product 2 only", got.Records)
	}
	if got := l.Snapshot(D("20240110")).Filter(""); got.Len() != 2 {
		t.Errorf("Filter(\"\").Len() = %d, want 2", got.Len())
	}
}

func TestLedger_Nearest(t *testing.T) {
	l := newTestLedger(t, map[string][]ExtractRow{
		"20240101": {row("1", "Almacén", "100")},
		"20240103": {row("1", "Almacén", "110")},
		"20240110": {row("1", "Almacén", "120")},
	})

	testCases := []struct {
		name   string
		nearer func(string) (Snapshot, bool)
		on     string
		want   string // empty if none
	}{
		{"before first", before(l), "20240101", ""},
		{"before tolerates gaps", before(l), "20240103", "20240101"},
		{"before a missing day", before(l), "20240105", "20240103"},
		{"before after last", before(l), "20240201", "20240110"},
		{"at or before exact", atOrBefore(l), "20240103", "20240103"},
		{"at or before a missing day", atOrBefore(l), "20240109", "20240103"},
		{"at or before first", atOrBefore(l), "20240101", "20240101"},
		{"at or before too early", atOrBefore(l), "20231225", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, ok := tc.nearer(tc.on)
			if tc.want == "" {
				if ok {
					t.Errorf("got snapshot of %s, want none", s.On)
				}
				return
			}
			if !ok {
				t.Fatalf("got no snapshot, want %s", tc.want)
			}
			if s.On != D(tc.want) || s.IsEmpty() {
				t.Errorf("got snapshot of %s with %d records, want %s", s.On, s.Len(), tc.want)
			}
		})
	}
}

func before(l *Ledger) func(string) (Snapshot, bool) {
	return func(on string) (Snapshot, bool) { return l.NearestBefore(D(on)) }
}

func atOrBefore(l *Ledger) func(string) (Snapshot, bool) {
	return func(on string) (Snapshot, bool) { return l.NearestAtOrBefore(D(on)) }
}
