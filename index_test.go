package pricetrack

import (
	"encoding/json"
	"testing"
)

func TestBuildSeries(t *testing.T) {
	l := newTestLedger(t, map[string][]ExtractRow{
		"20240101": {row("1", "Almacén", "100"), row("2", "Limpieza", "40")},
		"20240102": {row("1", "Almacén", "105"), row("2", "Limpieza", "40")},
		"20240104": {row("1", "Almacén", "102.9"), row("2", "Limpieza", "44")},
	})

	testCases := []struct {
		name     string
		category string
		want     []string
	}{
		// day 2: mean(5, 0) = 2.5, day 4: mean(-2, 10) = 4
		{"total", "", []string{"0", "2.5", "6.5"}},
		// additive, not compounded: 5 then -2
		{"category", "Almacén", []string{"0", "5", "3"}},
		{"other category", "Limpieza", []string{"0", "0", "10"}},
		{"absent category", "Frescos", []string{"0", "0", "0"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := BuildSeries(l, 7, D("20240104"), tc.category)
			if len(got) != len(tc.want) {
				t.Fatalf("BuildSeries() = %v, want %v", got, tc.want)
			}
			for i, w := range tc.want {
				if !got[i].Pct.Equal(dec(w)) {
					t.Errorf("BuildSeries()[%d] = %v on %s, want %s", i, got[i].Pct, got[i].Date, w)
				}
			}
			if got[0].Date != D("20240101") || got[2].Date != D("20240104") {
				t.Errorf("BuildSeries() dates = %s..%s, want ledger days", got[0].Date, got[2].Date)
			}
		})
	}
}

func TestBuildSeries_Cutoff(t *testing.T) {
	l := newTestLedger(t, map[string][]ExtractRow{
		"20240101": {row("1", "Almacén", "50")},
		"20240103": {row("1", "Almacén", "100")},
		"20240110": {row("1", "Almacén", "110")},
	})
	// The window starts on today-7: 2024-01-03 is kept and becomes the origin.
	got := BuildSeries(l, 7, D("20240110"), "")
	if len(got) != 2 || got[0].Date != D("20240103") || !got[0].Pct.IsZero() || !got[1].Pct.Equal(dec("10")) {
		t.Errorf("BuildSeries() = %v, want [2024-01-03:0 2024-01-10:10]", got)
	}
}

func TestBuildSeries_LaterDaysIgnored(t *testing.T) {
	l := newTestLedger(t, map[string][]ExtractRow{
		"20240101": {row("1", "Almacén", "100")},
		"20240102": {row("1", "Almacén", "110")},
		"20240103": {row("1", "Almacén", "55")},
	})
	// Backfilling 2024-01-02 must not chart 2024-01-03.
	got := BuildSeries(l, 7, D("20240102"), "")
	if len(got) != 2 || got[1].Date != D("20240102") || !got[1].Pct.Equal(dec("10")) {
		t.Errorf("BuildSeries() = %v, want [2024-01-01:0 2024-01-02:10]", got)
	}
}

func TestBuildWindow_JSON(t *testing.T) {
	w := Window{Key: "7d", Days: 7}
	priority := DefaultConfig().Categories

	t.Run("empty window", func(t *testing.T) {
		got, err := json.Marshal(BuildWindow(NewLedger(), w, D("20240110"), priority))
		if err != nil {
			t.Fatalf("json.Marshal() error = %v", err)
		}
		if want := `{"total":[],"categories":{}}`; string(got) != want {
			t.Errorf("json.Marshal() = %s, want %s", got, want)
		}
	})

	t.Run("categories in priority order", func(t *testing.T) {
		l := newTestLedger(t, map[string][]ExtractRow{
			"20240109": {row("1", "Limpieza", "10"), row("2", "Almacén", "10"), row("3", "Otros", "10")},
			"20240110": {row("1", "Limpieza", "11"), row("2", "Almacén", "10"), row("3", "Otros", "10")},
		})
		got, err := json.Marshal(BuildWindow(l, w, D("20240110"), priority))
		if err != nil {
			t.Fatalf("json.Marshal() error = %v", err)
		}
		want := `{"total":[{"date":"2024-01-09","pct":0},{"date":"2024-01-10","pct":3.33}],` +
			`"categories":{"Almacén":[{"date":"2024-01-09","pct":0},{"date":"2024-01-10","pct":0}],` +
			`"Limpieza":[{"date":"2024-01-09","pct":0},{"date":"2024-01-10","pct":10}]}}`
		if string(got) != want {
			t.Errorf("json.Marshal() =\n%s\nwant\n%s", got, want)
		}
	})
}

func TestBuildCharts(t *testing.T) {
	l := newTestLedger(t, map[string][]ExtractRow{
		"20240101": {row("1", "Almacén", "100")},
	})
	charts := BuildCharts(l, DefaultConfig(), D("20240101"))
	got, err := json.Marshal(charts)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	single := `{"total":[{"date":"2024-01-01","pct":0}],"categories":{"Almacén":[{"date":"2024-01-01","pct":0}]}}`
	want := `{"7d":` + single + `,"30d":` + single + `,"6m":` + single + `,"1y":` + single + `}`
	if string(got) != want {
		t.Errorf("json.Marshal() =\n%s\nwant\n%s", got, want)
	}
}
