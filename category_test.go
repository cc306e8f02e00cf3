package pricetrack

import (
	"testing"
)

func TestSummarize(t *testing.T) {
	vs := []Variation{
		{ProductID: "1", MainCategory: "Otros", DiffPct: dec("1")},
		{ProductID: "2", MainCategory: "Limpieza", DiffPct: dec("-2")},
		{ProductID: "3", MainCategory: "Almacén", DiffPct: dec("10")},
		{ProductID: "4", MainCategory: "Almacén", DiffPct: dec("0")},
		{ProductID: "5", MainCategory: "Almacén", DiffPct: dec("-5")},
		{ProductID: "6", MainCategory: Uncategorized, DiffPct: dec("3")},
	}
	got := Summarize(vs, DefaultConfig().Categories)

	want := []CategorySummary{
		{Category: "Almacén", MeanDiffPct: dec("1.67"), CountUp: 1, CountDown: 1, CountFlat: 1, Total: 3},
		{Category: "Limpieza", MeanDiffPct: dec("-2"), CountDown: 1, Total: 1},
		{Category: "Otros", MeanDiffPct: dec("1"), CountUp: 1, Total: 1},
		{Category: Uncategorized, MeanDiffPct: dec("3"), CountUp: 1, Total: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("Summarize() = %+v, want %d categories", got, len(want))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.Category != w.Category || !g.MeanDiffPct.Equal(w.MeanDiffPct) ||
			g.CountUp != w.CountUp || g.CountDown != w.CountDown || g.CountFlat != w.CountFlat || g.Total != w.Total {
			t.Errorf("Summarize()[%d] = %+v, want %+v", i, g, w)
		}
	}
}

func TestSummarize_Empty(t *testing.T) {
	if got := Summarize(nil, DefaultConfig().Categories); len(got) != 0 {
		t.Errorf("Summarize(nil) = %+v, want empty", got)
	}
}
