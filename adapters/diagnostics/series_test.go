package diagnostics

import (
	"context"
	"testing"

	"gomice/adapters/mice"
	"gomice/adapters/predict"
	"gomice/internal/rng"
	"gomice/internal/testkit"
)

func TestBuildComparisons(t *testing.T) {
	sanitized := testkit.NewTable(
		testkit.NumColumn("age", []float64{21, 0, 45, 0}, 1, 3),
		testkit.LabelColumn("grade", []string{"A", "B", "A", "B"}),
	)

	engine := mice.NewEngine(predict.NewFactory(), rng.NewAdapter())
	completed, _, err := engine.Impute(context.Background(), sanitized, mice.Options{Seed: 3})
	if err != nil {
		t.Fatal(err)
	}

	comparisons := BuildComparisons(sanitized, completed[0])

	if len(comparisons) != 1 {
		t.Fatalf("only the incomplete column should be compared, got %d", len(comparisons))
	}

	cmp := comparisons[0]
	if cmp.Variable != "age" {
		t.Errorf("expected age, got %q", cmp.Variable)
	}
	if len(cmp.Before) != 4 || len(cmp.After) != 4 {
		t.Errorf("before/after must stay row-aligned: %d vs %d", len(cmp.Before), len(cmp.After))
	}
	if len(cmp.MissingRows) != 2 || cmp.MissingRows[0] != 1 || cmp.MissingRows[1] != 3 {
		t.Errorf("unexpected missing rows: %v", cmp.MissingRows)
	}
	for _, row := range cmp.MissingRows {
		if !cmp.Before[row].IsMissing {
			t.Errorf("row %d should be missing before imputation", row)
		}
		if cmp.After[row].IsMissing {
			t.Errorf("row %d should be filled after imputation", row)
		}
	}
}

func TestNumericSummaries(t *testing.T) {
	sanitized := testkit.SyntheticTable(50, 17)

	engine := mice.NewEngine(predict.NewFactory(), rng.NewAdapter())
	completed, _, err := engine.Impute(context.Background(), sanitized, mice.Options{Seed: 17})
	if err != nil {
		t.Fatal(err)
	}

	summaries := NumericSummaries(sanitized, completed[0])

	if len(summaries) == 0 {
		t.Fatal("expected summaries for incomplete continuous columns")
	}
	for _, s := range summaries {
		if s.Before.Count == 0 {
			t.Errorf("%s: before profile should cover observed cells", s.Variable)
		}
		if s.After.Count != 50 {
			t.Errorf("%s: after profile should cover all %d rows, got %d", s.Variable, 50, s.After.Count)
		}
		if s.After.Count <= s.Before.Count {
			t.Errorf("%s: after count should exceed observed-only count", s.Variable)
		}
	}
}
