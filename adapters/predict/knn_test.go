package predict

import (
	"testing"

	"gomice/domain/table"
)

func labelTargets(labels ...string) []table.Value {
	out := make([]table.Value, len(labels))
	for i, s := range labels {
		out[i] = table.NewLabelValue(s)
	}
	return out
}

func TestKNN_MajorityVote(t *testing.T) {
	// Two well-separated clusters.
	features := [][]float64{
		{0, 0}, {0.1, 0}, {0, 0.1},
		{10, 10}, {10.1, 10}, {10, 10.1},
	}
	targets := labelTargets("A", "A", "A", "B", "B", "B")

	m := NewKNNClassifier()
	if err := m.Fit(features, targets); err != nil {
		t.Fatalf("fit failed: %v", err)
	}

	pred := m.Predict([][]float64{{0.05, 0.05}, {10.05, 10.05}})
	if pred[0].AsLabel() != "A" {
		t.Errorf("expected A near first cluster, got %q", pred[0].AsLabel())
	}
	if pred[1].AsLabel() != "B" {
		t.Errorf("expected B near second cluster, got %q", pred[1].AsLabel())
	}
}

func TestKNN_PredictionsDrawFromObservedLabels(t *testing.T) {
	features := [][]float64{{1}, {2}, {3}}
	targets := labelTargets("x", "y", "x")

	m := NewKNNClassifier()
	if err := m.Fit(features, targets); err != nil {
		t.Fatal(err)
	}

	observed := map[string]bool{"x": true, "y": true}
	for _, p := range m.Predict([][]float64{{0}, {1.5}, {99}}) {
		if !observed[p.AsLabel()] {
			t.Errorf("prediction %q is not an observed label", p.AsLabel())
		}
	}
}

func TestKNN_DeterministicTieBreak(t *testing.T) {
	// Equidistant neighbors with opposite labels: the vote ties and must
	// resolve to the lexicographically smallest label every time.
	features := [][]float64{{-1}, {1}}
	targets := labelTargets("zebra", "apple")

	m := NewKNNClassifier()
	if err := m.Fit(features, targets); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		pred := m.Predict([][]float64{{0}})
		if pred[0].AsLabel() != "apple" {
			t.Fatalf("tie should resolve to %q, got %q", "apple", pred[0].AsLabel())
		}
	}
}

func TestKNN_FewerRowsThanNeighbors(t *testing.T) {
	features := [][]float64{{1}, {2}}
	targets := labelTargets("a", "b")

	m := NewKNNClassifier()
	if err := m.Fit(features, targets); err != nil {
		t.Fatal(err)
	}

	pred := m.Predict([][]float64{{1.1}})
	if pred[0].IsMissing {
		t.Error("prediction should not be missing when training rows exist")
	}
}

func TestKNN_EmptyTrainingSet(t *testing.T) {
	m := NewKNNClassifier()
	if err := m.Fit(nil, nil); err == nil {
		t.Error("expected error for empty training set")
	}
}
