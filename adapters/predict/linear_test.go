package predict

import (
	"math"
	"testing"

	"gomice/domain/table"
)

func numTargets(values ...float64) []table.Value {
	out := make([]table.Value, len(values))
	for i, v := range values {
		out[i] = table.NewNumericValue(v)
	}
	return out
}

func TestLeastSquares_RecoversLinearRelationship(t *testing.T) {
	// y = 2x + 1, exactly
	var features [][]float64
	var targets []float64
	for i := 0; i < 50; i++ {
		x := float64(i)
		features = append(features, []float64{x})
		targets = append(targets, 2*x+1)
	}

	m := NewLeastSquaresRegressor()
	if err := m.Fit(features, numTargets(targets...)); err != nil {
		t.Fatalf("fit failed: %v", err)
	}

	pred := m.Predict([][]float64{{100}})
	if len(pred) != 1 || !pred[0].IsNumeric() {
		t.Fatal("expected one numeric prediction")
	}
	// Ridge term pulls slightly off the exact line; tolerance reflects that.
	if math.Abs(pred[0].AsFloat64()-201) > 1.0 {
		t.Errorf("expected ~201, got %v", pred[0].AsFloat64())
	}
}

func TestLeastSquares_ConstantFeaturesStillFit(t *testing.T) {
	// Collinear, constant design: ridge keeps the solve well-posed.
	features := [][]float64{{1, 1}, {1, 1}, {1, 1}}
	m := NewLeastSquaresRegressor()
	if err := m.Fit(features, numTargets(4, 6, 8)); err != nil {
		t.Fatalf("fit failed on constant design: %v", err)
	}

	pred := m.Predict([][]float64{{1, 1}})
	if math.Abs(pred[0].AsFloat64()-6) > 1.0 {
		t.Errorf("expected prediction near the target mean 6, got %v", pred[0].AsFloat64())
	}
}

func TestLeastSquares_EmptyTrainingSet(t *testing.T) {
	m := NewLeastSquaresRegressor()
	if err := m.Fit(nil, nil); err == nil {
		t.Error("expected error for empty training set")
	}
}

func TestLeastSquares_Deterministic(t *testing.T) {
	features := [][]float64{{1, 2}, {2, 1}, {3, 3}, {4, 0}}
	targets := numTargets(1, 2, 3, 4)

	a := NewLeastSquaresRegressor()
	b := NewLeastSquaresRegressor()
	if err := a.Fit(features, targets); err != nil {
		t.Fatal(err)
	}
	if err := b.Fit(features, targets); err != nil {
		t.Fatal(err)
	}

	query := [][]float64{{2, 2}, {5, 1}}
	pa := a.Predict(query)
	pb := b.Predict(query)
	for i := range pa {
		if pa[i].AsFloat64() != pb[i].AsFloat64() {
			t.Errorf("row %d: predictions differ between identical fits", i)
		}
	}
}
