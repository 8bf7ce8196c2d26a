package predict

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"gomice/domain/table"
)

// LeastSquaresRegressor predicts a continuous column from the other columns
// via ridge-regularized linear least squares. The small ridge term keeps the
// normal equations positive definite even when predictor columns are
// collinear or constant, so fitting never fails on degenerate designs.
type LeastSquaresRegressor struct {
	ridge    float64
	weights  *mat.VecDense // includes intercept at index 0
	fallback float64       // mean of training targets, used when solving fails
	solved   bool
	fitted   bool
}

const defaultRidge = 1e-3

// NewLeastSquaresRegressor creates a regressor with the default ridge term
func NewLeastSquaresRegressor() *LeastSquaresRegressor {
	return &LeastSquaresRegressor{ridge: defaultRidge}
}

// Fit solves (X'X + rI) w = X'y over the training rows. Targets must be
// numeric cells; the engine guarantees this for continuous columns.
func (m *LeastSquaresRegressor) Fit(features [][]float64, target []table.Value) error {
	if len(features) == 0 || len(features) != len(target) {
		return errors.New("training set is empty or misaligned")
	}

	rows := len(features)
	cols := len(features[0]) + 1 // leading intercept

	y := make([]float64, rows)
	sum := 0.0
	for i, v := range target {
		y[i] = v.AsFloat64()
		sum += y[i]
	}
	m.fallback = sum / float64(rows)

	x := mat.NewDense(rows, cols, nil)
	for i, row := range features {
		x.Set(i, 0, 1.0)
		for j, val := range row {
			x.Set(i, j+1, val)
		}
	}

	// Normal equations with ridge term.
	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	for j := 0; j < cols; j++ {
		xtx.Set(j, j, xtx.At(j, j)+m.ridge)
	}

	var xty mat.VecDense
	xty.MulVec(x.T(), mat.NewVecDense(rows, y))

	sym := mat.NewSymDense(cols, nil)
	for i := 0; i < cols; i++ {
		for j := i; j < cols; j++ {
			sym.SetSym(i, j, xtx.At(i, j))
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		// Mean prediction keeps the chain moving when the design is still
		// numerically unsolvable.
		m.solved = false
		m.fitted = true
		return nil
	}

	m.weights = mat.NewVecDense(cols, nil)
	if err := chol.SolveVecTo(m.weights, &xty); err != nil {
		m.solved = false
		m.fitted = true
		return nil
	}

	m.solved = true
	m.fitted = true
	return nil
}

// Predict returns one numeric cell per feature row
func (m *LeastSquaresRegressor) Predict(features [][]float64) []table.Value {
	out := make([]table.Value, len(features))
	for i, row := range features {
		if !m.fitted {
			out[i] = table.NewMissingValue()
			continue
		}
		if !m.solved {
			out[i] = table.NewNumericValue(m.fallback)
			continue
		}
		sum := m.weights.AtVec(0)
		for j, val := range row {
			sum += m.weights.AtVec(j+1) * val
		}
		out[i] = table.NewNumericValue(sum)
	}
	return out
}
