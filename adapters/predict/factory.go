package predict

import (
	"math/rand"

	"gomice/domain/table"
	"gomice/ports"
)

// Factory builds the default predictor per column role: continuous columns
// get the least-squares regressor, categorical columns the KNN classifier.
type Factory struct{}

// NewFactory creates the default predictor factory
func NewFactory() *Factory {
	return &Factory{}
}

// New returns a fresh, unfitted predictor for the role. Both default models
// are fully deterministic, so the chain RNG is accepted for interface
// compatibility but unused here.
func (f *Factory) New(role table.ColumnRole, rng *rand.Rand) ports.Predictor {
	switch role {
	case table.RoleContinuous:
		return NewLeastSquaresRegressor()
	default:
		return NewKNNClassifier()
	}
}
