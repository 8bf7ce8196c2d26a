package ports

import (
	"math/rand"

	"gomice/domain/table"
)

// Predictor is an ephemeral fitted function from "all other columns" to a
// single target column. It is trained only on rows where the target was
// originally observed and applied only to rows where it was originally
// missing. A predictor lives for one column visit of one iteration and is
// never persisted.
type Predictor interface {
	// Fit trains the predictor on the given feature rows and target cells.
	// Implementations must be deterministic given the same inputs and RNG.
	Fit(features [][]float64, target []table.Value) error

	// Predict produces one cell per feature row. Only called after Fit.
	Predict(features [][]float64) []table.Value
}

// PredictorFactory builds a fresh predictor appropriate to a column role.
// The RNG carries the chain-local seed so that any model-internal
// randomness stays reproducible.
type PredictorFactory interface {
	New(role table.ColumnRole, rng *rand.Rand) Predictor
}
