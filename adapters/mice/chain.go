package mice

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"gomice/domain/table"
	"gomice/ports"
)

// Values used when a column has zero observed cells and the empirical
// distribution is empty. The column cannot be modeled, but the completed
// table must still have no missing cells.
const (
	emptyColumnNumeric = 0.0
	emptyColumnLabel   = "unknown"
)

// chainRun is the privately-owned state of one imputation chain: a working
// copy of the table, the original missingness masks, and a chain-local RNG.
// Nothing here is shared across chains.
type chainRun struct {
	src        *table.Table
	work       *table.Table
	observed   [][]bool // original masks, per column; training always uses these
	targets    []int    // indexes of columns that originally had missing cells
	iterations int
	chainIdx   int
	factory    ports.PredictorFactory
	rng        *rand.Rand

	diagnostics []FallbackDiagnostic
	noted       map[string]bool // dedupe of per-column diagnostics
}

func newChainRun(sanitized *table.Table, chainIdx, iterations int, factory ports.PredictorFactory, rng *rand.Rand) *chainRun {
	run := &chainRun{
		src:        sanitized,
		work:       sanitized.Clone(),
		iterations: iterations,
		chainIdx:   chainIdx,
		factory:    factory,
		rng:        rng,
		noted:      make(map[string]bool),
	}

	run.observed = make([][]bool, sanitized.ColumnCount())
	for i := range sanitized.Columns {
		run.observed[i] = sanitized.Columns[i].ObservedMask()
		if sanitized.Columns[i].HasMissing() {
			run.targets = append(run.targets, i)
		}
	}
	return run
}

// execute runs initialization plus the configured refinement passes and
// returns the completed working copy. Cancellation is honored only between
// column passes so a result table is never left half-overwritten.
func (r *chainRun) execute(ctx context.Context) (*table.Table, error) {
	r.initialize()

	for pass := 0; pass < r.iterations; pass++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		for _, colIdx := range r.targets {
			r.visitColumn(colIdx)
		}
	}

	return r.work, nil
}

// initialize fills every missing cell with a uniform draw from the column's
// observed empirical distribution, giving the predictors a structurally
// complete table to work on.
func (r *chainRun) initialize() {
	for _, colIdx := range r.targets {
		col := &r.work.Columns[colIdx]
		mask := r.observed[colIdx]

		var pool []table.Value
		for i, v := range col.Values {
			if mask[i] {
				pool = append(pool, v)
			}
		}

		for i := range col.Values {
			if mask[i] {
				continue
			}
			if len(pool) == 0 {
				col.Values[i] = r.emptyColumnValue(col.Role)
				continue
			}
			col.Values[i] = pool[r.rng.Intn(len(pool))]
		}
	}
}

// emptyColumnValue is the degenerate fill for columns with no observed cells
func (r *chainRun) emptyColumnValue(role table.ColumnRole) table.Value {
	if role == table.RoleContinuous {
		return table.NewNumericValue(emptyColumnNumeric)
	}
	return table.NewLabelValue(emptyColumnLabel)
}

// visitColumn refits the target column's predictor and overwrites its
// originally-missing rows with fresh predictions. Observed rows are never
// touched.
func (r *chainRun) visitColumn(colIdx int) {
	col := &r.work.Columns[colIdx]
	mask := r.observed[colIdx]

	var trainRows, missingRows []int
	for i, obs := range mask {
		if obs {
			trainRows = append(trainRows, i)
		} else {
			missingRows = append(missingRows, i)
		}
	}

	if len(trainRows) == 0 {
		// A column with zero observed values cannot be modeled; its
		// initialization draws stand.
		r.note(col.Name, FallbackEmptyTraining)
		return
	}

	if col.Role == table.RoleCategorical {
		if label, single := singleObservedLabel(col, trainRows); single {
			for _, i := range missingRows {
				col.Values[i] = table.NewLabelValue(label)
			}
			r.note(col.Name, FallbackSingleLabel)
			return
		}
	}

	features := r.encodeFeatures(colIdx)

	trainX := make([][]float64, len(trainRows))
	trainY := make([]table.Value, len(trainRows))
	for k, i := range trainRows {
		trainX[k] = features[i]
		trainY[k] = col.Values[i]
	}

	predictor := r.factory.New(col.Role, r.rng)
	if err := predictor.Fit(trainX, trainY); err != nil {
		// Leave the current draws in place; the next pass retries.
		return
	}

	missX := make([][]float64, len(missingRows))
	for k, i := range missingRows {
		missX[k] = features[i]
	}

	predicted := predictor.Predict(missX)
	for k, i := range missingRows {
		if predicted[k].IsMissing {
			continue
		}
		col.Values[i] = predicted[k]
	}
}

// encodeFeatures flattens the current working values of all columns except
// the target into one numeric row per table row. Continuous cells pass
// through; categorical cells become their index in the column's sorted
// label set. Encoding is rebuilt on every visit so downstream columns see
// upstream columns' latest imputed values within the same pass.
func (r *chainRun) encodeFeatures(targetIdx int) [][]float64 {
	rows := r.work.RowCount()
	features := make([][]float64, rows)
	for i := range features {
		features[i] = make([]float64, 0, r.work.ColumnCount()-1)
	}

	for c := range r.work.Columns {
		if c == targetIdx {
			continue
		}
		col := &r.work.Columns[c]

		if col.Role == table.RoleContinuous {
			for i := 0; i < rows; i++ {
				features[i] = append(features[i], col.Values[i].AsFloat64())
			}
			continue
		}

		codes := labelCodes(col)
		for i := 0; i < rows; i++ {
			features[i] = append(features[i], float64(codes[col.Values[i].AsLabel()]))
		}
	}

	return features
}

// labelCodes assigns each distinct label of a complete working column a
// stable integer code over the sorted label set
func labelCodes(col *table.Column) map[string]int {
	set := make(map[string]bool)
	for _, v := range col.Values {
		set[v.AsLabel()] = true
	}
	labels := make([]string, 0, len(set))
	for label := range set {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	codes := make(map[string]int, len(labels))
	for i, label := range labels {
		codes[label] = i
	}
	return codes
}

// singleObservedLabel reports whether the training rows carry fewer than two
// distinct labels, returning the lone label when they do
func singleObservedLabel(col *table.Column, trainRows []int) (string, bool) {
	seen := ""
	for _, i := range trainRows {
		label := col.Values[i].AsLabel()
		if seen == "" {
			seen = label
			continue
		}
		if label != seen {
			return "", false
		}
	}
	return seen, seen != ""
}

// note records a per-column fallback once per chain
func (r *chainRun) note(variable, condition string) {
	key := fmt.Sprintf("%s|%s", variable, condition)
	if r.noted[key] {
		return
	}
	r.noted[key] = true
	r.diagnostics = append(r.diagnostics, FallbackDiagnostic{
		Chain:     r.chainIdx,
		Variable:  variable,
		Condition: condition,
	})
}
