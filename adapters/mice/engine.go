package mice

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"gomice/domain/core"
	"gomice/domain/table"
	"gomice/ports"
)

// Options configure one engine invocation. Zero values fall back to the
// defaults of the original tool: three refinement passes, one chain.
type Options struct {
	Iterations int   `json:"iterations"`
	Chains     int   `json:"chains"`
	Seed       int64 `json:"seed"`
}

const (
	DefaultIterations = 3
	DefaultChains     = 1
)

// normalized returns options with defaults applied
func (o Options) normalized() Options {
	if o.Iterations <= 0 {
		o.Iterations = DefaultIterations
	}
	if o.Chains <= 0 {
		o.Chains = DefaultChains
	}
	return o
}

// Fallback condition names surfaced on diagnostics
const (
	FallbackEmptyTraining = "empty_training_set"
	FallbackSingleLabel   = "single_label"
)

// FallbackDiagnostic records a per-column degeneracy that was absorbed
// instead of failing the run
type FallbackDiagnostic struct {
	Chain     int    `json:"chain"`
	Variable  string `json:"variable"`
	Condition string `json:"condition"`
}

// Engine turns a sanitized table with missing cells into one or more
// completed tables via iterative conditional imputation. Each column that
// originally had missing cells is repeatedly re-predicted from the current
// values of all other columns, training only on its originally-observed
// rows.
type Engine struct {
	factory ports.PredictorFactory
	rng     ports.RNGPort
}

// NewEngine creates an engine with the given predictor factory and RNG source
func NewEngine(factory ports.PredictorFactory, rng ports.RNGPort) *Engine {
	return &Engine{factory: factory, rng: rng}
}

// Impute produces opts.Chains completed tables. Chains are independent:
// each derives its own RNG stream from the session seed and the chain
// index, owns a private working copy, and may run in parallel. Only data
// validity problems fail the call; per-column degeneracies degrade to the
// documented fallbacks and are reported as diagnostics.
func (e *Engine) Impute(ctx context.Context, sanitized *table.Table, opts Options) ([]*table.Table, []FallbackDiagnostic, error) {
	if err := sanitized.Validate(); err != nil {
		return nil, nil, err
	}
	if err := validateContinuous(sanitized); err != nil {
		return nil, nil, err
	}

	opts = opts.normalized()
	start := time.Now()

	completed := make([]*table.Table, opts.Chains)
	diagsByChain := make([][]FallbackDiagnostic, opts.Chains)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < opts.Chains; i++ {
		g.Go(func() error {
			run := newChainRun(sanitized, i, opts.Iterations, e.factory, e.rng.ChainStream(opts.Seed, i))
			result, err := run.execute(gctx)
			if err != nil {
				return err
			}
			completed[i] = result
			diagsByChain[i] = run.diagnostics
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var diags []FallbackDiagnostic
	for _, d := range diagsByChain {
		diags = append(diags, d...)
	}

	log.Printf("[Engine] imputed %d chain(s) x %d iteration(s) over %d columns in %.2fms",
		opts.Chains, opts.Iterations, sanitized.ColumnCount(),
		float64(time.Since(start).Nanoseconds())/1e6)

	return completed, diags, nil
}

// validateContinuous rejects tables whose continuous columns still carry
// non-numeric cells. The caller is expected to re-sanitize.
func validateContinuous(t *table.Table) error {
	var bad []string
	for i := range t.Columns {
		c := &t.Columns[i]
		if c.Role != table.RoleContinuous {
			continue
		}
		for _, v := range c.Values {
			if !v.IsMissing && !v.IsNumeric() {
				bad = append(bad, c.Name)
				break
			}
		}
	}
	if len(bad) > 0 {
		return core.NewNonNumericColumnError(bad)
	}
	return nil
}
