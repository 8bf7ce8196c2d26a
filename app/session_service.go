package app

import (
	"context"
	"log"
	"time"

	"gomice/adapters/mice"
	"gomice/adapters/sanitize"
	"gomice/domain/core"
	"gomice/domain/table"
	apperrors "gomice/internal/errors"
	"gomice/ports"
)

// SessionService orchestrates one imputation request: sanitize, report
// missingness, and run the chained-equations engine when anything is
// actually missing. The service holds no mutable state between runs. Run is
// pure computation; file-backed callers go through RunFile, which composes
// the reader and writer ports around it.
type SessionService struct {
	sanitizer *sanitize.Sanitizer
	engine    *mice.Engine
}

// RunRequest defines the inputs for one imputation session
type RunRequest struct {
	Raw               *table.Table
	ContinuousColumns []string
	Chains            int
	Iterations        int
	Seed              int64
}

// RunResult contains the complete output of one session
type RunResult struct {
	RunID        core.RunID                `json:"run_id"`
	Missingness  table.MissingnessTable    `json:"missingness"`
	Sanitized    *table.Table              `json:"sanitized"`
	Completed    []*table.Table            `json:"completed"`
	Fallbacks    []mice.FallbackDiagnostic `json:"fallbacks,omitempty"`
	Fingerprints []core.TableFingerprint   `json:"fingerprints,omitempty"`
	RuntimeMs    int64                     `json:"runtime_ms"`
}

// NewSessionService creates a session service
func NewSessionService(sanitizer *sanitize.Sanitizer, engine *mice.Engine) *SessionService {
	return &SessionService{sanitizer: sanitizer, engine: engine}
}

// Run executes one request/response imputation cycle. A table with no
// missing cells short-circuits: the missingness table and sanitized
// original are still returned, with an empty completed list. Only data
// validity problems produce an error.
func (s *SessionService) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	start := time.Now()

	if req.Raw == nil {
		return nil, core.ErrEmptyTable
	}
	if err := req.Raw.Validate(); err != nil {
		return nil, err
	}

	roles := sanitize.RolesFromContinuous(req.Raw, req.ContinuousColumns)
	sanitized := s.sanitizer.Sanitize(req.Raw, roles)
	missingness := table.ComputeMissingness(sanitized)

	result := &RunResult{
		RunID:       core.NewRunID(),
		Missingness: missingness,
		Sanitized:   sanitized,
	}

	if missingness.AllObserved() {
		log.Printf("[Session] run %s: no missing cells, engine skipped", result.RunID)
		result.RuntimeMs = time.Since(start).Milliseconds()
		return result, nil
	}

	completed, fallbacks, err := s.engine.Impute(ctx, sanitized, mice.Options{
		Iterations: req.Iterations,
		Chains:     req.Chains,
		Seed:       req.Seed,
	})
	if err != nil {
		return nil, err
	}

	result.Completed = completed
	result.Fallbacks = fallbacks
	result.Fingerprints = make([]core.TableFingerprint, len(completed))
	for i, t := range completed {
		result.Fingerprints[i] = t.Fingerprint()
	}
	result.RuntimeMs = time.Since(start).Milliseconds()

	log.Printf("[Session] run %s: %d chain(s) completed, %d fallback(s), %dms",
		result.RunID, len(completed), len(fallbacks), result.RuntimeMs)

	return result, nil
}

// RunFile executes a session against file-backed collaborators: the dataset
// is loaded through the reader port, and when a writer port is supplied the
// finished run is persisted through it. req.Raw is ignored in favor of the
// reader's table.
func (s *SessionService) RunFile(ctx context.Context, reader ports.DatasetReaderPort, writer ports.ResultWriterPort, req RunRequest) (*RunResult, error) {
	raw, err := reader.ReadTable()
	if err != nil {
		return nil, apperrors.ReadError("failed to read dataset", err)
	}
	req.Raw = raw

	result, err := s.Run(ctx, req)
	if err != nil {
		return nil, err
	}

	if writer != nil {
		if err := writer.WriteResult(result.Missingness, result.Sanitized, result.Completed); err != nil {
			return nil, apperrors.WriteError("failed to persist result", err)
		}
	}

	return result, nil
}
