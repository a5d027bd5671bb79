package workload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"jsouthworth.net/go/ordered"
)

// Outcomes reported to a Recorder.
const (
	OutcomeAdded     = "added"
	OutcomeOverwrite = "overwrite"
	OutcomeRemoved   = "removed"
	OutcomeNotFound  = "notfound"
	OutcomeHit       = "hit"
	OutcomeMiss      = "miss"
	OutcomeEmpty     = "empty"
)

// Recorder receives per operation observations.
type Recorder interface {
	Observe(variant string, kind Kind, outcome string, elapsed time.Duration)
	Shape(variant string, size, height int)
}

// Result summarises a run of a script against one tree.
type Result struct {
	Variant  string
	Ops      int
	Outcomes map[string]int
	Size     int
	Height   int
	Duration time.Duration
	// Invalid holds the first invariant violation seen, if any.
	Invalid error
}

// Valid reports whether every validation of the run passed.
func (r Result) Valid() bool {
	return r.Invalid == nil
}

// Runner executes scripts.
type Runner struct {
	// ValidateEvery is the number of operations between structural
	// checks. Zero only validates at the end of the run.
	ValidateEvery int
	Recorder      Recorder
	Logger        *slog.Logger
}

// Run applies every operation of s to m. It stops early, returning the
// partial result and the context error, when ctx is done. A tree that
// fails validation or panics with an ordered.InvariantError stops the
// run; the failure is reported in Result.Invalid rather than as an
// error.
func (r *Runner) Run(ctx context.Context, variant string, m ordered.Map[int, string], s *Script) (Result, error) {
	res := Result{
		Variant:  variant,
		Outcomes: make(map[string]int),
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	start := time.Now()

	for i, op := range s.Ops {
		if err := ctx.Err(); err != nil {
			res.Duration = time.Since(start)
			return res, fmt.Errorf("run %s: %w", variant, err)
		}
		outcome, elapsed, err := apply(m, op)
		if err != nil {
			res.Invalid = fmt.Errorf("op %d (%s %d): %w", i, op.Kind, op.Key, err)
			break
		}
		res.Ops++
		res.Outcomes[outcome]++
		if r.Recorder != nil {
			r.Recorder.Observe(variant, op.Kind, outcome, elapsed)
		}
		if r.ValidateEvery > 0 && res.Ops%r.ValidateEvery == 0 {
			if err := m.Validate(); err != nil {
				res.Invalid = fmt.Errorf("after op %d: %w", i, err)
				break
			}
		}
	}
	if res.Invalid == nil {
		if err := m.Validate(); err != nil {
			res.Invalid = err
		}
	}
	if res.Invalid != nil {
		logger.Error("validation failed",
			slog.String("variant", variant),
			slog.String("script", s.Name),
			slog.Any("error", res.Invalid))
	}

	res.Size = m.Len()
	res.Height = m.Height()
	if r.Recorder != nil {
		r.Recorder.Shape(variant, res.Size, res.Height)
	}
	res.Duration = time.Since(start)
	return res, nil
}

// apply performs op. It converts invariant panics raised by the tree
// into errors and lets every other panic through.
func apply(m ordered.Map[int, string], op Op) (outcome string, elapsed time.Duration, err error) {
	defer func() {
		if p := recover(); p != nil {
			var ie ordered.InvariantError
			pe, ok := p.(error)
			if !ok || !errors.As(pe, &ie) {
				panic(p)
			}
			err = ie
		}
	}()

	start := time.Now()
	switch op.Kind {
	case Insert:
		outcome = OutcomeOverwrite
		if m.Insert(op.Key, op.Value) {
			outcome = OutcomeAdded
		}
	case Search:
		outcome = OutcomeMiss
		if _, ok := m.Search(op.Key); ok {
			outcome = OutcomeHit
		}
	case Delete:
		_, derr := m.Delete(op.Key)
		outcome = removal(derr)
	case DeleteMin:
		_, _, derr := m.DeleteMin()
		outcome = removal(derr)
	case DeleteMax:
		_, _, derr := m.DeleteMax()
		outcome = removal(derr)
	default:
		return "", 0, fmt.Errorf("%w: %q", ErrUnknownOp, op.Kind)
	}
	return outcome, time.Since(start), nil
}

func removal(err error) string {
	switch {
	case err == nil:
		return OutcomeRemoved
	case errors.Is(err, ordered.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, ordered.ErrEmptyTree):
		return OutcomeEmpty
	}
	return err.Error()
}
