package result

import (
	"github.com/meldlab/meld/errors"
)

// Combine folds an ordered list of results, typically the intermediate
// outputs of a multi-step construction, into one result representing the
// whole operation.
//
// The fold is left-to-right and first-error-wins: the reported error is the
// first one encountered in argument order, and the payloads of all OK inputs
// are concatenated in order. Every input is consumed regardless of where the
// short-circuit occurs; callers must not touch an input after passing it in.
//
// On success Combine returns the aggregate result owning the concatenated
// payload. On failure it returns (nil, err) where err carries the first
// error's message; later errors are dropped without record.
//
// Zero inputs aggregate to an empty success.
func Combine(results ...*Result) (*Result, error) {
	acc := Void()
	var firstErr error

	for _, r := range results {
		if r == nil {
			if firstErr == nil {
				if acc != nil {
					acc.Release()
					acc = nil
				}
				firstErr = errors.InvalidInput(errors.PhaseCombine, "nil result")
			}
			continue
		}

		if firstErr != nil {
			// Already short-circuited; drain the remaining input.
			r.Release()
			continue
		}

		switch r.Status() {
		case StatusOK:
			acc.items = append(acc.items, r.items...)
			r.Release()
		case StatusError:
			acc.Release()
			acc = nil
			firstErr = errors.OperationFailed(errors.PhaseCombine, r.ErrorMessage())
			r.Release()
		case StatusInvalid:
			acc.Release()
			acc = nil
			firstErr = errors.Wrap(errors.PhaseCombine, errors.KindInvalidInput, nil, r.Diagnostic())
			r.Release()
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return acc, nil
}
