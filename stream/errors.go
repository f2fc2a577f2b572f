package stream

import "github.com/pkg/errors"

var (
	// ErrSkip tells a stage to drop the current pair and move on.
	ErrSkip = errors.New("skip this pair")

	ErrInvalidConcurrency = errors.New("invalid concurrency")
)

// sendErr delivers the first error of the pipeline; later ones are dropped.
func sendErr(errs chan<- error, err error) {
	select {
	case errs <- err:
	default:
	}
}
