package predict

import (
	"errors"
	"fmt"
	"strings"
)

// ErrModelNotFound indicates the requested model has never been
// trained (no artifact on disk). Callers treat this as a server-side
// condition, not a bad request.
var ErrModelNotFound = errors.New("model not found, train it first")

// FeatureMismatchError indicates the input rows lack columns the
// persisted model was fitted on. This is a caller error: the request
// carried an incomplete stat line.
type FeatureMismatchError struct {
	Model   string
	Missing []string
}

func (e *FeatureMismatchError) Error() string {
	return fmt.Sprintf("model %s: input missing features: %s",
		e.Model, strings.Join(e.Missing, ", "))
}
