package analysis

import (
	"errors"
	"fmt"
)

// EmptyDatasetError indicates an analysis was requested over zero
// facilities. Aggregations and distributions are undefined over an empty
// set and must fail rather than emit misleading zero or NaN summaries.
type EmptyDatasetError struct {
	Op string
}

// Error implements the error interface.
func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("%s: empty dataset (no facilities)", e.Op)
}

// IsEmptyDataset checks if the error is an empty dataset fault, unwrapping
// as needed.
func IsEmptyDataset(err error) bool {
	var emptyErr *EmptyDatasetError
	return errors.As(err, &emptyErr)
}
