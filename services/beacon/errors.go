package beaconService

import "fmt"

// Validation error names reported to clients.
const (
	AssemblyMismatch = "AssemblyMismatch"
	UnknownDataset   = "UnknownDataset"
)

// QueryValidationError is a query the Beacon refuses to run. It is the
// client's fault and is never retried.
type QueryValidationError struct {
	Name        string
	Description string
}

func (e *QueryValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Description)
}

// UpstreamError is a failure of the variant store, or an answer from it the
// Beacon cannot work with.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("variant store %s failed", e.Op)
	}
	return fmt.Sprintf("variant store %s failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
