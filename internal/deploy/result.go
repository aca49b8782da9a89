package deploy

import "fmt"

// Result is the terminal outcome of one deployment attempt. It is created
// once, when the workflow ends, and never mutated.
//
// On failure, RoleARN and ClusterARN record any partial progress so callers
// can decide whether to clean up resources that were created before the
// failing stage. This workflow performs no automatic rollback.
type Result struct {
	ClusterName string
	ClusterARN  string
	RoleARN     string
	Status      Status
	Err         *Error
}

// Succeeded reports whether the cluster reached its terminal success state.
func (r Result) Succeeded() bool {
	return r.Err == nil
}

// String renders the result for CLI display or logging.
func (r Result) String() string {
	if r.Succeeded() {
		return fmt.Sprintf("deployment of %q succeeded: %s (%s)", r.ClusterName, r.ClusterARN, r.Status)
	}
	return fmt.Sprintf("deployment of %q failed at stage %q (%s): %v",
		r.ClusterName, r.Err.Stage, r.Err.Kind, r.Err.Err)
}
