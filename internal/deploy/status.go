package deploy

import (
	ekstypes "github.com/aws/aws-sdk-go-v2/service/eks/types"
)

// Status is the observed cluster lifecycle state. It mirrors the provider's
// status vocabulary plus Unknown for observations that failed or reported a
// state this workflow does not track.
type Status string

const (
	StatusCreating Status = "CREATING"
	StatusActive   Status = "ACTIVE"
	StatusFailed   Status = "FAILED"
	StatusDeleting Status = "DELETING"
	StatusDeleted  Status = "DELETED"
	StatusUnknown  Status = "UNKNOWN"
)

// Terminal reports whether no further transition can occur without external
// re-creation. Timeouts are enforced locally and are not a cluster status.
func (s Status) Terminal() bool {
	switch s {
	case StatusActive, StatusFailed, StatusDeleted:
		return true
	default:
		return false
	}
}

// statusFromProvider maps the provider status into the workflow vocabulary.
// States this workflow does not track (UPDATING, PENDING) map to Unknown and
// keep the poll loop going.
func statusFromProvider(s ekstypes.ClusterStatus) Status {
	switch s {
	case ekstypes.ClusterStatusCreating:
		return StatusCreating
	case ekstypes.ClusterStatusActive:
		return StatusActive
	case ekstypes.ClusterStatusFailed:
		return StatusFailed
	case ekstypes.ClusterStatusDeleting:
		return StatusDeleting
	default:
		return StatusUnknown
	}
}
