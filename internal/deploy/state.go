package deploy

// State holds the shared results of deployment stages.
// It is progressively populated as each stage completes and is passed
// to subsequent stages that need earlier results. No stage runs
// concurrently with another, so access needs no synchronization.
type State struct {
	// Identity results (populated by the identity stage)
	RoleARN string

	// Cluster results (populated by the cluster stage)
	ClusterARN    string
	InitialStatus Status

	// Polling results (populated by the wait stage)
	FinalStatus Status

	// Post-deployment results
	AlarmRegistered bool
	ScaledCapacity  int
}

// NewState creates an empty deployment state.
func NewState() *State {
	return &State{
		InitialStatus: StatusUnknown,
		FinalStatus:   StatusUnknown,
	}
}
