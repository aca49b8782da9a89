package deploy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eks"
	ekstypes "github.com/aws/aws-sdk-go-v2/service/eks/types"

	"github.com/pitfunie/eksdeploy/pkg/cloud"
)

// StageWait is the stage name attached to status polling failures.
const StageWait = "wait"

// Poller drives the cluster status state machine to a terminal state.
//
// Each observation classifies the reported status: CREATING keeps polling,
// ACTIVE succeeds, FAILED is authoritative and surfaces immediately.
// Observations that error are transient (the status is UNKNOWN, not FAILED)
// and tolerated up to maxFailures consecutive times. The loop is bounded:
// after maxAttempts observations without a terminal status the poller gives
// up with a timeout, never polling again.
type Poller struct {
	api         cloud.ClusterAPI
	clusterName string
	interval    time.Duration
	maxAttempts int
	maxFailures int
	observer    Observer
}

// NewPoller creates a poller for one cluster.
func NewPoller(api cloud.ClusterAPI, clusterName string, interval time.Duration, maxAttempts, maxFailures int, observer Observer) *Poller {
	return &Poller{
		api:         api,
		clusterName: clusterName,
		interval:    interval,
		maxAttempts: maxAttempts,
		maxFailures: maxFailures,
		observer:    observer,
	}
}

// Wait polls until the cluster reaches a terminal status, the attempt bound
// is exhausted, or the context is cancelled. Cancellation stops local
// polling only; the remote creation keeps running.
func (p *Poller) Wait(ctx context.Context) (Status, error) {
	failures := 0

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		out, err := p.api.DescribeCluster(ctx, &eks.DescribeClusterInput{
			Name: aws.String(p.clusterName),
		})

		switch {
		case err != nil:
			if status, pollErr := p.observeError(err, &failures); pollErr != nil || status.Terminal() {
				return status, pollErr
			}
		default:
			failures = 0
			status := statusFromProvider(out.Cluster.Status)
			p.observer.Event(Event{
				Type:     EventStatusObserved,
				Stage:    StageWait,
				Resource: p.clusterName,
				Message:  fmt.Sprintf("cluster status: %s", status),
			})
			p.observer.Progress(StageWait, attempt, p.maxAttempts)

			switch status {
			case StatusActive:
				return status, nil
			case StatusFailed:
				return status, NewError(StageWait, KindDeploymentFailed,
					fmt.Errorf("cluster %q entered FAILED state", p.clusterName))
			case StatusDeleting, StatusDeleted:
				return status, NewError(StageWait, KindDeploymentFailed,
					fmt.Errorf("cluster %q is being deleted (status %s)", p.clusterName, status))
			}
		}

		if attempt < p.maxAttempts {
			select {
			case <-ctx.Done():
				return StatusUnknown, NewError(StageWait, KindTimeout,
					fmt.Errorf("polling abandoned after %d attempts: %w", attempt, ctx.Err()))
			case <-time.After(p.interval):
			}
		}
	}

	return StatusUnknown, NewError(StageWait, KindTimeout,
		fmt.Errorf("cluster %q did not reach a terminal status within %d attempts (interval %v)",
			p.clusterName, p.maxAttempts, p.interval))
}

// observeError handles one failed observation. A vanished cluster is an
// authoritative failure; an authorization failure aborts immediately; any
// other error is transient and tolerated up to maxFailures consecutive
// times before surfacing as a polling failure.
func (p *Poller) observeError(err error, failures *int) (Status, error) {
	var notFound *ekstypes.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return StatusDeleted, NewError(StageWait, KindDeploymentFailed,
			fmt.Errorf("cluster %q no longer exists: %w", p.clusterName, err))
	}
	if isAccessDenied(err) {
		return StatusUnknown, NewError(StageWait, KindPermission,
			fmt.Errorf("lost permission to observe cluster %q: %w", p.clusterName, err))
	}

	*failures++
	p.observer.Event(Event{
		Type:     EventPollWarning,
		Stage:    StageWait,
		Resource: p.clusterName,
		Message:  fmt.Sprintf("status observation failed (%d/%d consecutive): %v", *failures, p.maxFailures, err),
	})
	if *failures >= p.maxFailures {
		return StatusUnknown, NewError(StageWait, KindPolling,
			fmt.Errorf("%d consecutive status observations failed, last: %w", *failures, err))
	}
	return StatusUnknown, nil
}

// WaitStage runs the poller as part of the deployment pipeline.
type WaitStage struct{}

// Name implements the Stage interface.
func (s *WaitStage) Name() string {
	return StageWait
}

// Run implements the Stage interface.
func (s *WaitStage) Run(ctx *Context) error {
	poller := NewPoller(
		ctx.Clients.Cluster,
		ctx.Config.ClusterName,
		ctx.Timeouts.PollInterval,
		ctx.Timeouts.PollMaxAttempts,
		ctx.Timeouts.PollMaxFailures,
		ctx.Observer,
	)

	status, err := poller.Wait(ctx)
	ctx.State.FinalStatus = status
	if err != nil {
		return err
	}

	ctx.Observer.Printf("[%s] cluster %q is ready", StageWait, ctx.Config.ClusterName)
	return nil
}
