package deploy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	ekstypes "github.com/aws/aws-sdk-go-v2/service/eks/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitfunie/eksdeploy/pkg/cloud/fakes"
)

func newTestPoller(api *fakes.FakeClusterAPI, maxAttempts int) *Poller {
	return NewPoller(api, "test-cluster", time.Millisecond, maxAttempts, 3, NewConsoleObserver())
}

func TestPoller_ActiveAfterCreating(t *testing.T) {
	t.Parallel()
	api := fakes.NewFakeClusterAPI()
	api.StatusSequence = []ekstypes.ClusterStatus{
		ekstypes.ClusterStatusCreating,
		ekstypes.ClusterStatusCreating,
		ekstypes.ClusterStatusActive,
	}

	status, err := newTestPoller(api, 30).Wait(context.Background())

	require.NoError(t, err)
	assert.Equal(t, StatusActive, status)
	assert.Equal(t, 3, api.DescribeClusterCalls, "polling must stop on the first terminal observation")
}

func TestPoller_FailedIsAuthoritative(t *testing.T) {
	t.Parallel()
	api := fakes.NewFakeClusterAPI()
	api.StatusSequence = []ekstypes.ClusterStatus{
		ekstypes.ClusterStatusCreating,
		ekstypes.ClusterStatusCreating,
		ekstypes.ClusterStatusFailed,
	}

	status, err := newTestPoller(api, 30).Wait(context.Background())

	require.Error(t, err)
	de, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindDeploymentFailed, de.Kind)
	assert.Equal(t, StageWait, de.Stage)
	assert.Equal(t, StatusFailed, status)
	assert.Equal(t, 3, api.DescribeClusterCalls, "a FAILED status must not be polled again")
}

func TestPoller_TimeoutAfterMaxAttempts(t *testing.T) {
	t.Parallel()
	api := fakes.NewFakeClusterAPI()
	api.StatusSequence = []ekstypes.ClusterStatus{ekstypes.ClusterStatusCreating}

	status, err := newTestPoller(api, 3).Wait(context.Background())

	require.Error(t, err)
	de, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindTimeout, de.Kind)
	assert.Equal(t, StatusUnknown, status)
	assert.Equal(t, 3, api.DescribeClusterCalls, "the poller must never poll past the attempt bound")
}

func TestPoller_TransientErrorsTolerated(t *testing.T) {
	t.Parallel()
	api := fakes.NewFakeClusterAPI()
	api.DescribeErrs = []error{
		errors.New("connection reset"),
		errors.New("connection reset"),
	}
	api.StatusSequence = []ekstypes.ClusterStatus{
		ekstypes.ClusterStatusCreating, // positions with errors never reach here
		ekstypes.ClusterStatusCreating,
		ekstypes.ClusterStatusActive,
	}

	status, err := newTestPoller(api, 30).Wait(context.Background())

	require.NoError(t, err)
	assert.Equal(t, StatusActive, status)
	assert.Equal(t, 3, api.DescribeClusterCalls)
}

func TestPoller_ConsecutiveFailuresSurfacePollingError(t *testing.T) {
	t.Parallel()
	api := fakes.NewFakeClusterAPI()
	api.DescribeErrs = []error{
		errors.New("connection reset"),
		errors.New("connection reset"),
		errors.New("connection reset"),
	}

	status, err := newTestPoller(api, 30).Wait(context.Background())

	require.Error(t, err)
	de, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindPolling, de.Kind)
	assert.Equal(t, StatusUnknown, status)
	assert.Equal(t, 3, api.DescribeClusterCalls)
}

func TestPoller_FailureCountResetsOnSuccess(t *testing.T) {
	t.Parallel()
	api := fakes.NewFakeClusterAPI()
	api.DescribeErrs = []error{
		errors.New("connection reset"),
		errors.New("connection reset"),
		nil,
		errors.New("connection reset"),
		errors.New("connection reset"),
		nil,
	}
	api.StatusSequence = []ekstypes.ClusterStatus{
		ekstypes.ClusterStatusCreating,
		ekstypes.ClusterStatusCreating,
		ekstypes.ClusterStatusCreating,
		ekstypes.ClusterStatusCreating,
		ekstypes.ClusterStatusCreating,
		ekstypes.ClusterStatusActive,
	}

	status, err := newTestPoller(api, 30).Wait(context.Background())

	require.NoError(t, err, "non-consecutive failures must not accumulate")
	assert.Equal(t, StatusActive, status)
}

func TestPoller_VanishedClusterIsDeploymentFailed(t *testing.T) {
	t.Parallel()
	api := fakes.NewFakeClusterAPI()
	api.DescribeErrs = []error{
		&ekstypes.ResourceNotFoundException{Message: aws.String("No cluster found for name: test-cluster")},
	}

	status, err := newTestPoller(api, 30).Wait(context.Background())

	require.Error(t, err)
	de, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindDeploymentFailed, de.Kind)
	assert.Equal(t, StatusDeleted, status)
	assert.Equal(t, 1, api.DescribeClusterCalls)
}

func TestPoller_PermissionLossAborts(t *testing.T) {
	t.Parallel()
	api := fakes.NewFakeClusterAPI()
	api.DescribeErrs = []error{
		&smithy.GenericAPIError{Code: "AccessDeniedException", Message: "not authorized"},
	}

	_, err := newTestPoller(api, 30).Wait(context.Background())

	require.Error(t, err)
	de, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindPermission, de.Kind)
	assert.Equal(t, 1, api.DescribeClusterCalls)
}

func TestPoller_CancellationStopsLocalPollingOnly(t *testing.T) {
	t.Parallel()
	api := fakes.NewFakeClusterAPI()
	api.StatusSequence = []ekstypes.ClusterStatus{ekstypes.ClusterStatusCreating}

	ctx, cancel := context.WithCancel(context.Background())
	poller := NewPoller(api, "test-cluster", time.Hour, 30, 3, NewConsoleObserver())

	done := make(chan struct{})
	var status Status
	var err error
	go func() {
		status, err = poller.Wait(ctx)
		close(done)
	}()

	// Let the first observation happen, then abandon the poll.
	assert.Eventually(t, func() bool { return api.DescribeCalls() >= 1 }, time.Second, time.Millisecond)
	cancel()
	<-done

	require.Error(t, err)
	de, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindTimeout, de.Kind)
	assert.ErrorIs(t, de.Err, context.Canceled)
	assert.Equal(t, StatusUnknown, status)
	assert.Equal(t, 1, api.DescribeClusterCalls)
}
