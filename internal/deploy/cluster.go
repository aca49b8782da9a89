package deploy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eks"
	ekstypes "github.com/aws/aws-sdk-go-v2/service/eks/types"

	"github.com/pitfunie/eksdeploy/internal/util/retry"
)

// StageCluster is the stage name attached to cluster creation failures.
const StageCluster = "cluster"

// ClusterStage requests creation of the EKS cluster using the role
// provisioned by the identity stage. The call returns an acknowledgment,
// not a ready cluster; the wait stage polls it to a terminal state.
//
// A freshly created IAM role may not be assumable yet (the provider's
// eventual-consistency window), which EKS rejects as an invalid parameter.
// Those rejections are retried with backoff a bounded number of times
// before being surfaced as a dependency failure.
type ClusterStage struct{}

// Name implements the Stage interface.
func (s *ClusterStage) Name() string {
	return StageCluster
}

// Run implements the Stage interface.
func (s *ClusterStage) Run(ctx *Context) error {
	cfg := ctx.Config
	input := &eks.CreateClusterInput{
		Name:    aws.String(cfg.ClusterName),
		Version: aws.String(cfg.KubernetesVersion),
		RoleArn: aws.String(ctx.State.RoleARN),
		ResourcesVpcConfig: &ekstypes.VpcConfigRequest{
			SubnetIds:        cfg.SubnetIDs,
			SecurityGroupIds: cfg.SecurityGroupIDs,
		},
	}

	ctx.Observer.Event(Event{
		Type:     EventResourceCreating,
		Stage:    StageCluster,
		Resource: cfg.ClusterName,
		Message:  "requesting cluster creation",
		Fields:   map[string]string{"version": cfg.KubernetesVersion, "region": cfg.Region},
	})

	var out *eks.CreateClusterOutput
	err := retry.Do(ctx, func() error {
		o, err := ctx.Clients.Cluster.CreateCluster(ctx, input)
		if err != nil {
			kind := classifyClusterError(err)
			if kind == KindDependency {
				ctx.Observer.Printf("[%s] role not yet assumable, retrying: %v", StageCluster, err)
				return NewError(StageCluster, kind, err)
			}
			return retry.Fatal(NewError(StageCluster, kind, err))
		}
		out = o
		return nil
	},
		retry.WithMaxAttempts(ctx.Timeouts.CreateMaxAttempts),
		retry.WithInitialDelay(ctx.Timeouts.CreateInitialDelay),
	)
	if err != nil {
		if de, ok := AsError(err); ok {
			de.Err = fmt.Errorf("failed to create cluster %q: %w", cfg.ClusterName, de.Err)
			return de
		}
		return NewError(StageCluster, KindRemoteService, fmt.Errorf("failed to create cluster %q: %w", cfg.ClusterName, err))
	}

	ctx.State.ClusterARN = aws.ToString(out.Cluster.Arn)
	ctx.State.InitialStatus = statusFromProvider(out.Cluster.Status)
	ctx.Observer.Event(Event{
		Type:     EventResourceCreated,
		Stage:    StageCluster,
		Resource: ctx.State.ClusterARN,
		Message:  "cluster creation initiated",
		Fields:   map[string]string{"status": string(ctx.State.InitialStatus)},
	})
	return nil
}

// classifyClusterError maps EKS creation failures onto workflow error kinds.
func classifyClusterError(err error) Kind {
	var inUse *ekstypes.ResourceInUseException
	if errors.As(err, &inUse) {
		return KindAlreadyExists
	}

	var invalid *ekstypes.InvalidParameterException
	if errors.As(err, &invalid) {
		// A role that has not propagated yet is reported as an invalid
		// parameter; every other parameter problem is a config error.
		msg := strings.ToLower(aws.ToString(invalid.Message))
		if strings.Contains(msg, "role") || strings.Contains(msg, "assume") {
			return KindDependency
		}
		return KindConfig
	}

	if isAccessDenied(err) {
		return KindPermission
	}
	return KindRemoteService
}
