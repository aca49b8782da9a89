package deploy

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"

	"github.com/pitfunie/eksdeploy/internal/util/retry"
)

// StageScaling is the stage name attached to worker scaling failures.
const StageScaling = "scaling"

// ScaleStage sets the desired capacity on the worker autoscaling group.
// Cooldown is honored so the scaling action does not fight an in-progress
// activity. Transient provider failures are retried with backoff.
type ScaleStage struct{}

// Name implements the Stage interface.
func (s *ScaleStage) Name() string {
	return StageScaling
}

// Run implements the Stage interface.
func (s *ScaleStage) Run(ctx *Context) error {
	cfg := ctx.Config
	input := &autoscaling.SetDesiredCapacityInput{
		AutoScalingGroupName: aws.String(cfg.AutoScalingGroupName),
		DesiredCapacity:      aws.Int32(int32(cfg.DesiredCapacity)), // #nosec G115 -- validated non-negative
		HonorCooldown:        aws.Bool(true),
	}

	err := retry.Do(ctx, func() error {
		if _, err := ctx.Clients.AutoScaling.SetDesiredCapacity(ctx, input); err != nil {
			if isAccessDenied(err) {
				return retry.Fatal(NewError(StageScaling, KindPermission, err))
			}
			return err
		}
		return nil
	}, retry.WithMaxAttempts(3), retry.WithInitialDelay(ctx.Timeouts.CreateInitialDelay))
	if err != nil {
		if de, ok := AsError(err); ok {
			return de
		}
		return NewError(StageScaling, KindRemoteService,
			fmt.Errorf("failed to scale group %q to %d: %w", cfg.AutoScalingGroupName, cfg.DesiredCapacity, err))
	}

	ctx.State.ScaledCapacity = cfg.DesiredCapacity
	ctx.Observer.Printf("[%s] group %q scaled to %d instances", StageScaling, cfg.AutoScalingGroupName, cfg.DesiredCapacity)
	return nil
}
