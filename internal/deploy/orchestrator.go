package deploy

import (
	"context"

	"github.com/pitfunie/eksdeploy/internal/config"
	"github.com/pitfunie/eksdeploy/pkg/cloud"
)

// StageValidate is the stage name attached to configuration failures.
const StageValidate = "validate"

// Orchestrator runs the deployment workflow for a single cluster:
// validate -> identity -> cluster -> wait -> monitoring -> scaling.
//
// Stages are strictly ordered and short-circuit on failure. The orchestrator
// holds no mutable state of its own, so one instance can run any number of
// deployments; each Deploy call gets its own Context and State. There is no
// automatic rollback: a failure after the identity stage reports the role
// ARN in the result so the caller can decide whether to clean it up.
type Orchestrator struct {
	clients  *cloud.Clients
	observer Observer
	timeouts *config.Timeouts
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithObserver replaces the default console observer.
func WithObserver(o Observer) Option {
	return func(orc *Orchestrator) {
		orc.observer = o
	}
}

// WithTimeouts replaces the environment-derived polling and retry bounds.
func WithTimeouts(t *config.Timeouts) Option {
	return func(orc *Orchestrator) {
		orc.timeouts = t
	}
}

// New creates an orchestrator over the given cloud clients.
func New(clients *cloud.Clients, opts ...Option) *Orchestrator {
	orc := &Orchestrator{
		clients:  clients,
		observer: NewConsoleObserver(),
		timeouts: config.LoadTimeouts(),
	}
	for _, opt := range opts {
		opt(orc)
	}
	return orc
}

// Deploy validates the raw configuration and drives the workflow to a
// terminal outcome. No remote call is made unless validation passes.
func (o *Orchestrator) Deploy(ctx context.Context, raw map[string]interface{}) Result {
	cfg, err := config.FromMap(raw)
	if err != nil {
		return Result{
			Status: StatusUnknown,
			Err:    NewError(StageValidate, KindConfig, err),
		}
	}
	return o.DeployConfig(ctx, cfg)
}

// DeployConfig drives the workflow for an already validated configuration.
func (o *Orchestrator) DeployConfig(ctx context.Context, cfg *config.Config) Result {
	dctx := &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Clients:  o.clients,
		Observer: o.observer.WithFields(map[string]string{"cluster": cfg.ClusterName, "region": cfg.Region}),
		Timeouts: o.timeouts,
	}

	stages := []Stage{
		&IdentityStage{},
		&ClusterStage{},
		&WaitStage{},
		&AlarmStage{},
		&ScaleStage{},
	}

	if stageErr := RunStages(dctx, stages); stageErr != nil {
		return Result{
			ClusterName: cfg.ClusterName,
			ClusterARN:  dctx.State.ClusterARN,
			RoleARN:     dctx.State.RoleARN,
			Status:      dctx.State.FinalStatus,
			Err:         stageErr,
		}
	}

	return Result{
		ClusterName: cfg.ClusterName,
		ClusterARN:  dctx.State.ClusterARN,
		RoleARN:     dctx.State.RoleARN,
		Status:      dctx.State.FinalStatus,
	}
}

// Go runs one deployment on its own goroutine and returns a channel that
// delivers the single terminal result. Independent deployments share
// nothing, so callers may start any number of them concurrently and join
// on the channels.
func (o *Orchestrator) Go(ctx context.Context, cfg *config.Config) <-chan Result {
	results := make(chan Result, 1)
	go func() {
		results <- o.DeployConfig(ctx, cfg)
		close(results)
	}()
	return results
}
