package deploy

import (
	"context"

	"github.com/pitfunie/eksdeploy/internal/config"
	"github.com/pitfunie/eksdeploy/pkg/cloud"
)

// Context wraps all dependencies and state needed by a deployment stage.
// One Context belongs to exactly one deployment attempt; concurrent
// deployments each get their own.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Clients  *cloud.Clients
	Observer Observer
	Timeouts *config.Timeouts
}

// NewContext creates a new deployment context.
func NewContext(ctx context.Context, cfg *config.Config, clients *cloud.Clients) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Clients:  clients,
		Observer: NewConsoleObserver(),
		Timeouts: config.LoadTimeouts(),
	}
}
