// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"

	"github.com/pitfunie/eksdeploy/internal/config"
	"github.com/pitfunie/eksdeploy/internal/deploy"
	"github.com/pitfunie/eksdeploy/pkg/cloud"
)

// defaultConfigFile is used when neither --config nor --env is given.
const defaultConfigFile = "eksdeploy.yaml"

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadSettings reads environment-sourced settings.
	loadSettings = config.LoadSettings

	// newCloudClients creates the AWS service clients.
	newCloudClients = func(ctx context.Context, region string, settings *config.Settings) (*cloud.Clients, error) {
		if settings.HasStaticCredentials() {
			return cloud.NewClients(ctx, region,
				cloud.WithStaticCredentials(settings.AccessKeyID, settings.SecretAccessKey))
		}
		return cloud.NewClients(ctx, region)
	}
)

// Deploy loads the deployment configuration and drives the workflow to a
// terminal result. The deployment runs on its own goroutine; this handler
// joins it and renders the result.
func Deploy(ctx context.Context, configPath, environment string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	var cfg *config.Config
	switch {
	case configPath != "":
		cfg, err = config.LoadFile(configPath, settings)
	case environment != "":
		cfg, err = config.LoadEnvironment(environment, settings)
	default:
		cfg, err = config.LoadFile(defaultConfigFile, settings)
	}
	if err != nil {
		return err
	}

	clients, err := newCloudClients(ctx, cfg.Region, settings)
	if err != nil {
		return err
	}

	orc := deploy.New(clients)
	result := <-orc.Go(ctx, cfg)

	fmt.Println(result.String())
	if !result.Succeeded() {
		// No automatic rollback: name what was created so the operator can
		// decide whether to clean up.
		if result.RoleARN != "" && result.Err.Stage != deploy.StageIdentity {
			fmt.Printf("created role: %s\n", result.RoleARN)
		}
		if result.ClusterARN != "" {
			fmt.Printf("created cluster: %s (last status %s)\n", result.ClusterARN, result.Status)
		}
		return result.Err
	}
	return nil
}
