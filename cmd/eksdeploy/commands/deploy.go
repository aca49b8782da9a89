package commands

import (
	"github.com/spf13/cobra"

	"github.com/pitfunie/eksdeploy/cmd/eksdeploy/handlers"
)

// Deploy returns the command that runs the cluster deployment workflow.
//
// Optional flags:
//
//	--config, -c: Path to a deployment configuration YAML file
//	--env, -e: Environment whose config file to load (dev -> dev.yaml)
//
// Environment variables:
//
//	AWS credentials via the SDK default chain, or
//	EKSDEPLOY_AWS_ACCESS_KEY_ID / EKSDEPLOY_AWS_SECRET_ACCESS_KEY
//	EKSDEPLOY_SNS_TOPIC_ARN: SNS topic for the health alarm action
func Deploy() *cobra.Command {
	var configPath string
	var environment string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Create an EKS cluster and wait for it to become ACTIVE",
		Long: `Create an EKS cluster and drive the deployment to completion.

The workflow provisions the cluster IAM role (unless role_arn is set in the
config), requests cluster creation, polls the cluster status until it reaches
a terminal state or the poll bound is exhausted, registers a CloudWatch
health alarm, and scales the worker autoscaling group.

Credentials are read from the process environment; they never appear in
configuration files.

Examples:
  # Deploy using an explicit config file
  eksdeploy deploy -c production.yaml

  # Deploy the staging environment (loads staging.yaml)
  eksdeploy deploy -e staging`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), configPath, environment)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().StringVarP(&environment, "env", "e", "", "Environment to deploy (loads <env>.yaml)")
	cmd.MarkFlagsMutuallyExclusive("config", "env")

	return cmd
}
