// Package deploy implements the client-side EKS deployment workflow.
//
// The workflow is organized into sequential stages run by an [Orchestrator]:
//   - identity — provision or reuse the IAM role the cluster assumes
//   - cluster — request cluster creation referencing that role
//   - wait — poll cluster status to a terminal state, bounded by attempts
//   - monitoring — register the health alarm (fire-and-forget)
//   - scaling — set the worker autoscaling group's desired capacity
//
// Stages communicate through a shared [State] carried by the deployment
// [Context], never through package-level variables. Failures carry their
// originating stage and an error [Kind] so callers can distinguish
// user-actionable problems (permissions, configuration) from provider
// failures and local timeouts.
package deploy
