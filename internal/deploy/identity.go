package deploy

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
)

// StageIdentity is the stage name attached to identity provisioning failures.
const StageIdentity = "identity"

// trustPolicyDocument allows the EKS service principal to assume the
// cluster role. The document is fixed; only the role name varies per
// deployment.
const trustPolicyDocument = `{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Effect": "Allow",
      "Principal": {"Service": "eks.amazonaws.com"},
      "Action": "sts:AssumeRole"
    }
  ]
}`

// clusterPolicyARN is the managed policy the cluster role needs to operate.
const clusterPolicyARN = "arn:aws:iam::aws:policy/AmazonEKSClusterPolicy"

// IdentityStage provisions the IAM role the cluster assumes, or reuses the
// role ARN supplied in the configuration. The role is created once per
// deployment attempt and consumed exactly once by the cluster stage.
type IdentityStage struct{}

// Name implements the Stage interface.
func (s *IdentityStage) Name() string {
	return StageIdentity
}

// Run implements the Stage interface.
func (s *IdentityStage) Run(ctx *Context) error {
	if ctx.Config.RoleARN != "" {
		ctx.State.RoleARN = ctx.Config.RoleARN
		ctx.Observer.Event(Event{
			Type:     EventResourceExists,
			Stage:    StageIdentity,
			Resource: ctx.Config.RoleARN,
			Message:  "using role from configuration",
		})
		return nil
	}

	roleName := ctx.Config.RoleName()
	ctx.Observer.Event(Event{
		Type:     EventResourceCreating,
		Stage:    StageIdentity,
		Resource: roleName,
		Message:  "creating IAM role",
	})

	out, err := ctx.Clients.Identity.CreateRole(ctx, &iam.CreateRoleInput{
		RoleName:                 aws.String(roleName),
		AssumeRolePolicyDocument: aws.String(trustPolicyDocument),
		Description:              aws.String(fmt.Sprintf("Cluster role for EKS cluster %s", ctx.Config.ClusterName)),
	})
	if err != nil {
		return NewError(StageIdentity, classifyIdentityError(err), fmt.Errorf("failed to create role %q: %w", roleName, err))
	}

	arn := aws.ToString(out.Role.Arn)

	if _, err := ctx.Clients.Identity.AttachRolePolicy(ctx, &iam.AttachRolePolicyInput{
		RoleName:  aws.String(roleName),
		PolicyArn: aws.String(clusterPolicyARN),
	}); err != nil {
		return NewError(StageIdentity, classifyIdentityError(err), fmt.Errorf("failed to attach cluster policy to role %q: %w", roleName, err))
	}

	ctx.State.RoleARN = arn
	ctx.Observer.Event(Event{
		Type:     EventResourceCreated,
		Stage:    StageIdentity,
		Resource: arn,
		Message:  "IAM role created",
	})
	return nil
}

// classifyIdentityError maps IAM failures onto workflow error kinds.
// Duplicate-role rejections are surfaced as AlreadyExists rather than
// swallowed; idempotent reuse is the provider's call, not ours.
func classifyIdentityError(err error) Kind {
	var exists *iamtypes.EntityAlreadyExistsException
	if errors.As(err, &exists) {
		return KindAlreadyExists
	}
	if isAccessDenied(err) {
		return KindPermission
	}
	return KindRemoteService
}
