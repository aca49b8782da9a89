package deploy

import (
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityStage_CreatesRole(t *testing.T) {
	t.Parallel()
	svc := newTestServices()
	ctx := newTestContext(svc, testConfig())

	err := (&IdentityStage{}).Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, "arn:aws:iam::123456789012:role/test-cluster-role", ctx.State.RoleARN)
	assert.Equal(t, 1, svc.Identity.CreateRoleCalls)
	assert.Equal(t, 1, svc.Identity.AttachPolicyCalls)
}

func TestIdentityStage_ReusesConfiguredRole(t *testing.T) {
	t.Parallel()
	svc := newTestServices()
	cfg := testConfig()
	cfg.RoleARN = "arn:aws:iam::123456789012:role/preexisting"
	ctx := newTestContext(svc, cfg)

	err := (&IdentityStage{}).Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, cfg.RoleARN, ctx.State.RoleARN)
	assert.Zero(t, svc.Identity.CreateRoleCalls, "no role is created when one is configured")
}

func TestIdentityStage_DuplicateRoleSurfaced(t *testing.T) {
	t.Parallel()
	svc := newTestServices()
	cfg := testConfig()
	ctx := newTestContext(svc, cfg)

	require.NoError(t, (&IdentityStage{}).Run(ctx))

	// A second attempt against the same fake hits the duplicate rejection.
	err := (&IdentityStage{}).Run(newTestContext(svc, cfg))
	require.Error(t, err)
	de, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindAlreadyExists, de.Kind)
	assert.Equal(t, StageIdentity, de.Stage)
}

func TestIdentityStage_PermissionError(t *testing.T) {
	t.Parallel()
	svc := newTestServices()
	svc.Identity.CreateRoleErr = &smithy.GenericAPIError{Code: "AccessDenied", Message: "not authorized to perform iam:CreateRole"}
	ctx := newTestContext(svc, testConfig())

	err := (&IdentityStage{}).Run(ctx)

	require.Error(t, err)
	de, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindPermission, de.Kind)
	assert.Empty(t, ctx.State.RoleARN)
}

func TestIdentityStage_AttachFailureClassified(t *testing.T) {
	t.Parallel()
	svc := newTestServices()
	svc.Identity.AttachPolicyErr = &smithy.GenericAPIError{Code: "ServiceFailure", Message: "internal error"}
	ctx := newTestContext(svc, testConfig())

	err := (&IdentityStage{}).Run(ctx)

	require.Error(t, err)
	de, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindRemoteService, de.Kind)
}
