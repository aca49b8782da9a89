// Package fakes provides call-counting fakes for the cloud interfaces.
// They record every invocation so tests can assert stage ordering and that
// failed validation never reaches a remote service.
package fakes

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/eks"
	ekstypes "github.com/aws/aws-sdk-go-v2/service/eks/types"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
)

// FakeIdentityAPI simulates the IAM role operations.
type FakeIdentityAPI struct {
	mu sync.Mutex

	CreateRoleCalls   int
	AttachPolicyCalls int

	CreateRoleErr   error // returned from every CreateRole call when set
	AttachPolicyErr error

	Roles map[string]string // roleName -> ARN
}

func NewFakeIdentityAPI() *FakeIdentityAPI {
	return &FakeIdentityAPI{Roles: make(map[string]string)}
}

func (f *FakeIdentityAPI) CreateRole(ctx context.Context, params *iam.CreateRoleInput, optFns ...func(*iam.Options)) (*iam.CreateRoleOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateRoleCalls++

	if f.CreateRoleErr != nil {
		return nil, f.CreateRoleErr
	}

	name := aws.ToString(params.RoleName)
	if _, exists := f.Roles[name]; exists {
		return nil, &iamtypes.EntityAlreadyExistsException{
			Message: aws.String(fmt.Sprintf("Role with name %s already exists.", name)),
		}
	}

	arn := fmt.Sprintf("arn:aws:iam::123456789012:role/%s", name)
	f.Roles[name] = arn
	return &iam.CreateRoleOutput{
		Role: &iamtypes.Role{
			RoleName: params.RoleName,
			Arn:      aws.String(arn),
		},
	}, nil
}

func (f *FakeIdentityAPI) AttachRolePolicy(ctx context.Context, params *iam.AttachRolePolicyInput, optFns ...func(*iam.Options)) (*iam.AttachRolePolicyOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.AttachPolicyCalls++

	if f.AttachPolicyErr != nil {
		return nil, f.AttachPolicyErr
	}
	return &iam.AttachRolePolicyOutput{}, nil
}

// FakeClusterAPI simulates EKS cluster creation and status observation.
//
// StatusSequence programs the status reported by successive DescribeCluster
// calls; the last entry repeats once the sequence is exhausted. DescribeErrs
// programs per-call errors at the same positions (nil means success).
type FakeClusterAPI struct {
	mu sync.Mutex

	CreateClusterCalls   int
	DescribeClusterCalls int

	CreateClusterErr      error
	CreateClusterFailures int // fail this many CreateCluster calls with CreateClusterErr, then succeed

	StatusSequence []ekstypes.ClusterStatus
	DescribeErrs   []error

	ClusterName string
}

func NewFakeClusterAPI() *FakeClusterAPI {
	return &FakeClusterAPI{}
}

// DescribeCalls returns the DescribeCluster call count. Safe to read while
// a poll loop is still running.
func (f *FakeClusterAPI) DescribeCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.DescribeClusterCalls
}

// CreateCalls returns the CreateCluster call count.
func (f *FakeClusterAPI) CreateCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.CreateClusterCalls
}

func (f *FakeClusterAPI) CreateCluster(ctx context.Context, params *eks.CreateClusterInput, optFns ...func(*eks.Options)) (*eks.CreateClusterOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateClusterCalls++

	if f.CreateClusterErr != nil {
		if f.CreateClusterFailures == 0 || f.CreateClusterCalls <= f.CreateClusterFailures {
			return nil, f.CreateClusterErr
		}
	}

	f.ClusterName = aws.ToString(params.Name)
	return &eks.CreateClusterOutput{
		Cluster: &ekstypes.Cluster{
			Name:   params.Name,
			Arn:    aws.String(fmt.Sprintf("arn:aws:eks:us-east-1:123456789012:cluster/%s", f.ClusterName)),
			Status: ekstypes.ClusterStatusCreating,
		},
	}, nil
}

func (f *FakeClusterAPI) DescribeCluster(ctx context.Context, params *eks.DescribeClusterInput, optFns ...func(*eks.Options)) (*eks.DescribeClusterOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := f.DescribeClusterCalls
	f.DescribeClusterCalls++

	if idx < len(f.DescribeErrs) && f.DescribeErrs[idx] != nil {
		return nil, f.DescribeErrs[idx]
	}

	status := ekstypes.ClusterStatusCreating
	if len(f.StatusSequence) > 0 {
		if idx >= len(f.StatusSequence) {
			idx = len(f.StatusSequence) - 1
		}
		status = f.StatusSequence[idx]
	}

	name := aws.ToString(params.Name)
	return &eks.DescribeClusterOutput{
		Cluster: &ekstypes.Cluster{
			Name:   params.Name,
			Arn:    aws.String(fmt.Sprintf("arn:aws:eks:us-east-1:123456789012:cluster/%s", name)),
			Status: status,
		},
	}, nil
}

// FakeMonitoringAPI simulates CloudWatch alarm registration.
type FakeMonitoringAPI struct {
	mu sync.Mutex

	PutMetricAlarmCalls int
	PutMetricAlarmErr   error
	LastInput           *cloudwatch.PutMetricAlarmInput
}

func NewFakeMonitoringAPI() *FakeMonitoringAPI {
	return &FakeMonitoringAPI{}
}

func (f *FakeMonitoringAPI) PutMetricAlarm(ctx context.Context, params *cloudwatch.PutMetricAlarmInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricAlarmOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PutMetricAlarmCalls++

	if f.PutMetricAlarmErr != nil {
		return nil, f.PutMetricAlarmErr
	}
	f.LastInput = params
	return &cloudwatch.PutMetricAlarmOutput{}, nil
}

// FakeAutoScalingAPI simulates worker node scaling.
type FakeAutoScalingAPI struct {
	mu sync.Mutex

	SetDesiredCapacityCalls    int
	SetDesiredCapacityErr      error
	SetDesiredCapacityFailures int // fail this many calls with the error, then succeed
	LastInput                  *autoscaling.SetDesiredCapacityInput
}

func NewFakeAutoScalingAPI() *FakeAutoScalingAPI {
	return &FakeAutoScalingAPI{}
}

func (f *FakeAutoScalingAPI) SetDesiredCapacity(ctx context.Context, params *autoscaling.SetDesiredCapacityInput, optFns ...func(*autoscaling.Options)) (*autoscaling.SetDesiredCapacityOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SetDesiredCapacityCalls++

	if f.SetDesiredCapacityErr != nil {
		if f.SetDesiredCapacityFailures == 0 || f.SetDesiredCapacityCalls <= f.SetDesiredCapacityFailures {
			return nil, f.SetDesiredCapacityErr
		}
	}
	f.LastInput = params
	return &autoscaling.SetDesiredCapacityOutput{}, nil
}
