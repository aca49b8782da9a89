// Package cloud provides narrow interfaces over the AWS service clients the
// deployment workflow depends on, plus constructors for the real clients.
//
// Stages depend on these interfaces rather than the concrete SDK clients so
// tests can substitute call-counting fakes (see the fakes subpackage).
package cloud

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/eks"
	"github.com/aws/aws-sdk-go-v2/service/iam"
)

// Clients bundles the per-service interfaces for one region.
type Clients struct {
	Identity    IdentityAPI
	Cluster     ClusterAPI
	Monitoring  MonitoringAPI
	AutoScaling AutoScalingAPI
	Region      string
}

// Option configures client construction.
type Option func(*options)

type options struct {
	accessKeyID     string
	secretAccessKey string
}

// WithStaticCredentials uses a static key pair instead of the SDK's default
// credential chain. Intended for credentials sourced from the process
// environment; they are never read from configuration files.
func WithStaticCredentials(accessKeyID, secretAccessKey string) Option {
	return func(o *options) {
		o.accessKeyID = accessKeyID
		o.secretAccessKey = secretAccessKey
	}
}

// NewClients creates real AWS service clients for the given region.
func NewClients(ctx context.Context, region string, opts ...Option) (*Clients, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if o.accessKeyID != "" && o.secretAccessKey != "" {
		loadOpts = append(loadOpts,
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(o.accessKeyID, o.secretAccessKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Clients{
		Identity:    iam.NewFromConfig(cfg),
		Cluster:     eks.NewFromConfig(cfg),
		Monitoring:  cloudwatch.NewFromConfig(cfg),
		AutoScaling: autoscaling.NewFromConfig(cfg),
		Region:      region,
	}, nil
}
