package deploy

import (
	"context"
	"time"

	"github.com/pitfunie/eksdeploy/internal/config"
	"github.com/pitfunie/eksdeploy/pkg/cloud"
	"github.com/pitfunie/eksdeploy/pkg/cloud/fakes"
)

// testServices bundles the fakes behind one cloud.Clients value.
type testServices struct {
	Identity    *fakes.FakeIdentityAPI
	Cluster     *fakes.FakeClusterAPI
	Monitoring  *fakes.FakeMonitoringAPI
	AutoScaling *fakes.FakeAutoScalingAPI
}

func newTestServices() *testServices {
	return &testServices{
		Identity:    fakes.NewFakeIdentityAPI(),
		Cluster:     fakes.NewFakeClusterAPI(),
		Monitoring:  fakes.NewFakeMonitoringAPI(),
		AutoScaling: fakes.NewFakeAutoScalingAPI(),
	}
}

func (s *testServices) clients() *cloud.Clients {
	return &cloud.Clients{
		Identity:    s.Identity,
		Cluster:     s.Cluster,
		Monitoring:  s.Monitoring,
		AutoScaling: s.AutoScaling,
		Region:      "us-east-1",
	}
}

func testTimeouts() *config.Timeouts {
	return &config.Timeouts{
		PollInterval:       time.Millisecond,
		PollMaxAttempts:    10,
		PollMaxFailures:    3,
		CreateMaxAttempts:  3,
		CreateInitialDelay: time.Millisecond,
	}
}

func testConfig() *config.Config {
	return &config.Config{
		ClusterName:          "test-cluster",
		Region:               "us-east-1",
		KubernetesVersion:    "1.27",
		SubnetIDs:            []string{"subnet-0a1b2c3d", "subnet-4e5f6a7b"},
		SecurityGroupIDs:     []string{"sg-0123456789abcdef0"},
		AutoScalingGroupName: "test-cluster-workers",
		DesiredCapacity:      3,
	}
}

func testRawConfig() map[string]interface{} {
	return map[string]interface{}{
		"cluster_name":           "test-cluster",
		"subnet_ids":             []interface{}{"subnet-0a1b2c3d", "subnet-4e5f6a7b"},
		"security_group_ids":     []interface{}{"sg-0123456789abcdef0"},
		"autoscaling_group_name": "test-cluster-workers",
		"desired_capacity":       3,
	}
}

func newTestContext(svc *testServices, cfg *config.Config) *Context {
	return &Context{
		Context:  context.Background(),
		Config:   cfg,
		State:    NewState(),
		Clients:  svc.clients(),
		Observer: NewConsoleObserver(),
		Timeouts: testTimeouts(),
	}
}

func newTestOrchestrator(svc *testServices) *Orchestrator {
	return New(svc.clients(), WithTimeouts(testTimeouts()))
}
