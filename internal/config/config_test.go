package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		ClusterName:          "prod-cluster",
		Region:               "us-east-1",
		KubernetesVersion:    "1.27",
		SubnetIDs:            []string{"subnet-0a1b2c3d", "subnet-4e5f6a7b"},
		SecurityGroupIDs:     []string{"sg-0123456789abcdef0"},
		AutoScalingGroupName: "prod-cluster-workers",
		DesiredCapacity:      3,
	}
}

func TestValidate_Valid(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{
			name:    "empty cluster name",
			mutate:  func(c *Config) { c.ClusterName = "  " },
			wantMsg: "cluster_name",
		},
		{
			name:    "empty region",
			mutate:  func(c *Config) { c.Region = "" },
			wantMsg: "region",
		},
		{
			name:    "no subnets",
			mutate:  func(c *Config) { c.SubnetIDs = nil },
			wantMsg: "subnet_ids",
		},
		{
			name:    "blank subnet entry",
			mutate:  func(c *Config) { c.SubnetIDs = []string{"subnet-0a1b2c3d", ""} },
			wantMsg: "subnet_ids",
		},
		{
			name:    "no security groups",
			mutate:  func(c *Config) { c.SecurityGroupIDs = []string{} },
			wantMsg: "security_group_ids",
		},
		{
			name:    "empty autoscaling group",
			mutate:  func(c *Config) { c.AutoScalingGroupName = "" },
			wantMsg: "autoscaling_group_name",
		},
		{
			name:    "negative desired capacity",
			mutate:  func(c *Config) { c.DesiredCapacity = -1 },
			wantMsg: "desired_capacity",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidate_ZeroCapacityAllowed(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.DesiredCapacity = 0
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Idempotent(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	before := *cfg
	require.NoError(t, cfg.Validate())
	require.NoError(t, cfg.Validate())
	assert.Equal(t, before, *cfg, "Validate must not mutate the config")
}

func TestDerivedNames(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	assert.Equal(t, "prod-cluster-role", cfg.RoleName())
	assert.Equal(t, "prod-cluster_Health", cfg.AlarmName())
}
