// Package config defines the deployment configuration model: file loading,
// required-key validation, environment-sourced settings, and tunable timeouts.
package config

import (
	"fmt"
	"strings"
)

// Default values applied for optional fields. Required fields are never
// defaulted; their absence is a validation error.
const (
	DefaultRegion            = "us-east-1"
	DefaultKubernetesVersion = "1.27"
)

// Config holds the validated deployment configuration for one cluster.
// It is immutable once Validate has passed; stages receive it by pointer
// but never modify it.
type Config struct {
	ClusterName          string   `mapstructure:"cluster_name" yaml:"cluster_name"`
	Region               string   `mapstructure:"region" yaml:"region"`
	KubernetesVersion    string   `mapstructure:"kubernetes_version" yaml:"kubernetes_version"`
	RoleARN              string   `mapstructure:"role_arn" yaml:"role_arn"`
	SubnetIDs            []string `mapstructure:"subnet_ids" yaml:"subnet_ids"`
	SecurityGroupIDs     []string `mapstructure:"security_group_ids" yaml:"security_group_ids"`
	AutoScalingGroupName string   `mapstructure:"autoscaling_group_name" yaml:"autoscaling_group_name"`
	DesiredCapacity      int      `mapstructure:"desired_capacity" yaml:"desired_capacity"`
	SNSTopicARN          string   `mapstructure:"sns_topic_arn" yaml:"sns_topic_arn"`
}

// ValidationError represents a single configuration validation failure.
type ValidationError struct {
	Field   string // Configuration field that failed validation
	Message string // Human-readable error message
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// requiredKeys are the configuration keys that must be present and non-empty
// in the raw input. role_arn is intentionally absent: when it is empty the
// orchestrator provisions a role itself.
var requiredKeys = []string{
	"cluster_name",
	"subnet_ids",
	"security_group_ids",
	"autoscaling_group_name",
	"desired_capacity",
}

// Validate checks field-level invariants on the decoded configuration.
// It is a pure function over the receiver: calling it twice on the same
// value yields the same outcome and never mutates the config.
func (c *Config) Validate() error {
	var errs []ValidationError

	if strings.TrimSpace(c.ClusterName) == "" {
		errs = append(errs, ValidationError{Field: "cluster_name", Message: "must not be empty"})
	}
	if strings.TrimSpace(c.Region) == "" {
		errs = append(errs, ValidationError{Field: "region", Message: "must not be empty"})
	}
	if len(c.SubnetIDs) == 0 {
		errs = append(errs, ValidationError{Field: "subnet_ids", Message: "at least one subnet ID is required"})
	}
	for i, id := range c.SubnetIDs {
		if strings.TrimSpace(id) == "" {
			errs = append(errs, ValidationError{Field: "subnet_ids", Message: fmt.Sprintf("entry %d is empty", i)})
		}
	}
	if len(c.SecurityGroupIDs) == 0 {
		errs = append(errs, ValidationError{Field: "security_group_ids", Message: "at least one security group ID is required"})
	}
	for i, id := range c.SecurityGroupIDs {
		if strings.TrimSpace(id) == "" {
			errs = append(errs, ValidationError{Field: "security_group_ids", Message: fmt.Sprintf("entry %d is empty", i)})
		}
	}
	if strings.TrimSpace(c.AutoScalingGroupName) == "" {
		errs = append(errs, ValidationError{Field: "autoscaling_group_name", Message: "must not be empty"})
	}
	if c.DesiredCapacity < 0 {
		errs = append(errs, ValidationError{Field: "desired_capacity", Message: fmt.Sprintf("must be non-negative, got %d", c.DesiredCapacity)})
	}

	if len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(msgs, "\n  "))
	}
	return nil
}

// RoleName returns the IAM role name provisioned for this cluster when no
// role_arn was supplied.
func (c *Config) RoleName() string {
	return c.ClusterName + "-role"
}

// AlarmName returns the CloudWatch alarm name registered for this cluster.
func (c *Config) AlarmName() string {
	return c.ClusterName + "_Health"
}
