package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Settings holds values that are sourced from the process environment only.
// Credentials never appear in configuration files; when the access key pair
// is unset, the AWS SDK default credential chain is used instead.
type Settings struct {
	Region          string `envconfig:"AWS_REGION"`
	AccessKeyID     string `envconfig:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"AWS_SECRET_ACCESS_KEY"`
	SNSTopicARN     string `envconfig:"SNS_TOPIC_ARN"`
}

// LoadSettings reads environment-sourced settings. Variables are looked up
// with the EKSDEPLOY_ prefix first, then unprefixed (EKSDEPLOY_AWS_REGION,
// falling back to AWS_REGION).
func LoadSettings() (*Settings, error) {
	var s Settings
	if err := envconfig.Process("eksdeploy", &s); err != nil {
		return nil, fmt.Errorf("failed to process environment settings: %w", err)
	}
	return &s, nil
}

// Apply overlays environment settings onto the raw configuration map before
// it is decoded and validated. The environment wins for the region; the SNS
// topic ARN fills in only when the file left it unset. Validated configs are
// never mutated.
func (s *Settings) Apply(raw map[string]interface{}) {
	if s.Region != "" {
		raw["region"] = s.Region
	}
	if s.SNSTopicARN != "" {
		if existing, ok := raw["sns_topic_arn"].(string); !ok || existing == "" {
			raw["sns_topic_arn"] = s.SNSTopicARN
		}
	}
}

// HasStaticCredentials reports whether a full static key pair was supplied.
func (s *Settings) HasStaticCredentials() bool {
	return s.AccessKeyID != "" && s.SecretAccessKey != ""
}
