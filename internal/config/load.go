package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// FromMap decodes a raw key-value mapping into a validated Config.
//
// Required keys must be present and non-empty in the raw map; they are
// reported as missing rather than silently defaulted. Optional fields
// (region, kubernetes_version, role_arn, sns_topic_arn) receive defaults
// where one exists.
func FromMap(raw map[string]interface{}) (*Config, error) {
	if missing := missingKeys(raw); len(missing) > 0 {
		return nil, fmt.Errorf("configuration validation failed: missing required keys: %s", strings.Join(missing, ", "))
	}

	var cfg Config
	if err := mapstructure.Decode(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// Defaults for optional fields only
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	if cfg.KubernetesVersion == "" {
		cfg.KubernetesVersion = DefaultKubernetesVersion
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFile reads and parses the deployment configuration from a YAML file.
// Environment settings, when supplied, are overlaid onto the raw mapping
// before decoding so the resulting config is validated exactly once.
func LoadFile(path string, settings *Settings) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	if settings != nil {
		settings.Apply(raw)
	}

	cfg, err := FromMap(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnvironment resolves the per-environment configuration file
// ("dev" -> dev.yaml) and loads it.
func LoadEnvironment(environment string, settings *Settings) (*Config, error) {
	if strings.TrimSpace(environment) == "" {
		return nil, fmt.Errorf("environment name must not be empty")
	}
	return LoadFile(environment+".yaml", settings)
}

// missingKeys returns the required keys that are absent or empty in the raw
// configuration map, preserving declaration order.
func missingKeys(raw map[string]interface{}) []string {
	var missing []string
	for _, key := range requiredKeys {
		val, ok := raw[key]
		if !ok || isEmptyValue(val) {
			missing = append(missing, key)
		}
	}
	return missing
}

// isEmptyValue reports whether a raw YAML value counts as absent: nil,
// a blank string, or an empty sequence. Zero integers are present values.
func isEmptyValue(val interface{}) bool {
	switch v := val.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	default:
		rv := reflect.ValueOf(val)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Map {
			return rv.Len() == 0
		}
		return false
	}
}
