package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tier names, from least to most inclusive.
const (
	TierCore     = "core"
	TierExtended = "extended"
	TierComplete = "complete"
)

// ToolInfo describes a tool's tier and the service group it belongs to.
type ToolInfo struct {
	Tier    string
	Service string
}

// TierConfig is the layout of tool_tiers.yaml.
type TierConfig struct {
	Services map[string]ServiceTiers `yaml:"services"`
}

// ServiceTiers lists tools by tier within a service group.
type ServiceTiers struct {
	Core     []string `yaml:"core"`
	Extended []string `yaml:"extended"`
	Complete []string `yaml:"complete"`
}

// LoadTiers reads the tool tiers YAML file into a tool name -> ToolInfo map.
// A tool listed twice is a configuration error.
func LoadTiers(path string) (map[string]ToolInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tier config %s: %w", path, err)
	}
	tools, err := ParseTiers(data)
	if err != nil {
		return nil, fmt.Errorf("parsing tier config %s: %w", path, err)
	}
	return tools, nil
}

// ParseTiers decodes tier YAML.
func ParseTiers(data []byte) (map[string]ToolInfo, error) {
	var tc TierConfig
	if err := yaml.Unmarshal(data, &tc); err != nil {
		return nil, err
	}

	tools := make(map[string]ToolInfo)
	add := func(service, tier string, names []string) error {
		for _, name := range names {
			if prev, dup := tools[name]; dup {
				return fmt.Errorf("tool %q listed under both %s/%s and %s/%s", name, prev.Service, prev.Tier, service, tier)
			}
			tools[name] = ToolInfo{Tier: tier, Service: service}
		}
		return nil
	}
	for service, tiers := range tc.Services {
		if err := add(service, TierCore, tiers.Core); err != nil {
			return nil, err
		}
		if err := add(service, TierExtended, tiers.Extended); err != nil {
			return nil, err
		}
		if err := add(service, TierComplete, tiers.Complete); err != nil {
			return nil, err
		}
	}
	return tools, nil
}

// TierLevel returns the numeric level for a tier name (higher = more inclusive).
// Unknown tiers are 0.
func TierLevel(tier string) int {
	switch tier {
	case TierCore:
		return 1
	case TierExtended:
		return 2
	case TierComplete:
		return 3
	default:
		return 0
	}
}
