package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads a scene definition.
// Search order: customPath -> ~/.scenegen/configs/scene.yaml -> ./configs/scene.yaml -> embedded default
func Load(customPath string) (Definition, error) {
	var def Definition

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return def, fmt.Errorf("failed to read definition %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &def); err != nil {
			return def, fmt.Errorf("failed to parse definition %s: %w", customPath, err)
		}
		return def, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("scene.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &def); err == nil {
				return def, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/scene.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &def); err == nil {
			return def, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSceneYAML, &def); err != nil {
		return DefaultDefinition(), nil // Fallback to hardcoded if embed fails
	}
	return def, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".scenegen", "configs", filename)
}
