package config

import (
	_ "embed"

	"github.com/evalhouse/scenegen/internal/vary"
)

//go:embed defaults/scene.yaml
var defaultSceneYAML []byte

// DefaultDefinition returns the hardcoded fallback used if the embedded
// default fails to parse.
func DefaultDefinition() Definition {
	return Definition{
		Name:     "default",
		LastStep: 1000,
		Platforms: []PlatformConfig{
			{AttachedRamps: vary.OneOfInt(1, 2)},
		},
		Droppers: []DropperConfig{
			{DropStep: vary.BetweenInt(1, 10)},
		},
	}
}
