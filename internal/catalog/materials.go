// Package catalog provides the static lookup tables the placement engine
// consumes: material sets, shape default scales, and the recorded
// movement-force profiles used by throwers with stop positions.
package catalog

import (
	"fmt"
	"math/rand"
)

// Material pairs a renderer material ID with its color tags.
type Material struct {
	ID     string
	Colors []string
}

// RoomWallMaterials are the default materials for structures.
var RoomWallMaterials = []Material{
	{ID: "Walls/DrywallBeige", Colors: []string{"white"}},
	{ID: "Walls/Drywall", Colors: []string{"white"}},
	{ID: "Walls/DrywallOrange", Colors: []string{"orange"}},
	{ID: "Walls/RedDrywall", Colors: []string{"red"}},
	{ID: "Walls/WallDrywallGrey", Colors: []string{"grey"}},
	{ID: "Walls/EggshellDrywall", Colors: []string{"blue"}},
}

// MetalMaterials, PlasticMaterials and WoodMaterials are the door
// material sets.
var (
	MetalMaterials = []Material{
		{ID: "Metals/BrushedAluminum_AlbedoTransparency", Colors: []string{"silver"}},
		{ID: "Metals/GenericStainlessSteel", Colors: []string{"silver"}},
		{ID: "Metals/HammeredMetal_AlbedoTransparency", Colors: []string{"green"}},
	}
	PlasticMaterials = []Material{
		{ID: "Plastics/BlackPlastic", Colors: []string{"black"}},
		{ID: "Plastics/OrangePlastic", Colors: []string{"orange"}},
		{ID: "Plastics/WhitePlastic", Colors: []string{"white"}},
	}
	WoodMaterials = []Material{
		{ID: "Wood/BedroomFloor1", Colors: []string{"brown"}},
		{ID: "Wood/DarkWoodSmooth2", Colors: []string{"black"}},
		{ID: "Wood/WhiteWood", Colors: []string{"white"}},
	}
)

// TurntableMaterial is the single default turntable surface.
var TurntableMaterial = Material{
	ID: "Wood/DarkWoodSmooth2", Colors: []string{"black"},
}

// FloorMaterials are usable as floor texture overrides.
var FloorMaterials = []Material{
	{ID: "Fabrics/Carpet2", Colors: []string{"brown"}},
	{ID: "Fabrics/CarpetDark", Colors: []string{"black"}},
	{ID: "Wood/WoodFloorsCross", Colors: []string{"brown"}},
	{ID: "Ceramics/ConcreteBoards1", Colors: []string{"grey"}},
}

// ByID returns the material with the given ID from any known set.
func ByID(id string) (Material, bool) {
	for _, set := range [][]Material{
		RoomWallMaterials, MetalMaterials, PlasticMaterials, WoodMaterials,
		FloorMaterials, {TurntableMaterial},
	} {
		for _, m := range set {
			if m.ID == id {
				return m, true
			}
		}
	}
	return Material{}, false
}

// ResolveMaterial picks one material. When choices is empty it samples
// from the defaults. The prohibited ID, if any, is never returned.
func ResolveMaterial(rng *rand.Rand, choices []string, defaults []Material, prohibited string) (Material, error) {
	pool := make([]Material, 0, len(defaults))
	if len(choices) > 0 {
		for _, id := range choices {
			if id == prohibited {
				continue
			}
			if m, ok := ByID(id); ok {
				pool = append(pool, m)
			} else {
				// Unknown IDs pass through untagged so callers can use
				// renderer materials we have no color data for.
				pool = append(pool, Material{ID: id})
			}
		}
	} else {
		for _, m := range defaults {
			if m.ID != prohibited {
				pool = append(pool, m)
			}
		}
	}
	if len(pool) == 0 {
		return Material{}, fmt.Errorf("no material available (choices %v, prohibited %q)", choices, prohibited)
	}
	return pool[rng.Intn(len(pool))], nil
}
