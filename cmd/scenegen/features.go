package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/evalhouse/scenegen/internal/features"
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "List supported feature types",
	Long:  `Shows every feature type the placement engine can build.`,
	Run:   runFeatures,
}

// featureDescriptions gives a one-line summary per feature keyword.
var featureDescriptions = map[string]string{
	"walls":             "Interior wall segments",
	"platforms":         "Platforms with optional lips, ramps, and stacking",
	"ramps":             "Free-standing triangular ramps",
	"l_occluders":       "L-shaped two-box occluders",
	"doors":             "Doorways with flanking wall sections",
	"holes":             "Unit floor cells cut out of the floor",
	"lava":              "Unit floor cells of lava",
	"floor_materials":   "Retextured floor cells",
	"partition_floor":   "Raised floor sections growing out of the side walls",
	"tube_occluders":    "Room-height tubes that descend over a spot",
	"notched_occluders": "Wall-to-wall occluders with a notch cut in the bottom",
	"droppers":          "Ceiling tubes that release a projectile",
	"throwers":          "Wall tubes that launch a projectile",
	"placers":           "Ceiling poles that place, pick up, or move objects",
	"turntables":        "Rotating floor cogs",
}

func runFeatures(cmd *cobra.Command, args []string) {
	types := features.Types()
	if len(types) == 0 {
		fmt.Println("No feature types registered.")
		return
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	typeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("86"))
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	fmt.Println(titleStyle.Render("Supported feature types:"))
	fmt.Println()

	maxLen := 0
	for _, t := range types {
		if len(t) > maxLen {
			maxLen = len(t)
		}
	}

	for _, t := range types {
		padded := fmt.Sprintf("%-*s", maxLen, t)
		fmt.Printf("  %s  %s\n", typeStyle.Render(padded), featureDescriptions[t])
	}

	fmt.Println()
	fmt.Println(helpStyle.Render("Add them to a scene definition and run 'scenegen generate'."))
}
