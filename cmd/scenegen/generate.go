package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/evalhouse/scenegen/internal/config"
	"github.com/evalhouse/scenegen/internal/features"
	"github.com/evalhouse/scenegen/internal/storage"
	"github.com/evalhouse/scenegen/internal/vary"
)

var (
	flagCount  int
	flagOutDir string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Sample scenes from a definition",
	Long: `Generate samples one or more concrete scenes from the scene
definition and prints them as YAML, or writes them to a directory.

Examples:
  scenegen generate
  scenegen generate --config scene.yaml --count 5 --out scenes/
  scenegen generate --seed 42`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&flagCount, "count", 1, "Number of scenes to generate")
	generateCmd.Flags().StringVar(&flagOutDir, "out", "", "Directory for generated scene files (default: stdout)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "scenegen",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	def, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := vary.NewSource(seed)
	logger.Info("generating scenes", "definition", def.Name, "count", flagCount, "seed", seed)

	// The run history is best-effort: generation proceeds without it.
	store, storeErr := storage.Open(flagDBPath)
	if storeErr != nil {
		logger.Warn("could not open run database", "error", storeErr)
	} else {
		defer store.Close()
	}

	if flagOutDir != "" {
		if err := os.MkdirAll(flagOutDir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}

	for i := 0; i < flagCount; i++ {
		sc, err := features.Generate(&def, rng, logger)
		if err != nil {
			if store != nil {
				store.SaveRun(storage.RunEntry{Name: def.Name, Seed: seed, Error: err.Error()})
			}
			return fmt.Errorf("scene %d: %w", i+1, err)
		}

		data, err := yaml.Marshal(sc)
		if err != nil {
			return fmt.Errorf("cannot encode scene %s: %w", sc.ID, err)
		}

		if flagOutDir == "" {
			if i > 0 {
				fmt.Println("---")
			}
			os.Stdout.Write(data)
		} else {
			path := filepath.Join(flagOutDir, fmt.Sprintf("%s_%d.yaml", sceneFileStem(def.Name), i+1))
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("cannot write scene file: %w", err)
			}
			logger.Info("wrote scene", "path", path, "objects", len(sc.Objects))
		}

		if store != nil {
			if _, err := store.SaveRun(storage.RunEntry{
				SceneID:  sc.ID,
				Name:     def.Name,
				Seed:     seed,
				Objects:  len(sc.Objects),
				LastStep: sc.LastStep,
			}); err != nil {
				logger.Warn("could not record run", "error", err)
			}
		}
	}
	return nil
}

func sceneFileStem(name string) string {
	if name == "" {
		return "scene"
	}
	return name
}
