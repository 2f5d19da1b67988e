// Package main provides the pantry CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pantry/internal/repository"
	"github.com/mesh-intelligence/pantry/internal/sqlite"
)

var (
	// configDir is set by the --config-dir flag.
	configDir string

	// dataDirFlag is set by the --data-dir flag and overrides config.yaml.
	dataDirFlag string

	// jsonOutput is set by the --json flag.
	jsonOutput bool

	// store is the attached persistence backend, initialized on startup.
	store *sqlite.Backend

	// repo holds the working repository, loaded from the store on startup.
	repo *repository.Repository
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pantry",
	Short: "Pantry is a food planning storage system",
	Long: `Pantry manages ingredients, recipes, and planned meals in a shared
repository with derived cost and nutrition tracking. It provides a CLI
for interacting with the pantry storage backend.`,
	SilenceUsage:       true,
	PersistentPreRunE:  openPantry,
	PersistentPostRunE: closePantry,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default: .pantry)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default: .pantry-db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(ingredientCmd)
	rootCmd.AddCommand(recipeCmd)
	rootCmd.AddCommand(mealCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(valueCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("pantry v0.1.0")
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize pantry storage",
	Long:  "Create configuration and data directories, then initialize the storage backend.",
	RunE: func(cmd *cobra.Command, args []string) error {
		// The backend is already attached by PersistentPreRunE.
		fmt.Fprintln(cmd.OutOrStdout(), "Pantry initialized successfully")
		return nil
	},
}

// openPantry loads config, attaches the backend, and loads the stored
// snapshot into a fresh repository.
func openPantry(cmd *cobra.Command, args []string) error {
	// Version needs no storage.
	if cmd.Name() == "version" {
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return fmt.Errorf("attach store: %w", err)
	}
	store = backend

	snapshot, err := store.Load()
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	repo = repository.New()
	if err := repo.Replace(snapshot); err != nil {
		return fmt.Errorf("restore repository: %w", err)
	}
	return nil
}

// closePantry detaches the store and releases resources.
func closePantry(cmd *cobra.Command, args []string) error {
	if store != nil {
		return store.Detach()
	}
	return nil
}

// persist saves the repository's current state through the store. Mutating
// commands call this before returning. The snapshot is taken outside the
// store so no repository lock is held during file I/O.
func persist() error {
	if err := store.Save(repo.Snapshot()); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
