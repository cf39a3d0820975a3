package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/teenfaith/teenfaith/internal/registry"
	"github.com/teenfaith/teenfaith/internal/storage"
)

var resetCmdFlags struct {
	Yes bool
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all registered users",
	Long:  `This command wipes the user registry. Existing session cookies stay valid until they expire.`,
	RunE:  reset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetCmdFlags.Yes, "yes", false, "Confirm that all registered users should be deleted")

	rootCmd.AddCommand(resetCmd)
}

func reset(cmd *cobra.Command, _ []string) error {
	if !resetCmdFlags.Yes {
		return fmt.Errorf("refusing to delete all users without --yes")
	}

	cfg := loadConfig()

	kv, err := storage.New(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer kv.Close() //nolint:errcheck

	if err := registry.New(kv).Reset(cmd.Context()); err != nil {
		return err
	}

	log.Info("Successfully deleted all registered users")
	return nil
}
