package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Pull a snapshot from the remote registry",
	Long:  "Replace the local store contents with the snapshot at the configured OCI remote.",
	Args:  cobra.NoArgs,
	RunE:  runPull,
}

func init() {
	rootCmd.AddCommand(pullCmd)
}

func runPull(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, "Pulling...")
	if err := store.Pull(context.Background()); err != nil {
		return fmt.Errorf("pull failed: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Done.")
	return nil
}
