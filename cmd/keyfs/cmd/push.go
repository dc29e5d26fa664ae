package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var pushCmd = &cobra.Command{
	Use:   "push [tags...]",
	Short: "Push a snapshot to the remote registry",
	Long:  "Push a snapshot of the whole store to the configured OCI remote, optionally to additional tags.",
	RunE:  runPush,
}

func init() {
	rootCmd.AddCommand(pushCmd)
}

func runPush(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, "Pushing...")
	if err := store.Push(context.Background(), args...); err != nil {
		return fmt.Errorf("push failed: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Done.")
	return nil
}
