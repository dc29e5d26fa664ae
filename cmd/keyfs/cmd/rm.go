package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <key>...",
	Short: "Remove documents",
	Long:  "Remove the documents stored under the given keys, cleaning up empty directories.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	for _, key := range args {
		removed, err := store.Remove(key)
		if err != nil {
			return err
		}
		if !removed {
			fmt.Printf("%s: not found\n", key)
		}
	}
	return nil
}
