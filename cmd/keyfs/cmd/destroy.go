package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var destroyCmd = &cobra.Command{
	Use:   "destroy",
	Short: "Delete the entire store",
	Long:  "Recursively delete the storage root and everything under it. Irreversible.",
	Args:  cobra.NoArgs,
	RunE:  runDestroy,
}

func init() {
	destroyCmd.Flags().Bool("yes", false, "skip confirmation")
	rootCmd.AddCommand(destroyCmd)
}

func runDestroy(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		fmt.Fprintf(os.Stderr, "destroy %s? [y/N] ", store.Root())
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			return nil
		}
	}

	existed, err := store.Destroy()
	if err != nil {
		return err
	}
	if !existed {
		fmt.Fprintln(os.Stderr, "(store did not exist)")
	}
	return nil
}
