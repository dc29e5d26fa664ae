package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "List keys",
	Long:  "List the keys under a path (default: the whole store).",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolP("recursive", "r", true, "descend into subdirectories")
	listCmd.Flags().Bool("values", false, "print etag and size per key")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	recursive, _ := cmd.Flags().GetBool("recursive")
	values, _ := cmd.Flags().GetBool("values")

	store, err := openStore()
	if err != nil {
		return err
	}

	count := 0
	if values {
		entries, err := store.Entries(path, recursive)
		if err != nil {
			return err
		}
		for entry, err := range entries {
			if err != nil {
				return err
			}
			fmt.Printf("%s\t%s\t%d\n", entry.Key, entry.Etag, entry.Document.Len())
			count++
		}
	} else {
		keys, err := store.Keys(path, recursive)
		if err != nil {
			return err
		}
		for key, err := range keys {
			if err != nil {
				return err
			}
			fmt.Println(key)
			count++
		}
	}

	if count == 0 {
		fmt.Println("(no entries)")
	}
	return nil
}
