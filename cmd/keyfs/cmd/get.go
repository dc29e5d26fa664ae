package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a document",
	Long:  "Print the document stored under a key to stdout. Exits nonzero if the key is absent.",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	getCmd.Flags().Bool("etag", false, "print the etag to stderr")
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	doc, etag, err := store.Get(args[0])
	if err != nil {
		return err
	}
	if !doc.Valid() {
		return fmt.Errorf("%s: not found", args[0])
	}

	if showEtag, _ := cmd.Flags().GetBool("etag"); showEtag {
		fmt.Fprintln(os.Stderr, etag)
	}
	_, err = os.Stdout.Write(doc.Bytes())
	return err
}
