package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/keyfs/keyfs"
)

var setCmd = &cobra.Command{
	Use:   "set <key> [file]",
	Short: "Store a document",
	Long:  "Store a document under a key, reading it from a file or from stdin.",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	if len(args) > 1 {
		data, err = os.ReadFile(args[1])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	etag, err := store.Set(args[0], keyfs.NewDocument(data))
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%s\t%s\n", args[0], etag)
	return nil
}
