package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"

	"github.com/keyfs/keyfs"
)

var importCmd = &cobra.Command{
	Use:   "import <dir> [prefix]",
	Short: "Bulk-load a directory tree",
	Long:  "Store every file under a local directory as a document, keyed by its relative path, optionally below a key prefix.",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().IntP("jobs", "j", 4, "parallel file readers")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	dir := args[0]
	prefix := ""
	if len(args) > 1 {
		prefix = args[1]
	}
	jobs, _ := cmd.Flags().GetInt("jobs")

	store, err := openStore()
	if err != nil {
		return err
	}

	var count atomic.Int64
	p := pool.New().WithMaxGoroutines(jobs).WithErrors()

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if prefix != "" {
			key = strings.Trim(prefix, "/") + "/" + key
		}

		p.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if _, err := store.Set(key, keyfs.NewDocument(data)); err != nil {
				return err
			}
			count.Add(1)
			return nil
		})
		return nil
	})
	if err != nil {
		return err
	}

	if err := p.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "imported %d documents\n", count.Load())
	return nil
}
