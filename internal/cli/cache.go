package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mmcf/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the normalized network and artifact cache",
	}
	cmd.AddCommand(c.cacheClearCommand(), c.cacheInfoCommand(), c.cachePathCommand())
	return cmd
}

// openCache returns the file cache, or nil when nothing has been cached yet.
func openCache() (*cache.FileCache, string, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, "", fmt.Errorf("get cache dir: %w", err)
	}
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, dir, nil
	}
	fc, err := cache.NewFileCache(dir)
	return fc, dir, err
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	var expired bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached networks and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, dir, err := openCache()
			if err != nil {
				return err
			}
			if fc == nil {
				printInfo("Cache is empty")
				return nil
			}

			var n int
			if expired {
				n, err = fc.Prune()
			} else {
				n, err = fc.Clear()
			}
			if err != nil {
				return err
			}
			printSuccess("Removed %d cached entries", n)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
	cmd.Flags().BoolVar(&expired, "expired", false, "only remove expired or unreadable entries")
	return cmd
}

func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache location and size",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, dir, err := openCache()
			if err != nil {
				return err
			}
			var (
				entries int
				size    int64
			)
			if fc != nil {
				if entries, size, err = fc.Usage(); err != nil {
					return err
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "dir %s\n", dir)
			fmt.Fprintf(out, "entries %d\n", entries)
			fmt.Fprintf(out, "bytes %d\n", size)
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
