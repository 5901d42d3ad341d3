package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/skelgraph/pkg/cache"
)

// cacheCommand groups the render cache maintenance subcommands.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
		Long: `Manage the rendered artifact cache.

Renders are cached under the user cache directory, or in Redis when --redis or
` + envRedisAddr + ` is set. Entries are keyed by graph contents, so a stale
drawing is never served; clearing only frees space.`,
	}
	cmd.AddCommand(c.cacheClearCommand(), c.cachePathCommand())
	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	var redisAddr string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all cached renders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if redisAddr == "" {
				redisAddr = os.Getenv(envRedisAddr)
			}
			if redisAddr != "" {
				return c.clearRedis(cmd, redisAddr)
			}
			return clearFileCache()
		},
	}
	cmd.Flags().StringVar(&redisAddr, "redis", "", "clear the shared Redis cache at this address (env "+envRedisAddr+")")
	return cmd
}

func clearFileCache() error {
	dir, err := cacheDir()
	if err != nil {
		return fmt.Errorf("cache dir: %w", err)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}
	n, err := fc.Clear()
	if err != nil {
		return err
	}
	if n == 0 {
		printInfo("No cached renders in %s", dir)
		return nil
	}
	printSuccess("Removed %d cached renders", n)
	printDetail("%s", dir)
	return nil
}

// clearRedis removes only keys under this tool's prefix, leaving other users
// of the same Redis database alone.
func (c *CLI) clearRedis(cmd *cobra.Command, addr string) error {
	rc, err := cache.DialRedis(cmd.Context(), addr)
	if err != nil {
		return fmt.Errorf("connect redis %s: %w", addr, err)
	}
	defer rc.Close()

	n, err := rc.ClearPrefix(cmd.Context(), redisKeyPrefix)
	if err != nil {
		return err
	}
	c.Logger.Debug("redis cache cleared", "addr", addr, "prefix", redisKeyPrefix, "keys", n)
	printSuccess("Removed %d cached renders from %s", n, addr)
	return nil
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
