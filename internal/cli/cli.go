// Package cli implements the skelgraph command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/skelgraph/pkg/buildinfo"
	"github.com/matzehuels/skelgraph/pkg/cache"
	"github.com/matzehuels/skelgraph/pkg/observability"
	"github.com/matzehuels/skelgraph/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "skelgraph"

	// redisKeyPrefix scopes artifact keys in a shared Redis instance.
	redisKeyPrefix = appName + ":"
)

// Environment variables read by the CLI.
const (
	envRedisAddr = "SKELGRAPH_REDIS_ADDR"
	envMongoURI  = "SKELGRAPH_MONGO_URI"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger and registers
// logging observability hooks on it.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}
	hooks := &logHooks{logger: c.Logger}
	observability.SetCacheHooks(hooks)
	observability.SetRenderHooks(hooks)
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Skelgraph inspects and edits sparse skeleton graphs",
		Long:         `Skelgraph works with sparse skeleton graphs: 3-D vertices joined by undirected edges, as extracted from volumetric maps. It loads, edits, transforms, renders, stores and serves them.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.infoCommand())
	root.AddCommand(c.transformCommand())
	root.AddCommand(c.pruneCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Backend Factories
// =============================================================================

// newCache picks the artifact cache: none with noCache, Redis when an
// address is given (flag or SKELGRAPH_REDIS_ADDR), otherwise the file cache.
// A failing file cache degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool, redisAddr string) (cache.Cache, cache.Keyer, error) {
	if noCache {
		return cache.NewNullCache(), nil, nil
	}
	if redisAddr == "" {
		redisAddr = os.Getenv(envRedisAddr)
	}
	if redisAddr != "" {
		rc, err := cache.DialRedis(ctx, redisAddr)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis %s: %w", redisAddr, err)
		}
		c.Logger.Debug("using redis cache", "addr", redisAddr)
		return rc, cache.NewScopedKeyer(nil, redisKeyPrefix), nil
	}

	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil, nil
	}
	return fc, nil, nil
}

// newStore opens MongoDB when a URI is given (flag or SKELGRAPH_MONGO_URI),
// otherwise the file store under the data directory.
func (c *CLI) newStore(ctx context.Context, mongoURI string) (store.Store, error) {
	if mongoURI == "" {
		mongoURI = os.Getenv(envMongoURI)
	}
	if mongoURI != "" {
		return store.NewMongoStore(ctx, store.MongoConfig{URI: mongoURI}, c.Logger)
	}
	dir, err := dataDir()
	if err != nil {
		return nil, fmt.Errorf("get data dir: %w", err)
	}
	return store.NewFileStore(filepath.Join(dir, "snapshots"), c.Logger)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/skelgraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// dataDir returns the data directory using XDG standard (~/.local/share/skelgraph/).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}
