package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/gdsh/foundation/core/config"
	gdshlog "github.com/msto63/gdsh/foundation/core/log"
	"github.com/msto63/gdsh/foundation/shell/graph"
	"github.com/msto63/gdsh/internal/remote"
	"github.com/msto63/gdsh/internal/store/memory"
	"github.com/msto63/gdsh/internal/store/sqlite"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "gdsh",
	Short: "gdsh - a transactional shell for graph data",
	Long: `gdsh is a command shell for navigating and editing a graph of
nodes, properties and relationships. Every command runs in its own
transaction: it commits when the command succeeds and rolls back
when it fails.

Store backends:
  memory  - throwaway in-memory graph (default)
  sqlite  - persistent graph in a SQLite file
  remote  - graph served by "gdsh serve" over a websocket`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: discovered gdsh.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the configuration honoring the global flags
func loadConfig() (*config.Config, *gdshlog.Logger, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.Discover()
	}
	if err != nil {
		return nil, nil, err
	}

	if verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, cfg.NewLogger(), nil
}

// openStore opens the store backend the configuration selects
func openStore(cfg *config.Config) (graph.TraversalStore, error) {
	switch cfg.Store.Driver {
	case "memory":
		return memory.New(), nil
	case "sqlite":
		return sqlite.Open(cfg.Store.Path)
	case "remote":
		if strings.HasPrefix(cfg.Store.Addr, "ws://") || strings.HasPrefix(cfg.Store.Addr, "wss://") {
			return remote.DialURL(cfg.Store.Addr)
		}
		return remote.Dial(cfg.Store.Addr)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
}
