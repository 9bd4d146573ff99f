// Package cli wires the scrob subcommands.
package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/llehouerou/scrob/internal/config"
	"github.com/llehouerou/scrob/internal/errmsg"
	"github.com/llehouerou/scrob/internal/store"
)

var (
	cfgFile    string
	socketPath string
	dbPath     string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "scrob",
	Short: "Record listening history from a cmus control socket",
	Long: `Scrob polls a cmus control socket, decides when a play counts as a
genuine listen, and records each qualifying play exactly once in a local
sqlite database.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgFile != "" {
			cfg, err = config.LoadFrom(cfgFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
		}

		// Flags override config file values.
		if socketPath != "" {
			cfg.SocketPath = socketPath
		}
		if dbPath != "" {
			cfg.DBPath = dbPath
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.config/scrob/config.toml)")
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", "", "player control socket path")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "scrob database path")
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openStore opens the configured database, falling back to the XDG
// default location.
func openStore() (*store.Store, error) {
	path := cfg.DBPath
	if path == "" {
		var err error
		path, err = store.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return store.Open(path)
}
