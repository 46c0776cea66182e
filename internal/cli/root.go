// Package cli implements the attachsearch command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	cfgPath  string
	dataDirs []string
	verbose  bool
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "attachsearch",
	Short: "Find which vehicles can be attached to each other",
	Long: `attachsearch reads a tree of vehicle definition XML files and answers
connector compatibility questions: which vehicles a given vehicle can be
attached to, and which vehicles can be attached to it.

Vehicle data is taken from --data, the ATTACHSEARCH_DATA_DIR environment
variable, or the data_dirs config key, in that order.`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to YAML config (default ./config.yaml, then ~/.config/attachsearch/config.yaml)")
	pf.StringSliceVarP(&dataDirs, "data", "d", nil, "vehicle data directory, file or glob (repeatable)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log every parsed file")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
