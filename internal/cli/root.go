// Package cli provides the portfolio command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"creativetech.dev/internal/config"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:           "portfolio",
		Short:         "Creative technology portfolio gallery",
		Long:          "Serves a filterable gallery of portfolio projects with live embedded demos.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./"+config.FileName+")")
	rootCmd.PersistentFlags().String("catalog-path", "", "path to the catalog YAML file")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")

	load := func(cmd *cobra.Command) (*config.Config, error) {
		return config.Load(cfgFile, cmd.Flags())
	}

	rootCmd.AddCommand(newServeCmd(load))
	rootCmd.AddCommand(newListCmd(load))
	rootCmd.AddCommand(newValidateCmd(load))
	rootCmd.AddCommand(newExportCmd(load))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

type configLoader func(cmd *cobra.Command) (*config.Config, error)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "portfolio %s (%s)\n", Version, GitCommit)
		},
	}
}
