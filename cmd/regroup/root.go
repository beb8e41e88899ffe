package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	opts := &runOptions{}

	rootCmd := &cobra.Command{
		Use:   "regroup [flags] FILE...",
		Short: "Reconstruct original media from fragmented downloads",
		Long: "regroup inspects a pile of unlabeled media fragments, matches the\n" +
			"pieces that came from the same original post, and reassembles each\n" +
			"one into a playable file with a thumbnail and a metadata report.",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	rootCmd.Flags().StringVarP(&opts.outDir, "out-dir", "o", "", "Output directory (default: current directory)")
	rootCmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Configuration file path")
	rootCmd.Flags().IntVar(&opts.workers, "workers", 0, "Assembly worker count (0 selects one per CPU)")

	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}
