package main

import (
	"fmt"
	"path/filepath"

	"github.com/plus3/adventurer/assets"
	"github.com/spf13/cobra"
)

var (
	flagSrc string
	flagDst string
)

var resCmd = &cobra.Command{
	Use:   "res",
	Short: "Manage game resources",
}

var resSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Mirror the res/ tree into the resource root",
	Long: `Copies every file under --src into <dst>/res. Files already present at
the destination are kept. --dst defaults to the resource root.`,
	RunE: runResSync,
}

func init() {
	resSyncCmd.Flags().StringVar(&flagSrc, "src", "res", "Source resource tree")
	resSyncCmd.Flags().StringVar(&flagDst, "dst", "", "Output directory (default: resource root)")
	resCmd.AddCommand(resSyncCmd)
}

func runResSync(cmd *cobra.Command, args []string) error {
	dst := flagDst
	if dst == "" {
		dst = assets.Root(flagResDir)
	}
	dst = filepath.Join(dst, "res")

	stats, err := assets.Mirror(flagSrc, dst)
	if err != nil {
		return fmt.Errorf("res sync: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s: %d dirs, %d copied, %d skipped\n",
		flagSrc, dst, stats.Dirs, stats.Copied, stats.Skipped)
	return nil
}
