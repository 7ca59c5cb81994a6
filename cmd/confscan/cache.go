package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"confscan/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Show or clear the parsed-tree disk cache",
	Args:  cobra.NoArgs,
	RunE:  runCache,
}

func init() {
	cacheCmd.Flags().Bool("drop", false, "remove every cached tree")
}

func runCache(cmd *cobra.Command, args []string) error {
	drop, err := cmd.Flags().GetBool("drop")
	if err != nil {
		return fmt.Errorf("failed to get drop flag: %w", err)
	}

	cache, err := driver.OpenDiskCache("confscan")
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}

	if drop {
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to drop cache: %w", err)
		}
		fmt.Fprintf(os.Stdout, "cache dropped: %s\n", cache.Dir())
		return nil
	}

	files, bytes, err := cache.Stats()
	if err != nil {
		return fmt.Errorf("failed to stat cache: %w", err)
	}
	fmt.Fprintf(os.Stdout, "location: %s\n", cache.Dir())
	fmt.Fprintf(os.Stdout, "trees:    %d\n", files)
	fmt.Fprintf(os.Stdout, "size:     %s\n", humanBytes(bytes))
	return nil
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
