package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"openwith/internal/cache"
)

var clearCacheCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Delete the desktop entry cache",
	Long:  "Deletes the cached entry snapshot. The next invocation rescans every search directory and writes a fresh snapshot.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cache.Default()
		if err := c.Clear(); err != nil {
			return err
		}
		fmt.Printf("Cleared %s\n", c.Path())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCacheCmd)
}
