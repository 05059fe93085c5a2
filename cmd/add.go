package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"openwith/internal/assoc"
	"openwith/internal/config"
)

var addCmd = &cobra.Command{
	Use:   "add <mime|extension> <handler>",
	Short: "Append a handler for a type without changing the default",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mime, err := normalizeMimeArg(args[0])
		if err != nil {
			return err
		}
		return editUserList(func(e *assoc.Editor, cfg *config.Config) {
			e.Add(mime, args[1], cfg.ExpandWildcards)
			fmt.Printf("Added %s -> %s\n", mime, args[1])
		})
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
