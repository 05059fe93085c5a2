package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"openwith/internal/assoc"
	"openwith/internal/config"
)

var removeCmd = &cobra.Command{
	Use:   "remove <mime|extension> <handler>",
	Short: "Remove one handler from a type's list",
	Long:  "Removes the handler from the MIME type's list. Removing an absent handler is a no-op; a type left with no handlers is dropped entirely.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mime, err := normalizeMimeArg(args[0])
		if err != nil {
			return err
		}
		return editUserList(func(e *assoc.Editor, cfg *config.Config) {
			e.Remove(mime, args[1], cfg.ExpandWildcards)
			fmt.Printf("Removed %s from %s\n", args[1], mime)
		})
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
