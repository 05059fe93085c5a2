package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"openwith/internal/assoc"
	"openwith/internal/config"
)

var unsetCmd = &cobra.Command{
	Use:   "unset <mime|extension>",
	Short: "Drop every handler override for a type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mime, err := normalizeMimeArg(args[0])
		if err != nil {
			return err
		}
		return editUserList(func(e *assoc.Editor, cfg *config.Config) {
			e.Unset(mime, cfg.ExpandWildcards)
			fmt.Printf("Unset %s\n", mime)
		})
	},
}

func init() {
	rootCmd.AddCommand(unsetCmd)
}
