package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"openwith/internal/assoc"
	"openwith/internal/config"
)

var setCmd = &cobra.Command{
	Use:   "set <mime|extension> <handler>...",
	Short: "Make the given handler(s) the default for a type",
	Long:  "Replaces the handler list for a MIME type, wildcard pattern, or file extension. The first handler becomes the default.",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mime, err := normalizeMimeArg(args[0])
		if err != nil {
			return err
		}
		return editUserList(func(e *assoc.Editor, cfg *config.Config) {
			e.Set(mime, args[1:], cfg.ExpandWildcards)
			fmt.Printf("Set %s -> %v\n", mime, args[1:])
		})
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
}
