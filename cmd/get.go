package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <mime|extension>",
	Short: "Print the default handler for a type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mime, err := normalizeMimeArg(args[0])
		if err != nil {
			return err
		}
		resolver, _, err := buildResolver(flagRefresh)
		if err != nil {
			return err
		}
		entry := resolver.DefaultFor(mime)
		if entry == nil {
			fmt.Printf("No default handler for %s\n", mime)
			return nil
		}
		fmt.Printf("%s (%s)\n", entry.Name, entry.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
