package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"openwith/internal/assoc"
	"openwith/internal/xdg"
)

var listCmd = &cobra.Command{
	Use:   "list [mime|extension]",
	Short: "List handlers for a type, or every user association",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return listUserAssociations()
		}

		mime, err := normalizeMimeArg(args[0])
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		resolver, result, err := buildResolver(flagRefresh)
		if err != nil {
			return err
		}

		candidates := resolver.Resolve(mime, cfg.IncludeActions)
		if flagJSON {
			return printJSON(candidates)
		}
		if len(candidates) == 0 {
			fmt.Printf("No applications for %s\n", mime)
			return nil
		}

		for _, c := range candidates {
			mark := " "
			switch {
			case c.IsDefault:
				mark = "*"
			case c.XdgAssociated:
				mark = "+"
			}
			fmt.Printf("%s %-40s %s\n", mark, c.Name(), c.ID())
		}
		if result.Skipped > 0 {
			fmt.Printf("\n(%d desktop files skipped as unparseable)\n", result.Skipped)
		}
		return nil
	},
}

func listUserAssociations() error {
	list, err := assoc.LoadList(xdg.UserMimeappsPath())
	if err != nil {
		return err
	}
	keys := list.Keys()
	if len(keys) == 0 {
		fmt.Println("No user associations configured")
		return nil
	}
	for _, key := range keys {
		for i, id := range list.Handlers(key) {
			if i == 0 {
				fmt.Printf("%-40s %s\n", key, id)
			} else {
				fmt.Printf("%-40s %s\n", "", id)
			}
		}
	}
	return nil
}

func init() {
	listCmd.Flags().BoolVar(&flagJSON, "json", false, "print candidates as JSON")
	rootCmd.AddCommand(listCmd)
}
