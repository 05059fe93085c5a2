package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"openwith/internal/sniff"
)

var mimeCmd = &cobra.Command{
	Use:   "mime <target>",
	Short: "Print the detected MIME type of a file or URI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := sniff.ResolveTarget(args[0])
		if err != nil {
			return err
		}
		mimeType, err := target.MimeType()
		if err != nil {
			return err
		}
		fmt.Println(mimeType)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mimeCmd)
}
