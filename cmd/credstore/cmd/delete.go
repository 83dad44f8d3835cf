package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <ssid>",
	Short: "Delete the credential saved under an SSID",
	Long: `Delete the credential saved under an SSID.

Example:
  credstore delete home-wifi`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore(cmd)
		if err != nil {
			fmt.Printf("Error opening store: %v\n", err)
			return
		}

		if err := s.Delete(args[0]); err != nil {
			fmt.Printf("Error deleting credential: %v\n", err)
			return
		}

		fmt.Printf("Deleted credential for '%s' (%d entries)\n", args[0], s.Entries())
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
