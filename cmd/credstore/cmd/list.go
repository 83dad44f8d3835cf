package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listShowSecrets bool

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved credentials",
	Long: `List saved credentials in the backend's iteration order: physical
layout order for the arena backend, SSID-sorted for the blob backend.

Example:
  credstore list --secrets`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore(cmd)
		if err != nil {
			fmt.Printf("Error opening store: %v\n", err)
			return
		}

		creds, err := s.All()
		if err != nil {
			fmt.Printf("Error listing credentials: %v\n", err)
			return
		}

		for i, cred := range creds {
			if listShowSecrets {
				fmt.Printf("%3d  %-32s %s  %s\n", i, cred.SSID, formatBSSID(cred.BSSID), cred.Passphrase)
			} else {
				fmt.Printf("%3d  %-32s %s\n", i, cred.SSID, formatBSSID(cred.BSSID))
			}
		}
		fmt.Printf("%d entries\n", len(creds))
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listShowSecrets, "secrets", false, "Include passphrases in the listing")
}
