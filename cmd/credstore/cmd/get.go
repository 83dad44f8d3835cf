package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <ssid>",
	Short: "Print the credential saved under an SSID",
	Long: `Print the credential saved under an SSID.

Example:
  credstore get home-wifi`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openStore(cmd)
		if err != nil {
			fmt.Printf("Error opening store: %v\n", err)
			return
		}

		cred, err := s.Load(args[0])
		if err != nil {
			fmt.Printf("Error loading credential: %v\n", err)
			return
		}

		fmt.Printf("ssid: %s\n", cred.SSID)
		fmt.Printf("passphrase: %s\n", cred.Passphrase)
		fmt.Printf("bssid: %s\n", formatBSSID(cred.BSSID))
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
