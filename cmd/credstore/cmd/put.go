package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvkv/credstore/pkg/codec"
)

var putBSSID string

// putCmd represents the put command
var putCmd = &cobra.Command{
	Use:   "put <ssid> [passphrase]",
	Short: "Save a credential",
	Long: `Save a credential. An existing entry with the same SSID is replaced.

Examples:
  credstore put home-wifi hunter2
  credstore put home-wifi hunter2 --bssid de:ad:be:ef:00:01
  credstore put open-cafe`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		passphrase := ""
		if len(args) > 1 {
			passphrase = args[1]
		}

		bssid, err := parseBSSID(putBSSID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		s, err := openStore(cmd)
		if err != nil {
			fmt.Printf("Error opening store: %v\n", err)
			return
		}

		cred := codec.Credential{SSID: args[0], Passphrase: passphrase, BSSID: bssid}
		if err := s.Save(&cred); err != nil {
			fmt.Printf("Error saving credential: %v\n", err)
			return
		}

		fmt.Printf("Saved credential for '%s' (%d entries)\n", cred.SSID, s.Entries())
	},
}

func init() {
	rootCmd.AddCommand(putCmd)
	putCmd.Flags().StringVar(&putBSSID, "bssid", "", "Hardware address as colon-separated hex")
}
