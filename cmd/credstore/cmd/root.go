package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nvkv/credstore/pkg/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "credstore",
	Short: "credstore - durable network credential store",
	Long: `credstore persists network credentials (SSID, passphrase, BSSID)
in byte-addressable non-volatile storage, with two interchangeable
backends: a linear byte arena with in-place free-space reuse, and a
cached key/value blob store.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if config.ConfigExists(cfgFile) {
			cfg, err = config.LoadConfig(cfgFile)
		} else {
			cfg, err = config.FromEnv()
		}
		return err
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.GetDefaultConfigPath(), "Path to the configuration file")
	rootCmd.PersistentFlags().String("backend", "", "Backend override: arena or blob")
}
