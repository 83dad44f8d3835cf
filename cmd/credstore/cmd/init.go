package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvkv/credstore/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an initial configuration file",
	Long: `Write an initial configuration file with a generated API key.

This command will:
- Create the configuration directory
- Generate a random API key for the HTTP surface
- Write the default backend configuration

Examples:
  credstore init
  credstore init --data-dir /var/lib/credstore --force`,
	// The root hook would fail while no config exists yet.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		force, _ := cmd.Flags().GetBool("force")

		if config.ConfigExists(cfgFile) && !force {
			fmt.Printf("Configuration already exists at %s. Use --force to overwrite.\n", cfgFile)
			return
		}

		bootstrapped, err := config.BootstrapConfig(cfgFile, dataDir)
		if err != nil {
			fmt.Printf("Error writing configuration: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Configuration written to %s\n", cfgFile)
		fmt.Printf("Backend: %s\n", bootstrapped.Backend)
		fmt.Printf("API key: %s\n", bootstrapped.APIKey)
		fmt.Printf("\nYou can now start the server with:\n")
		fmt.Printf("  credstore serve --config %s\n", cfgFile)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("data-dir", "./data", "Directory for backend data files")
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration")
}
