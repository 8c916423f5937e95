// Package cli implements the opvault command-line tree: a thin host around
// the read-only opvault/profile/keyring core.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kindahl/opvault/internal/logging"
)

var (
	cfgFile string
	verbose bool
	log     *logging.Logger
)

// rootCmd is the base command when opvault is called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "opvault",
	Short: "Read-only importer for 1Password Agile Keychain Cloud vaults",
}

// Execute runs the command tree. It is called by cmd/opvault's main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// ExecuteWithArgs runs the command tree against an explicit argument list
// rather than os.Args, for tests that invoke specific subcommands.
func ExecuteWithArgs(args []string) error {
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.opvault.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(unlockCmd)
	rootCmd.AddCommand(listCmd)
}

// initConfig wires viper's precedence chain: flag > env OPVAULT_* > config
// file > default. Flags are not bound into viper; resolvePassword checks the
// --password flag value itself and falls back to viper.GetString, which
// supplies the env and config-file tiers.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".opvault")
		}
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.SetEnvPrefix("opvault")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func initLogger() {
	log = logging.New(verbose)
}
