// Command opvault unlocks and inspects 1Password Agile Keychain Cloud
// vaults. All command-line parsing, sub-command dispatch, config-file
// loading, and environment-variable overrides are handled by the
// internal/cli package via Cobra and Viper.
package main

import "github.com/kindahl/opvault/internal/cli"

func main() { cli.Execute() }
