package cli

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"golang.org/x/term"
)

// resolvePassword returns the master password for a vault, preferring an
// explicit --password flag, then the OPVAULT_PASSWORD environment variable
// (bound into viper by initConfig's AutomaticEnv), then a "password" key in
// the config file read by viper, and finally an interactive, non-echoing
// prompt on stderr.
func resolvePassword(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if fromEnv := viper.GetString("password"); fromEnv != "" {
		return fromEnv, nil
	}

	fmt.Fprint(os.Stderr, "Master password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(pw), nil
}
