package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kindahl/opvault"
	"github.com/kindahl/opvault/errs"
)

var unlockPassword string

var unlockCmd = &cobra.Command{
	Use:   "unlock <vault-dir>",
	Short: "Open a vault and report how many folders and entries it holds",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]

		password, err := resolvePassword(unlockPassword)
		if err != nil {
			return err
		}

		vault, err := opvault.Open(dir, password)
		if err != nil {
			return describeOpenError(dir, err)
		}

		log.Info().
			Int("folders", len(vault.Catalog.Folders)).
			Int("entries", len(vault.Catalog.Entries)).
			Msg("vault unlocked")
		fmt.Printf("%d folders, %d entries\n", len(vault.Catalog.Folders), len(vault.Catalog.Entries))
		return nil
	},
}

func init() {
	unlockCmd.Flags().StringVar(&unlockPassword, "password", "", "master password (insecure; prefer OPVAULT_PASSWORD or the prompt)")
}

// describeOpenError logs a message that distinguishes the closed failure
// taxonomy, then returns a generic "vault open failed" error rather than
// the raw Go error string.
func describeOpenError(dir string, err error) error {
	switch {
	case errs.Is(err, errs.KindPassword):
		log.Error().Str("vault", dir).Msg("incorrect master password")
	case errs.Is(err, errs.KindFileNotFound):
		log.Error().Str("vault", dir).Err(err).Msg("required vault file is missing")
	case errs.Is(err, errs.KindFormat):
		log.Error().Str("vault", dir).Err(err).Msg("vault file is malformed")
	default:
		log.Error().Str("vault", dir).Err(err).Msg("failed to open vault")
	}
	return errors.New("vault open failed")
}
