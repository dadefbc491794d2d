package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/uswitch/typearchive/pkg/releases"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check a release builds to the same archive every time",
	Long: `Builds the release twice and compares fingerprints. With --file the archive in the
file must also match the release's fingerprint.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := releases.Lookup(releaseVersion)
		if err != nil {
			return err
		}

		fingerprints := make([]string, 2)
		for idx := range fingerprints {
			a, err := r.Archive()
			if err != nil {
				return err
			}

			if fingerprints[idx], err = a.Fingerprint(); err != nil {
				return err
			}
		}

		if fingerprints[0] != fingerprints[1] {
			return fmt.Errorf("release %s is not reproducible: %s != %s", r.Version, fingerprints[0], fingerprints[1])
		}

		if archiveFile != "" {
			a, err := readArchive(archiveFile)
			if err != nil {
				return err
			}

			fingerprint, err := a.Fingerprint()
			if err != nil {
				return err
			}

			if fingerprint != fingerprints[0] {
				return fmt.Errorf("%s does not match release %s: %s != %s", archiveFile, r.Version, fingerprint, fingerprints[0])
			}
		}

		logger.Info("verified release", zap.String("version", r.Version), zap.String("fingerprint", fingerprints[0]))
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", fingerprints[0], r.Version)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
