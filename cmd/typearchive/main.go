package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/uswitch/typearchive/pkg/accessor"
	"github.com/uswitch/typearchive/pkg/archive"
	"github.com/uswitch/typearchive/pkg/logging"
	"github.com/uswitch/typearchive/pkg/releases"
	"github.com/uswitch/typearchive/pkg/types"
)

var (
	releaseVersion string
	archiveFile    string
	logEnv         string
	logLevel       string

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "typearchive",
	Short:         "Build, inspect and publish the open metadata type archives",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(logEnv, logLevel)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync(logger)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&releaseVersion, "release", "r", "", "release version to use, the latest if empty")
	rootCmd.PersistentFlags().StringVarP(&archiveFile, "file", "f", "", "read the archive from this JSON or YAML file instead of building a release")
	rootCmd.PersistentFlags().StringVar(&logEnv, "log-env", logging.Production, "production or development logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "minimum level to log")
}

func formatOf(path string) (types.Format, error) {
	return types.ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

func readArchive(path string) (*types.Archive, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return types.DecodeArchive(f, format)
}

// loadArchive reads --file when given, otherwise builds --release.
func loadArchive() (*types.Archive, error) {
	if archiveFile != "" {
		return readArchive(archiveFile)
	}

	r, err := releases.Lookup(releaseVersion)
	if err != nil {
		return nil, err
	}

	return r.Archive(archive.WithLogger(logger))
}

func loadAccessor() (*accessor.Accessor, error) {
	a, err := loadArchive()
	if err != nil {
		return nil, err
	}

	return accessor.New(a)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
