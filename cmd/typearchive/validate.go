package main

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/uswitch/typearchive/pkg/validate"
)

type validateResult struct {
	Line int `json:"line"`
	*validate.Report
	Error string `json:"error,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate JSON lines metadata instances against the archive's types",
	Long: `Reads one instance per line from stdin, for example

  {"metadata": {"type": "Asset"}, "properties": {"qualifiedName": "db.orders"}}

and writes one JSON report per line. Fails if any instance is invalid.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		acc, err := loadAccessor()
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		invalid := 0
		line := 0

		scanner := bufio.NewScanner(cmd.InOrStdin())
		scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

		for scanner.Scan() {
			line++
			text := scanner.Bytes()

			if len(text) == 0 {
				continue
			}

			result := validateResult{Line: line}

			inst, err := validate.Parse(text)
			if err == nil {
				result.Report, err = validate.Validate(acc, inst)
			}

			if err != nil {
				result.Error = err.Error()
				invalid++
			} else if !result.Report.Valid() {
				invalid++
			}

			logger.Debug("validated instance", zap.Int("line", line), zap.Int("invalid", invalid))

			if err := enc.Encode(result); err != nil {
				return err
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading standard input: %w", err)
		}

		if invalid > 0 {
			return fmt.Errorf("%d of %d instances are invalid", invalid, line)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
