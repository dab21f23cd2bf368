package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/reflectkit/pkg/logger"
	"github.com/dmitrymomot/reflectkit/pkg/validator"
)

var errDocumentInvalid = errors.New("document is invalid")

type validationReport struct {
	Valid  bool                `yaml:"valid"`
	Errors []validationFailure `yaml:"errors,omitempty"`
}

type validationFailure struct {
	Field   string `yaml:"field"`
	Message string `yaml:"message"`
}

func newValidateCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "validate <rules.yaml> <document.yaml>",
		Short: "Validate a YAML document against a rule set",
		Long: `The validate command applies a rule set to a YAML document. Rule paths
such as "Stay.Nights" are resolved against the document's mappings.

Rule set example:
  name: booking
  fields:
    - path: Guests
      rules:
        - name: empty
    - path: Stay.Nights
      display: Number of nights
      rules:
        - name: notinrange
          params: [7, 13]

The command exits with status 1 when the document is invalid.

Example:
  reflectkit validate rules.yaml booking.yaml
  reflectkit validate rules.yaml booking.yaml --format yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(cmd, args[0], args[1], format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or yaml")
	return cmd
}

func (a *app) runValidate(cmd *cobra.Command, rulesPath, docPath, format string) error {
	ctx := cmd.Context()

	if format != "text" && format != "yaml" {
		return fmt.Errorf("unknown output format: %s (must be text or yaml)", format)
	}

	rs, err := validator.LoadRuleSet(rulesPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(docPath)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode document %s: %w", docPath, err)
	}

	err = rs.Validate(doc, validator.WithLogger(a.log))
	if err != nil && !validator.IsValidationError(err) {
		return err
	}

	report := validationReport{Valid: err == nil}
	for _, verr := range validator.ExtractValidationErrors(err) {
		report.Errors = append(report.Errors, validationFailure{Field: verr.Field, Message: verr.Message})
	}
	a.log.InfoContext(ctx, "document validated",
		logger.Path(docPath),
		logger.Rule(rs.Name),
		slog.Int("failures", len(report.Errors)),
	)

	if err := writeReport(cmd, report, format); err != nil {
		return err
	}
	if !report.Valid {
		return errDocumentInvalid
	}
	return nil
}

func writeReport(cmd *cobra.Command, report validationReport, format string) error {
	w := cmd.OutOrStdout()
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	}

	if report.Valid {
		_, err := fmt.Fprintln(w, "valid")
		return err
	}
	for _, f := range report.Errors {
		if _, err := fmt.Fprintf(w, "%s: %s\n", f.Field, f.Message); err != nil {
			return err
		}
	}
	return nil
}
