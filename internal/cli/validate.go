package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bierbaumtim/genphi/internal/openapi"
	"github.com/bierbaumtim/genphi/internal/xsd"
)

// ValidationIssue is one problem found in an input document.
type ValidationIssue struct {
	File    string `json:"file"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Files  int               `json:"files"`
	Issues []ValidationIssue `json:"issues,omitempty"`
}

func (r ValidationResult) String() string {
	if r.Valid {
		return fmt.Sprintf("%d file(s) valid", r.Files)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d issue(s) in %d file(s):", len(r.Issues), r.Files)
	for _, issue := range r.Issues {
		fmt.Fprintf(&b, "\n  %s [%s]: %s", issue.File, issue.Code, issue.Message)
	}
	return b.String()
}

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	SourceFormat string
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <input>...",
		Short: "Validate schema inputs without generating code",
		Long: `Parse schema documents and report problems without writing output.

Each input is checked independently; the command fails if any input
has issues. Faster than generate for development feedback.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.SourceFormat, "source-format", SourceFormatXSD, "input schema format (xsd|openapi)")

	return cmd
}

func runValidate(opts *ValidateOptions, inputs []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	var check func(path string) []ValidationIssue
	switch opts.SourceFormat {
	case SourceFormatXSD:
		check = validateSchemaFile
	case SourceFormatOpenAPI:
		check = validateDocumentFile
	default:
		msg := fmt.Sprintf("unknown source format %q: must be %s or %s",
			opts.SourceFormat, SourceFormatXSD, SourceFormatOpenAPI)
		_ = formatter.Error("UNKNOWN_SOURCE_FORMAT", msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	result := ValidationResult{Valid: true, Files: len(inputs)}
	for _, path := range inputs {
		formatter.VerboseLog("Validating %s", path)
		if issues := check(path); len(issues) > 0 {
			result.Valid = false
			result.Issues = append(result.Issues, issues...)
		}
	}

	if !result.Valid {
		if opts.Format == "json" {
			if err := formatter.Success(result); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(formatter.Writer, result)
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%d validation issue(s)", len(result.Issues)))
	}

	return formatter.Success(result)
}

// validateSchemaFile parses one XSD document against a throwaway
// registry.
func validateSchemaFile(path string) []ValidationIssue {
	reg := xsd.NewRegistry()
	if _, err := xsd.NewParser().ParseFile(path, reg); err != nil {
		return []ValidationIssue{schemaIssue(path, err)}
	}
	return nil
}

// validateDocumentFile loads one OpenAPI document and dry-runs the
// schema collector.
func validateDocumentFile(path string) []ValidationIssue {
	doc, err := openapi.Load(path)
	if err != nil {
		return []ValidationIssue{documentIssue(path, err)}
	}
	if _, _, err := openapi.NewCollector(doc, "").Collect(); err != nil {
		return []ValidationIssue{documentIssue(path, err)}
	}
	return nil
}

func schemaIssue(path string, err error) ValidationIssue {
	var pe *xsd.ParseError
	if errors.As(err, &pe) {
		return ValidationIssue{File: path, Code: string(pe.Code), Message: pe.Error()}
	}
	return ValidationIssue{File: path, Code: "PARSE_ERROR", Message: err.Error()}
}

func documentIssue(path string, err error) ValidationIssue {
	var de *openapi.DocumentError
	if errors.As(err, &de) {
		return ValidationIssue{File: path, Code: string(de.Code), Message: de.Error()}
	}
	return ValidationIssue{File: path, Code: "DOCUMENT_ERROR", Message: err.Error()}
}
