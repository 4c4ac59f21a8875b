package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bierbaumtim/genphi/internal/codegen"
	"github.com/bierbaumtim/genphi/internal/ir"
	"github.com/bierbaumtim/genphi/internal/openapi"
	"github.com/bierbaumtim/genphi/internal/resolve"
	"github.com/bierbaumtim/genphi/internal/xsd"
)

// Source formats accepted by generate and validate.
const (
	SourceFormatXSD     = "xsd"
	SourceFormatOpenAPI = "openapi"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	SourceFormat string
	Inputs       []string
	Output       string
	UnitName     string
	TypePrefix   string
}

// GenerateResult is the success payload of the generate command.
type GenerateResult struct {
	Output   string `json:"output"`
	UnitName string `json:"unit_name"`
	RunToken string `json:"run_token"`
	Classes  int    `json:"classes"`
	Enums    int    `json:"enums"`
	Aliases  int    `json:"aliases,omitempty"`
	Unions   int    `json:"unions,omitempty"`
}

func (r GenerateResult) String() string {
	return fmt.Sprintf("Generated unit %s (%d classes, %d enums) -> %s",
		r.UnitName, r.Classes, r.Enums, r.Output)
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a Delphi unit from schema inputs",
		Long: `Generate a Delphi model unit from one or more schema documents.

XSD inputs may span multiple files sharing one type registry; OpenAPI
input is a single YAML or JSON document. The generated unit contains
enumerations, type aliases, union types and model classes with
constructors and destructors.`,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.SourceFormat, "source-format", SourceFormatXSD, "input schema format (xsd|openapi)")
	cmd.Flags().StringSliceVarP(&opts.Inputs, "input", "i", nil, "input schema file (repeatable)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output unit file")
	cmd.Flags().StringVar(&opts.UnitName, "unit-name", "", "Delphi unit name (defaults to the output base name)")
	cmd.Flags().StringVar(&opts.TypePrefix, "type-prefix", "", "prefix inserted into generated type names")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runGenerate(opts *GenerateOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	unitName := opts.UnitName
	if unitName == "" {
		unitName = strings.TrimSuffix(filepath.Base(opts.Output), filepath.Ext(opts.Output))
	}

	token, err := uuid.NewV7()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create run token", err)
	}

	genOpts := codegen.Options{
		UnitName:   unitName,
		TypePrefix: opts.TypePrefix,
		RunToken:   token.String(),
	}

	var unit codegen.Unit
	switch opts.SourceFormat {
	case SourceFormatXSD:
		unit, err = generateFromXSD(opts, formatter, genOpts)
	case SourceFormatOpenAPI:
		unit, err = generateFromOpenAPI(opts, formatter, genOpts)
	default:
		msg := fmt.Sprintf("unknown source format %q: must be %s or %s",
			opts.SourceFormat, SourceFormatXSD, SourceFormatOpenAPI)
		_ = formatter.Error("UNKNOWN_SOURCE_FORMAT", msg, nil)
		return NewExitError(ExitCommandError, msg)
	}
	if err != nil {
		return err
	}

	out, err := os.Create(opts.Output)
	if err != nil {
		msg := fmt.Sprintf("cannot create output file %s", opts.Output)
		_ = formatter.Error("UNWRITABLE_OUTPUT", msg, err.Error())
		return WrapExitError(ExitCommandError, msg, err)
	}
	defer out.Close()

	if err := codegen.NewGenerator().Generate(out, unit); err != nil {
		msg := "failed to write unit"
		_ = formatter.Error("WRITE_FAILED", msg, err.Error())
		return WrapExitError(ExitFailure, msg, err)
	}

	return formatter.Success(GenerateResult{
		Output:   opts.Output,
		UnitName: unitName,
		RunToken: genOpts.RunToken,
		Classes:  len(unit.Classes),
		Enums:    len(unit.Enums),
		Aliases:  len(unit.Aliases),
		Unions:   len(unit.Unions),
	})
}

func generateFromXSD(opts *GenerateOptions, formatter *OutputFormatter, genOpts codegen.Options) (codegen.Unit, error) {
	formatter.VerboseLog("Parsing %d schema file(s)", len(opts.Inputs))

	reg := xsd.NewRegistry()
	data, err := xsd.NewParser().ParseFiles(opts.Inputs, reg)
	if err != nil {
		return codegen.Unit{}, schemaError(formatter, err)
	}

	formatter.VerboseLog("Registered %d type(s)", reg.Len())

	rep := resolve.Build(ir.NewRun(), data, reg)
	return codegen.BuildUnit(rep, data.Documentation, genOpts), nil
}

func generateFromOpenAPI(opts *GenerateOptions, formatter *OutputFormatter, genOpts codegen.Options) (codegen.Unit, error) {
	if len(opts.Inputs) != 1 {
		msg := "openapi generation takes exactly one input document"
		_ = formatter.Error("TOO_MANY_INPUTS", msg, opts.Inputs)
		return codegen.Unit{}, NewExitError(ExitCommandError, msg)
	}

	doc, err := openapi.Load(opts.Inputs[0])
	if err != nil {
		return codegen.Unit{}, documentError(formatter, err)
	}

	formatter.VerboseLog("Collecting schemas from %s", opts.Inputs[0])

	classes, enums, err := openapi.NewCollector(doc, opts.TypePrefix).Collect()
	if err != nil {
		return codegen.Unit{}, documentError(formatter, err)
	}

	return codegen.FromDescriptors(classes, enums, genOpts), nil
}

// schemaError reports an XSD parse failure and maps it onto the exit
// code taxonomy.
func schemaError(formatter *OutputFormatter, err error) error {
	var pe *xsd.ParseError
	if errors.As(err, &pe) {
		_ = formatter.Error(string(pe.Code), pe.Error(), nil)
		if pe.Code == xsd.ErrCodeUnreadableFile {
			return WrapExitError(ExitCommandError, "schema parsing failed", err)
		}
		return WrapExitError(ExitFailure, "schema parsing failed", err)
	}
	_ = formatter.Error("PARSE_ERROR", err.Error(), nil)
	return WrapExitError(ExitFailure, "schema parsing failed", err)
}

// documentError reports an OpenAPI document failure.
func documentError(formatter *OutputFormatter, err error) error {
	var de *openapi.DocumentError
	if errors.As(err, &de) {
		_ = formatter.Error(string(de.Code), de.Error(), nil)
		switch de.Code {
		case openapi.ErrCodeUnreadableFile, openapi.ErrCodeUnsupportedFormat:
			return WrapExitError(ExitCommandError, "document loading failed", err)
		}
		return WrapExitError(ExitFailure, "document processing failed", err)
	}
	_ = formatter.Error("DOCUMENT_ERROR", err.Error(), nil)
	return WrapExitError(ExitFailure, "document processing failed", err)
}
