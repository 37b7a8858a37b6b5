package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynform/internal/logx"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Schema    string
	OpenAPI   string
	Operation string
	Defaults  string
	Format    string // "text" | "json"
	Debug     bool
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the dynform root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "dynform",
		Short: "Render and fill schema-driven forms",
		Long: `dynform builds a form from a field schema (YAML/JSON document or an
OpenAPI request body) and renders it as HTML, fills it in the terminal, or
serves it over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			logx.SetDebug(opts.Debug)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.Schema, "schema", "s", "", "form document (YAML or JSON)")
	cmd.PersistentFlags().StringVar(&opts.OpenAPI, "openapi", "", "OpenAPI document path or URL")
	cmd.PersistentFlags().StringVar(&opts.Operation, "operation", "", "OpenAPI operationId (default: first with a request body)")
	cmd.PersistentFlags().StringVar(&opts.Defaults, "defaults", "", "initial values (YAML or JSON)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "debug logging")

	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewPromptCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewOperationsCommand(opts))

	return cmd
}
