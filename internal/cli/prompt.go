package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynform/internal/logx"
	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/policy"
	"github.com/goliatone/go-dynform/pkg/renderers/html"
	"github.com/goliatone/go-dynform/pkg/renderers/tui"
)

// NewPromptCommand creates the prompt command. driver is nil outside tests.
func NewPromptCommand(rootOpts *RootOptions) *cobra.Command {
	return newPromptCommand(rootOpts, nil)
}

func newPromptCommand(rootOpts *RootOptions, driver tui.PromptDriver) *cobra.Command {
	var pageSize int

	cmd := &cobra.Command{
		Use:           "prompt",
		Short:         "Fill the form interactively in the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			schema, err := doc.Schema()
			if err != nil {
				return err
			}
			controller, err := form.New(schema,
				form.WithDefaults(doc.Defaults),
				form.WithConfig(doc.Form),
				form.WithPolicy(policy.Dependencies()),
				form.WithLogger(logx.Log),
			)
			if err != nil {
				return err
			}

			session := tui.New(
				tui.WithPromptDriver(driver),
				tui.WithOutput(cmd.ErrOrStderr()),
				tui.WithPageSize(pageSize),
				tui.WithLogger(logx.Log),
			)
			record, err := session.Run(cmd.Context(), controller)
			if errors.Is(err, tui.ErrAborted) {
				return errors.New("aborted")
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(record)
			}
			for _, entry := range record.Ordered(schema) {
				if _, err := fmt.Fprintf(out, "%s: %s\n", entry.Label, html.FormatValue(entry.Value)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&pageSize, "page-size", 0, "options shown per page in select prompts")
	return cmd
}
