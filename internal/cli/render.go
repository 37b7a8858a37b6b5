package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynform/internal/logx"
	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/policy"
	"github.com/goliatone/go-dynform/pkg/renderers/html"
)

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	var page bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the form as HTML (or its controls as JSON)",
		Long: `Render the form once with its initial values.

Text format writes an HTML form fragment (a full page with --page); JSON
format writes the rendered control descriptions.`,
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

			controls := controller.Render()
			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(controls)
			}

			renderer, err := html.New()
			if err != nil {
				return err
			}
			body, err := renderer.RenderForm(controls, html.FormView{
				Action:      "/submit",
				EventPrefix: "/fields/",
				Config:      doc.Form,
			})
			if err != nil {
				return err
			}
			if page {
				body, err = renderer.RenderPage(html.PageView{Title: doc.Form.SubmitLabelOrDefault(), Form: body})
				if err != nil {
					return err
				}
			}
			_, err = out.Write(body)
			return err
		},
	}

	cmd.Flags().BoolVar(&page, "page", false, "wrap the form in a full HTML document")
	return cmd
}
