package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynform/internal/logx"
	"github.com/goliatone/go-dynform/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		addr    string
		title   string
		origins []string
	)

	cmd := &cobra.Command{
		Use:           "serve",
		Short:         "Serve the form over HTTP",
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
			srv, err := server.New(schema,
				server.WithConfig(server.Config{
					Title:          title,
					AllowedOrigins: origins,
					Defaults:       doc.Defaults,
					Form:           doc.Form,
				}),
				server.WithLogger(logx.Log),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&title, "title", "", "page title")
	cmd.Flags().StringSliceVar(&origins, "cors-origin", nil, "allowed CORS origins")
	return cmd
}
