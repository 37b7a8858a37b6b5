package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynform/pkg/openapi"
)

// NewOperationsCommand creates the operations command.
func NewOperationsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "operations",
		Short:         "List OpenAPI operations that can back a form",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rootOpts.OpenAPI == "" {
				return errors.New("--openapi is required")
			}
			data, err := openapi.ReadSource(cmd.Context(), rootOpts.OpenAPI, nil)
			if err != nil {
				return err
			}
			ids, err := openapi.Operations(cmd.Context(), data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				return json.NewEncoder(out).Encode(ids)
			}
			for _, id := range ids {
				if _, err := fmt.Fprintln(out, id); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
