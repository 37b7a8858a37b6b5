package cli

import (
	"context"
	"errors"

	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/openapi"
)

// ErrNoSource is returned when neither --schema nor --openapi is set.
var ErrNoSource = errors.New("one of --schema or --openapi is required")

// loadDocument resolves the form document from the root flags. Values from
// --defaults override defaults declared by the document.
func loadDocument(ctx context.Context, opts *RootOptions) (model.Document, error) {
	var (
		doc model.Document
		err error
	)
	switch {
	case opts.OpenAPI != "":
		var data []byte
		data, err = openapi.ReadSource(ctx, opts.OpenAPI, nil)
		if err != nil {
			return model.Document{}, err
		}
		doc, err = openapi.DocumentFromOpenAPI(ctx, data, opts.Operation)
	case opts.Schema != "":
		doc, err = model.LoadDocumentFile(opts.Schema)
	default:
		return model.Document{}, ErrNoSource
	}
	if err != nil {
		return model.Document{}, err
	}

	if opts.Defaults != "" {
		defaults, err := model.LoadDefaultsFile(opts.Defaults)
		if err != nil {
			return model.Document{}, err
		}
		if doc.Defaults == nil {
			doc.Defaults = make(map[string]any, len(defaults))
		}
		for key, value := range defaults {
			doc.Defaults[key] = value
		}
	}
	return doc, nil
}
