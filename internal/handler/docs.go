package handler

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
)

//go:embed openapi.yaml
var openAPIDocument []byte

const docsPage = `<!DOCTYPE html>
<html>
<head>
  <title>` + serviceName + `</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>SwaggerUIBundle({url: "/api/docs-json", dom_id: "#swagger-ui"});</script>
</body>
</html>`

// loadOpenAPI parses and validates the embedded API description and returns it as JSON.
func loadOpenAPI(ctx context.Context) (json.RawMessage, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("load openapi: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi: %w", err)
	}
	return doc.MarshalJSON()
}

// registerDocs serves the Swagger UI at /api/docs and the document at /api/docs-json.
func (h *Handler) registerDocs(mux *runtime.ServeMux) error {
	body, err := loadOpenAPI(context.Background())
	if err != nil {
		return err
	}

	err = mux.HandlePath(http.MethodGet, "/api/docs-json", func(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
		h.write(w, http.StatusOK, body)
	})
	if err != nil {
		return err
	}
	return mux.HandlePath(http.MethodGet, "/api/docs", func(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(docsPage))
	})
}
