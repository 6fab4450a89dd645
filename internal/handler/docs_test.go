package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAPI_DescribesEveryRoute(t *testing.T) {
	raw, err := loadOpenAPI(context.Background())
	require.NoError(t, err)

	doc, err := openapi3.NewLoader().LoadFromData(raw)
	require.NoError(t, err)

	h := &Handler{}
	for _, group := range [][]endpoint{
		h.appRoutes(),
		h.configRoutes(),
		h.interviewRoutes(),
		h.resultRoutes(),
		h.reportRoutes(),
		h.questionRoutes(),
	} {
		for _, e := range group {
			item := doc.Paths.Value(e.pattern)
			if assert.NotNil(t, item, e.pattern) {
				assert.NotNil(t, item.GetOperation(e.method), "%s %s", e.method, e.pattern)
			}
		}
	}
}

func TestDocsRoutes(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/docs-json", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "3.0.3", body["openapi"])
	assert.Contains(t, body["paths"], "/api/questions/{id}")

	rec = f.do(http.MethodGet, "/api/docs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "/api/docs-json")
}
