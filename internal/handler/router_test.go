package handler

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"testing"

	_ "WorkshopMapDashboard/docs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

var ginParam = regexp.MustCompile(`:([A-Za-z_]+)`)

func TestOpenAPIDocumentCoversRoutes(t *testing.T) {
	doc, err := swag.ReadDoc()
	require.NoError(t, err)

	var parsed struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	env := newEnv(t, http.StatusOK)
	routes := env.router.Routes()
	require.NotEmpty(t, routes)
	for _, r := range routes {
		path := ginParam.ReplaceAllString(r.Path, "{$1}")
		ops, ok := parsed.Paths[path]
		if !assert.True(t, ok, "route %s %s is not documented", r.Method, r.Path) {
			continue
		}
		_, ok = ops[strings.ToLower(r.Method)]
		assert.True(t, ok, "method %s of %s is not documented", r.Method, path)
	}
}
