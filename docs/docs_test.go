package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

type operation struct {
	Tags    []string `json:"tags"`
	Summary string   `json:"summary"`
}

func readPaths(t *testing.T) map[string]map[string]operation {
	t.Helper()
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Paths map[string]map[string]operation `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc.Paths
}

func TestDocMatchesHandlerAnnotations(t *testing.T) {
	paths := readPaths(t)

	cases := []struct {
		path, method, tag, summary string
	}{
		{"/api/login", "post", "Authentication", "Login user"},
		{"/api/milestones/periods", "get", "milestones", "List work periods and their milestone counts"},
		{"/api/milestones/validate", "post", "milestones", "Check that milestone quantities reconcile with the total"},
		{"/api/works", "post", "works", "Create a work package with its components and milestones"},
		{"/api/works/{id}", "get", "works", "Get work package by ID"},
		{"/api/works/{id}/qr", "get", "export", "Generate a labelled QR code for a work package"},
		{"/api/units/{id}", "delete", "units", "Delete unit"},
	}
	for _, tc := range cases {
		op, ok := paths[tc.path][tc.method]
		require.True(t, ok, "%s %s missing", tc.method, tc.path)
		assert.Equal(t, []string{tc.tag}, op.Tags, tc.path)
		assert.Equal(t, tc.summary, op.Summary, tc.path)
	}
}
