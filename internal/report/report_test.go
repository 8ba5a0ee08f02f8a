package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/inovacc/supergraph/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatPlain},
		{in: "plain", want: FormatPlain},
		{in: "JSON", want: FormatJSON},
		{in: "yml", want: FormatYAML},
		{in: "toml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_String(t *testing.T) {
	assert.Equal(t, "plain", FormatPlain.String())
	assert.Equal(t, "json", FormatJSON.String())
	assert.Equal(t, "yaml", FormatYAML.String())
	assert.Equal(t, "Format(9)", Format(9).String())
}

func TestWrite_Plain(t *testing.T) {
	tests := []struct {
		name     string
		resp     *client.PublishResponse
		contains []string
		excludes []string
	}{
		{
			name: "created",
			resp: &client.PublishResponse{SubgraphWasCreated: true, SupergraphWasUpdated: true},
			contains: []string{
				"A new subgraph called 'products' was created in 'my-graph@current'",
				"The supergraph schema for 'my-graph@current' was updated, composed from the updated 'products' subgraph",
			},
			excludes: []string{"WARN"},
		},
		{
			name: "updated without supergraph change",
			resp: &client.PublishResponse{SubgraphWasUpdated: true},
			contains: []string{
				"The 'products' subgraph in 'my-graph@current' was updated",
				"was NOT updated with a new schema",
			},
		},
		{
			name:     "no change",
			resp:     &client.PublishResponse{},
			contains: []string{"The 'products' subgraph was NOT updated because the schema is identical"},
		},
		{
			name: "build errors and launch",
			resp: &client.PublishResponse{
				SubgraphWasUpdated: true,
				BuildErrors: []client.BuildError{
					{Message: "Field Query.a conflicts", Code: "FIELD_TYPE_MISMATCH"},
					{Message: "uncoded"},
				},
				LaunchCLICopy: "A launch was started.",
				LaunchURL:     "https://studio.example.com/launches/1",
			},
			contains: []string{
				"WARN: The following build errors occurred:",
				"  FIELD_TYPE_MISMATCH: Field Query.a conflicts\n",
				"  uncoded\n",
				"A launch was started.\n",
				"Monitor your schema delivery progress on Studio: https://studio.example.com/launches/1",
			},
		},
		{
			name:     "nil response",
			resp:     nil,
			contains: []string{"was NOT updated because the schema is identical"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			err := Write(&buf, FormatPlain, Publish{GraphRef: "my-graph@current", Subgraph: "products", Response: tt.resp})
			require.NoError(t, err)

			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}

			for _, s := range tt.excludes {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

func TestWrite_Structured(t *testing.T) {
	doc := Publish{
		GraphRef: "my-graph@current",
		Subgraph: "products",
		Response: &client.PublishResponse{
			APISchemaHash:      "abc123",
			SubgraphWasUpdated: true,
			BuildErrors:        []client.BuildError{{Message: "boom"}},
		},
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, FormatJSON, doc))

		var got map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "products", got["subgraph"])

		resp := got["publish_response"].(map[string]any)
		assert.Equal(t, "abc123", resp["api_schema_hash"])
		assert.Equal(t, true, resp["subgraph_was_updated"])
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, FormatYAML, doc))

		var got Publish
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "my-graph@current", got.GraphRef)
		require.NotNil(t, got.Response)
		assert.Equal(t, "boom", got.Response.BuildErrors[0].Message)
		assert.Contains(t, buf.String(), "graph_ref: my-graph@current")
	})
}
