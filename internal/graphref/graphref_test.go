package graphref

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantName    string
		wantVariant string
		wantErr     bool
	}{
		{name: "graph only", input: "products", wantName: "products", wantVariant: "current"},
		{name: "with variant", input: "products@staging", wantName: "products", wantVariant: "staging"},
		{name: "variant with slash", input: "my-graph@feature/login", wantName: "my-graph", wantVariant: "feature/login"},
		{name: "surrounding space", input: "  products@prod ", wantName: "products", wantVariant: "prod"},
		{name: "empty", input: "", wantErr: true},
		{name: "leading digit", input: "1graph", wantErr: true},
		{name: "empty variant", input: "products@", wantErr: true},
		{name: "two at signs", input: "a@b@c", wantErr: true},
		{name: "graph too long", input: "a1234567890123456789012345678901234567890123456789012345678901234", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)

				var invalid *InvalidRefError
				require.True(t, errors.As(err, &invalid))

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantName, ref.Name)
			require.Equal(t, tt.wantVariant, ref.Variant)
		})
	}
}

func TestRef_String(t *testing.T) {
	ref, err := Parse("products")
	require.NoError(t, err)
	require.Equal(t, "products@current", ref.String())
}

func TestValidateSubgraphName(t *testing.T) {
	require.NoError(t, ValidateSubgraphName("inventory"))
	require.NoError(t, ValidateSubgraphName("inventory_v2-beta"))
	require.Error(t, ValidateSubgraphName(""))
	require.Error(t, ValidateSubgraphName("has space"))
	require.Error(t, ValidateSubgraphName("dot.name"))
}
