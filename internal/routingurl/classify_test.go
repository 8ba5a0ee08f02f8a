package routingurl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantKind   Kind
		wantScheme string
		wantHost   string
	}{
		{name: "no scheme", input: "invalid-url", wantKind: KindUnparsable},
		{name: "empty string", input: "", wantKind: KindUnparsable},
		{name: "relative path", input: "/graphql", wantKind: KindUnparsable},
		{name: "bad percent escape", input: "http://example.com/%zz", wantKind: KindUnparsable},
		{name: "space in host", input: "http://exa mple.com", wantKind: KindUnparsable},
		{name: "http without host", input: "http://", wantKind: KindUnparsable},
		{name: "ftp", input: "ftp://invalid-scheme", wantKind: KindUnsupportedScheme, wantScheme: "ftp", wantHost: "invalid-scheme"},
		{name: "grpc", input: "grpc://products:4001", wantKind: KindUnsupportedScheme, wantScheme: "grpc", wantHost: "products"},
		{name: "host and port without scheme", input: "localhost:8000", wantKind: KindUnsupportedScheme, wantScheme: "localhost"},
		{name: "mailto", input: "mailto:ops@example.com", wantKind: KindUnsupportedScheme, wantScheme: "mailto"},
		{name: "localhost with port", input: "http://localhost:8000", wantKind: KindLocalHost, wantScheme: "http", wantHost: "localhost"},
		{name: "loopback https", input: "https://127.0.0.1/graphql", wantKind: KindLocalHost, wantScheme: "https", wantHost: "127.0.0.1"},
		{name: "other loopback address", input: "http://127.0.0.2:4000", wantKind: KindValidPublic, wantScheme: "http", wantHost: "127.0.0.2"},
		{name: "ipv6 loopback is not in the list", input: "http://[::1]:4000", wantKind: KindValidPublic, wantScheme: "http", wantHost: "::1"},
		{name: "uppercase localhost", input: "http://LOCALHOST:4000", wantKind: KindLocalHost, wantScheme: "http", wantHost: "localhost"},
		{name: "mixed case localhost", input: "http://LocalHost", wantKind: KindLocalHost, wantScheme: "http", wantHost: "localhost"},
		{name: "uppercase scheme", input: "HTTPS://Products.Example.COM", wantKind: KindValidPublic, wantScheme: "https", wantHost: "products.example.com"},
		{name: "shorthand loopback", input: "http://127.1:4000", wantKind: KindLocalHost, wantScheme: "http", wantHost: "127.0.0.1"},
		{name: "hex loopback", input: "http://0x7f.0.0.1", wantKind: KindLocalHost, wantScheme: "http", wantHost: "127.0.0.1"},
		{name: "octal loopback", input: "http://0177.0.0.01", wantKind: KindLocalHost, wantScheme: "http", wantHost: "127.0.0.1"},
		{name: "single number loopback", input: "http://2130706433/graphql", wantKind: KindLocalHost, wantScheme: "http", wantHost: "127.0.0.1"},
		{name: "trailing dot address", input: "http://127.0.0.1.:4000", wantKind: KindLocalHost, wantScheme: "http", wantHost: "127.0.0.1"},
		{name: "address out of range", input: "http://127.0.0.256", wantKind: KindUnparsable},
		{name: "too many address parts", input: "http://1.2.3.4.5", wantKind: KindUnparsable},
		{name: "empty address part", input: "http://127..1", wantKind: KindUnparsable},
		{name: "numeric-looking domain label", input: "http://api.v2.example", wantKind: KindValidPublic, wantScheme: "http", wantHost: "api.v2.example"},
		{name: "authority without slashes", input: "http:localhost:4000", wantKind: KindLocalHost, wantScheme: "http", wantHost: "localhost"},
		{name: "authority with one slash", input: "https:/products.example.com", wantKind: KindValidPublic, wantScheme: "https", wantHost: "products.example.com"},
		{name: "http with nothing after the colon", input: "http:", wantKind: KindUnparsable},
		{name: "unsupported scheme keeps numeric host", input: "ftp://1.2.3.999", wantKind: KindUnsupportedScheme, wantScheme: "ftp", wantHost: "1.2.3.999"},
		{name: "public https", input: "https://products.example.com/graphql", wantKind: KindValidPublic, wantScheme: "https", wantHost: "products.example.com"},
		{name: "public http", input: "http://10.0.0.5:4001", wantKind: KindValidPublic, wantScheme: "http", wantHost: "10.0.0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.input)

			assert.Equal(t, tt.wantKind, c.Kind, "kind for %q", tt.input)
			assert.Equal(t, tt.input, c.URL)

			if tt.wantKind == KindUnparsable {
				require.Error(t, c.Err)

				return
			}

			require.NoError(t, c.Err)
			assert.Equal(t, tt.wantScheme, c.Scheme)

			if tt.wantHost != "" {
				assert.Equal(t, tt.wantHost, c.Host)
			}
		})
	}
}

func TestClassifyCandidate(t *testing.T) {
	_, ok := ClassifyCandidate(nil)
	assert.False(t, ok, "absent candidate must be deferred")

	empty := ""
	c, ok := ClassifyCandidate(&empty)
	require.True(t, ok)
	assert.Equal(t, KindUnparsable, c.Kind)

	public := "https://products.example.com"
	c, ok = ClassifyCandidate(&public)
	require.True(t, ok)
	assert.Equal(t, KindValidPublic, c.Kind)
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnparsable, "unparsable"},
		{KindUnsupportedScheme, "unsupported scheme"},
		{KindLocalHost, "local host"},
		{KindValidPublic, "valid public"},
		{Kind(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}
