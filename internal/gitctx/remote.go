package gitctx

import (
	"net/url"
	"strings"
)

// parseRemote normalizes git remote URLs, including scp-like syntax
// (git@github.com:owner/repo.git), into a *url.URL.
func parseRemote(raw string) (*url.URL, error) {
	if !hasScheme(raw) &&
		strings.ContainsRune(raw, ':') &&
		// not a Windows path
		!strings.ContainsRune(raw, '\\') {
		raw = "ssh://" + strings.Replace(raw, ":", "/", 1)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}

	switch u.Scheme {
	case "git+https":
		u.Scheme = "https"
	case "git+ssh":
		u.Scheme = "ssh"
	}

	if u.Scheme == "ssh" && strings.HasPrefix(u.Path, "//") {
		u.Path = strings.TrimPrefix(u.Path, "/")
	}

	return u, nil
}

func hasScheme(raw string) bool {
	for _, prefix := range []string{"ssh:", "git+ssh:", "git:", "http:", "https:", "git+https:", "ftp:", "ftps:", "file:"} {
		if strings.HasPrefix(raw, prefix) {
			return true
		}
	}

	return false
}

// sanitizeRemote drops credentials from a remote before it leaves the
// machine. Only the conventional "git" ssh user survives; query strings and
// fragments are removed. Unparsable remotes are dropped entirely.
func sanitizeRemote(remote string) string {
	u, err := parseRemote(remote)
	if err != nil || u.Host == "" {
		return ""
	}

	clean := &url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}

	if u.Scheme == "ssh" && u.User != nil && u.User.Username() == "git" {
		clean.User = url.User("git")
	}

	return clean.String()
}
