package routingurl

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errRelativeURL = errors.New("relative URL without a base")
	errEmptyHost   = errors.New("empty host")
)

// ErrorKind categorizes why a routing URL check stopped the publish
type ErrorKind int

const (
	ErrorKindUnparsableURL ErrorKind = iota
	ErrorKindUnsupportedScheme
	ErrorKindUserCancelled
	ErrorKindIOFailure
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindUnparsableURL:
		return "unparsable url"
	case ErrorKindUnsupportedScheme:
		return "unsupported scheme"
	case ErrorKindUserCancelled:
		return "user cancelled"
	case ErrorKindIOFailure:
		return "io failure"
	}

	return "unknown"
}

// Suggestion is a remediation hint attached to a failure
type Suggestion int

const (
	SuggestionNone Suggestion = iota
	SuggestionAllowInvalidRoutingURLOrSpecifyValidURL
)

func (s Suggestion) String() string {
	switch s {
	case SuggestionAllowInvalidRoutingURLOrSpecifyValidURL:
		return "Try re-running this command with the `--allow-invalid-routing-url` flag, or set `--routing-url` to a valid URL."
	default:
		return ""
	}
}

// Error is returned for every failure of the routing URL check. Reason is
// plain text; use Render to highlight the URL for a particular output.
type Error struct {
	Kind       ErrorKind
	Reason     string
	URL        string
	Suggestion Suggestion
	Err        error
}

// Render returns the error text with the offending URL passed through link.
func (e *Error) Render(link func(string) string) string {
	msg := e.Error()
	if e.URL == "" || link == nil {
		return msg
	}

	quoted := "`" + e.URL + "`"

	return strings.Replace(msg, quoted, "`"+link(e.URL)+"`", 1)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}

	return e.Reason
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the same kind, so callers can use
// errors.Is(err, routingurl.ErrUserCancelled).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Reason == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrUnparsableURL     = &Error{Kind: ErrorKindUnparsableURL}
	ErrUnsupportedScheme = &Error{Kind: ErrorKindUnsupportedScheme}
	ErrUserCancelled     = &Error{Kind: ErrorKindUserCancelled}
	ErrIOFailure         = &Error{Kind: ErrorKindIOFailure}
)

const cancelledReason = "You cancelled a subgraph publish due to an invalid routing url."

func hardFailure(kind ErrorKind, url, reason string) *Error {
	return &Error{
		Kind:       kind,
		Reason:     reason,
		URL:        url,
		Suggestion: SuggestionAllowInvalidRoutingURLOrSpecifyValidURL,
	}
}

func ioFailure(op string, err error) *Error {
	return &Error{
		Kind:   ErrorKindIOFailure,
		Reason: "failed to " + op,
		Err:    err,
	}
}
