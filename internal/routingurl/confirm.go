package routingurl

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/inovacc/supergraph/internal/style"
)

// Terminal describes the session the protocol talks to. Interactive is true
// only when both input and output are attached to a terminal; the caller
// decides that, the protocol never probes it.
type Terminal struct {
	In          io.Reader
	Out         io.Writer
	Interactive bool
}

// Outcome is the terminal state of one confirmation run.
type Outcome int

const (
	OutcomeProceed Outcome = iota
	OutcomeProceedWithWarning
	OutcomeUserConfirmed
	OutcomeUserDeclined
	OutcomeHardFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeProceed:
		return "proceed"
	case OutcomeProceedWithWarning:
		return "proceed with warning"
	case OutcomeUserConfirmed:
		return "user confirmed"
	case OutcomeUserDeclined:
		return "user declined"
	case OutcomeHardFailed:
		return "hard failed"
	}

	return "unknown"
}

// Allowed reports whether the publish may go ahead.
func (o Outcome) Allowed() bool {
	return o == OutcomeProceed || o == OutcomeProceedWithWarning || o == OutcomeUserConfirmed
}

// Options configures Check.
type Options struct {
	Terminal

	// AllowInvalid skips classification and interaction entirely
	AllowInvalid bool

	Logger *slog.Logger
}

// Check classifies candidate and runs the confirmation protocol on it.
func Check(candidate string, opts Options) (Outcome, error) {
	if opts.AllowInvalid {
		return OutcomeProceed, nil
	}

	c := Classify(candidate)

	if opts.Logger != nil {
		if c.Err != nil {
			opts.Logger.Debug("parse error", slog.String("url", candidate), slog.String("error", c.Err.Error()))
		} else {
			opts.Logger.Debug("parsed URL", slog.String("url", candidate), slog.String("classification", c.Kind.String()))
		}
	}

	return Confirm(c, opts.Terminal)
}

func unparsableReason(link string) string {
	return fmt.Sprintf("`%s` is not a valid routing URL.", link)
}

func unsupportedSchemeReason(link, scheme string) string {
	return fmt.Sprintf(
		"`%s` is not a valid routing URL. The `%s` protocol is not supported by the router. Valid protocols are `http` and `https`.",
		link, scheme)
}

const unreachableSuffix = " Continuing the publish will make this subgraph unreachable by your supergraph. Would you still like to publish?"

// Confirm decides whether a classified URL may be published:
//
//	classification      interactive           non-interactive
//	unparsable          prompt                hard failure
//	unsupported scheme  prompt                hard failure
//	local host          prompt                warning, proceed
//	valid public        proceed               proceed
func Confirm(c Classification, t Terminal) (Outcome, error) {
	if t.Out == nil {
		t.Out = io.Discard
	}

	p := style.For(t.Out)

	switch c.Kind {
	case KindValidPublic:
		return OutcomeProceed, nil

	case KindUnparsable:
		if t.Interactive {
			return Prompt(unparsableReason(p.Paint(style.Link, c.URL))+unreachableSuffix, t)
		}

		return OutcomeHardFailed, hardFailure(ErrorKindUnparsableURL, c.URL, unparsableReason(c.URL))

	case KindUnsupportedScheme:
		if t.Interactive {
			return Prompt(unsupportedSchemeReason(p.Paint(style.Link, c.URL), c.Scheme)+unreachableSuffix, t)
		}

		return OutcomeHardFailed, hardFailure(ErrorKindUnsupportedScheme, c.URL, unsupportedSchemeReason(c.URL, c.Scheme))

	case KindLocalHost:
		reason := fmt.Sprintf(
			"The host `%s` is not routable via the public internet. Continuing the publish will make this subgraph reachable in local environments only.",
			c.Host)
		if t.Interactive {
			return Prompt(reason+" Would you still like to publish?", t)
		}

		if _, err := fmt.Fprintf(t.Out, "%s %s\n", p.Paint(style.WarningPrefix, "WARN:"), reason); err != nil {
			return OutcomeHardFailed, ioFailure("write warning", err)
		}

		return OutcomeProceedWithWarning, nil
	}

	return OutcomeHardFailed, fmt.Errorf("unknown routing URL classification %d", c.Kind)
}

// Prompt writes message followed by " [y/N] " and reads exactly one byte.
// Only y or Y confirms. Any other byte, or end of input, is a decline and is
// returned with ErrUserCancelled. There is no second attempt.
func Prompt(message string, t Terminal) (Outcome, error) {
	if t.Out == nil {
		t.Out = io.Discard
	}

	if _, err := fmt.Fprintf(t.Out, "%s [y/N] ", message); err != nil {
		return OutcomeHardFailed, ioFailure("write prompt", err)
	}

	var response [1]byte

	n := 0
	if t.In != nil {
		var err error

		n, err = io.ReadFull(t.In, response[:])
		if err != nil && !errors.Is(err, io.EOF) {
			return OutcomeHardFailed, ioFailure("read response", err)
		}
	}

	if n == 1 && (response[0] == 'y' || response[0] == 'Y') {
		return OutcomeUserConfirmed, nil
	}

	return OutcomeUserDeclined, &Error{Kind: ErrorKindUserCancelled, Reason: cancelledReason}
}
