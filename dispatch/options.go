package dispatch

import (
	"github.com/wippyai/codec-dispatch/errors"
)

// UnknownPolicy decides how selectors without a bound entry are served.
type UnknownPolicy uint8

const (
	// UnknownUnsupported fails them with errors.Unsupported.
	UnknownUnsupported UnknownPolicy = iota
	// UnknownDelegate forwards them to the base implementation, which
	// must implement Forwarder.
	UnknownDelegate
)

func (p UnknownPolicy) String() string {
	if p == UnknownDelegate {
		return "delegate"
	}
	return "unsupported"
}

// ParseUnknownPolicy parses "unsupported" or "delegate".
func ParseUnknownPolicy(s string) (UnknownPolicy, error) {
	switch s {
	case "", "unsupported":
		return UnknownUnsupported, nil
	case "delegate":
		return UnknownDelegate, nil
	}
	return 0, errors.InvalidInput(errors.PhaseConfigure, "unknown selector policy "+s)
}

// Options configures dispatcher behavior.
type Options struct {
	// Name labels the dispatcher in log output.
	Name    string
	Unknown UnknownPolicy
}

// DefaultOptions returns default dispatcher configuration.
func DefaultOptions() Options {
	return Options{
		Unknown: UnknownUnsupported,
	}
}
