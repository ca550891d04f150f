package upstream

import "errors"

// Sentinel kinds for upstream errors.
var (
	// ErrUnauthorized covers 401 responses and the upstream's habit of
	// answering 200 with a missing-authentication body.
	ErrUnauthorized = errors.New("upstream authentication failed")

	// ErrUnavailable covers transport failures, the upstream being down
	// or unreachable.
	ErrUnavailable = errors.New("upstream unavailable")

	// ErrStatus covers non-200 responses other than 401.
	ErrStatus = errors.New("unexpected upstream status")
)

func isAuthErr(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
