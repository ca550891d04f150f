package api

import (
	"errors"
	"net/http"

	"github.com/gamechanger-stats/seasonstats/internal/adapters/upstream"
	service "github.com/gamechanger-stats/seasonstats/internal/app"
	"github.com/gamechanger-stats/seasonstats/internal/domain/rank"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNotReady   = errors.New("upstream client not available")
)

// writeDomainError translates service and upstream failures into the
// HTTP error envelope. Auth failures always surface as 401 with the
// auth_error code so the frontend can prompt for a new token.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, upstream.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "auth_error",
			errors.New("authentication failed; token may be expired or invalid"))
	case errors.Is(err, service.ErrClientUnavailable):
		writeError(w, http.StatusServiceUnavailable, "client_unavailable", err)
	case errors.Is(err, upstream.ErrUnavailable):
		writeError(w, http.StatusBadGateway, "upstream_unavailable", err)
	case errors.Is(err, service.ErrUnknownCategory),
		errors.Is(err, rank.ErrUnknownStat),
		errors.Is(err, service.ErrFactorOutOfRange),
		errors.Is(err, service.ErrStrictnessOutOfRange):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
