package gamelog

import "github.com/cockroachdb/errors"

var (
	// ErrMalformedInput is returned for missing columns, unparseable dates and
	// statistic values that are not numbers.
	ErrMalformedInput = errors.New("malformed input")

	// ErrNoDataForScope means a team has no game records in the requested
	// season. Callers treat it as "did not play D1 that season".
	ErrNoDataForScope = errors.New("no data for scope")

	// ErrUnsupportedSeason is returned for seasons outside the calendar.
	ErrUnsupportedSeason = errors.New("unsupported season")
)
