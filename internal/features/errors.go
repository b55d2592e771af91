package features

import "github.com/cockroachdb/errors"

// ErrInsufficientHistory marks a game skipped because the team or its opponent
// had not yet played earlier in the season.
var ErrInsufficientHistory = errors.New("insufficient history")
