package names

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Error kinds returned by the normalizers. Match them with errors.Is.
var (
	ErrUnknownTeamName       = errors.New("unknown team name")
	ErrUnknownConferenceName = errors.New("unknown conference name")
)

// UnknownNameError reports a name that did not resolve through an alias table.
type UnknownNameError struct {
	// Kind is ErrUnknownTeamName or ErrUnknownConferenceName.
	Kind error
	// Raw is the caller's input.
	Raw string
	// Key is the transformed lookup key that missed.
	Key string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("%v: %q (lookup key %q)", e.Kind, e.Raw, e.Key)
}

// Is lets errors.Is(err, ErrUnknownTeamName) match.
func (e *UnknownNameError) Is(target error) bool {
	return target == e.Kind
}
