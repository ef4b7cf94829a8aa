package citycore

import "github.com/pkg/errors"

// ErrProgrammer marks a misuse of the API: invalid construction parameters
// or a place whose fields violate the documented contract. The caller is
// expected to fail loudly and fix the call site, not retry.
var ErrProgrammer = errors.New("citycore: programmer error")

// ErrStructural marks a failure in a collaborator the core depends on but
// does not own, such as the injected distance function returning a
// non-finite result. Structural errors surface as fatal for the query
// that triggered them.
var ErrStructural = errors.New("citycore: structural error")

// wrapProgrammer attaches msg (and args, fmt.Sprintf-style) to ErrProgrammer,
// carrying a stack trace the way the rest of the corpus uses pkg/errors.
func wrapProgrammer(format string, args ...interface{}) error {
	return errors.Wrapf(ErrProgrammer, format, args...)
}

func wrapStructural(format string, args ...interface{}) error {
	return errors.Wrapf(ErrStructural, format, args...)
}
