package reveal

import "errors"

// ErrConfiguration indicates invalid observer options or a missing action.
var ErrConfiguration = errors.New("reveal: invalid configuration")
