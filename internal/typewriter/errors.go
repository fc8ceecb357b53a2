package typewriter

import "errors"

// ErrConfiguration indicates a cycler built from an unusable phrase list.
var ErrConfiguration = errors.New("typewriter: invalid configuration")
