package showcase

import "errors"

// ErrUnknownForm is returned when a form name has no definition.
var ErrUnknownForm = errors.New("unknown form")
