package page

import "errors"

var ErrConfiguration = errors.New("page: invalid content")
