package alias

import "errors"

// Sentinel kinds for alias errors.
var (
	ErrLoadFile = errors.New("load alias file failed")
)
