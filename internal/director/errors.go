package director

import "errors"

var (
	ErrEmptyScript      = errors.New("script has no steps")
	ErrUnknownAnimation = errors.New("unknown animation kind")
	ErrUnknownTarget    = errors.New("unknown animation target")
	ErrUnknownUpdater   = errors.New("no updater registered for element")
	ErrNegativeDuration = errors.New("negative duration")
	ErrUnknownRate      = errors.New("unknown rate function")
)
