package selector

import "errors"

var (
	// ErrSceneAlreadyStarted ...
	ErrSceneAlreadyStarted = errors.New("scene is already started")
	// ErrNotSwapScene is returned by swap-only operations called on another
	// scene.
	ErrNotSwapScene = errors.New("operation is only allowed for the swap scene")
	// ErrMissingNavigator ...
	ErrMissingNavigator = errors.New("no navigator configured")
)
