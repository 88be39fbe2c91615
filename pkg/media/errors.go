package media

import "errors"

// Sentinel errors for controller operations.
var (
	// ErrClosed is returned when a control method is called on a closed
	// controller.
	ErrClosed = errors.New("media: controller closed")

	// ErrNoAdapter is returned when a control method needs a streaming
	// adapter but none is attached.
	ErrNoAdapter = errors.New("media: no streaming adapter attached")
)
