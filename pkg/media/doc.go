// Package media synchronizes playback-surface state into an immutable
// snapshot that consumers observe through subscriptions.
//
// The three pieces fit together like this:
//
//   - [Store] holds the current [Snapshot] and notifies subscribers after
//     every merge, flagging whether anything actually changed.
//   - [Controller] owns a playback surface ([Element]) and an optional
//     streaming adapter ([Adapter]) for the lifetime of a binding session.
//     It folds surface and adapter events into store updates and turns
//     control intents (seek, volume, pause, bitrate selection) into surface
//     operations, smoothing over surface quirks along the way.
//   - [Select] gives each consumer a memoized slice of the snapshot; the
//     consumer is only re-notified when its selected value changes.
//
// A typical session:
//
//	ctrl := media.NewController(el, media.Options{NewAdapter: newHLSAdapter})
//	defer ctrl.Close()
//
//	sel := media.Select(ctrl, func(s media.Snapshot) float64 { return s.CurrentTime })
//	stop := sel.Listen(func(t float64) { render(t) })
//	defer stop()
//
//	ctrl.Load("https://example.com/stream.m3u8")
//
// Controllers and stores are safe for concurrent use. Errors that cannot be
// returned to a caller (listener panics, play rejections, adapter faults)
// are reported through the errors package's global handler.
package media
