// Package mediatest provides scriptable fakes for testing code built on
// the media package: a playback surface whose events are driven by the
// test, a streaming adapter that records control calls and replays engine
// events, and a fake clock for deterministic debounce timing.
package mediatest
