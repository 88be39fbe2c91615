package media_test

import (
	"fmt"

	"github.com/go-drift/mediasync/pkg/media"
	"github.com/go-drift/mediasync/pkg/mediatest"
)

// Bind a fake playback surface, watch one field of the snapshot, and
// drive a couple of surface events through it.
func Example() {
	el := mediatest.NewFakeElement()
	c := media.NewController(el, media.Options{Scheduler: mediatest.NewFakeClock()})
	defer c.Close()

	position := media.Select(c, func(s media.Snapshot) float64 { return s.CurrentTime })
	defer position.Close()
	position.Listen(func(t float64) {
		fmt.Printf("position: %.0fs\n", t)
	})

	el.EmitTimeUpdate(3)
	el.EmitTimeUpdate(7)
	fmt.Println("status:", c.Snapshot().Status)

	// Output:
	// position: 3s
	// position: 7s
	// status: Loading
}
