// Package mirrortest provides testing helpers for code built on the mirror
// engine.
//
// # Checking the mirror
//
// AssertMirrored walks the engine's host tree and fails the test unless
// the presentation tree mirrors it:
//
//   - every authoring element has exactly one pair and one watcher
//   - the presentation tree has the same shape and order
//   - pairs carry the resolved SVG tag and the SVG namespace
//   - pairs carry exactly the specified attributes of their element
//   - childless elements share their text with their pair
//
// Call it after Sync:
//
//	func TestLegend(t *testing.T) {
//	    engine, host := mirrortest.Attach(t, `<g><text>42</text></g>`)
//	    host.Child(0).SetAttribute("fill", "red")
//	    if err := engine.Sync(); err != nil {
//	        t.Fatal(err)
//	    }
//	    mirrortest.AssertMirrored(t, engine)
//	}
//
// The pair and watcher counts are only exact when the engine cascades
// removals, which is the default.
//
// # Render Assertions
//
//	mirrortest.ExpectContains(t, engine.Root(), `<circle r="5"/>`)
package mirrortest
