// Package errors provides structured, coded errors for svgmirror.
//
// Every error raised by the engine, the loader, the configuration layer and
// the CLI carries a short code (e.g. "M001") that maps to a registered
// template with a message, a longer explanation and a category:
//   - invariant: the association registry and the watcher set disagree
//   - dispatch: a mutation record could not be classified
//   - engine: lifecycle misuse (double attach, use after close)
//   - config: svgmirror.json could not be read or is out of range
//   - load: the authoring markup did not contain a host element
//   - script: a replay script step is malformed, or its patch log does
//     not rebuild the SVG tree
//
// # Usage
//
//	err := errors.New("M001").
//	    WithDetailf("attribute %q changed on <%s> #%d", "fill", "RECT", 7).
//	    WithSuggestion("Mutate authoring elements only after Attach")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR M001: Association missing for watched element
//	//
//	//   attribute "fill" changed on <RECT> #7
//	//
//	//   Hint: Mutate authoring elements only after Attach
package errors
