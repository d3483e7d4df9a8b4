package protocol

import "errors"

// MaxNodeDepth limits the nesting depth of decoded element trees.
// 256 levels is far deeper than any drawing needs.
const MaxNodeDepth = 256

// ErrMaxDepthExceeded is returned when a decoded tree nests too deeply.
var ErrMaxDepthExceeded = errors.New("protocol: max depth exceeded")

// checkDepth is a convenience function for one-time depth checks.
func checkDepth(current, max int) error {
	if current > max {
		return ErrMaxDepthExceeded
	}
	return nil
}
