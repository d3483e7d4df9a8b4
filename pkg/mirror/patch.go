package mirror

import "github.com/vango-dev/svgmirror/pkg/protocol"

// emit queues a patch for the current batch.
func (e *Engine) emit(p protocol.Patch) {
	e.pending = append(e.pending, p)
}

// finishBatch hands the batch's patches to the patch handler and moves
// its violations to those Sync returns. It returns the batch's violations.
func (e *Engine) finishBatch() []error {
	patches := e.pending
	e.pending = nil
	if len(patches) > 0 {
		e.opts.metrics.recordPatches(len(patches))
		if e.opts.onPatches != nil {
			e.opts.onPatches(patches)
		}
	}

	errs := e.batchErrs
	e.batchErrs = nil
	e.violations = append(e.violations, errs...)
	return errs
}
