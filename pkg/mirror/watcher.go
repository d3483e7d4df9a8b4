package mirror

import (
	"time"

	"github.com/vango-dev/svgmirror/pkg/dom"
	"go.opentelemetry.io/otel/attribute"
)

// watch observes a with opts. An element has at most one watcher;
// watching it again reuses the one it has.
func (e *Engine) watch(a *dom.Element, opts dom.ObserveOptions) {
	obs, ok := e.watchers[a.ID()]
	if !ok {
		obs = dom.NewMutationObserver(e.onMutations)
		e.watchers[a.ID()] = obs
	}
	obs.Observe(a, opts)
}

// unwatch disconnects a's watcher. Records it has not delivered yet are
// dropped.
func (e *Engine) unwatch(a *dom.Element) {
	if obs, ok := e.watchers[a.ID()]; ok {
		obs.Disconnect()
		delete(e.watchers, a.ID())
	}
}

// onMutations is the callback of every watcher. Each call is one dispatch
// batch.
func (e *Engine) onMutations(records []*dom.MutationRecord, _ *dom.MutationObserver) {
	if e.closed || len(records) == 0 {
		return
	}
	start := time.Now()

	span := e.startSpan(spanDispatch,
		attribute.String("svgmirror.target", records[0].Target.String()),
		attribute.Int("svgmirror.records", len(records)),
	)

	for _, rec := range records {
		e.dispatch(rec)
	}

	patches := len(e.pending)
	errs := e.finishBatch()
	e.updateGauges()
	e.opts.metrics.observeDispatch(start)
	endSpan(span, patches, errs)

	e.logger.Debug("svgmirror dispatched",
		"op", "dispatch",
		"target", records[0].Target.String(),
		"records", len(records),
		"patches", patches,
	)
}
