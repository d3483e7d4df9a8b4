package mirror

import (
	"errors"
	"log/slog"
	"math"
	"strconv"

	mirrorerr "github.com/vango-dev/svgmirror/internal/errors"
	"github.com/vango-dev/svgmirror/pkg/dom"
	"github.com/vango-dev/svgmirror/pkg/protocol"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Engine mirrors one host element's children into a root <svg> element.
type Engine struct {
	doc  *dom.Document
	root *dom.Element
	host *dom.Element

	registry *Registry
	watchers map[uint64]*dom.MutationObserver

	opts   options
	logger *slog.Logger
	tracer trace.Tracer

	// pending collects the patches of the batch being dispatched.
	pending []protocol.Patch

	// batchErrs collects the violations of the batch being dispatched;
	// violations collects everything not yet returned by Sync.
	batchErrs  []error
	violations []error

	attached bool
	closed   bool
}

// New creates an engine whose root <svg> element belongs to doc.
func New(doc *dom.Document, opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Engine{
		doc:      doc,
		root:     doc.CreateElementNS(dom.NamespaceSVG, "svg"),
		registry: NewRegistry(),
		watchers: make(map[uint64]*dom.MutationObserver),
		opts:     o,
		logger:   o.logger,
		tracer:   resolveTracer(o.tracerProvider),
	}
}

// Attach replicates host's children into the root element and starts
// watching the host tree. An engine attaches once.
func (e *Engine) Attach(host *dom.Element) error {
	switch {
	case e.closed:
		return mirrorerr.New("M004")
	case e.attached:
		return mirrorerr.New("M003").WithDetailf("Already attached to %s.", e.host)
	case host == nil:
		return mirrorerr.New("M005").WithDetail("The host element is nil.")
	case host.NamespaceURI() != dom.NamespaceHTML:
		return mirrorerr.New("M005").WithDetailf("%s is in namespace %q.", host, host.NamespaceURI())
	case host.Document() != e.doc:
		return mirrorerr.New("M005").
			WithDetailf("%s belongs to another document than the engine.", host).
			WithSuggestion("Create the engine with the host's document: mirror.New(host.Document())")
	}

	span := e.startSpan(spanAttach,
		attribute.String("svgmirror.host", host.LocalName()),
		attribute.Int("svgmirror.children", host.ChildCount()),
	)

	e.host = host
	e.attached = true

	for _, child := range host.Children() {
		e.replicate(child, nil, nil)
	}

	// The host pairs with the root so that children added to the host land
	// under the root. Its own attributes configure the widget and are not
	// mirrored.
	e.registry.Set(host, e.root)
	e.watch(host, dom.ObserveOptions{ChildList: true})
	e.updateGauges()

	e.logger.Debug("svgmirror attached",
		"op", "attach",
		"host", host.String(),
		"elements", e.registry.Len()-1,
	)

	errs := e.finishBatch()
	endSpan(span, 0, errs)
	return nil
}

// Root returns the live root <svg> element.
func (e *Engine) Root() *dom.Element {
	return e.root
}

// Host returns the attached host element, or nil.
func (e *Engine) Host() *dom.Element {
	return e.host
}

// Lookup returns the presentation element paired with an authoring element.
func (e *Engine) Lookup(a *dom.Element) (*dom.Element, bool) {
	return e.registry.Get(a)
}

// Watching reports whether a has a connected watcher.
func (e *Engine) Watching(a *dom.Element) bool {
	if a == nil {
		return false
	}
	obs, ok := e.watchers[a.ID()]
	return ok && obs.Observing()
}

// Associations returns the number of live pairs, the host's included.
func (e *Engine) Associations() int {
	return e.registry.Len()
}

// Watchers returns the number of connected watchers, the host's included.
func (e *Engine) Watchers() int {
	return len(e.watchers)
}

// SetViewBox sets the root's viewBox. Empty values are ignored.
func (e *Engine) SetViewBox(viewBox string) {
	if viewBox == "" {
		return
	}
	e.setRootAttr("viewBox", viewBox)
}

// SetHeight sets the root's height. Zero and NaN are ignored.
func (e *Engine) SetHeight(height float64) {
	if height == 0 || math.IsNaN(height) {
		return
	}
	e.setRootAttr("height", strconv.FormatFloat(height, 'f', -1, 64))
}

// SetWidth sets the root's width. Zero and NaN are ignored.
func (e *Engine) SetWidth(width float64) {
	if width == 0 || math.IsNaN(width) {
		return
	}
	e.setRootAttr("width", strconv.FormatFloat(width, 'f', -1, 64))
}

func (e *Engine) setRootAttr(name, value string) {
	e.root.SetAttributeNS("", name, value)
	e.emit(protocol.NewSetAttrPatch(protocol.ElementID(e.root), name, value))
	e.finishBatch()
}

// Sync delivers every queued mutation record and returns the invariant
// violations raised since the previous Sync.
func (e *Engine) Sync() error {
	if e.closed {
		return mirrorerr.New("M004")
	}
	e.doc.Flush()

	errs := e.violations
	e.violations = nil
	return errors.Join(errs...)
}

// Close disconnects every watcher and forgets every pair. The presentation
// tree is left as it is. Closing twice is a no-op.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true

	for id, obs := range e.watchers {
		obs.Disconnect()
		delete(e.watchers, id)
	}
	e.registry.Clear()
	e.updateGauges()
	e.violations = nil

	e.logger.Debug("svgmirror closed", "op", "close")
	return nil
}

// violation records an invariant violation for the current batch.
func (e *Engine) violation(err error) {
	e.opts.metrics.recordViolation()
	e.logger.Error("svgmirror invariant violation", "op", "dispatch", "error", err)
	if e.opts.onError != nil {
		e.opts.onError(err)
	}
	e.batchErrs = append(e.batchErrs, err)
}

func (e *Engine) updateGauges() {
	e.opts.metrics.setAssociations(e.registry.Len())
	e.opts.metrics.setWatchers(len(e.watchers))
}
