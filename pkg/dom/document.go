package dom

import (
	"strings"
	"sync"
	"sync/atomic"
)

// maxFlushRounds bounds how many times Flush re-drains the queue when
// observers keep producing records for each other.
const maxFlushRounds = 1024

// lastID numbers elements across every document, so an element's ID stays
// unique when it is adopted into another document.
var lastID atomic.Uint64

// Document creates elements and owns their pending mutation records.
//
// A Document and its elements are meant to be used from a single
// goroutine, like a browser document. Only the record queue is locked.
type Document struct {
	mu    sync.Mutex
	queue []delivery
}

// delivery is a queued record bound for one observer.
type delivery struct {
	observer *MutationObserver
	record   *MutationRecord
	gen      uint64
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

// CreateElement creates an element in the HTML namespace. The tag is stored
// lower-cased.
func (d *Document) CreateElement(tag string) *Element {
	return d.newElement(NamespaceHTML, strings.ToLower(tag))
}

// CreateElementNS creates an element in the given namespace, keeping the
// tag's case.
func (d *Document) CreateElementNS(namespace, tag string) *Element {
	return d.newElement(namespace, tag)
}

func (d *Document) newElement(namespace, tag string) *Element {
	return &Element{
		id:        lastID.Add(1),
		doc:       d,
		namespace: namespace,
		localName: tag,
	}
}

// Pending returns the number of queued, undelivered records.
func (d *Document) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// Flush delivers queued records to their observers and returns how many
// were delivered. Records produced by the callbacks themselves are delivered
// by the same call.
func (d *Document) Flush() int {
	delivered := 0
	for round := 0; round < maxFlushRounds; round++ {
		d.mu.Lock()
		queue := d.queue
		d.queue = nil
		d.mu.Unlock()

		if len(queue) == 0 {
			return delivered
		}

		for start := 0; start < len(queue); {
			obs := queue[start].observer
			end := start + 1
			for end < len(queue) && queue[end].observer == obs {
				end++
			}

			batch := make([]*MutationRecord, 0, end-start)
			for _, dl := range queue[start:end] {
				// Records queued before a Disconnect are dropped.
				if dl.gen == obs.gen {
					batch = append(batch, dl.record)
				}
			}
			start = end

			if len(batch) > 0 {
				delivered += len(batch)
				obs.callback(batch, obs)
			}
		}
	}
	return delivered
}

func (d *Document) enqueue(obs *MutationObserver, rec *MutationRecord) {
	d.mu.Lock()
	d.queue = append(d.queue, delivery{observer: obs, record: rec, gen: obs.gen})
	d.mu.Unlock()
}
