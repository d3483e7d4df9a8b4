package dom

// MutationType is the kind of a MutationRecord.
type MutationType uint8

const (
	MutationAttributes    MutationType = iota + 1 // attribute set or removed
	MutationChildList                             // child added or removed
	MutationCharacterData                         // own text changed
)

// String returns the string representation of the MutationType.
func (t MutationType) String() string {
	switch t {
	case MutationAttributes:
		return "attributes"
	case MutationChildList:
		return "childList"
	case MutationCharacterData:
		return "characterData"
	default:
		return "unknown"
	}
}

// MutationRecord describes a single change to an observed element.
type MutationRecord struct {
	Type   MutationType
	Target *Element

	// ChildList
	AddedNodes      []*Element
	RemovedNodes    []*Element
	PreviousSibling *Element
	NextSibling     *Element

	// Attributes
	AttributeName      string
	AttributeNamespace string

	// OldValue is the previous attribute value or text.
	OldValue string
}

// ObserveOptions selects which kinds of mutation an observer receives.
type ObserveOptions struct {
	Attributes    bool
	ChildList     bool
	CharacterData bool
}

func (o ObserveOptions) accepts(t MutationType) bool {
	switch t {
	case MutationAttributes:
		return o.Attributes
	case MutationChildList:
		return o.ChildList
	case MutationCharacterData:
		return o.CharacterData
	default:
		return false
	}
}

// MutationCallback receives a batch of records.
type MutationCallback func(records []*MutationRecord, observer *MutationObserver)

// MutationObserver receives records for the elements it observes.
type MutationObserver struct {
	callback MutationCallback
	targets  []*Element
	gen      uint64
}

// registration binds an observer to one target.
type registration struct {
	observer *MutationObserver
	options  ObserveOptions
}

// NewMutationObserver creates an observer that calls cb on Document.Flush.
func NewMutationObserver(cb MutationCallback) *MutationObserver {
	return &MutationObserver{callback: cb}
}

// Observe starts observing target. Observing the same target again replaces
// the options.
func (o *MutationObserver) Observe(target *Element, opts ObserveOptions) {
	for _, r := range target.observers {
		if r.observer == o {
			r.options = opts
			return
		}
	}
	target.observers = append(target.observers, &registration{observer: o, options: opts})
	o.targets = append(o.targets, target)
}

// Disconnect stops observing every target and drops undelivered records.
func (o *MutationObserver) Disconnect() {
	for _, t := range o.targets {
		kept := t.observers[:0]
		for _, r := range t.observers {
			if r.observer != o {
				kept = append(kept, r)
			}
		}
		t.observers = kept
	}
	o.targets = nil
	o.gen++
}

// Observing reports whether the observer has at least one target.
func (o *MutationObserver) Observing() bool {
	return len(o.targets) > 0
}

// notify queues rec for every observer of e that accepts its type.
func (e *Element) notify(rec *MutationRecord) {
	if e.doc == nil {
		return
	}
	for _, r := range e.observers {
		if r.options.accepts(rec.Type) {
			e.doc.enqueue(r.observer, rec)
		}
	}
}
