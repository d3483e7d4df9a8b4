package dom

import (
	"testing"
)

type recorder struct {
	batches [][]*MutationRecord
}

func (r *recorder) callback(records []*MutationRecord, _ *MutationObserver) {
	r.batches = append(r.batches, records)
}

func (r *recorder) all() []*MutationRecord {
	var out []*MutationRecord
	for _, b := range r.batches {
		out = append(out, b...)
	}
	return out
}

var allKinds = ObserveOptions{Attributes: true, ChildList: true, CharacterData: true}

func TestObserverDeliversOnFlush(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("rect")

	var rec recorder
	obs := NewMutationObserver(rec.callback)
	obs.Observe(el, allKinds)

	el.SetAttribute("fill", "red")
	el.SetAttribute("fill", "blue")

	if len(rec.batches) != 0 {
		t.Fatal("records must not be delivered before Flush")
	}
	if doc.Pending() != 2 {
		t.Errorf("Pending() = %d, want 2", doc.Pending())
	}

	if n := doc.Flush(); n != 2 {
		t.Errorf("Flush() = %d, want 2", n)
	}
	if len(rec.batches) != 1 || len(rec.batches[0]) != 2 {
		t.Fatalf("batches = %v, want one batch of two", rec.batches)
	}

	first := rec.batches[0][0]
	if first.Type != MutationAttributes || first.AttributeName != "fill" || first.OldValue != "" {
		t.Errorf("first record = %+v", first)
	}
	if second := rec.batches[0][1]; second.OldValue != "red" {
		t.Errorf("second OldValue = %q, want red", second.OldValue)
	}
	if doc.Flush() != 0 {
		t.Error("second Flush should deliver nothing")
	}
}

func TestObserverOptionsFilter(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("g")

	var rec recorder
	NewMutationObserver(rec.callback).Observe(el, ObserveOptions{ChildList: true})

	el.SetAttribute("x", "1")
	el.SetText("hello")
	el.AppendChild(doc.CreateElement("rect"))
	doc.Flush()

	records := rec.all()
	if len(records) != 1 || records[0].Type != MutationChildList {
		t.Fatalf("records = %+v, want only the childList record", records)
	}
}

func TestObserverIgnoresDescendants(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("g")
	child := parent.AppendChild(doc.CreateElement("rect"))

	var rec recorder
	NewMutationObserver(rec.callback).Observe(parent, allKinds)

	child.SetAttribute("fill", "red")
	child.AppendChild(doc.CreateElement("title"))
	doc.Flush()

	if len(rec.all()) != 0 {
		t.Errorf("descendant mutations should not be observed, got %d", len(rec.all()))
	}
}

func TestChildListRecordSiblings(t *testing.T) {
	doc := NewDocument()
	g := doc.CreateElement("g")
	a := g.AppendChild(doc.CreateElement("a"))
	c := g.AppendChild(doc.CreateElement("c"))

	var rec recorder
	NewMutationObserver(rec.callback).Observe(g, allKinds)

	b := g.InsertBefore(doc.CreateElement("b"), c)
	g.RemoveChild(a)
	doc.Flush()

	records := rec.all()
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	ins := records[0]
	if len(ins.AddedNodes) != 1 || ins.AddedNodes[0] != b || ins.PreviousSibling != a || ins.NextSibling != c {
		t.Errorf("insert record = %+v", ins)
	}
	rem := records[1]
	if len(rem.RemovedNodes) != 1 || rem.RemovedNodes[0] != a || rem.PreviousSibling != nil || rem.NextSibling != b {
		t.Errorf("remove record = %+v", rem)
	}
}

func TestRecordsDeliveredInMutationOrder(t *testing.T) {
	doc := NewDocument()
	p1 := doc.CreateElement("p1")
	p2 := doc.CreateElement("p2")
	moving := p1.AppendChild(doc.CreateElement("rect"))

	var order []string
	// p2's observer is created first; the removal from p1 still comes first.
	NewMutationObserver(func(records []*MutationRecord, _ *MutationObserver) {
		for range records {
			order = append(order, "p2")
		}
	}).Observe(p2, allKinds)
	NewMutationObserver(func(records []*MutationRecord, _ *MutationObserver) {
		for range records {
			order = append(order, "p1")
		}
	}).Observe(p1, allKinds)

	p2.AppendChild(moving)
	doc.Flush()

	if len(order) != 2 || order[0] != "p1" || order[1] != "p2" {
		t.Errorf("delivery order = %v, want [p1 p2]", order)
	}
}

func TestDisconnectDropsPendingRecords(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("rect")

	var rec recorder
	obs := NewMutationObserver(rec.callback)
	obs.Observe(el, allKinds)
	if !obs.Observing() {
		t.Error("Observing() should be true after Observe")
	}

	el.SetAttribute("fill", "red")
	obs.Disconnect()
	el.SetAttribute("fill", "blue")
	doc.Flush()

	if len(rec.all()) != 0 {
		t.Errorf("disconnected observer received %d records", len(rec.all()))
	}
	if obs.Observing() {
		t.Error("Observing() should be false after Disconnect")
	}

	obs.Observe(el, allKinds)
	el.SetAttribute("fill", "green")
	doc.Flush()
	if len(rec.all()) != 1 {
		t.Errorf("re-observed observer got %d records, want 1", len(rec.all()))
	}
}

func TestObserveTwiceReplacesOptions(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("rect")

	var rec recorder
	obs := NewMutationObserver(rec.callback)
	obs.Observe(el, allKinds)
	obs.Observe(el, ObserveOptions{CharacterData: true})

	el.SetAttribute("x", "1")
	el.SetText("t")
	doc.Flush()

	records := rec.all()
	if len(records) != 1 || records[0].Type != MutationCharacterData {
		t.Errorf("records = %+v, want one characterData record", records)
	}
}

func TestFlushDrainsRecordsFromCallbacks(t *testing.T) {
	doc := NewDocument()
	a := doc.CreateElement("a")
	b := doc.CreateElement("b")

	var rec recorder
	NewMutationObserver(func(records []*MutationRecord, _ *MutationObserver) {
		b.SetAttribute("seen", "yes")
	}).Observe(a, allKinds)
	NewMutationObserver(rec.callback).Observe(b, allKinds)

	a.SetAttribute("x", "1")
	if n := doc.Flush(); n != 2 {
		t.Errorf("Flush() = %d, want 2", n)
	}
	if len(rec.all()) != 1 {
		t.Errorf("chained record not delivered in the same Flush")
	}
}

func TestMutationTypeString(t *testing.T) {
	tests := map[MutationType]string{
		MutationAttributes:    "attributes",
		MutationChildList:     "childList",
		MutationCharacterData: "characterData",
		MutationType(99):      "unknown",
	}
	for typ, want := range tests {
		if typ.String() != want {
			t.Errorf("%d.String() = %q, want %q", typ, typ.String(), want)
		}
	}
}
