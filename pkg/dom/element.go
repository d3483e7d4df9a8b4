package dom

import (
	"strconv"
	"strings"
)

// Well-known namespaces.
const (
	NamespaceHTML = "http://www.w3.org/1999/xhtml"
	NamespaceSVG  = "http://www.w3.org/2000/svg"
)

// Attr is a single attribute.
type Attr struct {
	Namespace string // "" for the null namespace
	Name      string
	Value     string

	// Specified is false for implicit attributes the element carries
	// without them having been written in markup.
	Specified bool
}

// Element is a node of an element tree.
type Element struct {
	id        uint64
	doc       *Document
	namespace string
	localName string
	attrs     []Attr
	children  []*Element
	parent    *Element
	text      string
	observers []*registration
}

// ID returns the element's identity, unique across all documents.
func (e *Element) ID() uint64 {
	return e.id
}

// Document returns the document that owns the element: the one that created
// it, or the one it was last inserted into.
func (e *Element) Document() *Document {
	return e.doc
}

// NamespaceURI returns the element's namespace.
func (e *Element) NamespaceURI() string {
	return e.namespace
}

// LocalName returns the tag name as stored.
func (e *Element) LocalName() string {
	return e.localName
}

// TagName returns the tag name the way a browser reports it: upper-cased for
// HTML elements, verbatim otherwise.
func (e *Element) TagName() string {
	if e.namespace == NamespaceHTML {
		return strings.ToUpper(e.localName)
	}
	return e.localName
}

// isHTML reports whether attribute names should be lower-cased.
func (e *Element) isHTML() bool {
	return e.namespace == NamespaceHTML
}

// String returns a short debugging representation, e.g. "<rect#4>".
func (e *Element) String() string {
	if e == nil {
		return "<nil>"
	}
	return "<" + e.localName + "#" + strconv.FormatUint(e.id, 10) + ">"
}

// Attributes

// Attributes returns a copy of the element's attributes in order.
func (e *Element) Attributes() []Attr {
	out := make([]Attr, len(e.attrs))
	copy(out, e.attrs)
	return out
}

// SpecifiedAttributes returns the attributes whose Specified flag is set.
func (e *Element) SpecifiedAttributes() []Attr {
	out := make([]Attr, 0, len(e.attrs))
	for _, a := range e.attrs {
		if a.Specified {
			out = append(out, a)
		}
	}
	return out
}

// GetAttribute returns the value of the first attribute with the given name.
func (e *Element) GetAttribute(name string) (string, bool) {
	if e.isHTML() {
		name = strings.ToLower(name)
	}
	for _, a := range e.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// GetAttributeNS returns the value of the attribute with the given
// namespace and name.
func (e *Element) GetAttributeNS(namespace, name string) (string, bool) {
	if i := e.attrIndex(namespace, name); i >= 0 {
		return e.attrs[i].Value, true
	}
	return "", false
}

// HasAttribute reports whether the element carries the named attribute.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.GetAttribute(name)
	return ok
}

// SetAttribute sets a null-namespace attribute. HTML elements lower-case
// the name.
func (e *Element) SetAttribute(name, value string) {
	if e.isHTML() {
		name = strings.ToLower(name)
	}
	e.setAttr("", name, value, true)
}

// SetAttributeNS sets an attribute in the given namespace, keeping the
// name's case.
func (e *Element) SetAttributeNS(namespace, name, value string) {
	e.setAttr(namespace, name, value, true)
}

// SetDefaultAttribute gives the element an implicit attribute. It is not
// reported to observers and does not override a specified value.
func (e *Element) SetDefaultAttribute(name, value string) {
	if e.isHTML() {
		name = strings.ToLower(name)
	}
	if i := e.attrIndex("", name); i >= 0 {
		if !e.attrs[i].Specified {
			e.attrs[i].Value = value
		}
		return
	}
	e.attrs = append(e.attrs, Attr{Name: name, Value: value})
}

func (e *Element) setAttr(namespace, name, value string, specified bool) {
	old := ""
	if i := e.attrIndex(namespace, name); i >= 0 {
		old = e.attrs[i].Value
		e.attrs[i].Value = value
		e.attrs[i].Specified = specified
	} else {
		e.attrs = append(e.attrs, Attr{Namespace: namespace, Name: name, Value: value, Specified: specified})
	}
	e.notify(&MutationRecord{
		Type:               MutationAttributes,
		Target:             e,
		AttributeName:      name,
		AttributeNamespace: namespace,
		OldValue:           old,
	})
}

// RemoveAttribute removes a null-namespace attribute and reports whether it
// was present.
func (e *Element) RemoveAttribute(name string) bool {
	if e.isHTML() {
		name = strings.ToLower(name)
	}
	return e.RemoveAttributeNS("", name)
}

// RemoveAttributeNS removes the attribute with the given namespace and name.
func (e *Element) RemoveAttributeNS(namespace, name string) bool {
	i := e.attrIndex(namespace, name)
	if i < 0 {
		return false
	}
	old := e.attrs[i].Value
	e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
	e.notify(&MutationRecord{
		Type:               MutationAttributes,
		Target:             e,
		AttributeName:      name,
		AttributeNamespace: namespace,
		OldValue:           old,
	})
	return true
}

func (e *Element) attrIndex(namespace, name string) int {
	for i, a := range e.attrs {
		if a.Namespace == namespace && a.Name == name {
			return i
		}
	}
	return -1
}

// Text

// Text returns the element's own text.
func (e *Element) Text() string {
	return e.text
}

// TextContent returns the element's own text when it has no children, and
// the concatenated text content of its children otherwise.
func (e *Element) TextContent() string {
	if len(e.children) == 0 {
		return e.text
	}
	var b strings.Builder
	for _, c := range e.children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// SetText replaces the element's own text and reports a character-data
// mutation.
func (e *Element) SetText(text string) {
	old := e.text
	e.text = text
	e.notify(&MutationRecord{
		Type:     MutationCharacterData,
		Target:   e,
		OldValue: old,
	})
}

// Tree

// Parent returns the parent element, or nil.
func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns a copy of the element's children.
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// ChildCount returns the number of children.
func (e *Element) ChildCount() int {
	return len(e.children)
}

// Child returns the i-th child, or nil if i is out of range.
func (e *Element) Child(i int) *Element {
	if i < 0 || i >= len(e.children) {
		return nil
	}
	return e.children[i]
}

// Index returns the element's position among its parent's children, or -1.
func (e *Element) Index() int {
	if e.parent == nil {
		return -1
	}
	return e.parent.indexOf(e)
}

// NextSibling returns the following sibling, or nil.
func (e *Element) NextSibling() *Element {
	if e.parent == nil {
		return nil
	}
	return e.parent.Child(e.Index() + 1)
}

// PreviousSibling returns the preceding sibling, or nil.
func (e *Element) PreviousSibling() *Element {
	if e.parent == nil {
		return nil
	}
	return e.parent.Child(e.Index() - 1)
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// AppendChild appends child, moving it from its current parent if needed.
func (e *Element) AppendChild(child *Element) *Element {
	return e.InsertBefore(child, nil)
}

// InsertBefore inserts child before ref, or appends it when ref is nil.
// A child from another document is adopted into e's document first.
// It panics if child is nil, if the insertion would create a cycle, or if
// ref is not a child of e.
func (e *Element) InsertBefore(child, ref *Element) *Element {
	if child == nil {
		panic("dom: InsertBefore called with a nil child")
	}
	if child.Contains(e) {
		panic("dom: InsertBefore would make an element its own ancestor")
	}
	if ref != nil && ref.parent != e {
		panic("dom: InsertBefore reference is not a child of the parent")
	}
	if ref == child {
		ref = child.NextSibling()
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.adopt(e.doc)

	at := len(e.children)
	if ref != nil {
		at = e.indexOf(ref)
	}
	e.children = append(e.children, nil)
	copy(e.children[at+1:], e.children[at:])
	e.children[at] = child
	child.parent = e

	e.notify(&MutationRecord{
		Type:            MutationChildList,
		Target:          e,
		AddedNodes:      []*Element{child},
		PreviousSibling: e.Child(at - 1),
		NextSibling:     e.Child(at + 1),
	})
	return child
}

// RemoveChild detaches child and reports whether it was a child of e.
func (e *Element) RemoveChild(child *Element) bool {
	if child == nil || child.parent != e {
		return false
	}
	at := e.indexOf(child)
	prev, next := e.Child(at-1), e.Child(at+1)

	e.children = append(e.children[:at], e.children[at+1:]...)
	child.parent = nil

	e.notify(&MutationRecord{
		Type:            MutationChildList,
		Target:          e,
		RemovedNodes:    []*Element{child},
		PreviousSibling: prev,
		NextSibling:     next,
	})
	return true
}

// Remove detaches the element from its parent, if any.
func (e *Element) Remove() {
	if e.parent != nil {
		e.parent.RemoveChild(e)
	}
}

// Walk visits e and its descendants in pre-order. Returning false from fn
// skips the element's children.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.Children() {
		c.Walk(fn)
	}
}

// adopt moves e and its descendants into doc. Records already queued on
// the previous document stay there.
func (e *Element) adopt(doc *Document) {
	if e.doc == doc {
		return
	}
	e.Walk(func(el *Element) bool {
		el.doc = doc
		return true
	})
}

func (e *Element) indexOf(child *Element) int {
	for i, c := range e.children {
		if c == child {
			return i
		}
	}
	return -1
}
