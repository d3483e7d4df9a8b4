package main

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/vango-dev/svgmirror/internal/errors"
	"github.com/vango-dev/svgmirror/pkg/dom"
	"github.com/vango-dev/svgmirror/pkg/htmlsrc"
)

// step is one mutation of a replay script. Paths are slash-separated child
// indexes from the host element; "" is the host itself.
type step struct {
	Op    string `json:"op"`
	Path  string `json:"path,omitempty"`
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`
	HTML  string `json:"html,omitempty"`
	Index int    `json:"index,omitempty"`
	To    string `json:"to,omitempty"`
}

// Script operations.
const (
	opSetAttr    = "set-attr"
	opRemoveAttr = "remove-attr"
	opAppend     = "append"
	opInsert     = "insert"
	opRemove     = "remove"
	opMove       = "move"
	opText       = "text"
	opSync       = "sync"
)

// parseScript decodes a JSON array of steps.
func parseScript(r io.Reader) ([]step, error) {
	var steps []step
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&steps); err != nil {
		return nil, errors.New("S001").
			WithDetail("The script is not a JSON array of steps: " + err.Error())
	}
	return steps, nil
}

// stepError reports an invalid step.
func stepError(i int, s step, format string, args ...any) error {
	return errors.New("S001").
		WithDetailf("Step %d (%s): "+format, append([]any{i + 1, s.Op}, args...)...)
}

// resolvePath finds the element a path points at.
func resolvePath(host *dom.Element, path string) (*dom.Element, error) {
	el := host
	if path == "" {
		return el, nil
	}
	for _, part := range strings.Split(path, "/") {
		i, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		child := el.Child(i)
		if child == nil {
			return nil, io.ErrUnexpectedEOF
		}
		el = child
	}
	return el, nil
}

// applyStep performs one step against the host tree. sync is called for
// sync steps.
func applyStep(host *dom.Element, i int, s step, sync func() error) error {
	if s.Op == opSync {
		return sync()
	}

	target, err := resolvePath(host, s.Path)
	if err != nil {
		return stepError(i, s, "no element at path %q", s.Path)
	}

	switch s.Op {
	case opSetAttr:
		if s.Name == "" {
			return stepError(i, s, "missing name")
		}
		target.SetAttribute(s.Name, s.Value)

	case opRemoveAttr:
		if s.Name == "" {
			return stepError(i, s, "missing name")
		}
		target.RemoveAttribute(s.Name)

	case opAppend, opInsert:
		els, err := htmlsrc.ParseFragment(host.Document(), s.HTML)
		if err != nil {
			return stepError(i, s, "%v", err)
		}
		if len(els) == 0 {
			return stepError(i, s, "html contains no elements")
		}
		var ref *dom.Element
		if s.Op == opInsert {
			ref = target.Child(s.Index)
		}
		for _, el := range els {
			target.InsertBefore(el, ref)
		}

	case opRemove:
		if target == host {
			return stepError(i, s, "cannot remove the host")
		}
		target.Remove()

	case opMove:
		dest, err := resolvePath(host, s.To)
		if err != nil {
			return stepError(i, s, "no element at path %q", s.To)
		}
		if target == host || target.Contains(dest) {
			return stepError(i, s, "cannot move %q into %q", s.Path, s.To)
		}
		dest.AppendChild(target)

	case opText:
		target.SetText(s.Value)

	default:
		return stepError(i, s, "unknown op")
	}
	return nil
}
