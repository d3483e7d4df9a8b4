package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "invariant error",
			code:    "M001",
			wantMsg: "Association missing for watched element",
			wantCat: CategoryInvariant,
		},
		{
			name:    "config error",
			code:    "C002",
			wantMsg: "Invalid configuration",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "M999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestMirrorError_Error(t *testing.T) {
	err := New("M004")
	if got, want := err.Error(), "M004: Engine closed"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := New("C002").Wrap(fmt.Errorf("unexpected EOF"))
	if got, want := wrapped.Error(), "C002: Invalid configuration: unexpected EOF"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	plain := &MirrorError{Message: "test error"}
	if plain.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "test error")
	}
}

func TestMirrorError_IsAndUnwrap(t *testing.T) {
	cause := stderrors.New("disk gone")
	err := New("C001").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if !stderrors.Is(err, New("C001")) {
		t.Error("errors.Is should match errors with the same code")
	}
	if stderrors.Is(err, New("C002")) {
		t.Error("errors.Is should not match a different code")
	}

	var me *MirrorError
	if !stderrors.As(fmt.Errorf("outer: %w", err), &me) || me.Code != "C001" {
		t.Errorf("errors.As = %v, want C001", me)
	}
}

func TestHasCode(t *testing.T) {
	joined := stderrors.Join(New("M002"), fmt.Errorf("ctx: %w", New("M001")))

	if !HasCode(joined, "M001") {
		t.Error("HasCode should find M001 inside a joined error")
	}
	if !HasCode(joined, "M002") {
		t.Error("HasCode should find M002 inside a joined error")
	}
	if HasCode(joined, "M003") {
		t.Error("HasCode should not find M003")
	}
	if HasCode(nil, "M001") {
		t.Error("HasCode(nil) should be false")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "C002") != nil {
		t.Error("FromError(nil) should return nil")
	}

	orig := New("M003")
	if FromError(orig, "C002") != orig {
		t.Error("FromError should return MirrorError unchanged")
	}

	std := stderrors.New("boom")
	me := FromError(std, "C002")
	if me.Code != "C002" || me.Wrapped != std {
		t.Errorf("FromError = %+v, want code C002 wrapping original", me)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("M001").
		WithDetailf("attribute %q changed on <%s>", "fill", "RECT").
		WithSuggestion("Mutate authoring elements only after Attach")

	out := err.Format()
	for _, want := range []string{
		"ERROR M001: Association missing for watched element",
		`attribute "fill" changed on <RECT>`,
		"Hint: Mutate authoring elements only after Attach",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}

	if got, want := err.FormatCompact(), `M001: Association missing for watched element (attribute "fill" changed on <RECT>)`; got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestPrintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	PrintError(&buf, New("L001"))
	if !strings.Contains(buf.String(), "L001: Host element not found") {
		t.Errorf("PrintError output = %q", buf.String())
	}

	buf.Reset()
	PrintError(&buf, stderrors.New("plain"))
	if !strings.Contains(buf.String(), "ERROR: plain") {
		t.Errorf("PrintError output = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six", 10)
	for _, l := range lines {
		if len(l) > 10 {
			t.Errorf("line %q exceeds width", l)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six" {
		t.Errorf("wrapText lost words: %v", lines)
	}
	if wrapText("", 10) != nil {
		t.Error("wrapText(\"\") should be nil")
	}
}

func TestGetAllCodesSorted(t *testing.T) {
	codes := GetAllCodes()
	for i := 1; i < len(codes); i++ {
		if codes[i-1] > codes[i] {
			t.Fatalf("codes not sorted: %v", codes)
		}
	}
	if _, ok := GetTemplate("S001"); !ok {
		t.Error("S001 should be registered")
	}
}
