package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
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
		{name: "config", code: "T003", wantMsg: "Unsupported placement", wantCat: CategoryConfig},
		{name: "replay", code: "T021", wantMsg: "Unknown replay event", wantCat: CategoryReplay},
		{name: "scaffold", code: "T041", wantMsg: "Component already exists", wantCat: CategoryScaffold},
		{name: "unknown", code: "T999", wantMsg: "Unknown error", wantCat: ""},
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

func TestError_Error(t *testing.T) {
	if got := New("T004").Error(); got != "T004: Negative offset" {
		t.Errorf("Error() = %q", got)
	}
	if got := Newf(CategoryCLI, "port %d busy", 80).Error(); got != "port 80 busy" {
		t.Errorf("Error() = %q", got)
	}

	inner := stderrors.New("boom")
	err := New("T002").Wrap(inner)
	if got := err.Error(); got != "T002: Invalid config file: boom" {
		t.Errorf("Error() = %q", got)
	}
	if !stderrors.Is(err, inner) {
		t.Error("errors.Is should see the wrapped error")
	}
}

func TestFromErrorAndHasCode(t *testing.T) {
	if FromError(nil, "T002") != nil {
		t.Error("FromError(nil) should be nil")
	}

	te := New("T003")
	if FromError(te, "T002") != te {
		t.Error("FromError should return *Error as-is")
	}

	wrapped := FromError(stderrors.New("x"), "T020")
	if !HasCode(wrapped, "T020") {
		t.Errorf("HasCode(T020) = false for %v", wrapped)
	}
	if HasCode(stderrors.New("plain"), "T020") {
		t.Error("HasCode should be false for plain errors")
	}
}

func TestHasCode_JoinedErrors(t *testing.T) {
	joined := stderrors.Join(New("T003"), New("T006"))
	wrapped := New("T080").Wrap(fmt.Errorf("startup: %w", joined))

	tests := []struct {
		name string
		err  error
		code string
		want bool
	}{
		{name: "first joined", err: joined, code: "T003", want: true},
		{name: "second joined", err: joined, code: "T006", want: true},
		{name: "absent", err: joined, code: "T004", want: false},
		{name: "outer of nested", err: wrapped, code: "T080", want: true},
		{name: "inside nested join", err: wrapped, code: "T006", want: true},
		{name: "nil", err: nil, code: "T003", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasCode(tt.err, tt.code); got != tt.want {
				t.Errorf("HasCode(%v, %s) = %v, want %v", tt.err, tt.code, got, tt.want)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	tmpl, ok := Lookup("T041")
	if !ok || tmpl.Category != CategoryScaffold {
		t.Errorf("Lookup(T041) = %+v, %v", tmpl, ok)
	}
	if _, ok := Lookup("T999"); ok {
		t.Error("Lookup(T999) should miss")
	}
}

func TestWithLocationFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tooltip.yaml")
	content := "placement: top\noffset: 8\nhoverDelay: [\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	err := New("T002").WithLocationFromYAML(path, stderrors.New("yaml: line 3: did not find expected node content"))
	if err.Location == nil || err.Location.Line != 3 {
		t.Fatalf("Location = %+v, want line 3", err.Location)
	}
	if len(err.Context) == 0 {
		t.Error("Context should hold surrounding lines")
	}

	none := New("T002").WithLocationFromYAML(path, stderrors.New("no position"))
	if none.Location != nil {
		t.Errorf("Location = %+v, want nil", none.Location)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	dir := t.TempDir()
	path := filepath.Join(dir, "tooltip.json")
	if err := os.WriteFile(path, []byte("{\n  \"placement\": \"middle\"\n}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := New("T003").
		WithLocation(path, 2, 16).
		WithSuggestion(`Use "top" or "bottom-start"`)
	out := err.Format()

	for _, want := range []string{
		"ERROR T003: Unsupported placement",
		path + ":2:16",
		`"placement": "middle"`,
		"^",
		"Hint: Use \"top\" or \"bottom-start\"",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}

	if got := err.FormatCompact(); got != path+":2:16: T003: Unsupported placement" {
		t.Errorf("FormatCompact() = %q", got)
	}
}

func TestPrint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Print(&buf, New("T080"))
	if !strings.Contains(buf.String(), "ERROR T080: Server failed") {
		t.Errorf("Print(*Error) = %q", buf.String())
	}

	buf.Reset()
	Print(&buf, stderrors.New("plain failure"))
	if !strings.Contains(buf.String(), "ERROR: plain failure") {
		t.Errorf("Print(error) = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 40), 20)
	for _, l := range lines {
		if len(l) > 20 {
			t.Errorf("line %q longer than 20", l)
		}
	}
	if wrapText("", 10) != nil {
		t.Error("wrapText(\"\") should be nil")
	}
}
