package binschema_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	binschema "github.com/binschema/binschema"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := binschema.Issues{
		{Path: "/a", Code: binschema.CodeInvalidType},
		{Path: "/b", Code: binschema.CodeRequired},
	}
	got := iss.Error()
	if got != "invalid_type at /a; required at /b" {
		t.Fatalf("summary: %q", got)
	}

	many := binschema.Issues{}
	for i := 0; i < 5; i++ {
		many = binschema.AppendIssues(many, binschema.Issue{Path: fmt.Sprintf("/%d", i), Code: binschema.CodeOutOfRange})
	}
	got = many.Error()
	if !strings.Contains(got, "(total 5)") {
		t.Fatalf("overflow marker missing: %q", got)
	}
	if strings.Count(got, "out_of_range") != 3 {
		t.Fatalf("should show first three: %q", got)
	}
}

func TestAsIssues(t *testing.T) {
	iss := binschema.Issues{{Path: "/", Code: binschema.CodeTruncated}}
	wrapped := fmt.Errorf("decode failed: %w", error(iss))

	got, ok := binschema.AsIssues(wrapped)
	if !ok || len(got) != 1 || got[0].Code != binschema.CodeTruncated {
		t.Fatalf("AsIssues through wrapping: %v %v", got, ok)
	}
	if _, ok := binschema.AsIssues(errors.New("plain")); ok {
		t.Fatalf("plain error should not convert")
	}
	if _, ok := binschema.AsIssues(nil); ok {
		t.Fatalf("nil error should not convert")
	}
}

func TestRebase(t *testing.T) {
	cases := []struct {
		child string
		want  string
	}{
		{"", "/items"},
		{"/", "/items"},
		{"/2/price", "/items/2/price"},
	}
	for _, c := range cases {
		err := binschema.Rebase("/items", binschema.Issues{{Path: c.child, Code: binschema.CodeOutOfRange}})
		iss, _ := binschema.AsIssues(err)
		if len(iss) != 1 || iss[0].Path != c.want {
			t.Fatalf("rebase %q: got %v, want path %s", c.child, iss, c.want)
		}
	}
}

func TestRebase_WrapsForeignErrors(t *testing.T) {
	cause := errors.New("boom")
	err := binschema.Rebase("/field", cause)
	iss, ok := binschema.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected one issue, got %v", err)
	}
	if iss[0].Path != "/field" || iss[0].Code != binschema.CodeParseError || iss[0].Cause != cause {
		t.Fatalf("wrapped issue: %+v", iss[0])
	}
	if binschema.Rebase("/x", nil) != nil {
		t.Fatalf("nil error should stay nil")
	}
}
