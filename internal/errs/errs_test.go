package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapPreservesChain(t *testing.T) {
	t.Parallel()

	root := errors.New("boom")
	wrapped := Wrap(root, CodeUnavailable, "backend down")

	if !errors.Is(wrapped, root) {
		t.Fatal("expected wrapped error to unwrap to the root cause")
	}
	if !IsCode(wrapped, CodeUnavailable) {
		t.Fatalf("expected code %s, got %s", CodeUnavailable, CodeOf(wrapped))
	}
}

func TestIsCodeThroughFmtWrap(t *testing.T) {
	t.Parallel()

	err := New(CodeValidation, "bad format")
	outer := fmt.Errorf("run failed: %w", err)

	if !IsCode(outer, CodeValidation) {
		t.Fatal("expected code to survive fmt.Errorf wrapping")
	}
}

func TestCodeOfForeignError(t *testing.T) {
	t.Parallel()

	if got := CodeOf(errors.New("plain")); got != CodeInternal {
		t.Fatalf("expected %s for foreign errors, got %s", CodeInternal, got)
	}
}

func TestErrorStringIncludesContext(t *testing.T) {
	t.Parallel()

	e := &Error{Code: CodeNotFound, Message: "no such root"}
	e.WithContext(CtxPath, "/tmp/missing")

	msg := e.Error()
	if msg == "" || !IsCode(e, CodeNotFound) {
		t.Fatalf("unexpected error rendering: %q", msg)
	}
}
